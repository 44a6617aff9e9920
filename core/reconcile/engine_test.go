package reconcile

import (
	"context"
	"fmt"
	"testing"

	"listing-manager/core/encoder"
	"listing-manager/core/listingapi"
	"listing-manager/core/listingapi/mocks"
	"listing-manager/core/schema"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	skuScattergun = "200;6;kt-3"
	skuKey        = "5021;6"
	skuUnknown    = "99999;6"
)

func testCatalog() schema.Schema {
	return schema.NewCatalog([]schema.ItemMetadata{
		{Defindex: 200, ItemSlot: "primary"},
		{Defindex: 5021, ItemSlot: ""},
		{Defindex: 1157, ItemSlot: schema.SlotTaunt},
	})
}

func testConfig() Config {
	return Config{
		SteamID:                 "76561198000000000",
		Token:                   "token",
		UserAgent:               "listing-manager-test",
		FlushIntervalMillis:     3_600_000,
		InventoryRefreshSeconds: 3_600,
	}
}

func expectInit(client *mocks.Client) {
	client.On("AddToken", mock.Anything, "token").Return(nil).Once()
	client.On("RefreshListingLimits", mock.Anything).Return(nil).Once()
	client.On("StartAgent", mock.Anything, "listing-manager-test").Return(listingapi.Agent{}, nil).Once()
	client.On("StartInventoryRefresh", mock.Anything).Return(nil).Once()
}

func newReadyEngine(t *testing.T) (*Engine, *mocks.Client, *Metrics) {
	t.Helper()
	client := new(mocks.Client)
	expectInit(client)

	m, err := NewMetrics(nil)
	require.NoError(t, err)

	e := NewEngine(testConfig(), client, testCatalog(), zap.NewNop(), m)
	require.NoError(t, e.Init(context.Background()))
	t.Cleanup(func() {
		_ = e.flush.Stop()
		_ = e.refresh.Stop()
	})
	return e, client, m
}

func sell(s, id string) ListingRequest {
	return ListingRequest{
		SKU:        s,
		ID:         id,
		Intent:     listingapi.IntentSell,
		Currencies: listingapi.Currencies{Metal: decimal.NewFromInt(5)},
	}
}

func buy(s string) ListingRequest {
	return ListingRequest{
		SKU:        s,
		Intent:     listingapi.IntentBuy,
		Currencies: listingapi.Currencies{Keys: decimal.NewFromInt(1)},
	}
}

func TestEngine_NotReady(t *testing.T) {
	e := NewEngine(testConfig(), new(mocks.Client), testCatalog(), nil, nil)

	assert.False(t, e.Ready())
	assert.ErrorIs(t, e.CreateListing(buy(skuKey)), ErrNotReady)
	assert.ErrorIs(t, e.RemoveListings([]RemoveListing{{SKU: skuKey}}), ErrNotReady)

	creates, deletes := e.Pending()
	assert.Zero(t, creates)
	assert.Zero(t, deletes)
}

func TestEngine_InitSequence(t *testing.T) {
	client := new(mocks.Client)
	mock.InOrder(
		client.On("AddToken", mock.Anything, "token").Return(nil).Once(),
		client.On("RefreshListingLimits", mock.Anything).Return(nil).Once(),
		client.On("StartAgent", mock.Anything, "listing-manager-test").Return(listingapi.Agent{}, nil).Once(),
		client.On("StartInventoryRefresh", mock.Anything).Return(nil).Once(),
	)

	e := NewEngine(testConfig(), client, testCatalog(), zap.NewNop(), nil)
	require.NoError(t, e.Init(context.Background()))
	t.Cleanup(func() {
		_ = e.flush.Stop()
		_ = e.refresh.Stop()
	})

	assert.True(t, e.Ready())
	assert.True(t, e.flush.Running())
	assert.True(t, e.refresh.Running())

	// Already ready: no further calls.
	require.NoError(t, e.Init(context.Background()))
	client.AssertExpectations(t)
}

func TestEngine_InitStepFailure(t *testing.T) {
	agentErr := fmt.Errorf("agent rejected")
	client := new(mocks.Client)
	client.On("AddToken", mock.Anything, "token").Return(nil)
	client.On("RefreshListingLimits", mock.Anything).Return(nil)
	client.On("StartAgent", mock.Anything, mock.Anything).Return(listingapi.Agent{}, agentErr)

	e := NewEngine(testConfig(), client, testCatalog(), zap.NewNop(), nil)
	err := e.Init(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, agentErr)
	assert.Contains(t, err.Error(), "start agent")
	assert.False(t, e.Ready())
	assert.False(t, e.flush.Running())
	client.AssertNotCalled(t, "StartInventoryRefresh", mock.Anything)
}

func TestEngine_InitInvalidConfiguration(t *testing.T) {
	cfg := testConfig()
	cfg.SteamID = ""
	client := new(mocks.Client)

	e := NewEngine(cfg, client, testCatalog(), nil, nil)
	assert.ErrorIs(t, e.Init(context.Background()), ErrInvalidConfiguration)

	e = NewEngine(testConfig(), client, nil, nil, nil)
	assert.ErrorIs(t, e.Init(context.Background()), ErrInvalidConfiguration)

	assert.False(t, e.Ready())
	client.AssertNotCalled(t, "AddToken", mock.Anything, mock.Anything)
}

func TestEngine_DropsUnencodableListings(t *testing.T) {
	e, _, m := newReadyEngine(t)

	require.NoError(t, e.CreateListings([]ListingRequest{
		buy(skuUnknown),
		sell(skuUnknown, ""),
		{Intent: listingapi.IntentSell},
		{Intent: listingapi.IntentBuy, ID: "123"},
	}))

	creates, deletes := e.Pending()
	assert.Zero(t, creates)
	assert.Zero(t, deletes)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Dropped.WithLabelValues(ReasonEncoding)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Dropped.WithLabelValues(ReasonInvalid)))
}

func TestEngine_BuyListingIsEncoded(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListing(buy(skuScattergun)))

	pending := e.Queue().PendingCreates()
	require.Len(t, pending, 1)
	listing := pending[0].Listing
	require.NotNil(t, listing.Item)
	assert.Equal(t, 200, listing.Item.Defindex)
	require.Len(t, listing.Item.Attributes, 1)
	assert.Equal(t, encoder.AttrKillstreakTier, listing.Item.Attributes[0].Defindex)
	assert.Empty(t, listing.ID)
}

func TestEngine_SellWithIDSkipsEncoding(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	// The schema does not know this defindex; the id is enough.
	require.NoError(t, e.CreateListing(sell(skuUnknown, "111")))

	pending := e.Queue().PendingCreates()
	require.Len(t, pending, 1)
	assert.Equal(t, "111", pending[0].Listing.ID)
	assert.Nil(t, pending[0].Listing.Item)

	id, ok := e.GetSellListingInstanceID(skuUnknown)
	assert.True(t, ok)
	assert.Equal(t, "111", id)
}

func TestEngine_DuplicateSellIsRedirected(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))
	require.NoError(t, e.CreateListing(sell(skuScattergun, "222")))

	pending := e.Queue().PendingCreates()
	require.Len(t, pending, 2)
	assert.Equal(t, "111", pending[0].Listing.ID)
	assert.Equal(t, "111", pending[1].Listing.ID)

	_, deletes := e.Pending()
	assert.Zero(t, deletes, "the discarded instance is not deleted")

	id, ok := e.GetSellListingInstanceID(skuScattergun)
	require.True(t, ok)
	assert.Equal(t, "222", id, "the registry keeps the requested instance")
	assert.Equal(t, 1, e.registry.Len())
}

func TestEngine_RedirectRegistersRequestedInstance(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))
	require.NoError(t, e.CreateListing(sell(skuScattergun, "222")))
	require.NoError(t, e.CreateListing(sell(skuScattergun, "333")))

	pending := e.Queue().PendingCreates()
	require.Len(t, pending, 3)
	assert.Equal(t, "111", pending[1].Listing.ID)
	assert.Equal(t, "222", pending[2].Listing.ID, "third request is matched against the second registration")

	id, _ := e.GetSellListingInstanceID(skuScattergun)
	assert.Equal(t, "333", id)
}

func TestEngine_ForceIDReplacesInstance(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))

	forced := sell(skuScattergun, "222")
	forced.ForceID = true
	require.NoError(t, e.CreateListing(forced))

	pending := e.Queue().PendingCreates()
	require.Len(t, pending, 2)
	assert.Equal(t, "222", pending[1].Listing.ID)

	assert.Equal(t, []listingapi.DeleteRequest{listingapi.DeleteByID{ID: "111"}}, e.Queue().PendingDeletes())

	id, ok := e.GetSellListingInstanceID(skuScattergun)
	require.True(t, ok)
	assert.Equal(t, "222", id)
	assert.Equal(t, 1, e.registry.Len())
}

func TestEngine_SellWithoutIDUsesRegisteredInstance(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))
	require.NoError(t, e.CreateListing(sell("200;6;kt-3", "")))

	pending := e.Queue().PendingCreates()
	require.Len(t, pending, 2)
	assert.Equal(t, "111", pending[1].Listing.ID)
	assert.Nil(t, pending[1].Listing.Item)

	id, _ := e.GetSellListingInstanceID(skuScattergun)
	assert.Equal(t, "111", id)
}

func TestEngine_SellWithoutIDOrRegistrationSendsItem(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListing(sell(skuScattergun, "")))

	pending := e.Queue().PendingCreates()
	require.Len(t, pending, 1)
	assert.NotNil(t, pending[0].Listing.Item)
	assert.Empty(t, pending[0].Listing.ID)

	_, ok := e.GetSellListingInstanceID(skuScattergun)
	assert.False(t, ok)
}

func TestEngine_BatchSeesRegistryAsBefore(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListings([]ListingRequest{
		sell(skuScattergun, "111"),
		sell(skuScattergun, "222"),
	}))

	pending := e.Queue().PendingCreates()
	require.Len(t, pending, 2)
	assert.Equal(t, "111", pending[0].Listing.ID)
	assert.Equal(t, "222", pending[1].Listing.ID)

	id, _ := e.GetSellListingInstanceID(skuScattergun)
	assert.Equal(t, "222", id)
	assert.Equal(t, 1, e.registry.Len())
}

func TestEngine_ListingDefaults(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	off := false
	on := true
	priority := 3
	explicit := buy(skuKey)
	explicit.Offers = &off
	explicit.Promoted = &on
	explicit.Priority = &priority
	explicit.Details = "buying keys"

	require.NoError(t, e.CreateListings([]ListingRequest{buy(skuKey), explicit}))

	pending := e.Queue().PendingCreates()
	require.Len(t, pending, 2)

	defaults := pending[0].Listing
	assert.Equal(t, 1, *defaults.Offers)
	assert.Equal(t, 1, *defaults.Buyout)
	assert.Nil(t, defaults.Promoted)
	assert.Nil(t, pending[0].Priority)

	set := pending[1].Listing
	assert.Equal(t, 0, *set.Offers)
	assert.Equal(t, 1, *set.Buyout)
	assert.Equal(t, 1, *set.Promoted)
	assert.Equal(t, "buying keys", set.Details)
	assert.Equal(t, 3, *pending[1].Priority)
}

func TestEngine_RemoveListings(t *testing.T) {
	e, _, m := newReadyEngine(t)

	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))

	require.NoError(t, e.RemoveListings([]RemoveListing{
		{SKU: "200;6;kt-3", Intent: listingapi.IntentSell},
		{ID: "999", Intent: listingapi.IntentSell},
		{SKU: skuKey, Intent: listingapi.IntentBuy},
		{SKU: skuUnknown, Intent: listingapi.IntentBuy},
	}))

	deletes := e.Queue().PendingDeletes()
	require.Len(t, deletes, 3)
	assert.Equal(t, listingapi.DeleteByID{ID: "111"}, deletes[0])
	assert.Equal(t, listingapi.DeleteByID{ID: "999"}, deletes[1])

	byItem, ok := deletes[2].(listingapi.DeleteByItem)
	require.True(t, ok)
	assert.Equal(t, 5021, byItem.Item.Defindex)

	_, ok = e.GetSellListingInstanceID(skuScattergun)
	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Dropped.WithLabelValues(ReasonEncoding)))
}

func TestEngine_RemoveSellWithSKUAndDifferentID(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))
	require.NoError(t, e.RemoveListings([]RemoveListing{{SKU: skuScattergun, ID: "222", Intent: listingapi.IntentSell}}))

	assert.Equal(t, []listingapi.DeleteRequest{
		listingapi.DeleteByID{ID: "111"},
		listingapi.DeleteByID{ID: "222"},
	}, e.Queue().PendingDeletes())
	assert.Zero(t, e.registry.Len())
}

func TestEngine_RemoveByRegisteredID(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))
	require.NoError(t, e.RemoveListings([]RemoveListing{{SKU: skuScattergun, ID: "111", Intent: listingapi.IntentSell}}))

	assert.Equal(t, []listingapi.DeleteRequest{listingapi.DeleteByID{ID: "111"}}, e.Queue().PendingDeletes())
}

func TestEngine_GetSellListingInstanceIDNormalizes(t *testing.T) {
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListing(sell("200;6;sh-2;kt-3", "111")))

	id, ok := e.GetSellListingInstanceID("200;6;kt-3;sh-2")
	assert.True(t, ok)
	assert.Equal(t, "111", id)

	_, ok = e.GetSellListingInstanceID("")
	assert.False(t, ok)
}

func desiredListings(n int) []listingapi.DesiredListing {
	out := make([]listingapi.DesiredListing, n)
	for i := range out {
		out[i] = listingapi.DesiredListing{Hash: fmt.Sprintf("hash-%d", i)}
	}
	return out
}

func pageOf(size int, first string) interface{} {
	return mock.MatchedBy(func(page []listingapi.DeleteRequest) bool {
		if len(page) != size {
			return false
		}
		byHash, ok := page[0].(listingapi.DeleteByHash)
		return ok && byHash.Hash == first
	})
}

func TestEngine_RemoveAllListingsPages(t *testing.T) {
	e, client, _ := newReadyEngine(t)
	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))

	client.On("GetDesiredListings", mock.Anything).Return(desiredListings(2500), nil).Once()
	client.On("RemoveDesiredListings", mock.Anything, pageOf(1000, "hash-0")).Return(nil).Once()
	client.On("RemoveDesiredListings", mock.Anything, pageOf(1000, "hash-1000")).Return(nil).Once()
	client.On("RemoveDesiredListings", mock.Anything, pageOf(500, "hash-2000")).Return(nil).Once()

	require.NoError(t, e.RemoveAllListings(context.Background()))

	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "RemoveDesiredListings", 3)
	assert.Zero(t, e.registry.Len())
}

func TestEngine_RemoveAllListingsKeepsRegistryOnFailure(t *testing.T) {
	e, client, _ := newReadyEngine(t)
	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))

	client.On("GetDesiredListings", mock.Anything).Return(desiredListings(1500), nil).Once()
	client.On("RemoveDesiredListings", mock.Anything, pageOf(1000, "hash-0")).Return(nil).Once()
	client.On("RemoveDesiredListings", mock.Anything, pageOf(500, "hash-1000")).Return(fmt.Errorf("timeout")).Once()

	err := e.RemoveAllListings(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, e.registry.Len())
}

func TestEngine_RemoveAllListingsEmpty(t *testing.T) {
	e, client, _ := newReadyEngine(t)

	client.On("GetDesiredListings", mock.Anything).Return([]listingapi.DesiredListing{}, nil).Once()

	require.NoError(t, e.RemoveAllListings(context.Background()))
	client.AssertNotCalled(t, "RemoveDesiredListings", mock.Anything, mock.Anything)
}

func TestEngine_Shutdown(t *testing.T) {
	e, client, _ := newReadyEngine(t)
	require.NoError(t, e.CreateListing(sell(skuScattergun, "111")))

	client.On("GetDesiredListings", mock.Anything).Return(desiredListings(3), nil).Once()
	client.On("RemoveDesiredListings", mock.Anything, pageOf(3, "hash-0")).Return(nil).Once()
	client.On("StopAgent", mock.Anything).Return(nil).Once()

	require.NoError(t, e.Shutdown(context.Background()))

	assert.False(t, e.Ready())
	assert.False(t, e.flush.Running())
	assert.False(t, e.refresh.Running())
	assert.Zero(t, e.registry.Len())
	assert.ErrorIs(t, e.CreateListing(buy(skuKey)), ErrNotReady)
	client.AssertExpectations(t)

	// The engine can be started again.
	expectInit(client)
	require.NoError(t, e.Init(context.Background()))
	assert.True(t, e.Ready())
}

func TestEngine_ShutdownReportsCleanupFailure(t *testing.T) {
	e, client, _ := newReadyEngine(t)

	client.On("GetDesiredListings", mock.Anything).Return(nil, fmt.Errorf("unreachable")).Once()
	client.On("StopAgent", mock.Anything).Return(fmt.Errorf("unreachable")).Once()

	err := e.Shutdown(context.Background())
	assert.Error(t, err)
	assert.False(t, e.Ready())
	client.AssertExpectations(t)
}

func TestEngine_FlushDispatchesQueue(t *testing.T) {
	e, client, _ := newReadyEngine(t)

	require.NoError(t, e.CreateListings([]ListingRequest{buy(skuKey), buy(skuScattergun)}))
	require.NoError(t, e.RemoveListings([]RemoveListing{{ID: "555"}}))

	client.On("AddDesiredListings", mock.Anything, mock.MatchedBy(func(batch []listingapi.CreateRequest) bool {
		return len(batch) == 2 && batch[0].Listing.Item.Defindex == 5021
	})).Return([]listingapi.DesiredListing{{Hash: "a"}, {Hash: "b"}}, nil).Once()
	client.On("RemoveDesiredListings", mock.Anything, []listingapi.DeleteRequest{listingapi.DeleteByID{ID: "555"}}).Return(nil).Once()

	result := e.Flush(context.Background())
	require.NoError(t, result.Err())
	assert.Equal(t, 2, result.Creates)
	assert.Equal(t, 1, result.Deletes)

	creates, deletes := e.Pending()
	assert.Zero(t, creates)
	assert.Zero(t, deletes)
	client.AssertExpectations(t)
}

func TestEngine_GetListingLimits(t *testing.T) {
	e, client, _ := newReadyEngine(t)
	client.On("GetListingLimits", mock.Anything).Return(listingapi.Limits{Cap: 500, Used: 12}, nil).Once()

	limits, err := e.GetListingLimits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500, limits.Cap)
}
