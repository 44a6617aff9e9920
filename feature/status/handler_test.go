package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"listing-manager/core/listingapi"
	"listing-manager/core/listingapi/mocks"
	"listing-manager/core/reconcile"
	"listing-manager/core/schema"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSteamID = "76561198000000000"

type fixture struct {
	app    *fiber.App
	client *mocks.Client
	store  *schema.Store
	loads  int
	fail   error
}

func setupTestApp(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{app: fiber.New(), client: new(mocks.Client)}
	f.store = schema.NewStore(func(ctx context.Context) (*schema.Catalog, error) {
		f.loads++
		if f.fail != nil {
			return nil, f.fail
		}
		return schema.NewCatalog([]schema.ItemMetadata{{Defindex: 200}, {Defindex: 5021}}), nil
	}, 0)

	engine := reconcile.NewEngine(reconcile.Config{SteamID: testSteamID}, f.client, f.store, zap.NewNop(), nil)
	NewHandler(NewService(engine, f.client, f.store, testSteamID, zap.NewNop())).RegisterRoutes(f.app)
	return f
}

func (f *fixture) do(t *testing.T, method, path string) (int, map[string]any) {
	t.Helper()
	resp, err := f.app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestHandleStatus(t *testing.T) {
	f := setupTestApp(t)

	status, body := f.do(t, "GET", "/status")

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["ready"])
	assert.Equal(t, testSteamID, body["steamid"])
	assert.Equal(t, map[string]any{"creates": 0.0, "deletes": 0.0}, body["queue"])
	assert.Equal(t, map[string]any{"loaded": false, "items": 0.0}, body["schema"])
}

func TestHandleLimits(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupTestApp(t)
		f.client.On("GetListingLimits", mock.Anything).
			Return(listingapi.Limits{Cap: 500, Used: 120, Promoted: 3}, nil)

		status, body := f.do(t, "GET", "/status/limits")

		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 500, body["cap"])
		assert.EqualValues(t, 120, body["used"])
	})

	t.Run("upstream failure", func(t *testing.T) {
		f := setupTestApp(t)
		f.client.On("GetListingLimits", mock.Anything).
			Return(listingapi.Limits{}, listingapi.ErrUnauthorized)

		status, body := f.do(t, "GET", "/status/limits")

		assert.Equal(t, fiber.StatusBadGateway, status)
		assert.Contains(t, body["error"], "rejected the credentials")
	})
}

func TestHandleHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		f := setupTestApp(t)
		f.client.On("HealthCheck", mock.Anything).Return("# HELP up\nup 1\n", nil)

		status, body := f.do(t, "GET", "/status/health")

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "healthy", body["status"])
		assert.EqualValues(t, 15, body["bytes"])
	})

	t.Run("unreachable", func(t *testing.T) {
		f := setupTestApp(t)
		f.client.On("HealthCheck", mock.Anything).Return("", errors.New("connection refused"))

		status, body := f.do(t, "GET", "/status/health")

		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", body["status"])
	})
}

func TestHandleSchemaReload(t *testing.T) {
	f := setupTestApp(t)

	status, body := f.do(t, "POST", "/schema/reload")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, body["items"])
	assert.Equal(t, 1, f.loads)

	_, body = f.do(t, "GET", "/status")
	assert.Equal(t, map[string]any{"loaded": true, "items": 2.0}, body["schema"])

	f.fail = errors.New("bucket missing")
	status, body = f.do(t, "POST", "/schema/reload")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "bucket missing", body["error"])
	assert.Equal(t, 2, f.store.Len())
}

func TestLoader(t *testing.T) {
	f := setupTestApp(t)
	feature := NewFeature(nil, f.client, f.store, testSteamID, zap.NewNop())

	assert.Equal(t, "status", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
