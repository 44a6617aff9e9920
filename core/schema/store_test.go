package schema

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReloadAndLookup(t *testing.T) {
	store := NewStore(func(ctx context.Context) (*Catalog, error) {
		return NewCatalog([]ItemMetadata{{Defindex: 1157, ItemSlot: SlotTaunt}}), nil
	}, 0)

	_, ok := store.GetItemByDefindex(1157)
	assert.False(t, ok, "lookups before the first load miss")
	assert.False(t, store.Loaded())

	_, err := store.Reload(context.Background())
	require.NoError(t, err)

	item, ok := store.GetItemByDefindex(1157)
	require.True(t, ok)
	assert.True(t, item.IsTaunt())
	assert.Equal(t, 1, store.Len())
	assert.False(t, store.IsExpired())
}

func TestStore_FailedReloadKeepsPrevious(t *testing.T) {
	var fail atomic.Bool
	store := NewStore(func(ctx context.Context) (*Catalog, error) {
		if fail.Load() {
			return nil, fmt.Errorf("storage down")
		}
		return NewCatalog([]ItemMetadata{{Defindex: 5021}}), nil
	}, 0)

	_, err := store.Reload(context.Background())
	require.NoError(t, err)

	fail.Store(true)
	_, err = store.Reload(context.Background())
	assert.Error(t, err)

	_, ok := store.GetItemByDefindex(5021)
	assert.True(t, ok)
}

func TestStore_EnsureHonoursTTL(t *testing.T) {
	var loads atomic.Int32
	store := NewStore(func(ctx context.Context) (*Catalog, error) {
		loads.Add(1)
		return NewCatalog([]ItemMetadata{{Defindex: 5021}}), nil
	}, 50*time.Millisecond)

	_, err := store.Ensure(context.Background())
	require.NoError(t, err)
	_, err = store.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), loads.Load())

	time.Sleep(80 * time.Millisecond)
	assert.True(t, store.IsExpired())

	_, err = store.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())
}

func TestStore_ConcurrentReloadsShareLoad(t *testing.T) {
	var loads atomic.Int32
	release := make(chan struct{})
	store := NewStore(func(ctx context.Context) (*Catalog, error) {
		loads.Add(1)
		<-release
		return NewCatalog([]ItemMetadata{{Defindex: 5021}}), nil
	}, 0)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Reload(context.Background())
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
}
