// Package reconcile keeps the desired listing set of one account in sync with the
// remote listing service.
//
// # Architecture
//
// The package consists of four parts owned by a single Engine:
//
// 1. Registry: maps an item-type key (the canonical SKU) to the instance id of the
// active sell listing for that type, so the engine never lists two copies of the
// same item for sale.
//
// 2. Queue: two FIFO buffers of pending creates and deletes. Each flush pulls at
// most BatchSize entries from the head of each buffer and dispatches them. A batch
// that fails is put back at the head of its buffer, ahead of anything enqueued
// since, and retried on the next flush (at-least-once delivery).
//
// 3. Trigger: a cancellable periodic task. The engine runs one for queue flushes and
// one for inventory refreshes.
//
// 4. Engine: validates and encodes listing requests, resolves sell listings against
// the registry and enqueues the resulting mutations. It also owns the start-up
// handshake with the listing service and the shutdown cleanup.
//
// # Concurrency
//
// Engine operations are serialised by a mutex. CreateListings, RemoveListings and
// registry reads never perform I/O. Remote calls (init steps, flush dispatch,
// RemoveAllListings paging) run outside that lock. Flushes never overlap: a flush
// that starts while another is dispatching is skipped.
//
// # Usage Example
//
//	client, _ := listingapi.NewClient(apiCfg, cfg.SteamID, logger)
//	engine := reconcile.NewEngine(cfg, client, schemaStore, logger, metrics)
//	if err := engine.Init(ctx); err != nil {
//	    return err
//	}
//	defer engine.Shutdown(context.Background())
//
//	_ = engine.CreateListing(reconcile.ListingRequest{
//	    SKU:        "5021;6",
//	    Intent:     listingapi.IntentBuy,
//	    Currencies: listingapi.Currencies{Metal: decimal.NewFromFloat(60.33)},
//	})
package reconcile
