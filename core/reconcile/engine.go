package reconcile

import (
	"context"
	"fmt"
	"sync"

	"listing-manager/core/encoder"
	"listing-manager/core/listingapi"
	"listing-manager/core/schema"
	"listing-manager/core/sku"

	"go.uber.org/zap"
)

// Trigger names
const (
	FlushTrigger   = "flush"
	RefreshTrigger = "inventory_refresh"
)

// Engine reconciles the desired listing set of one account.
type Engine struct {
	cfg     Config
	client  listingapi.Client
	schema  schema.Schema
	logger  *zap.Logger
	metrics *Metrics

	// lifecycle serialises Init and Shutdown, which perform remote calls.
	lifecycle sync.Mutex

	mu       sync.Mutex
	ready    bool
	registry *Registry
	queue    *Queue

	flush   *Trigger
	refresh *Trigger
}

// NewEngine creates an engine in the not-ready state. Nothing is sent to the
// listing service until Init is called.
func NewEngine(cfg Config, client listingapi.Client, s schema.Schema, logger *zap.Logger, metrics *Metrics) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = mustMetrics()
	}

	e := &Engine{
		cfg:      cfg,
		client:   client,
		schema:   s,
		logger:   logger,
		metrics:  metrics,
		registry: NewRegistry(),
		queue:    NewQueue(logger, metrics),
	}
	e.flush = NewTrigger(FlushTrigger, cfg.FlushInterval(), e.flushTick, logger, metrics)
	e.refresh = NewTrigger(RefreshTrigger, cfg.InventoryRefreshInterval(), e.refreshTick, logger, metrics)
	return e
}

// Ready reports whether Init has completed and Shutdown has not been called since.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// Pending returns the number of queued creates and deletes.
func (e *Engine) Pending() (creates, deletes int) {
	return e.queue.Pending()
}

// Queue exposes the mutation queue for inspection.
func (e *Engine) Queue() *Queue {
	return e.queue
}

// Init registers the account with the listing service and starts the periodic
// triggers. A failing step aborts Init and leaves the engine not ready; steps that
// already succeeded are not rolled back. Calling Init on a ready engine is a no-op.
func (e *Engine) Init(ctx context.Context) error {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	if e.Ready() {
		return nil
	}

	if err := e.validate(); err != nil {
		return err
	}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"add token", func(ctx context.Context) error { return e.client.AddToken(ctx, e.cfg.Token) }},
		{"refresh listing limits", e.client.RefreshListingLimits},
		{"start agent", func(ctx context.Context) error {
			_, err := e.client.StartAgent(ctx, e.cfg.UserAgent)
			return err
		}},
		{"start inventory refresh", e.client.StartInventoryRefresh},
	}

	for _, step := range steps {
		e.logger.Info("Running init step", zap.String("step", step.name))
		if err := step.run(ctx); err != nil {
			e.logger.Error("Init step failed", zap.String("step", step.name), zap.Error(err))
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	if err := e.refresh.Start(); err != nil {
		return fmt.Errorf("start %s trigger: %w", RefreshTrigger, err)
	}
	if err := e.flush.Start(); err != nil {
		_ = e.refresh.Stop()
		return fmt.Errorf("start %s trigger: %w", FlushTrigger, err)
	}

	e.mu.Lock()
	e.ready = true
	e.mu.Unlock()

	e.logger.Info("Listing engine ready", zap.String("steamid", e.cfg.SteamID))
	return nil
}

func (e *Engine) validate() error {
	switch {
	case e.cfg.SteamID == "":
		return fmt.Errorf("%w: steamid is required", ErrInvalidConfiguration)
	case e.schema == nil:
		return fmt.Errorf("%w: item schema is required", ErrInvalidConfiguration)
	case e.client == nil:
		return fmt.Errorf("%w: listing service client is required", ErrInvalidConfiguration)
	}
	return nil
}

// Shutdown stops both triggers, marks the engine not ready and removes every
// desired listing. The agent is unregistered afterwards on a best-effort basis.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	_ = e.refresh.Stop()
	_ = e.flush.Stop()

	e.mu.Lock()
	e.ready = false
	e.mu.Unlock()

	if e.client == nil {
		return fmt.Errorf("%w: listing service client is required", ErrInvalidConfiguration)
	}

	err := e.RemoveAllListings(ctx)
	if err != nil {
		e.logger.Error("Failed to remove listings during shutdown", zap.Error(err))
	}

	if stopErr := e.client.StopAgent(ctx); stopErr != nil {
		e.logger.Warn("Failed to stop agent", zap.Error(stopErr))
	}

	return err
}

// CreateListing enqueues a single listing. See CreateListings.
func (e *Engine) CreateListing(request ListingRequest) error {
	return e.CreateListings([]ListingRequest{request})
}

// pendingListing is a request after validation and encoding.
type pendingListing struct {
	key     string
	forceID bool
	create  listingapi.CreateRequest
}

// CreateListings validates and encodes the requests and enqueues the resulting
// mutations. Requests that cannot be encoded are dropped without an error.
//
// Sell listings are matched against the registry as it was before this call, so
// entries in one batch never observe each other's registry updates. The registry
// is then updated with each request's own instance id.
func (e *Engine) CreateListings(requests []ListingRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return ErrNotReady
	}

	pending := make([]pendingListing, 0, len(requests))
	for _, request := range requests {
		if p, ok := e.prepare(request); ok {
			pending = append(pending, p)
		}
	}

	type registration struct{ key, id string }
	var (
		creates       = make([]listingapi.CreateRequest, 0, len(pending))
		deletes       []listingapi.DeleteRequest
		registrations []registration
	)

	for _, p := range pending {
		listing := &p.create.Listing

		if listing.Intent == listingapi.IntentSell && p.key != "" {
			// The registry records the id the caller asked for, even when the
			// listing itself is redirected.
			requested := listing.ID
			if existing, ok := e.registry.Lookup(p.key); ok && existing != listing.ID {
				switch {
				case listing.ID == "":
					listing.ID = existing
					listing.Item = nil
				case p.forceID:
					deletes = append(deletes, listingapi.DeleteByID{ID: existing})
				default:
					e.logger.Debug("Redirecting sell listing to registered instance",
						zap.String("sku", p.key), zap.String("requested", listing.ID), zap.String("registered", existing))
					listing.ID = existing
				}
			}
			if requested != "" {
				registrations = append(registrations, registration{p.key, requested})
			}
		}

		creates = append(creates, p.create)
	}

	for _, r := range registrations {
		e.registry.Set(r.key, r.id)
	}

	e.queue.EnqueueDelete(deletes...)
	e.queue.EnqueueCreate(creates...)
	return nil
}

// prepare turns a request into a create body. It reports false when the request
// has to be dropped.
func (e *Engine) prepare(r ListingRequest) (pendingListing, bool) {
	p := pendingListing{
		forceID: r.ForceID,
		create: listingapi.CreateRequest{
			Listing: listingapi.ListingBody{
				Currencies: r.Currencies,
				Intent:     r.Intent,
				Offers:     flag(r.Offers, true),
				Buyout:     flag(r.Buyout, true),
				Promoted:   optionalFlag(r.Promoted),
				Details:    r.Details,
			},
			Priority: r.Priority,
			Force:    r.Force,
		},
	}

	if r.Intent == listingapi.IntentSell && r.ID != "" {
		p.create.Listing.ID = r.ID
		if r.SKU != "" {
			key, err := sku.Normalize(r.SKU)
			if err != nil {
				e.logger.Debug("Sell listing has an unreadable sku, registry skipped",
					zap.String("sku", r.SKU), zap.String("id", r.ID), zap.Error(err))
			}
			p.key = key
		}
		return p, true
	}

	if r.SKU == "" {
		e.drop(ReasonInvalid, r, nil)
		return p, false
	}

	parsed, err := sku.Parse(r.SKU)
	if err != nil {
		e.drop(ReasonInvalid, r, err)
		return p, false
	}
	item, err := encoder.Encode(parsed, e.schema)
	if err != nil {
		e.drop(ReasonEncoding, r, err)
		return p, false
	}

	p.create.Listing.Item = item
	if r.Intent == listingapi.IntentSell {
		p.key = parsed.String()
	}
	return p, true
}

func (e *Engine) drop(reason string, r ListingRequest, err error) {
	e.metrics.Dropped.WithLabelValues(reason).Inc()
	e.logger.Debug("Dropping listing request",
		zap.String("reason", reason),
		zap.String("sku", r.SKU),
		zap.String("intent", r.Intent.String()),
		zap.Error(err))
}

// RemoveListings enqueues deletes for the given listings. A sell listing with a
// known SKU deletes the registered instance; an explicit ID deletes that instance;
// otherwise the listing is matched by its encoded item.
func (e *Engine) RemoveListings(requests []RemoveListing) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return ErrNotReady
	}

	var deletes []listingapi.DeleteRequest
	for _, r := range requests {
		deletes = append(deletes, e.removals(r)...)
	}

	e.queue.EnqueueDelete(deletes...)
	return nil
}

// removals resolves one remove request. Callers hold e.mu.
func (e *Engine) removals(r RemoveListing) []listingapi.DeleteRequest {
	var (
		deletes []listingapi.DeleteRequest
		key     string
		parsed  sku.Item
		err     error
	)

	if r.SKU != "" {
		parsed, err = sku.Parse(r.SKU)
		if err == nil {
			key = parsed.String()
		}
	}

	if r.Intent == listingapi.IntentSell && key != "" {
		if id, ok := e.registry.Lookup(key); ok {
			deletes = append(deletes, listingapi.DeleteByID{ID: id})
			e.registry.Remove(key)
			if id == r.ID {
				return deletes
			}
		}
	}

	if r.ID != "" {
		deletes = append(deletes, listingapi.DeleteByID{ID: r.ID})
		if r.Intent == listingapi.IntentSell {
			e.registry.RemoveID(r.ID)
		}
	}

	if len(deletes) > 0 {
		return deletes
	}

	if err != nil || key == "" {
		e.metrics.Dropped.WithLabelValues(ReasonInvalid).Inc()
		e.logger.Debug("Dropping remove request without id or readable sku",
			zap.String("sku", r.SKU), zap.Error(err))
		return nil
	}

	item, err := encoder.Encode(parsed, e.schema)
	if err != nil {
		e.metrics.Dropped.WithLabelValues(ReasonEncoding).Inc()
		e.logger.Debug("Dropping remove request", zap.String("sku", r.SKU), zap.Error(err))
		return nil
	}
	return []listingapi.DeleteRequest{listingapi.DeleteByItem{Item: item}}
}

// GetSellListingInstanceID returns the instance id registered for the item type of
// s. The SKU is normalised first, so token order does not matter.
func (e *Engine) GetSellListingInstanceID(s string) (string, bool) {
	key, err := sku.Normalize(s)
	if err != nil {
		return "", false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Lookup(key)
}

// RemoveAllListings deletes every desired listing the service holds for this
// account, in pages of BatchSize, and then clears the registry. The registry is
// left untouched if any page fails.
func (e *Engine) RemoveAllListings(ctx context.Context) error {
	if e.client == nil {
		return fmt.Errorf("%w: listing service client is required", ErrInvalidConfiguration)
	}

	listings, err := e.client.GetDesiredListings(ctx)
	if err != nil {
		return fmt.Errorf("get desired listings: %w", err)
	}

	for start := 0; start < len(listings); start += BatchSize {
		end := min(start+BatchSize, len(listings))

		page := make([]listingapi.DeleteRequest, 0, end-start)
		for _, listing := range listings[start:end] {
			page = append(page, listingapi.DeleteByHash{Hash: listing.Hash})
		}

		if err := e.client.RemoveDesiredListings(ctx, page); err != nil {
			return fmt.Errorf("remove desired listings %d-%d: %w", start, end, err)
		}
	}

	e.mu.Lock()
	e.registry.Clear()
	e.mu.Unlock()

	e.logger.Info("Removed all listings", zap.Int("count", len(listings)))
	return nil
}

// Flush runs one queue flush immediately.
func (e *Engine) Flush(ctx context.Context) FlushResult {
	return e.queue.Flush(ctx, e.client)
}

// GetListingLimits returns the account's listing counters.
func (e *Engine) GetListingLimits(ctx context.Context) (listingapi.Limits, error) {
	if e.client == nil {
		return listingapi.Limits{}, fmt.Errorf("%w: listing service client is required", ErrInvalidConfiguration)
	}
	return e.client.GetListingLimits(ctx)
}

func (e *Engine) flushTick(ctx context.Context) error {
	e.Flush(ctx)
	return nil
}

func (e *Engine) refreshTick(ctx context.Context) error {
	return e.client.StartInventoryRefresh(ctx)
}
