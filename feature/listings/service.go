package listings

import (
	"context"

	"listing-manager/core/encoder"
	"listing-manager/core/reconcile"
	"listing-manager/core/schema"

	"go.uber.org/zap"
)

// Engine is the part of the listing engine the HTTP surface uses.
type Engine interface {
	Ready() bool
	Pending() (creates, deletes int)
	CreateListings(requests []reconcile.ListingRequest) error
	RemoveListings(requests []reconcile.RemoveListing) error
	RemoveAllListings(ctx context.Context) error
	GetSellListingInstanceID(sku string) (string, bool)
	Flush(ctx context.Context) reconcile.FlushResult
}

// Service converts HTTP requests into engine calls.
type Service struct {
	engine Engine
	schema schema.Schema
	logger *zap.Logger
}

// NewService creates a new listings service.
func NewService(engine Engine, s schema.Schema, logger *zap.Logger) *Service {
	return &Service{
		engine: engine,
		schema: s,
		logger: logger,
	}
}

// Create enqueues the listings and returns how many were submitted to the engine.
func (s *Service) Create(listings []CreateListingDTO) (int, error) {
	requests := make([]reconcile.ListingRequest, 0, len(listings))
	for _, l := range listings {
		requests = append(requests, l.toRequest())
	}
	if err := s.engine.CreateListings(requests); err != nil {
		return 0, err
	}
	return len(requests), nil
}

// Remove enqueues the removals.
func (s *Service) Remove(listings []RemoveListingDTO) (int, error) {
	requests := make([]reconcile.RemoveListing, 0, len(listings))
	for _, l := range listings {
		requests = append(requests, l.toRequest())
	}
	if err := s.engine.RemoveListings(requests); err != nil {
		return 0, err
	}
	return len(requests), nil
}

// RemoveAll removes every desired listing of the account.
func (s *Service) RemoveAll(ctx context.Context) error {
	return s.engine.RemoveAllListings(ctx)
}

// SellInstance returns the registered sell listing instance for an item type.
func (s *Service) SellInstance(sku string) (string, bool) {
	return s.engine.GetSellListingInstanceID(sku)
}

// Queue reports the engine state.
func (s *Service) Queue() QueueReport {
	creates, deletes := s.engine.Pending()
	return QueueReport{Ready: s.engine.Ready(), Creates: creates, Deletes: deletes}
}

// Flush flushes the queue once.
func (s *Service) Flush(ctx context.Context) FlushReport {
	return newFlushReport(s.engine.Flush(ctx))
}

// Encode returns the item payload the listing service would receive for sku.
func (s *Service) Encode(sku string) (*encoder.Item, error) {
	return encoder.EncodeSKU(sku, s.schema)
}
