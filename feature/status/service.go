package status

import (
	"context"

	"listing-manager/core/listingapi"
	"listing-manager/core/schema"

	"go.uber.org/zap"
)

// Engine is the read side of the listing engine.
type Engine interface {
	Ready() bool
	Pending() (creates, deletes int)
	GetListingLimits(ctx context.Context) (listingapi.Limits, error)
}

// HealthChecker probes the listing service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) (string, error)
}

// SchemaStore is a reloadable item schema.
type SchemaStore interface {
	Loaded() bool
	Len() int
	Reload(ctx context.Context) (*schema.Catalog, error)
}

// Report is the body of GET /status.
type Report struct {
	Ready   bool         `json:"ready"`
	Queue   QueueDepth   `json:"queue"`
	Schema  SchemaReport `json:"schema"`
	SteamID string       `json:"steamid,omitempty"`
}

// QueueDepth holds the number of pending mutations per kind.
type QueueDepth struct {
	Creates int `json:"creates"`
	Deletes int `json:"deletes"`
}

// SchemaReport describes the loaded schema.
type SchemaReport struct {
	Loaded bool `json:"loaded"`
	Items  int  `json:"items"`
}

// Service gathers status information.
type Service struct {
	engine  Engine
	health  HealthChecker
	store   SchemaStore
	steamID string
	logger  *zap.Logger
}

// NewService creates a new status service.
func NewService(engine Engine, health HealthChecker, store SchemaStore, steamID string, logger *zap.Logger) *Service {
	return &Service{
		engine:  engine,
		health:  health,
		store:   store,
		steamID: steamID,
		logger:  logger,
	}
}

// Status returns the current engine and schema state.
func (s *Service) Status() Report {
	creates, deletes := s.engine.Pending()
	return Report{
		Ready:   s.engine.Ready(),
		Queue:   QueueDepth{Creates: creates, Deletes: deletes},
		Schema:  SchemaReport{Loaded: s.store.Loaded(), Items: s.store.Len()},
		SteamID: s.steamID,
	}
}

// Limits returns the account's listing counters.
func (s *Service) Limits(ctx context.Context) (listingapi.Limits, error) {
	return s.engine.GetListingLimits(ctx)
}

// Health probes the listing service and returns the size of its response.
func (s *Service) Health(ctx context.Context) (int, error) {
	body, err := s.health.HealthCheck(ctx)
	if err != nil {
		return 0, err
	}
	return len(body), nil
}

// ReloadSchema rebuilds the schema and returns the number of items loaded.
func (s *Service) ReloadSchema(ctx context.Context) (int, error) {
	catalog, err := s.store.Reload(ctx)
	if err != nil {
		return 0, err
	}
	return catalog.Len(), nil
}
