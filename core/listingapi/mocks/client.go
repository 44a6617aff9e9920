package mocks

import (
	"context"

	"listing-manager/core/listingapi"

	"github.com/stretchr/testify/mock"
)

// Client is a testify mock of listingapi.Client.
type Client struct {
	mock.Mock
}

func (m *Client) HealthCheck(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Client) AddToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *Client) StartAgent(ctx context.Context, userAgent string) (listingapi.Agent, error) {
	args := m.Called(ctx, userAgent)
	return args.Get(0).(listingapi.Agent), args.Error(1)
}

func (m *Client) StopAgent(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Client) StartInventoryRefresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Client) RefreshListingLimits(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Client) GetListingLimits(ctx context.Context) (listingapi.Limits, error) {
	args := m.Called(ctx)
	return args.Get(0).(listingapi.Limits), args.Error(1)
}

func (m *Client) AddDesiredListings(ctx context.Context, listings []listingapi.CreateRequest) ([]listingapi.DesiredListing, error) {
	args := m.Called(ctx, listings)
	if desired, ok := args.Get(0).([]listingapi.DesiredListing); ok {
		return desired, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) RemoveDesiredListings(ctx context.Context, listings []listingapi.DeleteRequest) error {
	args := m.Called(ctx, listings)
	return args.Error(0)
}

func (m *Client) GetDesiredListings(ctx context.Context) ([]listingapi.DesiredListing, error) {
	args := m.Called(ctx)
	if desired, ok := args.Get(0).([]listingapi.DesiredListing); ok {
		return desired, args.Error(1)
	}
	return nil, args.Error(1)
}
