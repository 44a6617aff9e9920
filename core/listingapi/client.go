package listingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrHostEmpty    = errors.New("listing service host is required")
	ErrSteamIDEmpty = errors.New("steamid is required")
	ErrBadRequest   = errors.New("listing service rejected the request as invalid")
	ErrUnauthorized = errors.New("listing service rejected the credentials")
	ErrNotFound     = errors.New("listing service resource not found")
	// ErrNonSuccessResponse is returned for any other non-2xx status.
	ErrNonSuccessResponse = errors.New("listing service responded with a non-success status code")
)

var (
	errNewRequestFailure  = errors.New("failed creating an HTTP request")
	errDoRequestFailure   = errors.New("http client failed while sending request")
	errReadingBodyFailure = errors.New("failed while reading http response body")
	errJSONUnmarshal      = errors.New("failed unmarshaling JSON response payload")
	errJSONMarshal        = errors.New("failed marshaling JSON request payload")
)

const (
	errWrappedFmt    = "%w: %s"
	errStatusCodeFmt = "%w: received status %v"
)

// Client is the set of listing service calls used by the engine.
type Client interface {
	// HealthCheck returns the service's metrics page.
	HealthCheck(ctx context.Context) (string, error)
	AddToken(ctx context.Context, token string) error
	StartAgent(ctx context.Context, userAgent string) (Agent, error)
	StopAgent(ctx context.Context) error
	StartInventoryRefresh(ctx context.Context) error
	RefreshListingLimits(ctx context.Context) error
	GetListingLimits(ctx context.Context) (Limits, error)
	AddDesiredListings(ctx context.Context, listings []CreateRequest) ([]DesiredListing, error)
	RemoveDesiredListings(ctx context.Context, listings []DeleteRequest) error
	GetDesiredListings(ctx context.Context) ([]DesiredListing, error)
}

type response struct {
	Body []byte
	Code int
}

// HTTPClient is the Client backed by the service's HTTP API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	steamID string
	logger  *zap.Logger
}

// NewClient creates a client for the account identified by steamID.
func NewClient(cfg Config, steamID string, logger *zap.Logger) (*HTTPClient, error) {
	if cfg.Host == "" {
		return nil, ErrHostEmpty
	}
	if steamID == "" {
		return nil, ErrSteamIDEmpty
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPClient{
		client:  &http.Client{Timeout: cfg.Timeout()},
		baseURL: cfg.BaseURL(),
		steamID: steamID,
		logger:  logger,
	}, nil
}

// SteamID returns the account the client acts for.
func (c *HTTPClient) SteamID() string {
	return c.steamID
}

func (c *HTTPClient) HealthCheck(ctx context.Context) (string, error) {
	resp, err := c.call(ctx, http.MethodGet, "/metrics", nil, "HealthCheck")
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

func (c *HTTPClient) AddToken(ctx context.Context, token string) error {
	body := map[string]string{"steamid64": c.steamID, "value": token}
	_, err := c.call(ctx, http.MethodPost, "/tokens", body, "AddToken")
	return err
}

func (c *HTTPClient) StartAgent(ctx context.Context, userAgent string) (Agent, error) {
	body := map[string]string{"userAgent": userAgent}
	resp, err := c.call(ctx, http.MethodPost, fmt.Sprintf("/agents/%s/register", c.steamID), body, "StartAgent")
	if err != nil {
		return Agent{}, err
	}

	var agent Agent
	if err := decode(resp.Body, &agent); err != nil {
		return Agent{}, fmt.Errorf("StartAgent: %w", err)
	}
	return agent, nil
}

func (c *HTTPClient) StopAgent(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, fmt.Sprintf("/agents/%s/unregister", c.steamID), nil, "StopAgent")
	return err
}

func (c *HTTPClient) StartInventoryRefresh(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, fmt.Sprintf("/inventories/%s/refresh", c.steamID), nil, "StartInventoryRefresh")
	return err
}

func (c *HTTPClient) RefreshListingLimits(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, fmt.Sprintf("/listings/%s/limits/refresh", c.steamID), nil, "RefreshListingLimits")
	return err
}

func (c *HTTPClient) GetListingLimits(ctx context.Context) (Limits, error) {
	resp, err := c.call(ctx, http.MethodGet, fmt.Sprintf("/listings/%s/limits", c.steamID), nil, "GetListingLimits")
	if err != nil {
		return Limits{}, err
	}

	var limits Limits
	if err := decode(resp.Body, &limits); err != nil {
		return Limits{}, fmt.Errorf("GetListingLimits: %w", err)
	}
	return limits, nil
}

// AddDesiredListings submits a batch of creates. The caller keeps batches at or
// below the service limit.
func (c *HTTPClient) AddDesiredListings(ctx context.Context, listings []CreateRequest) ([]DesiredListing, error) {
	resp, err := c.call(ctx, http.MethodPost, fmt.Sprintf("/listings/%s/desired", c.steamID), listings, "AddDesiredListings")
	if err != nil {
		return nil, err
	}

	var desired []DesiredListing
	if err := decode(resp.Body, &desired); err != nil {
		return nil, fmt.Errorf("AddDesiredListings: %w", err)
	}
	return desired, nil
}

func (c *HTTPClient) RemoveDesiredListings(ctx context.Context, listings []DeleteRequest) error {
	_, err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/listings/%s/desired", c.steamID), listings, "RemoveDesiredListings")
	return err
}

func (c *HTTPClient) GetDesiredListings(ctx context.Context) ([]DesiredListing, error) {
	resp, err := c.call(ctx, http.MethodGet, fmt.Sprintf("/listings/%s/desired", c.steamID), nil, "GetDesiredListings")
	if err != nil {
		return nil, err
	}

	var desired []DesiredListing
	if err := decode(resp.Body, &desired); err != nil {
		return nil, fmt.Errorf("GetDesiredListings: %w", err)
	}
	return desired, nil
}

// call sends a request and converts non-2xx statuses into errors.
func (c *HTTPClient) call(ctx context.Context, method, path string, payload any, op string) (response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf(errWrappedFmt, errJSONMarshal, err.Error())
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.sendRequest(ctx, method, c.baseURL+path, body)
	if err != nil {
		return response{}, err
	}

	if resp.Code < http.StatusOK || resp.Code >= http.StatusMultipleChoices {
		c.logger.Error("Listing service responded with a non-successful status code",
			zap.String("operation", op), zap.Int("code", resp.Code))
		return resp, fmt.Errorf(errStatusCodeFmt, translateNonSuccessStatusCode(resp.Code), resp.Code)
	}
	return resp, nil
}

func (c *HTTPClient) sendRequest(ctx context.Context, method, url string, body io.Reader) (response, error) {
	r, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return response{}, fmt.Errorf(errWrappedFmt, errNewRequestFailure, err.Error())
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(r)
	if err != nil {
		return response{}, fmt.Errorf(errWrappedFmt, errDoRequestFailure, err.Error())
	}
	defer resp.Body.Close()

	out := response{Code: resp.StatusCode}
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf(errWrappedFmt, errReadingBodyFailure, err.Error())
	}
	out.Body = bodyBytes
	return out, nil
}

// decode tolerates empty bodies, which the service returns for some 2xx responses.
func decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf(errWrappedFmt, errJSONUnmarshal, err.Error())
	}
	return nil
}

// translateNonSuccessStatusCode returns a specific error for known status codes.
func translateNonSuccessStatusCode(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrNonSuccessResponse
	}
}

var _ Client = (*HTTPClient)(nil)
