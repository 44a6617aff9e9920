package listings

import (
	"listing-manager/core/listingapi"
	"listing-manager/core/reconcile"
)

// CreateListingDTO is one listing in a create request.
type CreateListingDTO struct {
	SKU        string                `json:"sku" validate:"required_without=ID"`
	ID         string                `json:"id" validate:"omitempty,numeric"`
	Intent     *int                  `json:"intent" validate:"required,oneof=0 1"`
	Currencies listingapi.Currencies `json:"currencies"`
	Offers     *bool                 `json:"offers,omitempty"`
	Buyout     *bool                 `json:"buyout,omitempty"`
	Promoted   *bool                 `json:"promoted,omitempty"`
	Details    string                `json:"details,omitempty" validate:"max=200"`
	Priority   *int                  `json:"priority,omitempty"`
	Force      *bool                 `json:"force,omitempty"`
	ForceID    bool                  `json:"force_id,omitempty"`
}

// CreateListingsRequest is the body of POST /listings.
type CreateListingsRequest struct {
	Listings []CreateListingDTO `json:"listings" validate:"required,min=1,dive"`
}

// RemoveListingDTO is one listing in a remove request.
type RemoveListingDTO struct {
	SKU    string `json:"sku" validate:"required_without=ID"`
	ID     string `json:"id" validate:"omitempty,numeric"`
	Intent *int   `json:"intent" validate:"required,oneof=0 1"`
}

// RemoveListingsRequest is the body of DELETE /listings.
type RemoveListingsRequest struct {
	Listings []RemoveListingDTO `json:"listings" validate:"required,min=1,dive"`
}

// EncodeRequest is the body of POST /listings/encode.
type EncodeRequest struct {
	SKU string `json:"sku" validate:"required"`
}

// QueueReport is returned by GET /listings/queue.
type QueueReport struct {
	Ready   bool `json:"ready"`
	Creates int  `json:"creates"`
	Deletes int  `json:"deletes"`
}

// FlushReport is returned by POST /listings/flush.
type FlushReport struct {
	Skipped     bool   `json:"skipped"`
	Creates     int    `json:"creates"`
	Deletes     int    `json:"deletes"`
	CreateError string `json:"create_error,omitempty"`
	DeleteError string `json:"delete_error,omitempty"`
}

func (d CreateListingDTO) toRequest() reconcile.ListingRequest {
	return reconcile.ListingRequest{
		SKU:        d.SKU,
		ID:         d.ID,
		Intent:     listingapi.Intent(*d.Intent),
		Currencies: d.Currencies,
		Offers:     d.Offers,
		Buyout:     d.Buyout,
		Promoted:   d.Promoted,
		Details:    d.Details,
		Priority:   d.Priority,
		Force:      d.Force,
		ForceID:    d.ForceID,
	}
}

func (d RemoveListingDTO) toRequest() reconcile.RemoveListing {
	return reconcile.RemoveListing{
		SKU:    d.SKU,
		ID:     d.ID,
		Intent: listingapi.Intent(*d.Intent),
	}
}

func newFlushReport(r reconcile.FlushResult) FlushReport {
	report := FlushReport{Skipped: r.Skipped, Creates: r.Creates, Deletes: r.Deletes}
	if r.CreateErr != nil {
		report.CreateError = r.CreateErr.Error()
	}
	if r.DeleteErr != nil {
		report.DeleteError = r.DeleteErr.Error()
	}
	return report
}
