package reconcile

import "listing-manager/core/listingapi"

// ListingRequest describes a listing the caller wants active.
//
// Sell listings are identified by ID when it is set, otherwise by the item encoded
// from SKU. Buy listings always need an encodable SKU.
type ListingRequest struct {
	SKU        string
	ID         string
	Intent     listingapi.Intent
	Currencies listingapi.Currencies
	// Offers and Buyout default to enabled when nil.
	Offers   *bool
	Buyout   *bool
	Promoted *bool
	Details  string
	Priority *int
	Force    *bool
	// ForceID keeps ID even when another instance is registered for the same
	// item type. The previous instance is deleted instead.
	ForceID bool
}

// RemoveListing identifies a listing to remove by SKU, instance id or both.
type RemoveListing struct {
	SKU    string
	ID     string
	Intent listingapi.Intent
}

func flag(v *bool, def bool) *int {
	on := def
	if v != nil {
		on = *v
	}
	n := 0
	if on {
		n = 1
	}
	return &n
}

func optionalFlag(v *bool) *int {
	if v == nil {
		return nil
	}
	return flag(v, false)
}
