package listingapi

import (
	"encoding/json"

	"listing-manager/core/encoder"

	"github.com/shopspring/decimal"
)

// Intent is the listing side.
type Intent int

const (
	IntentBuy  Intent = 0
	IntentSell Intent = 1
)

func (i Intent) String() string {
	if i == IntentSell {
		return "sell"
	}
	return "buy"
}

// Currencies is a price in keys and refined metal.
type Currencies struct {
	Keys  decimal.Decimal `json:"keys"`
	Metal decimal.Decimal `json:"metal"`
}

// MarshalJSON writes both amounts as JSON numbers.
func (c Currencies) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Keys  json.Number `json:"keys"`
		Metal json.Number `json:"metal"`
	}{
		Keys:  json.Number(c.Keys.String()),
		Metal: json.Number(c.Metal.String()),
	})
}

// IsZero reports whether the price is empty.
func (c Currencies) IsZero() bool {
	return c.Keys.IsZero() && c.Metal.IsZero()
}

// ListingBody is the listing as the service stores it. Exactly one of ID or Item
// identifies sell listings; buy listings always carry Item.
type ListingBody struct {
	Currencies Currencies    `json:"currencies"`
	Intent     Intent        `json:"intent"`
	Offers     *int          `json:"offers,omitempty"`
	Buyout     *int          `json:"buyout,omitempty"`
	Promoted   *int          `json:"promoted,omitempty"`
	Details    string        `json:"details,omitempty"`
	ID         string        `json:"id,omitempty"`
	Item       *encoder.Item `json:"item,omitempty"`
}

// CreateRequest asks the service to keep a listing active.
type CreateRequest struct {
	Listing  ListingBody `json:"listing"`
	Priority *int        `json:"priority,omitempty"`
	Force    *bool       `json:"force,omitempty"`
}

// DeleteRequest removes a desired listing. It is implemented only by
// DeleteByHash, DeleteByID and DeleteByItem.
type DeleteRequest interface {
	deleteRequest()
}

// DeleteByHash removes the listing with the given content hash.
type DeleteByHash struct {
	Hash string `json:"hash"`
}

// DeleteByID removes the sell listing of an item instance.
type DeleteByID struct {
	ID string `json:"id"`
}

// DeleteByItem removes the listing matching an encoded item.
type DeleteByItem struct {
	Item *encoder.Item `json:"item"`
}

func (DeleteByHash) deleteRequest() {}
func (DeleteByID) deleteRequest()   {}
func (DeleteByItem) deleteRequest() {}

// DesiredListing is the service's record of a listing this account wants active.
type DesiredListing struct {
	Hash            string  `json:"hash"`
	ID              *string `json:"id"`
	UpdatedAt       int64   `json:"updatedAt"`
	LastAttemptedAt *int64  `json:"lastAttemptedAt,omitempty"`
	Error           string  `json:"error,omitempty"`
	CreateRequest
}

// Limits are the account's listing counters.
type Limits struct {
	Cap       int   `json:"cap"`
	Used      int   `json:"used"`
	Promoted  int   `json:"promoted"`
	UpdatedAt int64 `json:"updatedAt"`
}

// Agent is the registration record returned when an agent starts.
type Agent struct {
	SteamID64 string  `json:"steamid64"`
	UserAgent *string `json:"userAgent"`
	UpdatedAt int64   `json:"updatedAt"`
}
