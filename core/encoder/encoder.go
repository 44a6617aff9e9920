package encoder

import (
	"errors"
	"fmt"

	"listing-manager/core/schema"
	"listing-manager/core/sku"
)

// ErrItemMetadataNotFound is returned when the schema has no entry for the item's defindex.
var ErrItemMetadataNotFound = errors.New("item metadata not found")

// Encode builds the listing service payload for item. The attribute list is left
// nil when no rule fires so it is omitted from the JSON body.
func Encode(item sku.Item, s schema.Schema) (*Item, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: no schema for defindex %d", ErrItemMetadataNotFound, item.Defindex)
	}
	meta, ok := s.GetItemByDefindex(item.Defindex)
	if !ok || meta == nil {
		return nil, fmt.Errorf("%w: defindex %d", ErrItemMetadataNotFound, item.Defindex)
	}

	var attrs []Attribute
	for _, rule := range Rules {
		attrs = append(attrs, rule.Apply(item, meta)...)
	}

	return &Item{
		Defindex:   item.Defindex,
		Quality:    item.Quality,
		Attributes: attrs,
	}, nil
}

// EncodeSKU parses s and encodes it.
func EncodeSKU(s string, sc schema.Schema) (*Item, error) {
	item, err := sku.Parse(s)
	if err != nil {
		return nil, err
	}
	return Encode(item, sc)
}
