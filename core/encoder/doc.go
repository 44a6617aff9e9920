// Package encoder turns a parsed SKU into the item payload the listing service
// expects: the base defindex and quality plus an ordered attribute list.
//
// Attributes are produced by a fixed sequence of rules. The order matters because
// the listing service hashes the encoded body to identify a desired listing, so two
// structurally identical items must always encode to the same bytes.
package encoder
