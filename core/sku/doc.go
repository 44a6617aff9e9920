// Package sku parses and formats item identifiers (SKUs).
//
// A SKU is a compact, ';'-separated key such as "5021;6;uncraftable;kt-3" made of a
// defindex, a quality and optional attribute tokens. The canonical form returned by
// Item.String is used as the item-type key for sell-listing deduplication, so parsing
// accepts tokens in any order while formatting always emits them in a fixed order.
//
// # Tokens
//
//   - u{effect}, australium, uncraftable, untradable, w{wear}, pk{paintkit}, strange
//   - kt-{killstreak tier}, td-{target}, festive, n{craft number}, c{crate series}
//   - od-{output defindex}, oq-{output quality}, p{paint}, sh-{sheen}, ks-{killstreaker}
//   - sp{spell id}-{value}, pt-{strange part defindex} (up to three, positional)
package sku
