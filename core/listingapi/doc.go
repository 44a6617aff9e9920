// Package listingapi talks to the remote listing service that owns the desired
// listing set of one account.
//
// The service exposes a small set of fixed routes (tokens, agents, inventory
// refresh, listing limits and the desired listing collection). This package wraps
// them behind the Client interface and defines the wire types shared with the
// reconciliation engine.
package listingapi
