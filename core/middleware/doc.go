// Package middleware groups the fiber middleware mounted by the start command.
//
// rayid tags every request with an X-Ray-ID and stores it in the request locals so
// logger.WithRayID can pick it up. auth checks the X-API-Key header (or a bearer
// token) against the configured key; the swagger and metrics routes are exempt.
package middleware
