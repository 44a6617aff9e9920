// Package status exposes the operational surface of the listing manager.
//
// Endpoints:
//
//	GET  /status         engine readiness, queue depth and schema state
//	GET  /status/limits  listing counters reported by the listing service
//	GET  /status/health  reachability of the listing service
//	POST /schema/reload  rebuilds the item schema from its configured source
package status
