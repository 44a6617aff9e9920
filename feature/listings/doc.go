// Package listings exposes the listing engine over HTTP.
//
// Requests are validated, converted into engine requests and enqueued. The engine
// dispatches them on its own schedule, so the create and remove endpoints answer
// 202 Accepted as soon as the mutations are queued.
//
// # HTTP Endpoints
//
//   - POST /listings : Enqueue listings to create.
//   - DELETE /listings : Enqueue listings to remove.
//   - DELETE /listings/all : Remove every desired listing of the account.
//   - GET /listings/sell/:sku : Instance id of the active sell listing for an item type.
//   - GET /listings/queue : Engine readiness and queue depth.
//   - POST /listings/flush : Flush the queue immediately.
//   - POST /listings/encode : Preview the encoded item for a SKU.
//
// Mutations return 503 until the engine has finished its start-up handshake.
package listings
