// Package logger builds the zap loggers used across the listing manager.
//
// New picks the development config for the debug level and the production config
// otherwise, then applies the requested encoding (json or console). An unknown
// level is rejected instead of silently falling back.
//
// Request handlers derive a child logger with WithRayID, which copies the ray id
// set by the rayid middleware onto every entry of that request.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	l := logger.WithRayID(log, c)
//	l.Warn("Listing engine not ready")
package logger
