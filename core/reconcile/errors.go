package reconcile

import "errors"

var (
	// ErrNotReady is returned by mutations attempted before Init succeeded.
	ErrNotReady = errors.New("listing engine is not ready")
	// ErrInvalidConfiguration is returned by Init when the engine is missing its
	// account id, schema or listing service client.
	ErrInvalidConfiguration = errors.New("invalid listing engine configuration")
	// ErrTriggerNotStopped is returned when starting a trigger that is already running.
	ErrTriggerNotStopped = errors.New("trigger is either running or starting")
	// ErrTriggerNotRunning is returned when stopping a trigger that is not running.
	ErrTriggerNotRunning = errors.New("trigger is either stopped or stopping")
)
