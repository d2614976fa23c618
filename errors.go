package assistant

import "errors"

// Common errors shared by the gateway, preference stores and controller.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidStoreType = errors.New("invalid store type")
	ErrNetwork          = errors.New("backend unreachable")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrClosed           = errors.New("session closed")
)
