package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and adapters return these
// (optionally wrapped) so services can decide whether to degrade or surface them.
//
// - ErrNotFound: key does not exist in the store
// - ErrCorrupt: stored value exists but cannot be decoded
// - ErrUnavailable: backing store or remote service temporarily unavailable
//
// For user-facing failures (bad input, retryable service errors), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrCorrupt     = errors.New("corrupt value")
	ErrUnavailable = errors.New("unavailable")
)
