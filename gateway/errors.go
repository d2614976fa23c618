package gateway

import (
	"errors"
	"fmt"

	"github.com/creastat/assistant"
)

// NetworkError reports a transport failure, an undecodable body or a non-2xx
// status from the backend.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: backend returned status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is makes every NetworkError match assistant.ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == assistant.ErrNetwork
}

// IsNetworkError reports whether err is, or wraps, a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
