package negotiate

import (
	"errors"
	"fmt"
)

// Sentinel errors for the negotiation layer, mirroring synpatico's
// sentinel-plus-wrapper convention (see synpatico/errors.go, itself
// grounded on cereal/errors.go).
var (
	// ErrStateConflict is the agent-side condition of spec.md §6.3's
	// 409: an inbound optimized request body named a structureId the
	// agent's ShapeCache does not hold.
	ErrStateConflict = errors.New("state conflict")

	// ErrUnknownStructure is the client-side condition of spec.md §4.G
	// step 5: a response packet named a structureId the client's
	// ShapeCache does not hold.
	ErrUnknownStructure = errors.New("unknown structure")

	// ErrNonObjectUpstreamBody indicates LEARN was asked to fingerprint
	// an upstream body that decoded to a JSON array or primitive, not
	// an object (spec.md §4.G step 3 only learns from objects).
	ErrNonObjectUpstreamBody = errors.New("upstream body is not a JSON object")
)

// NegotiationError wraps a sentinel with the request path/method it
// occurred on, for agent- and client-side negotiation failures.
type NegotiationError struct {
	Err    error
	Method string
	Path   string
}

func (e *NegotiationError) Error() string {
	if e.Method != "" || e.Path != "" {
		return fmt.Sprintf("%s: %s %s", e.Err.Error(), e.Method, e.Path)
	}
	return e.Err.Error()
}

// Unwrap supports errors.Is/errors.As against the wrapped sentinel.
func (e *NegotiationError) Unwrap() error { return e.Err }

func newNegotiationError(sentinel error, method, path string) error {
	return &NegotiationError{Err: sentinel, Method: method, Path: path}
}
