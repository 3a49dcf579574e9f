package elevation

import (
	"errors"
	"fmt"

	"github.com/pavletto/reliefgrid/internal/geo"
)

var (
	// ErrInvalidRequest marks requests rejected before any lookup.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTransport marks requests that never got an HTTP response.
	ErrTransport = errors.New("elevation service unreachable")
	// ErrStatus marks non-200 responses; see StatusError.
	ErrStatus = errors.New("elevation service error status")
	// ErrDecode marks responses without a usable elevation value.
	ErrDecode = errors.New("elevation service returned no usable elevation")
)

// StatusError is returned when the provider answers with anything but 200.
type StatusError struct {
	Code   int
	Status string
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad http status %d, reason: %s, from %s", e.Code, e.Status, e.URL)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// IsInputError reports whether err was caused by bad caller input rather
// than by the provider.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) || errors.Is(err, geo.ErrInvalidCoordinate)
}

// IsProviderError reports whether err came from talking to the provider.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrStatus) || errors.Is(err, ErrDecode)
}
