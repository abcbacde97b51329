package httpclient

import (
	"fmt"
	"net/http"

	"github.com/containerd/errdefs"
)

// TransportError reports a request that did not produce a usable response:
// either the round trip itself failed (StatusCode is 0) or the server
// answered with a non-2xx status.
//
// For status failures Err is an errdefs sentinel matching the status class,
// so errdefs.IsNotFound(err) and friends work on wrapped errors.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d %s: %v",
			e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// statusError maps an HTTP status to the errdefs class it represents.
func statusError(code int) error {
	switch code {
	case http.StatusBadRequest:
		return errdefs.ErrInvalidArgument
	case http.StatusUnauthorized:
		return errdefs.ErrUnauthenticated
	case http.StatusForbidden:
		return errdefs.ErrPermissionDenied
	case http.StatusNotFound:
		return errdefs.ErrNotFound
	case http.StatusConflict:
		return errdefs.ErrConflict
	case http.StatusTooManyRequests:
		return errdefs.ErrResourceExhausted
	case http.StatusNotImplemented:
		return errdefs.ErrNotImplemented
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return errdefs.ErrUnavailable
	}
	if code >= 500 {
		return errdefs.ErrInternal
	}
	return errdefs.ErrUnknown
}
