package followredirect

import "fmt"

// TransportError wraps a failure reported by the underlying transport while
// sending one hop of the redirect chain. It is surfaced unchanged to the
// caller; the request is never retried.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("followredirect: transport error: %s", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RequestBuildError is returned when the next wire request cannot be built
// from the in-flight state, for example because a header value became
// invalid.
type RequestBuildError struct {
	Err error
}

func (e *RequestBuildError) Error() string {
	return fmt.Sprintf("followredirect: cannot build request: %s", e.Err)
}

func (e *RequestBuildError) Unwrap() error { return e.Err }

// InvalidLocationError is returned when a redirect response carries a
// Location header value that cannot be parsed or resolved against the
// current URL. The offending raw value is kept for diagnostics.
type InvalidLocationError struct {
	Location string
}

func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("followredirect: invalid Location header: %q", e.Location)
}

// BodyReadError wraps a failure of the original request body stream while it
// was being buffered. The request is never sent when this occurs.
type BodyReadError struct {
	Err error
}

func (e *BodyReadError) Error() string {
	return fmt.Sprintf("followredirect: reading request body: %s", e.Err)
}

func (e *BodyReadError) Unwrap() error { return e.Err }
