package api

import "errors"

// ErrorKind classifies a request failure so callers can branch without
// inspecting message text.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
	KindServer     ErrorKind = "server"
	KindNetwork    ErrorKind = "network"
)

// RequestError is the single error type surfaced by the client. Message
// is display-ready: the backend's detail field when present, otherwise
// an HTTP status or transport failure description.
type RequestError struct {
	Kind    ErrorKind
	Status  int // zero for network-level failures
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// IsNotFound reports whether err is a request error for a missing
// resource.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Kind == KindNotFound
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == 404:
		return KindNotFound
	case status == 400 || status == 422:
		return KindValidation
	default:
		return KindServer
	}
}
