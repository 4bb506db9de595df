package explore

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBlankTopic indicates a start was attempted with an empty topic.
	ErrBlankTopic = errors.New("topic is required")
	// ErrNoSession indicates a navigation operation needs an active session.
	ErrNoSession = errors.New("no active session")
	// ErrAtRoot indicates going back from the top-level menu.
	ErrAtRoot = errors.New("already at the top-level menu")
)

// ErrorKind classifies a failed navigation operation.
type ErrorKind string

const (
	// KindValidation is a local precondition failure; no network call was made.
	KindValidation ErrorKind = "validation"
	// KindTransport is a request that could not be sent or parsed.
	KindTransport ErrorKind = "transport"
	// KindApplication is a well-formed error payload from the server.
	KindApplication ErrorKind = "application"
	// KindSessionNotFound is a server response indicating the session no
	// longer exists; the controller resets implicitly.
	KindSessionNotFound ErrorKind = "session-not-found"
	// KindProtocol is a response whose shape disagrees with the operation.
	KindProtocol ErrorKind = "protocol"
)

// NavError describes a failed navigation operation for display. It is
// transient: the controller clears it at the start of the next operation.
type NavError struct {
	Kind    ErrorKind
	Message string
}

func (e *NavError) Error() string {
	return e.Message
}

// RemoteError is a server-reported failure normalized by the transport.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// NotFound reports whether the server has no record of the session.
func (e *RemoteError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
}
