package generate

import (
	"errors"
)

// Kind classifies a generation failure.
type Kind int

const (
	// KindConfiguration: the service credential is missing or unusable.
	KindConfiguration Kind = iota + 1
	// KindTransport: the remote call failed or returned no candidate.
	KindTransport
	// KindMalformedResponse: the payload is not the expected JSON shape.
	KindMalformedResponse
	// KindIncompleteResult: the payload has the right shape but no name or no exercises.
	KindIncompleteResult
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindMalformedResponse:
		return "malformed response"
	case KindIncompleteResult:
		return "incomplete result"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by Client.Generate. Err carries
// the raw diagnostic, which is for logs only.
type Error struct {
	Kind Kind
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrConfiguration     = &Error{Kind: KindConfiguration}
	ErrTransport         = &Error{Kind: KindTransport}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrIncompleteResult  = &Error{Kind: KindIncompleteResult}
)

func (e *Error) Error() string {
	if e.Err == nil {
		return "generate: " + e.Kind.String()
	}
	return "generate: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// Messages shown to end users. They never include diagnostics.
const (
	MessageFailed        = "Failed to generate workout. The AI model may be temporarily unavailable or the request was blocked. Please check your inputs and try again."
	MessageNotConfigured = "Workout generation is not configured on this server. Set a Gemini API key and restart."
)

// UserMessage maps any error from Generate to a message fit for display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrConfiguration) {
		return MessageNotConfigured
	}
	return MessageFailed
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}
