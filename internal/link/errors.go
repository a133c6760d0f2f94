package link

import (
	"errors"
	"fmt"
)

// Reason classifies why a link could not be turned into a Record.
type Reason string

const (
	ReasonUnsupportedScheme Reason = "unsupported_scheme"
	ReasonBadBase64         Reason = "bad_base64"
	ReasonBadJSON           Reason = "bad_json"
	ReasonBadURI            Reason = "bad_uri"
)

var ErrUnsupportedScheme = errors.New("link not recognized")

// ParseError is the failure value returned by every parser.
type ParseError struct {
	Scheme string
	Reason Reason
	Cause  error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	scheme := e.Scheme
	if scheme == "" {
		scheme = "link"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", scheme, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", scheme, e.Reason, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func newParseError(scheme string, reason Reason, cause error) error {
	return &ParseError{Scheme: scheme, Reason: reason, Cause: cause}
}
