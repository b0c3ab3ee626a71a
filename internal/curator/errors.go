package curator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/curator/internal/shared"
	"google.golang.org/genai"
)

// ErrorKind is the closed set of failure categories surfaced by the curation clients.
type ErrorKind int

const (
	// KindCredentialsInvalid covers auth rejections: bad or unbilled API key, 401/403, missing entity.
	KindCredentialsInvalid ErrorKind = iota
	// KindBackendUnavailable covers rate limits and transient backend failures.
	KindBackendUnavailable
	// KindMalformedResponse covers structured output that failed to parse.
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindCredentialsInvalid:
		return "credentials_invalid"
	case KindBackendUnavailable:
		return "backend_unavailable"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// CurationError is the single classified error type returned by Generate and Analyze.
//
// It matches the corresponding shared sentinel via [errors.Is] so callers can
// branch on kind without inspecting message text.
type CurationError struct {
	Kind ErrorKind
	Err  error
}

func (e *CurationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *CurationError) Unwrap() error { return e.Err }

func (e *CurationError) Is(target error) bool {
	switch target {
	case shared.ErrCredentialsInvalid:
		return e.Kind == KindCredentialsInvalid
	case shared.ErrBackendUnavailable:
		return e.Kind == KindBackendUnavailable
	case shared.ErrMalformedResponse:
		return e.Kind == KindMalformedResponse
	}
	return false
}

// classify maps a backend error to a CurationError.
//
// The typed [genai.APIError] is preferred; message substrings are a fallback
// for errors that reach us as plain text.
func classify(err error) *CurationError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403, 404:
			return &CurationError{Kind: KindCredentialsInvalid, Err: err}
		default:
			return &CurationError{Kind: KindBackendUnavailable, Err: err}
		}
	}

	msg := err.Error()
	for _, marker := range []string{"API_KEY_INVALID", "Requested entity was not found", "401", "403"} {
		if strings.Contains(msg, marker) {
			return &CurationError{Kind: KindCredentialsInvalid, Err: err}
		}
	}

	return &CurationError{Kind: KindBackendUnavailable, Err: err}
}
