package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Curation backend errors
	ErrCredentialsInvalid = fmt.Errorf("curation credentials rejected")
	ErrBackendUnavailable = fmt.Errorf("curation backend unavailable")
	ErrMalformedResponse  = fmt.Errorf("malformed curation response")

	// Streaming platform errors
	ErrSessionExpired     = fmt.Errorf("session expired")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Export errors
	ErrNoValidIdentifiers = fmt.Errorf("no valid platform identifiers")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
