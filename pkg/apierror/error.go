package apierror

import "net/http"

// Machine-readable reasons shared by every endpoint. Handlers may also raise
// ad hoc errors with a free-text reason.
const (
	InvalidContentType = "Invalid content type, please send application/json content"
	InvalidUUID        = "Invalid id, format must be uuid"
	ResourceNotFound   = "The resource you have requested can't be found"
	ValidationFailed   = "Error while validating ressource insertion/update"
	UnauthorizedAccess = "You must authenticate to access to this ressource"
	BadCredentials     = "Bad credentials"
)

// ViolationsKey is the extra-data key carrying per-field validation messages.
const ViolationsKey = "fields-validation-violations"

// APIError is the single error value exchanged between services, handlers and
// the boundary translator. It carries everything the JSON error envelope needs.
type APIError struct {
	StatusCode int
	Reason     string
	Title      string
	Extra      map[string]any
}

// New builds an APIError with the title derived from the status code.
// An empty reason falls back to a generic one.
func New(statusCode int, reason string) *APIError {
	if reason == "" {
		reason = "Unknown error type"
	}
	title := http.StatusText(statusCode)
	if title == "" {
		title = "Unknown status code"
	}
	return &APIError{
		StatusCode: statusCode,
		Reason:     reason,
		Title:      title,
	}
}

func (e *APIError) Error() string {
	return e.Reason
}

// Set attaches a piece of extra structured data to the error. Chainable.
func (e *APIError) Set(key string, value any) *APIError {
	if e.Extra == nil {
		e.Extra = make(map[string]any)
	}
	e.Extra[key] = value
	return e
}

// SetStatusCode reclassifies the error, refreshing the derived title.
// Used at the boundary to remap errors surfaced with the wrong status.
func (e *APIError) SetStatusCode(statusCode int) *APIError {
	e.StatusCode = statusCode
	if title := http.StatusText(statusCode); title != "" {
		e.Title = title
	} else {
		e.Title = "Unknown status code"
	}
	return e
}

func (e *APIError) SetReason(reason string) *APIError {
	e.Reason = reason
	return e
}

func (e *APIError) SetTitle(title string) *APIError {
	e.Title = title
	return e
}

// Envelope renders the fixed error response shape. Extra data is always
// present, as an empty object when nothing was attached.
func (e *APIError) Envelope() map[string]any {
	extra := e.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	return map[string]any{
		"status":                  "error",
		"code":                    e.StatusCode,
		"type":                    e.Title,
		"reason":                  e.Reason,
		"additional-informations": extra,
	}
}
