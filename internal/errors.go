package internal

import (
	"errors"
	"log/slog"
	"net/http"
)

// HTTPError carries the status code and user-facing message of a failed request.
type HTTPError struct {
	// Err is the underlying error. It is logged, never shown.
	Err error

	// Message is the user-facing error message.
	Message string

	// RequestID is the request tracking ID.
	RequestID string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status.
func (e *HTTPError) StatusCode() int {
	return e.Code
}

// StatusText returns the standard text for the status.
func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError. An empty message defaults to the status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRequestID tags the error with the request ID.
func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// ErrNotFound returns a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

// ErrMethodNotAllowed returns a 405 error.
func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, opts...)
}

// ErrInternal returns a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// ErrServiceUnavailable returns a 503 error.
func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusServiceUnavailable, message, opts...)
}

// AsHTTPError returns the HTTPError in err's chain, or a 500 wrapping err.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return ErrInternal("", WithError(err))
}

// DefaultErrorHandler writes the status text as plain text. Server errors
// are logged at error level, client errors at debug.
func DefaultErrorHandler(logger *slog.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		httpErr := AsHTTPError(err)
		LogError(logger, r, httpErr)
		http.Error(w, httpErr.Message, httpErr.Code)
	}
}

// LogError logs err with the request method and path.
func LogError(logger *slog.Logger, r *http.Request, err *HTTPError) {
	level := slog.LevelDebug
	if err.Code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []slog.Attr{
		slog.Int("status", err.Code),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if err.Err != nil {
		attrs = append(attrs, slog.Any("error", err.Err))
	}
	logger.LogAttrs(r.Context(), level, "request failed", attrs...)
}
