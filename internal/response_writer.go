package internal

import (
	"net/http"
	"sync"
)

// ResponseWriter records whether a response has started so errors returned
// after the first write are not rendered on top of it.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
	mu      sync.Mutex
}

// NewResponseWriter wraps w.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader sends the status once. Later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	if w.written {
		w.mu.Unlock()
		return
	}
	w.written = true
	w.status = code
	w.mu.Unlock()

	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	w.written = true
	w.mu.Unlock()

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// Status returns the HTTP status code of the response.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of bytes written to the response body.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the status or any body bytes were sent.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements http.Flusher.
func (w *ResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
