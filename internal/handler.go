package internal

import "net/http"

// HandlerFunc is an http handler that reports failure by returning an error.
// The App renders returned errors with its ErrorHandler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Middleware wraps an http.Handler. It is the chi middleware signature.
//
// Example:
//
//	func NoIndex(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        w.Header().Set("X-Robots-Tag", "noindex")
//	        next.ServeHTTP(w, r)
//	    })
//	}
type Middleware = func(next http.Handler) http.Handler

// ErrorHandler renders an error returned by a HandlerFunc.
// It is not called when the handler already started the response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
