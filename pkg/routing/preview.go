package routing

import (
	"crypto/subtle"
	"strings"
)

const (
	// PreviewParam is the query flag that requests preview mode.
	PreviewParam = "preview"
	// TokenParam carries the preview secret.
	TokenParam = "token"
)

// PreviewAllowed reports whether req carries the preview flag and a token
// equal to the configured secret. The flag counts when present and not "0"
// or "false". Without a secret preview is never allowed.
func (r *Router) PreviewAllowed(req *Request) bool {
	if r.previewSecret == "" || req == nil || req.Query == nil {
		return false
	}
	if !req.Query.Has(PreviewParam) || !truthy(req.Query.Get(PreviewParam)) {
		return false
	}
	token := req.Query.Get(TokenParam)
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(r.previewSecret)) == 1
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false":
		return false
	}
	return true
}
