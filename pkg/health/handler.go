package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler always answers OK while the process is serving.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, &Report{Status: StatusHealthy})
			return
		}
		writeText(w, http.StatusOK, "OK")
	}
}

// ReadinessHandler runs the checks per request. Degraded reports keep 200.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := c.Run(r.Context())

		status := http.StatusOK
		if report.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		if wantsJSON(r) {
			writeJSON(w, status, report)
			return
		}
		if status == http.StatusOK {
			writeText(w, status, "OK")
			return
		}
		writeText(w, status, "Service Unavailable")
	}
}

func wantsJSON(r *http.Request) bool {
	return r.URL.Query().Get("format") == "json" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
