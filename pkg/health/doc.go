// Package health serves liveness and readiness probes.
//
//	checker := health.New(health.WithTimeout(2*time.Second))
//	checker.Add("content", store.Healthcheck())
//	checker.AddOptional("redis", redis.Healthcheck(client))
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", checker.ReadinessHandler())
//
// Responses are plain text unless the client asks for JSON with
// "Accept: application/json" or "?format=json". A failed required check
// answers 503; a failed optional check reports "degraded" with 200.
package health
