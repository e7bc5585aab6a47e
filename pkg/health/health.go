package health

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 3 * time.Second

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency. It matches the Healthcheck closures of
// pkg/redis and content.Store.
type CheckFunc func(ctx context.Context) error

// Result is the outcome of one check.
type Result struct {
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Optional   bool   `json:"optional,omitempty"`
}

// Report aggregates all checks. Status is unhealthy when a required check
// fails and degraded when only optional ones do.
type Report struct {
	Checks map[string]Result `json:"checks,omitempty"`
	Status string            `json:"status"`
}

type check struct {
	fn       CheckFunc
	name     string
	optional bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout bounds a whole readiness run.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failing checks to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// Checker runs named checks in parallel.
type Checker struct {
	logger  *slog.Logger
	checks  []check
	timeout time.Duration
	mu      sync.RWMutex
}

// New returns a Checker with no checks.
func New(opts ...Option) *Checker {
	c := &Checker{
		timeout: defaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add registers a check whose failure makes the service unready.
func (c *Checker) Add(name string, fn CheckFunc) {
	c.add(check{name: name, fn: fn})
}

// AddOptional registers a check whose failure only degrades the report.
// The render cache is optional: folio renders on every request without it.
func (c *Checker) AddOptional(name string, fn CheckFunc) {
	c.add(check{name: name, fn: fn, optional: true})
}

func (c *Checker) add(ch check) {
	if ch.fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks = append(c.checks, ch)
}

// Run executes every check and waits for all of them or the timeout.
func (c *Checker) Run(ctx context.Context) *Report {
	c.mu.RLock()
	checks := c.checks
	c.mu.RUnlock()

	report := &Report{Status: StatusHealthy}
	if len(checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	results := make([]Result, len(checks))
	var g errgroup.Group
	for i, ch := range checks {
		g.Go(func() error {
			results[i] = c.runOne(ctx, ch)
			return nil
		})
	}
	_ = g.Wait()

	report.Checks = make(map[string]Result, len(checks))
	for i, ch := range checks {
		r := results[i]
		report.Checks[ch.name] = r
		if r.Status == StatusHealthy {
			continue
		}
		if !ch.optional {
			report.Status = StatusUnhealthy
		} else if report.Status == StatusHealthy {
			report.Status = StatusDegraded
		}
	}
	return report
}

func (c *Checker) runOne(ctx context.Context, ch check) (res Result) {
	start := time.Now()
	res = Result{Status: StatusHealthy, Optional: ch.optional}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("%w: %v", ErrCheckPanicked, p)
			}
		}()
		done <- ch.fn(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ErrCheckTimeout
	}
	res.DurationMS = time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = errors.Join(ErrCheckTimeout, err)
		}
		res.Status = StatusUnhealthy
		res.Error = err.Error()
		c.logger.WarnContext(ctx, "health check failed",
			slog.String("check", ch.name),
			slog.Bool("optional", ch.optional),
			slog.Any("error", err),
		)
	}
	return res
}
