package routing

import "time"

// Stage names the pipeline step that settled a request.
type Stage string

const (
	StageHooks     Stage = "hooks"
	StageSlash     Stage = "trailing_slash"
	StageRedirect  Stage = "redirect"
	StageSystem    Stage = "system"
	StageExact     Stage = "exact"
	StagePreview   Stage = "preview"
	StagePrefix    Stage = "prefix"
	StageTaxonomy  Stage = "taxonomy"
	StageUnmatched Stage = "unmatched"
)

// Observer receives one call per Match. m is nil when the request did not match.
type Observer interface {
	ObserveMatch(stage Stage, m *RouteMatch, elapsed time.Duration)
	ObserveError(stage Stage, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveMatch(Stage, *RouteMatch, time.Duration) {}
func (nopObserver) ObserveError(Stage, error)                      {}
