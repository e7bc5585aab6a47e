package routing

import "net/http"

type outcomeKind uint8

const (
	outcomeDeclined outcomeKind = iota
	outcomeMatched
	outcomeResponded
)

// Outcome is what a handler or hook produced: a match, a complete response,
// or nothing. The zero Outcome is Declined.
type Outcome struct {
	match    *RouteMatch
	response http.Handler
	kind     outcomeKind
}

// Matched reports a resolved match. A nil match is treated as Declined.
func Matched(m *RouteMatch) Outcome {
	if m == nil {
		return Declined()
	}
	return Outcome{kind: outcomeMatched, match: m}
}

// Responded reports that h writes the whole response. A nil h is treated as Declined.
func Responded(h http.Handler) Outcome {
	if h == nil {
		return Declined()
	}
	return Outcome{kind: outcomeResponded, response: h}
}

// Declined reports that nothing was produced.
func Declined() Outcome {
	return Outcome{}
}

// IsDeclined reports whether the handler passed on the request.
func (o Outcome) IsDeclined() bool { return o.kind == outcomeDeclined }

// Match returns the match for a Matched outcome.
func (o Outcome) Match() (*RouteMatch, bool) {
	return o.match, o.kind == outcomeMatched
}

// Response returns the handler for a Responded outcome.
func (o Outcome) Response() (http.Handler, bool) {
	return o.response, o.kind == outcomeResponded
}

// resolve converts an outcome into a match, wrapping responses as kind.
func (o Outcome) resolve(kind Kind) *RouteMatch {
	switch o.kind {
	case outcomeMatched:
		return o.match
	case outcomeResponded:
		return Raw(kind, o.response)
	}
	return nil
}
