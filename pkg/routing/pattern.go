package routing

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// pattern is a compiled route pattern. Patterns without placeholders
// compare by string equality; others match through an anchored regexp
// where each {name} captures one or more non-slash characters.
type pattern struct {
	re    *regexp.Regexp
	raw   string
	names []string
}

func compilePattern(raw string) (*pattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, raw)
	}

	p := &pattern{raw: raw}
	if !strings.ContainsAny(raw, "{}") {
		return p, nil
	}

	var expr strings.Builder
	expr.WriteByte('^')
	seen := map[string]bool{}
	rest := raw
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if closeBrace := strings.IndexByte(rest, '}'); closeBrace >= 0 && (open < 0 || closeBrace < open) {
			return nil, fmt.Errorf("%w: %q has an unmatched }", ErrInvalidPattern, raw)
		}
		if open < 0 {
			expr.WriteString(regexp.QuoteMeta(rest))
			break
		}
		expr.WriteString(regexp.QuoteMeta(rest[:open]))

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return nil, fmt.Errorf("%w: %q has an unmatched {", ErrInvalidPattern, raw)
		}
		name := rest[open+1 : open+end]
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: %q has an empty placeholder", ErrInvalidPattern, raw)
		case strings.ContainsAny(name, "{/"):
			return nil, fmt.Errorf("%w: %q has a malformed placeholder %q", ErrInvalidPattern, raw, name)
		case seen[name]:
			return nil, fmt.Errorf("%w: %q repeats placeholder %q", ErrInvalidPattern, raw, name)
		}
		seen[name] = true
		p.names = append(p.names, name)
		expr.WriteString(`([^/]+)`)
		rest = rest[open+end+1:]
	}
	expr.WriteByte('$')

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, raw, err)
	}
	p.re = re
	return p, nil
}

// match tests path and returns the captured placeholders in pattern order.
func (p *pattern) match(path string) (Params, bool) {
	if p.re == nil {
		return nil, path == p.raw
	}
	sub := p.re.FindStringSubmatch(path)
	if sub == nil {
		return nil, false
	}
	params := make(Params, len(p.names))
	for i, name := range p.names {
		params[i] = Param{Name: name, Value: sub[i+1]}
	}
	return params, true
}

func (p *pattern) has(name string) bool {
	return slices.Contains(p.names, name)
}

func (p *pattern) String() string { return p.raw }
