// Package sanitizer holds the HTML policies applied to rendered content.
package sanitizer

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  *bluemonday.Policy
	contentPolicy *bluemonday.Policy
	initOnce      sync.Once
)

// Fenced code blocks carry "language-go" style classes for highlighters.
var languageClass = regexp.MustCompile(`^language-[\w+#-]+$`)

var buttonClass = regexp.MustCompile(`^button$`)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// UGC covers what Markdown produces; headings keep ids for anchors.
		contentPolicy = bluemonday.UGCPolicy()
		contentPolicy.AllowAttrs("id").Matching(bluemonday.Paragraph).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		contentPolicy.AllowAttrs("class").Matching(languageClass).OnElements("code")
		contentPolicy.AllowAttrs("class").Matching(buttonClass).OnElements("a")
		contentPolicy.AllowAttrs("type", "checked", "disabled").OnElements("input")
	})
}

// Content sanitizes HTML rendered from Markdown.
// Scripts, event handlers and javascript: URLs are removed.
func Content(s string) string {
	initPolicies()
	return contentPolicy.Sanitize(s)
}

// Strip removes all markup and returns plain text with collapsed whitespace.
// Used for excerpts and meta descriptions.
func Strip(s string) string {
	initPolicies()
	return strings.Join(strings.Fields(strictPolicy.Sanitize(s)), " ")
}

// Custom applies a caller-provided policy. Returns s unchanged if policy is nil.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
