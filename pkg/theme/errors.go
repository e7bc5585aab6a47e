package theme

import "errors"

var (
	// ErrTemplateNotFound is returned when neither the template nor the
	// fallback exists in the theme.
	ErrTemplateNotFound = errors.New("theme: template not found")

	ErrParseFailed  = errors.New("theme: failed to parse template")
	ErrRenderFailed = errors.New("theme: failed to render template")
)
