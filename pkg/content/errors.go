package content

import "errors"

var (
	// ErrNotFound is returned when an item or term does not exist.
	ErrNotFound = errors.New("content: not found")

	// ErrInvalidFrontmatter indicates malformed YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("content: invalid frontmatter")

	// ErrTypesMissing indicates the content types configuration file is absent.
	ErrTypesMissing = errors.New("content: content types configuration missing")

	// ErrInvalidTypes indicates a malformed content types configuration.
	ErrInvalidTypes = errors.New("content: invalid content types configuration")

	// ErrRenderFailed indicates Markdown conversion failed.
	ErrRenderFailed = errors.New("content: failed to render markdown")
)
