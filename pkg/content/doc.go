// Package content is the flat-file content repository.
//
// Content lives as Markdown files with YAML frontmatter under a root directory,
// one directory per content type:
//
//	content/
//	  post/hello.md
//	  post/drafts-are-fine.md
//	  page/about.md
//
// A file looks like:
//
//	---
//	title: Hello
//	slug: hello
//	status: published
//	date: 2024-03-01
//	tags: [go, web]
//	---
//	# Hello
//
// [Store] resolves items by file path (used for route table entries), by
// type and slug (used by preview mode, bypassing the route table), lists
// taxonomy terms, and executes [query.Query] listings. Parsed files are cached
// and re-read when their modification time changes.
//
// [Markdown] converts an item body to sanitized HTML with goldmark.
package content
