// Package theme renders site pages from html/template files.
//
// A theme directory holds one file per template name plus shared
// definitions under partials/:
//
//	theme/
//	  index.html
//	  single.html
//	  archive.html
//	  404.html
//	  partials/layout.html
//
// Render falls back to "index" when the requested template does not exist,
// so a theme with only index.html still serves every page. Parsed templates
// are cached unless WithReload is set.
package theme
