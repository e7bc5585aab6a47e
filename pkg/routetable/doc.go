// Package routetable holds the precomputed route table produced by the content indexer.
//
// The indexer writes a JSON document with four sections:
//
//	{
//	  "exact":     {"/hello": {"type": "single", "file": "post/hello.md", "content_type": "post", "slug": "hello"}},
//	  "redirects": {"/old": {"to": "/new", "code": 301}},
//	  "taxonomy":  {"tags": {"base": "/tags"}},
//	  "reverse":   {"post:hello": "/hello"}
//	}
//
// A parsed [Table] is immutable. Long-running processes keep the current table
// in a [Store], which swaps snapshots atomically, and may attach a [Watcher]
// that reloads the file whenever the indexer rewrites it. Readers take one
// snapshot per request so they never observe a half-applied change.
package routetable
