// Package slug generates URL-safe slugs from arbitrary strings with Unicode normalization.
//
// Content files without an explicit slug in their frontmatter get one derived
// from the file name:
//
//	slug.Make("Hello, World!")        // "hello-world"
//	slug.Make("Café & Restaurant")    // "cafe-restaurant"
//	slug.Make("2024-01-02 Über uns")  // "2024-01-02-uber-uns"
//
// Diacritics are removed through Unicode decomposition (golang.org/x/text).
// A handful of letters that do not decompose (ß, æ, ø, ł, œ, đ) are mapped to
// their usual ASCII spelling. Anything else that is not a letter or digit
// becomes a separator, and separators never repeat or trail.
//
// # Options
//
//	slug.Make("Product Name", slug.Separator("_"))   // "product_name"
//	slug.Make("Very long title", slug.MaxLength(9))  // "very-long"
package slug
