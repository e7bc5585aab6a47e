package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures Make.
type Option func(*options)

type options struct {
	separator string
	maxLength int
}

// Separator sets the string placed between words. Default: "-".
func Separator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// MaxLength limits the slug to n runes, cutting at the last separator
// when possible. Zero or negative means unlimited.
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = n
	}
}

// special covers letters that carry no combining mark to strip.
var special = map[rune]string{
	'ß': "ss", 'æ': "ae", 'Æ': "ae", 'ø': "o", 'Ø': "o",
	'ł': "l", 'Ł': "l", 'œ': "oe", 'Œ': "oe", 'đ': "d", 'Đ': "d",
}

// Make converts s into a lowercase slug.
func Make(s string, opts ...Option) string {
	o := &options{separator: "-"}
	for _, opt := range opts {
		opt(o)
	}

	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		s,
	)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		if rep, ok := special[r]; ok {
			if pending && b.Len() > 0 {
				b.WriteString(o.separator)
			}
			pending = false
			b.WriteString(rep)
			continue
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteString(o.separator)
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}

	return truncate(b.String(), o)
}

func truncate(s string, o *options) string {
	if o.maxLength <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= o.maxLength {
		return s
	}
	cut := string(r[:o.maxLength])
	if o.separator != "" {
		// Prefer a whole-word cut when the boundary falls mid-word.
		if next := string(r[o.maxLength:]); !strings.HasPrefix(next, o.separator) {
			if i := strings.LastIndex(cut, o.separator); i > 0 {
				cut = cut[:i]
			}
		}
		cut = strings.TrimSuffix(cut, o.separator)
	}
	return cut
}
