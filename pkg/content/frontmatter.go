package content

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/folio/pkg/sanitizer"
	"github.com/dmitrymomot/folio/pkg/slug"
)

var delimiter = []byte("---")

// splitFrontmatter separates the YAML block from the Markdown body.
// Content without a leading delimiter has no frontmatter.
func splitFrontmatter(content []byte) (front, body []byte, err error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(content, delimiter) {
		return nil, content, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), " \t")
	switch {
	case bytes.HasPrefix(rest, []byte("\r\n")):
		rest = rest[2:]
	case bytes.HasPrefix(rest, []byte("\n")):
		rest = rest[1:]
	default:
		return nil, nil, fmt.Errorf("%w: opening delimiter must be on its own line", ErrInvalidFrontmatter)
	}

	// The closing delimiter starts a line.
	end := -1
	if bytes.HasPrefix(rest, delimiter) {
		end = 0
	} else if i := bytes.Index(rest, []byte("\n---")); i >= 0 {
		end = i + 1
	}
	if end < 0 {
		return nil, nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	front = rest[:end]
	body = rest[end+len(delimiter):]
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}
	return front, body, nil
}

// frontmatter holds the keys with fixed meaning. Everything else lands in Item.Params.
type frontmatter struct {
	Title    string `yaml:"title"`
	Slug     string `yaml:"slug"`
	Type     string `yaml:"type"`
	Status   string `yaml:"status"`
	Date     string `yaml:"date"`
	Template string `yaml:"template"`
	Summary  string `yaml:"summary"`
	Draft    bool   `yaml:"draft"`
}

var reservedKeys = map[string]bool{
	"title": true, "slug": true, "type": true, "status": true,
	"date": true, "template": true, "summary": true, "draft": true,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseItem builds an Item from a file's bytes. file is the slash-separated
// path relative to the content root; taxonomies lists the frontmatter keys
// treated as classifications and typeDirs maps directories to type names.
func parseItem(file string, content []byte, taxonomies []string, typeDirs map[string]string) (*Item, error) {
	front, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	var fm frontmatter
	params := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		var node yaml.Node
		if err := yaml.Unmarshal(front, &node); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFrontmatter, file, err)
		}
		if err := node.Decode(&fm); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFrontmatter, file, err)
		}
		if err := node.Decode(&params); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFrontmatter, file, err)
		}
	}

	item := &Item{
		File:       file,
		Type:       fm.Type,
		Slug:       fm.Slug,
		Title:      fm.Title,
		Template:   fm.Template,
		Summary:    fm.Summary,
		Body:       string(body),
		Status:     StatusPublished,
		Taxonomies: map[string][]string{},
		termNames:  map[string][]string{},
		Params:     map[string]any{},
	}

	if item.Type == "" {
		if dir, _, ok := strings.Cut(file, "/"); ok {
			item.Type = dir
			if name, mapped := typeDirs[dir]; mapped {
				item.Type = name
			}
		}
	}
	if item.Slug == "" {
		base := path.Base(file)
		item.Slug = slug.Make(strings.TrimSuffix(base, path.Ext(base)))
	}
	if item.Title == "" {
		item.Title = item.Slug
	}

	switch {
	case fm.Status != "":
		st := Status(strings.ToLower(fm.Status))
		if !st.Valid() {
			return nil, fmt.Errorf("%w: %s: unknown status %q", ErrInvalidFrontmatter, file, fm.Status)
		}
		item.Status = st
	case fm.Draft:
		item.Status = StatusDraft
	}

	if fm.Date != "" {
		d, err := parseDate(fm.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFrontmatter, file, err)
		}
		item.Date = d
	}

	for _, tax := range taxonomies {
		names := stringList(params[tax])
		for _, name := range names {
			s := slug.Make(name)
			if s == "" {
				continue
			}
			item.Taxonomies[tax] = append(item.Taxonomies[tax], s)
			item.termNames[tax] = append(item.termNames[tax], name)
		}
		delete(params, tax)
	}

	for k, v := range params {
		if !reservedKeys[k] {
			item.Params[k] = v
		}
	}

	if item.Summary == "" {
		item.Summary = excerpt(item.Body)
	}

	return item, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date " + s)
}

// stringList accepts a single string or a list of scalars.
func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, e := range val {
			if s := strings.TrimSpace(fmt.Sprint(e)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

const excerptLength = 160

// excerpt takes the first paragraph of the body as plain text.
func excerpt(body string) string {
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" || strings.HasPrefix(para, "#") {
			continue
		}
		text := sanitizer.Strip(para)
		if r := []rune(text); len(r) > excerptLength {
			text = string(r[:excerptLength]) + "…"
		}
		return text
	}
	return ""
}
