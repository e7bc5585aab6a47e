package content

import "time"

// Status is the publication state of an item.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
	StatusUnlisted  Status = "unlisted"
	StatusScheduled Status = "scheduled"
)

// Public reports whether the item may be served without preview credentials.
// Unlisted items are public but never appear in listings.
func (s Status) Public() bool {
	return s == StatusPublished || s == StatusUnlisted
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPublished, StatusDraft, StatusUnlisted, StatusScheduled:
		return true
	}
	return false
}

// Item is a parsed content file.
type Item struct {
	ModTime    time.Time
	Date       time.Time
	Taxonomies map[string][]string
	Params     map[string]any
	File       string
	Type       string
	Slug       string
	Title      string
	Template   string
	Summary    string
	Body       string
	Status     Status

	// termNames keeps display names aligned with Taxonomies slugs.
	termNames map[string][]string
}

// TermName returns the display name of a term slug as written in the frontmatter.
func (i *Item) TermName(taxonomy, term string) string {
	for n, t := range i.Taxonomies[taxonomy] {
		if t == term && n < len(i.termNames[taxonomy]) {
			return i.termNames[taxonomy][n]
		}
	}
	return term
}

// Terms returns the term slugs the item is classified under in taxonomy.
func (i *Item) Terms(taxonomy string) []string {
	return i.Taxonomies[taxonomy]
}

// HasTerm reports whether the item is classified under term in taxonomy.
func (i *Item) HasTerm(taxonomy, term string) bool {
	for _, t := range i.Taxonomies[taxonomy] {
		if t == term {
			return true
		}
	}
	return false
}

// Term is a taxonomy term with the number of published items using it.
type Term struct {
	Taxonomy string
	Slug     string
	Name     string
	Count    int
}
