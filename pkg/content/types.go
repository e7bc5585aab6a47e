package content

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type describes a content type and the public URL pattern of its items.
// Pattern contains a {slug} placeholder, e.g. "/blog/{slug}".
// Dir is the content directory holding items of the type; it defaults to Name.
type Type struct {
	Name     string `yaml:"-"`
	Pattern  string `yaml:"pattern"`
	Template string `yaml:"template"`
	Dir      string `yaml:"dir"`
}

// ParseTypes decodes a content types document. The document is a mapping of
// type name to either a pattern string or an object with a pattern key:
//
//	post:
//	  pattern: /blog/{slug}
//	  template: post
//	  dir: posts
//	page: /{slug}
//
// Document order is preserved; it is the order preview mode tries patterns in.
func ParseTypes(data []byte) ([]Type, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidTypes, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidTypes)
	}

	types := make([]Type, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, value := root.Content[i].Value, root.Content[i+1]

		var t Type
		switch value.Kind {
		case yaml.ScalarNode:
			t.Pattern = value.Value
		case yaml.MappingNode:
			if err := value.Decode(&t); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTypes, name, err)
			}
		default:
			return nil, fmt.Errorf("%w: %s: expected pattern string or mapping", ErrInvalidTypes, name)
		}

		t.Name = name
		if t.Dir == "" {
			t.Dir = name
		}
		if name == "" || !strings.HasPrefix(t.Pattern, "/") {
			return nil, fmt.Errorf("%w: %s: pattern must start with /", ErrInvalidTypes, name)
		}
		if !strings.Contains(t.Pattern, "{slug}") {
			return nil, fmt.Errorf("%w: %s: pattern needs a {slug} placeholder", ErrInvalidTypes, name)
		}
		types = append(types, t)
	}
	return types, nil
}

// LoadTypes reads content types from fsys. A missing file yields
// ErrTypesMissing so callers can degrade to "no patterns".
func LoadTypes(fsys fs.FS, name string) ([]Type, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTypesMissing, name)
	}
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", name, err)
	}
	return ParseTypes(data)
}
