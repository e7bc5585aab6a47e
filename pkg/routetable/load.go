package routetable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Parse decodes a JSON route table. Unknown top-level keys are ignored so
// indexer versions can add sections without breaking older readers.
func Parse(data []byte) (*Table, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Empty(), nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidTable, err)
	}
	return New(doc)
}

// Load reads and parses a route table from fsys.
func Load(fsys fs.FS, name string) (*Table, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("routetable: read %s: %w", name, err)
	}
	return Parse(data)
}

// LoadFile reads and parses a route table from the local file system.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("routetable: read %s: %w", path, err)
	}
	return Parse(data)
}
