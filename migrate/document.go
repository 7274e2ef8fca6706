// Package migrate bulk-imports collections, nodes and relations from a JSON
// or YAML document.
//
// A document is validated as a whole before anything is written. Apply then
// creates missing collections, inserts every node and finally applies the
// relations in order. The first failing step aborts the import; earlier
// steps are not rolled back.
package migrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/relgraph/store"
)

// ErrInvalidDocument indicates a document that cannot be decoded or fails
// validation.
var ErrInvalidDocument = errors.New("migrate: invalid document")

// Format is the document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the import unit.
type Document struct {
	Collections []string       `json:"collections" yaml:"collections" validate:"unique,dive,min=3"`
	Nodes       []NodeSpec     `json:"nodes" yaml:"nodes" validate:"dive"`
	Relations   []RelationSpec `json:"relations" yaml:"relations" validate:"dive"`
}

// NodeSpec is one node to insert. An empty BelongsTo means the top level.
type NodeSpec struct {
	Key       string         `json:"key" yaml:"key" validate:"required"`
	Data      map[string]any `json:"data" yaml:"data" validate:"required"`
	BelongsTo string         `json:"belongs_to,omitempty" yaml:"belongs_to,omitempty" validate:"omitempty,min=3"`
}

// Endpoint addresses a node by key and container.
type Endpoint struct {
	Key       string `json:"key" yaml:"key" validate:"required"`
	BelongsTo string `json:"belongs_to,omitempty" yaml:"belongs_to,omitempty" validate:"omitempty,min=3"`
}

// Ref converts e to a store.Ref.
func (e Endpoint) Ref() store.Ref {
	return store.Ref{Key: e.Key, Collection: e.BelongsTo}
}

// RelationSpec is one relation to create.
type RelationSpec struct {
	From          Endpoint `json:"from" yaml:"from"`
	To            Endpoint `json:"to" yaml:"to"`
	By            string   `json:"by" yaml:"by" validate:"required"`
	Bidirectional bool     `json:"bidirectional,omitempty" yaml:"bidirectional,omitempty"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("migrate: cannot tell the format of %q from its extension", path)
	}
}

// Decode reads a document. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (*Document, error) {
	doc := &Document{}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("%w: json: %v", ErrInvalidDocument, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: yaml: %v", ErrInvalidDocument, err)
		}
	default:
		return nil, fmt.Errorf("migrate: unsupported format %q", format)
	}

	return doc, nil
}
