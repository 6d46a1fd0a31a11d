// Package export serializes a module index for tooling.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/crosslang/internal/index"
)

// Format selects an export encoding.
type Format int

const (
	Text Format = iota
	JSON
	YAML
	CBOR
)

var formatNames = [...]string{
	Text: "text",
	JSON: "json",
	YAML: "yaml",
	CBOR: "cbor",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("unknown format %q", name)
}

// Document is the serialized form of an index run.
type Document struct {
	RunID     string  `json:"run_id" yaml:"run_id" cbor:"1,keyasint"`
	Generated string  `json:"generated" yaml:"generated" cbor:"2,keyasint"`
	Root      *Module `json:"root" yaml:"root" cbor:"3,keyasint"`
}

// Module mirrors index.ModuleIndex.
type Module struct {
	Name      string      `json:"name,omitempty" yaml:"name,omitempty" cbor:"1,keyasint,omitempty"`
	Modules   []*Module   `json:"modules,omitempty" yaml:"modules,omitempty" cbor:"2,keyasint,omitempty"`
	Fields    []*Field    `json:"fields,omitempty" yaml:"fields,omitempty" cbor:"3,keyasint,omitempty"`
	Functions []*Function `json:"functions,omitempty" yaml:"functions,omitempty" cbor:"4,keyasint,omitempty"`
}

// Field mirrors index.FieldIndex.
type Field struct {
	Name   string `json:"name" yaml:"name" cbor:"1,keyasint"`
	Type   string `json:"type" yaml:"type" cbor:"2,keyasint"`
	Global bool   `json:"global,omitempty" yaml:"global,omitempty" cbor:"3,keyasint,omitempty"`
}

// Function mirrors index.FunctionIndex.
type Function struct {
	Name   string   `json:"name" yaml:"name" cbor:"1,keyasint"`
	Result string   `json:"result" yaml:"result" cbor:"2,keyasint"`
	Params []string `json:"params" yaml:"params" cbor:"3,keyasint"`
	Global bool     `json:"global,omitempty" yaml:"global,omitempty" cbor:"4,keyasint,omitempty"`
}

// NewDocument converts root into a Document stamped with a fresh run ID
// and the current time.
func NewDocument(root *index.ModuleIndex) *Document {
	return &Document{
		RunID:     uuid.New().String(),
		Generated: time.Now().UTC().Format(time.RFC3339),
		Root:      convertModule(root),
	}
}

func convertModule(m *index.ModuleIndex) *Module {
	out := &Module{Name: m.Name()}
	for _, sub := range m.Modules() {
		out.Modules = append(out.Modules, convertModule(sub))
	}
	for _, f := range m.Fields() {
		out.Fields = append(out.Fields, &Field{Name: f.Name(), Type: f.Type().String(), Global: f.Global()})
	}
	for _, f := range m.Functions() {
		params := make([]string, len(f.Params()))
		for i, p := range f.Params() {
			params[i] = p.String()
		}
		out.Functions = append(out.Functions, &Function{
			Name:   f.Name(),
			Result: f.Result().String(),
			Params: params,
			Global: f.Global(),
		})
	}
	return out
}

// cborEncMode uses canonical mode for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("export: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Encode writes root to w in the given format. The text format is the
// plain index dump and carries no document header.
func Encode(w io.Writer, root *index.ModuleIndex, format Format) error {
	if format == Text {
		index.Fprint(w, root)
		return nil
	}
	return EncodeDocument(w, NewDocument(root), format)
}

// EncodeDocument writes doc to w in a structured format.
func EncodeDocument(w io.Writer, doc *Document, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case CBOR:
		data, err := cborEncMode.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("export: format %s has no document encoding", format)
}

// DecodeJSON reads a document written with the JSON format.
func DecodeJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("export: unmarshal json: %w", err)
	}
	return &doc, nil
}

// DecodeYAML reads a document written with the YAML format.
func DecodeYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("export: unmarshal yaml: %w", err)
	}
	return &doc, nil
}

// DecodeCBOR reads a document written with the CBOR format.
func DecodeCBOR(data []byte) (*Document, error) {
	var doc Document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("export: unmarshal cbor: %w", err)
	}
	return &doc, nil
}

// Module returns the named submodule of m, or nil.
func (m *Module) Module(name string) *Module {
	for _, sub := range m.Modules {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// Signature renders f like the index dump, e.g. "int f (int, double)".
func (f *Function) Signature() string {
	return fmt.Sprintf("%s %s (%s)", f.Result, f.Name, strings.Join(f.Params, ", "))
}
