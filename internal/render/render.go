// Package render projects a decoded module into a JSON or YAML document.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bvisness/wasm-read/wasmread"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
	}
}

type Document struct {
	Signatures []Signature `json:"signatures" yaml:"signatures"`
	Imports    []Import    `json:"imports" yaml:"imports"`
	Functions  []uint32    `json:"functions" yaml:"functions"`
	Exports    []Export    `json:"exports" yaml:"exports"`
}

type Signature struct {
	Params []string `json:"params" yaml:"params"`
	Return string   `json:"return" yaml:"return"`
}

// Import carries the fields of every import kind; only the ones that belong
// to Kind are set.
type Import struct {
	Module    string  `json:"module" yaml:"module"`
	Name      string  `json:"name" yaml:"name"`
	Kind      string  `json:"kind" yaml:"kind"`
	Signature *uint32 `json:"signature,omitempty" yaml:"signature,omitempty"`
	Initial   *uint32 `json:"initial,omitempty" yaml:"initial,omitempty"`
	Maximum   *uint32 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Type      string  `json:"type,omitempty" yaml:"type,omitempty"`
	Mutable   *bool   `json:"mutable,omitempty" yaml:"mutable,omitempty"`
}

type Export struct {
	Name  string `json:"name" yaml:"name"`
	Kind  string `json:"kind" yaml:"kind"`
	Index uint32 `json:"index" yaml:"index"`
}

func FromModule(m *wasmread.Module) Document {
	doc := Document{
		Signatures: make([]Signature, 0, len(m.Signatures)),
		Imports:    make([]Import, 0, len(m.Imports)),
		Functions:  append([]uint32{}, m.Functions...),
		Exports:    make([]Export, 0, len(m.Exports)),
	}

	for _, sig := range m.Signatures {
		params := make([]string, 0, len(sig.Params))
		for _, p := range sig.Params {
			params = append(params, p.String())
		}
		doc.Signatures = append(doc.Signatures, Signature{
			Params: params,
			Return: sig.Return.String(),
		})
	}

	for _, imp := range m.Imports {
		out := Import{
			Module: imp.ModuleName(),
			Name:   imp.EntityName(),
			Kind:   imp.Kind().String(),
		}
		switch imp := imp.(type) {
		case *wasmread.FunctionImport:
			out.Signature = &imp.Signature
		case *wasmread.TableImport:
			out.Initial = &imp.Initial
			out.Maximum = imp.Maximum
		case *wasmread.MemoryImport:
			out.Initial = &imp.Initial
			out.Maximum = imp.Maximum
		case *wasmread.GlobalImport:
			out.Type = imp.Type.String()
			out.Mutable = &imp.Mutable
		}
		doc.Imports = append(doc.Imports, out)
	}

	for _, exp := range m.Exports {
		doc.Exports = append(doc.Exports, Export{
			Name:  exp.Name,
			Kind:  exp.Kind.String(),
			Index: exp.Index,
		})
	}

	return doc
}

// Write encodes doc to w. YAML output is always indented.
func Write(w io.Writer, doc Document, format Format, indent bool) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		if indent {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
