package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/asyncspec/spec"
	"github.com/erraggy/asyncspec/specerrors"
	"go.yaml.in/yaml/v4"
)

// Reserved keys of a shared-definitions block.
const (
	DefsKey        = "$defs"
	DefinitionsKey = "definitions"
)

// NamedSchema is a schema body with its name.
type NamedSchema struct {
	Name   string
	Schema spec.Schema
}

// Payload is a raw message payload as an endpoint describes it.
//
// Schema is the body without its shared-definitions block and without a
// keyed union. Definitions holds the "$defs" (or "definitions") entries in
// source order. Variants is non-nil only for a keyed polymorphic union and
// keeps variant order; when Variants is set, Schema holds only the
// union-level keywords (such as "title" or "discriminator").
type Payload struct {
	Schema      spec.Schema
	Definitions []NamedSchema
	Variants    []NamedSchema
}

// IsUnion reports whether the payload is a keyed polymorphic union.
func (p Payload) IsUnion() bool {
	return p.Variants != nil
}

// IsEmpty reports whether the payload carries nothing at all.
func (p Payload) IsEmpty() bool {
	return len(p.Schema) == 0 && len(p.Definitions) == 0 && p.Variants == nil
}

// Title returns the payload's "title" keyword, if any.
func (p Payload) Title() (string, bool) {
	return spec.SchemaTitle(p.Schema)
}

// SchemaPayload wraps a plain schema body that has no definitions and is
// not a union.
func SchemaPayload(s spec.Schema) Payload {
	return Payload{Schema: s}
}

// UnionPayload builds a keyed union over the given variants, in order.
func UnionPayload(title string, variants ...NamedSchema) Payload {
	p := Payload{Variants: slices.Clone(variants)}
	if p.Variants == nil {
		p.Variants = []NamedSchema{}
	}
	if title != "" {
		p.Schema = spec.Schema{"title": title}
	}
	return p
}

// PayloadFromSchema splits a decoded schema map into a Payload.
// A map carries no key order, so definitions and union variants found in
// it are ordered by name. Use the YAML or JSON decoders to keep source
// order.
func PayloadFromSchema(s spec.Schema) (Payload, error) {
	p := Payload{Schema: make(spec.Schema, len(s))}
	for k, v := range s {
		switch {
		case isDefinitionsKey(k):
			defs, ok := v.(map[string]any)
			if !ok {
				return Payload{}, malformed(k, "definitions block is not a mapping")
			}
			named, err := namedFromMap(k, defs)
			if err != nil {
				return Payload{}, err
			}
			p.Definitions = append(p.Definitions, named...)
		case k == "oneOf":
			if variants, ok := v.(map[string]any); ok {
				named, err := namedFromMap(k, variants)
				if err != nil {
					return Payload{}, err
				}
				p.Variants = named
				continue
			}
			p.Schema[k] = v
		default:
			p.Schema[k] = v
		}
	}
	slices.SortStableFunc(p.Definitions, func(a, b NamedSchema) int {
		return strings.Compare(a.Name, b.Name)
	})
	return p, nil
}

func namedFromMap(field string, m map[string]any) ([]NamedSchema, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]NamedSchema, 0, len(names))
	for _, name := range names {
		body, ok := m[name].(map[string]any)
		if !ok {
			return nil, malformed(field, fmt.Sprintf("entry %q is not a mapping", name))
		}
		out = append(out, NamedSchema{Name: name, Schema: body})
	}
	return out, nil
}

// UnmarshalYAML decodes a payload from a YAML mapping, keeping the source
// order of definitions and keyed union variants.
func (p *Payload) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return malformed("payload", fmt.Sprintf("line %d: payload is not a mapping", node.Line))
	}

	out := Payload{Schema: spec.Schema{}}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch {
		case isDefinitionsKey(key):
			defs, err := namedFromNode(key, val)
			if err != nil {
				return err
			}
			out.Definitions = append(out.Definitions, defs...)
		case key == "oneOf" && val.Kind == yaml.MappingNode:
			variants, err := namedFromNode(key, val)
			if err != nil {
				return err
			}
			out.Variants = variants
		default:
			var v any
			if err := val.Decode(&v); err != nil {
				return fmt.Errorf("descriptor: payload key %q: %w", key, err)
			}
			out.Schema[key] = v
		}
	}
	*p = out
	return nil
}

func namedFromNode(field string, node *yaml.Node) ([]NamedSchema, error) {
	if node.Kind != yaml.MappingNode {
		return nil, malformed(field, fmt.Sprintf("line %d: value is not a mapping", node.Line))
	}
	out := make([]NamedSchema, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, body := node.Content[i].Value, node.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return nil, malformed(field, fmt.Sprintf("line %d: entry %q is not a mapping", body.Line, name))
		}
		var s spec.Schema
		if err := body.Decode(&s); err != nil {
			return nil, fmt.Errorf("descriptor: %s entry %q: %w", field, name, err)
		}
		out = append(out, NamedSchema{Name: name, Schema: s})
	}
	return out, nil
}

// UnmarshalJSON decodes a payload from a JSON object, keeping the source
// order of definitions and keyed union variants.
func (p *Payload) UnmarshalJSON(data []byte) error {
	keys, values, err := orderedObject(data)
	if err != nil {
		return malformed("payload", err.Error())
	}

	out := Payload{Schema: spec.Schema{}}
	for i, key := range keys {
		raw := values[i]
		switch {
		case isDefinitionsKey(key):
			defs, err := namedFromJSON(key, raw)
			if err != nil {
				return err
			}
			out.Definitions = append(out.Definitions, defs...)
		case key == "oneOf" && isJSONObject(raw):
			variants, err := namedFromJSON(key, raw)
			if err != nil {
				return err
			}
			out.Variants = variants
		default:
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("descriptor: payload key %q: %w", key, err)
			}
			out.Schema[key] = v
		}
	}
	*p = out
	return nil
}

func namedFromJSON(field string, raw json.RawMessage) ([]NamedSchema, error) {
	names, bodies, err := orderedObject(raw)
	if err != nil {
		return nil, malformed(field, err.Error())
	}
	out := make([]NamedSchema, 0, len(names))
	for i, name := range names {
		if !isJSONObject(bodies[i]) {
			return nil, malformed(field, fmt.Sprintf("entry %q is not an object", name))
		}
		var s spec.Schema
		if err := json.Unmarshal(bodies[i], &s); err != nil {
			return nil, fmt.Errorf("descriptor: %s entry %q: %w", field, name, err)
		}
		out = append(out, NamedSchema{Name: name, Schema: s})
	}
	return out, nil
}

// orderedObject splits a JSON object into its keys and raw values, in
// source order.
func orderedObject(data []byte) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object")
	}
	var (
		keys   []string
		values []json.RawMessage
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values = append(values, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isDefinitionsKey(k string) bool {
	return k == DefsKey || k == DefinitionsKey
}

func malformed(field, msg string) error {
	return &specerrors.MalformedDescriptorError{Field: field, Message: msg}
}
