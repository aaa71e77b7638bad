package payload

import (
	"encoding/json"
	"fmt"
	"maps"
	"path"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/internal/naming"
	"github.com/erraggy/asyncspec/internal/pathutil"
	"github.com/erraggy/asyncspec/spec"
	"github.com/erraggy/asyncspec/specerrors"
)

var (
	timeType       = reflect.TypeFor[time.Time]()
	uuidType       = reflect.TypeFor[uuid.UUID]()
	rawMessageType = reflect.TypeFor[json.RawMessage]()
)

// For generates a payload descriptor from the type of v.
//
// A named struct becomes the payload schema itself, titled with the type
// name; every named struct reachable from it is emitted once as a shared
// definition. A nil v yields an empty payload.
func For(v any) (descriptor.Payload, error) {
	if v == nil {
		return descriptor.Payload{}, nil
	}
	return ForType(reflect.TypeOf(v))
}

// MustFor is like For but panics if the type cannot be described. It is
// meant for descriptor declarations built at package initialization.
func MustFor(v any) descriptor.Payload {
	p, err := For(v)
	if err != nil {
		panic(err)
	}
	return p
}

// ForType is like For but takes a reflect.Type.
func ForType(t reflect.Type) (descriptor.Payload, error) {
	if t == nil {
		return descriptor.Payload{}, nil
	}
	g := &generator{cache: newSchemaCache()}

	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	var schema spec.Schema
	var err error
	if isNamedStruct(base) {
		g.root = base
		schema, err = g.namedStruct(base)
	} else {
		schema, err = g.schemaFor(t)
	}
	if err != nil {
		return descriptor.Payload{}, err
	}

	p := descriptor.Payload{Schema: schema}
	for _, dt := range g.cache.order {
		if dt == g.root && !g.rootReferenced {
			continue
		}
		p.Definitions = append(p.Definitions, descriptor.NamedSchema{
			Name:   g.cache.nameFor(dt),
			Schema: spec.CloneSchema(g.cache.get(dt)),
		})
	}
	return p, nil
}

// generator holds the state of one For call.
type generator struct {
	cache          *schemaCache
	root           reflect.Type
	rootReferenced bool
}

// schemaFor generates the schema for a field, element or top-level type.
// Named structs are returned as references.
func (g *generator) schemaFor(t reflect.Type) (spec.Schema, error) {
	nullable := false
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
		nullable = true
	}

	schema, err := g.valueSchema(t)
	if err != nil {
		return nil, err
	}
	if nullable {
		schema = makeNullable(schema)
	}
	return schema, nil
}

func (g *generator) valueSchema(t reflect.Type) (spec.Schema, error) {
	if s := specialTypeSchema(t); s != nil {
		return s, nil
	}

	switch t.Kind() {
	case reflect.Struct:
		if !isNamedStruct(t) {
			return g.structBody(t)
		}
		if g.cache.get(t) == nil && !g.cache.isInProgress(t) {
			if _, err := g.namedStruct(t); err != nil {
				return nil, err
			}
		}
		if t == g.root {
			g.rootReferenced = true
		}
		return refTo(g.cache.nameFor(t)), nil

	case reflect.Slice, reflect.Array:
		items, err := g.schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return spec.Schema{"type": "array", "items": items}, nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, unsupported(t, "map keys must be strings")
		}
		values, err := g.schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return spec.Schema{"type": "object", "additionalProperties": values}, nil

	default:
		return primitiveSchema(t)
	}
}

// namedStruct generates, names and caches a named struct type, returning
// its body.
func (g *generator) namedStruct(t reflect.Type) (spec.Schema, error) {
	if s := g.cache.get(t); s != nil {
		return s, nil
	}
	name := g.nameWithConflictCheck(t)
	g.cache.reserve(t, name)
	g.cache.markInProgress(t)
	defer g.cache.clearInProgress(t)

	body, err := g.structBody(t)
	if err != nil {
		return nil, err
	}
	body["title"] = name
	g.cache.set(t, body)
	return body, nil
}

// structBody reflects on a struct type to generate an object schema.
func (g *generator) structBody(t reflect.Type) (spec.Schema, error) {
	properties := make(map[string]any)
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			if err := g.mergeEmbedded(field, properties, &required); err != nil {
				return nil, err
			}
			continue
		}
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, jsonOpts := parseJSONTag(jsonTag)
		if name == "" {
			name = field.Name
		}

		fieldSchema, err := g.schemaFor(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
		}
		if tag := field.Tag.Get(TagName); tag != "" {
			fieldSchema = applyTag(fieldSchema, tag)
		}
		properties[name] = fieldSchema

		if isFieldRequired(field, jsonOpts) {
			required = append(required, name)
		}
	}

	schema := spec.Schema{"type": "object", "properties": properties}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema, nil
}

// mergeEmbedded inlines the properties of an embedded struct. Fields
// declared on the outer struct win.
func (g *generator) mergeEmbedded(field reflect.StructField, properties map[string]any, required *[]string) error {
	et := field.Type
	for et.Kind() == reflect.Pointer {
		et = et.Elem()
	}
	if et.Kind() != reflect.Struct || specialTypeSchema(et) != nil {
		return nil
	}
	if field.Tag.Get("json") != "" {
		// A tagged embedded struct is encoded as a named field.
		return nil
	}

	body, err := g.structBody(et)
	if err != nil {
		return err
	}
	props, _ := body["properties"].(map[string]any)
	for name, s := range props {
		if _, exists := properties[name]; !exists {
			properties[name] = s
		}
	}
	reqs, _ := body["required"].([]string)
	for _, r := range reqs {
		if !slices.Contains(*required, r) {
			*required = append(*required, r)
		}
	}
	return nil
}

// nameWithConflictCheck names t after its Go type. A different type that
// already holds the name gets its package name prefixed.
func (g *generator) nameWithConflictCheck(t reflect.Type) string {
	name := typeName(t)
	existing := g.cache.typeFor(name)
	if existing == nil || existing == t {
		return name
	}
	qualified := naming.ToPascalCase(path.Base(t.PkgPath())) + name
	candidate := qualified
	for i := 2; ; i++ {
		existing = g.cache.typeFor(candidate)
		if existing == nil || existing == t {
			return candidate
		}
		candidate = qualified + strconv.Itoa(i)
	}
}

// typeName returns a schema-friendly name for a named type.
// Generic instantiations such as Page[example.com/app.Order] become
// "PageOrder".
func typeName(t reflect.Type) string {
	name := t.Name()
	base, args, generic := strings.Cut(name, "[")
	if !generic {
		return name
	}
	var sb strings.Builder
	sb.WriteString(base)
	for _, arg := range strings.Split(strings.TrimSuffix(args, "]"), ",") {
		arg = strings.TrimLeft(strings.TrimSpace(arg), "*[]")
		if i := strings.LastIndexAny(arg, "./"); i >= 0 {
			arg = arg[i+1:]
		}
		sb.WriteString(naming.ToPascalCase(arg))
	}
	return sb.String()
}

func isNamedStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.Name() != "" && specialTypeSchema(t) == nil
}

// specialTypeSchema handles types with a well-known string encoding.
func specialTypeSchema(t reflect.Type) spec.Schema {
	switch {
	case t == timeType:
		return spec.Schema{"type": "string", "format": "date-time"}
	case t == uuidType, t.String() == "uuid.UUID":
		return spec.Schema{"type": "string", "format": "uuid"}
	case t == rawMessageType:
		return spec.Schema{}
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		return spec.Schema{"type": "string", "contentEncoding": "base64"}
	}
	return nil
}

// primitiveSchema generates a schema for primitive types.
func primitiveSchema(t reflect.Type) (spec.Schema, error) {
	switch t.Kind() {
	case reflect.String:
		return spec.Schema{"type": "string"}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return spec.Schema{"type": "integer", "format": "int32"}, nil

	case reflect.Int64, reflect.Uint64:
		return spec.Schema{"type": "integer", "format": "int64"}, nil

	case reflect.Float32:
		return spec.Schema{"type": "number", "format": "float"}, nil

	case reflect.Float64:
		return spec.Schema{"type": "number", "format": "double"}, nil

	case reflect.Bool:
		return spec.Schema{"type": "boolean"}, nil

	case reflect.Interface:
		// any accepts anything
		return spec.Schema{}, nil
	}
	return nil, unsupported(t, "kind "+t.Kind().String()+" has no JSON representation")
}

// makeNullable widens schema to also accept null.
func makeNullable(schema spec.Schema) spec.Schema {
	if len(schema) == 0 {
		return schema
	}
	if _, isRef := schema["$ref"]; isRef {
		return spec.Schema{"anyOf": []any{schema, spec.Schema{"type": "null"}}}
	}
	if typ, ok := schema["type"].(string); ok {
		out := maps.Clone(schema)
		out["type"] = []any{typ, "null"}
		return out
	}
	return spec.Schema{"anyOf": []any{schema, spec.Schema{"type": "null"}}}
}

func refTo(name string) spec.Schema {
	return spec.Schema{"$ref": pathutil.RefPrefixDefs + name}
}

func unsupported(t reflect.Type, msg string) error {
	return &specerrors.MalformedDescriptorError{
		Field:   "payload",
		Message: fmt.Sprintf("type %s: %s", t, msg),
	}
}
