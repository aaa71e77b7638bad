package payload

import (
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/asyncspec/spec"
)

// TagName is the struct tag read by the generator.
const TagName = "asyncapi"

// parseJSONTag parses a struct field's json tag.
// Returns the field name and options (like "omitempty").
func parseJSONTag(tag string) (name string, opts []string) {
	if tag == "" {
		return "", nil
	}

	parts := strings.Split(tag, ",")
	name = parts[0]
	if len(parts) > 1 {
		opts = parts[1:]
	}
	return name, opts
}

// isFieldRequired determines if a struct field should be marked as required.
// Rules:
//  1. Fields with asyncapi:"required=true" are explicitly required
//  2. Fields with asyncapi:"required=false" are explicitly optional
//  3. Pointer fields are optional by default
//  4. Non-pointer fields without omitempty are required
func isFieldRequired(field reflect.StructField, jsonOpts []string) bool {
	if tag := field.Tag.Get(TagName); tag != "" {
		if val, ok := parseTag(tag)["required"]; ok {
			return val == "true"
		}
	}

	if field.Type.Kind() == reflect.Pointer {
		return false
	}

	return !slices.Contains(jsonOpts, "omitempty")
}

// parseTag parses the asyncapi struct tag into a map of key-value pairs.
// Supports formats like: asyncapi:"description=Order ID,minLength=1,maxLength=100"
func parseTag(tag string) map[string]string {
	result := make(map[string]string)
	if tag == "" {
		return result
	}

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if idx := strings.Index(part, "="); idx > 0 {
			result[strings.TrimSpace(part[:idx])] = strings.TrimSpace(part[idx+1:])
		} else {
			// Boolean flags (e.g., "deprecated" without =true)
			result[part] = "true"
		}
	}

	return result
}

// applyTag applies asyncapi tag options to a schema.
// Returns a new schema with the tag options applied.
func applyTag(schema spec.Schema, tag string) spec.Schema {
	opts := parseTag(tag)
	delete(opts, "required")
	if len(opts) == 0 {
		return schema
	}

	result := maps.Clone(schema)
	if result == nil {
		result = spec.Schema{}
	}
	for key, value := range opts {
		switch key {
		case "description", "format", "pattern", "title":
			result[key] = value

		case "enum":
			values := strings.Split(value, "|")
			enum := make([]any, len(values))
			for i, v := range values {
				enum[i] = parseValue(strings.TrimSpace(v), result["type"])
			}
			result["enum"] = enum

		case "minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				result[key] = f
			}

		case "minLength", "maxLength", "minItems", "maxItems":
			if n, err := strconv.Atoi(value); err == nil {
				result[key] = n
			}

		case "readOnly", "writeOnly", "deprecated":
			result[key] = value == "true"

		case "example":
			result["examples"] = []any{parseValue(value, result["type"])}

		case "default":
			result["default"] = parseValue(value, result["type"])
		}
	}

	return result
}

// parseValue attempts to parse a tag value string based on the schema type.
func parseValue(value string, schemaType any) any {
	typeStr, ok := schemaType.(string)
	if !ok {
		return value
	}

	switch typeStr {
	case "integer":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	case "number":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case "boolean":
		return value == "true"
	}

	return value
}
