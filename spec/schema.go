package spec

// CloneSchema returns a deep copy of s. Nested maps and slices are copied;
// scalar values are shared.
func CloneSchema(s Schema) Schema {
	if s == nil {
		return nil
	}
	return cloneValue(s).(Schema)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// SchemaTitle returns the string "title" keyword of s, if any.
func SchemaTitle(s Schema) (string, bool) {
	title, ok := s["title"].(string)
	return title, ok && title != ""
}
