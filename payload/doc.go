// Package payload generates message payload descriptors.
//
// [For] reflects on a Go type and produces a [descriptor.Payload] whose
// schema is a JSON Schema object. Named struct types become objects with a
// "title"; structs nested inside them are emitted as shared definitions and
// referenced with "#/$defs/<Name>", which the assembler later hoists into
// components.schemas.
//
// Type mappings:
//   - string → string
//   - int, int8..int32, uint..uint32 → integer (format: int32)
//   - int64, uint64 → integer (format: int64)
//   - float32 → number (format: float)
//   - float64 → number (format: double)
//   - bool → boolean
//   - []byte → string (contentEncoding: base64)
//   - []T, [N]T → array (items from T)
//   - map[string]T → object (additionalProperties from T)
//   - struct → object (properties from exported fields)
//   - *T → schema of T, nullable
//   - time.Time → string (format: date-time)
//   - uuid.UUID → string (format: uuid)
//
// # Struct Tags
//
// Field names follow the "json" tag. The "asyncapi" tag customizes the
// generated property:
//
//	type Order struct {
//		ID     string `json:"id" asyncapi:"format=uuid,description=Order identifier"`
//		Status string `json:"status" asyncapi:"enum=new|paid|shipped"`
//		Note   string `json:"note,omitempty" asyncapi:"maxLength=200"`
//	}
//
// Non-pointer fields without omitempty are required unless the tag says
// required=false.
//
// # Multiple Handlers
//
// When several handlers share one channel, [ResolvePayloads] merges their
// payloads into a keyed union with one variant per handler.
package payload
