// Package descriptor defines the contracts the assembler reads endpoint
// descriptors through.
//
// A [Broker] owns an ordered list of subscriber and publisher [Endpoint]s
// and the connection metadata shared by every server record. Each endpoint
// describes the channels it participates in as an ordered slice of
// [ChannelSpec] values; a channel spec carries at most one publish and one
// subscribe [OperationSpec], each with a [MessageSpec].
//
// Message payloads are a typed [Payload]: a schema body, an ordered list of
// shared definitions, and, for polymorphic messages, an ordered list of
// named union variants. The keyed "oneOf" mapping form that JSON Schema
// generators emit is only accepted at the decoding boundary
// ([Payload.UnmarshalYAML], [Payload.UnmarshalJSON], [PayloadFromSchema]).
//
// [Registry] is an in-memory Broker for callers that assemble descriptors
// by hand, from a manifest, or in tests.
package descriptor
