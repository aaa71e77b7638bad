// Package spec defines the AsyncAPI 3.0 document model produced by the
// assembler.
//
// A [Document] is the fully cross-referenced output: channels and
// operations point at components through [Reference] values, message
// payloads are a [MessagePayload] (a single "$ref" or a "oneOf" list of
// refs), and every schema body lives once under [Components].Schemas.
//
// Schema bodies are kept as [Schema] maps. The assembler never interprets
// them beyond "$ref" rewriting and definition hoisting.
//
// # Bindings
//
// Transport bindings are a closed set of variants ([ChannelBindings],
// [OperationBindings], [MessageBindings]) covering AMQP, Kafka, NATS and
// Redis. They pass through assembly unchanged.
//
// # Serialization
//
// [Document.Marshal] emits JSON or YAML with map keys in sorted order, so
// two equal documents serialize to identical bytes.
//
// # Reference Integrity
//
// [Document.CheckReferences] reports every local "$ref" whose target is
// missing:
//
//	if errs := doc.CheckReferences(); len(errs) > 0 {
//	    return errors.Join(errs...)
//	}
package spec
