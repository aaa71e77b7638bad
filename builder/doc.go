// Package builder assembles AsyncAPI 3.0 documents from broker endpoint
// descriptors.
//
// A broker (see package descriptor) exposes its connection URLs, shared
// connection metadata and the publishers and subscribers registered on it.
// Each endpoint describes the channels it uses as [descriptor.ChannelSpec]
// values. The builder turns those into one self-contained document with
// servers, channels, operations and a deduplicated components section.
//
// # Quick Start
//
//	reg := descriptor.NewRegistry(descriptor.BrokerMetadata{Protocol: "amqp"},
//		"amqp://localhost:5672/")
//	reg.AddPublisher(descriptor.Static{{
//		Name: "orders",
//		Publish: &descriptor.OperationSpec{Message: &descriptor.MessageSpec{
//			Title:   "orders:Message",
//			Payload: descriptor.SchemaPayload(spec.Schema{"title": "Order", "type": "object"}),
//		}},
//	}})
//
//	result, err := builder.New(builder.WithTitle("Orders")).Build(ctx, reg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := result.Document.ToYAML()
//
// # Assembly Order
//
// Build runs the broker's Setup, then:
//
//  1. builds one server per URL ("development" for a single URL,
//     "Server1".."ServerN" otherwise);
//  2. builds channels from subscribers first, then publishers;
//  3. builds one operation per channel side;
//  4. attaches every server to every channel;
//  5. resolves every message payload into components;
//  6. assembles the document.
//
// # Keys
//
// Channel, message and schema keys are normalized with the same function:
// "/", "#", "~" and whitespace become ".", so keys are always usable as
// JSON Pointer segments. Receive operations are keyed "<channel>Subscribe"
// and carry the in-channel message "SubscribeMessage"; send operations are
// keyed "<channel>" and carry "Message".
//
// # Payloads
//
// Payload schemas never appear inline in the output. Shared definitions
// ("$defs" or "definitions") are hoisted into components.schemas and every
// reference to them is rewritten. A keyed union payload becomes a "oneOf"
// list of references, one per variant, in the order the variants were
// declared.
//
// # Collisions
//
// Component keys are shared across the whole document. When two messages
// or schemas normalize to the same key with different content, the later
// one wins and the collision is reported in [Result.Collisions] and
// logged at warn level. [WithStrictCollisions] turns collisions into
// errors.
//
// # Errors
//
// Build fails fast. Malformed descriptors produce a [*BuilderError] that
// matches [specerrors.ErrDescriptor] and wraps a
// [*specerrors.MalformedDescriptorError]; a failed broker setup wraps a
// [*specerrors.SetupError].
package builder
