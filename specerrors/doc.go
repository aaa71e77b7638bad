// Package specerrors provides structured error types for asyncspec.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to tell a broken endpoint descriptor apart
// from a bad manifest or a dangling reference in a generated document.
//
// # Error Categories
//
//   - MalformedDescriptorError: an endpoint descriptor violates the assembly
//     contract (missing message title, malformed polymorphic union)
//   - ReferenceError: a local $ref in a generated document does not resolve
//   - ParseError: manifest YAML/JSON decoding failures
//   - ConfigError: invalid options or runtime configuration
//   - SetupError: the broker could not finish its lazy setup
//
// # Usage with errors.Is
//
//	result, err := builder.New().Build(ctx, broker)
//	if errors.Is(err, specerrors.ErrDescriptor) {
//	    // an endpoint is misconfigured; no document was produced
//	}
//
// # Usage with errors.As
//
//	var mde *specerrors.MalformedDescriptorError
//	if errors.As(err, &mde) {
//	    log.Printf("fix channel %s, message %s", mde.Channel, mde.Title)
//	}
package specerrors
