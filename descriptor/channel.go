package descriptor

import "github.com/erraggy/asyncspec/spec"

// ChannelSpec is one channel an endpoint participates in.
type ChannelSpec struct {
	// Name is the raw channel name, used as the channel address.
	Name        string
	Description string
	Bindings    *spec.ChannelBindings
	// Publish is set when the application sends on the channel.
	Publish *OperationSpec
	// Subscribe is set when the application receives from the channel.
	Subscribe *OperationSpec
}

// OperationSpec describes a send or receive operation.
type OperationSpec struct {
	Summary     string
	Description string
	Bindings    *spec.OperationBindings
	Message     *MessageSpec
}

// MessageSpec describes the message carried by an operation.
type MessageSpec struct {
	// Title is required; it names the message component.
	Title         string
	Summary       string
	Description   string
	ContentType   string
	Payload       Payload
	CorrelationID *spec.CorrelationID
	Bindings      *spec.MessageBindings
	Tags          []*spec.Tag
}
