package descriptor

import (
	"context"

	"github.com/erraggy/asyncspec/spec"
)

// Broker is the message broker the document describes.
type Broker interface {
	// Setup performs any lazy setup the broker needs before its endpoints
	// can be described. It may block.
	Setup(ctx context.Context) error
	// URLs returns the broker connection URLs, in order.
	URLs() []string
	// Metadata returns the connection metadata shared by every server.
	Metadata() BrokerMetadata
	// Subscribers returns the consuming endpoints, in registration order.
	Subscribers() []Endpoint
	// Publishers returns the producing endpoints, in registration order.
	Publishers() []Endpoint
}

// BrokerMetadata is copied onto every server record.
type BrokerMetadata struct {
	Protocol        string
	ProtocolVersion string
	Description     string
	Tags            []*spec.Tag
	// Security is optional.
	Security Security
}

// Security describes how clients authenticate to the broker.
type Security interface {
	// SchemeFragment returns the security schemes, keyed by scheme name.
	SchemeFragment() map[string]*spec.SecurityScheme
	// Requirement returns the schemes a server requires.
	Requirement() []spec.SecurityRequirement
}

// Endpoint is a publisher or subscriber.
type Endpoint interface {
	// Schema returns the channels this endpoint participates in.
	// An endpoint hidden from documentation returns nil.
	Schema() []ChannelSpec
}

// EndpointFunc adapts a function to the Endpoint interface.
type EndpointFunc func() []ChannelSpec

// Schema calls f.
func (f EndpointFunc) Schema() []ChannelSpec { return f() }

// Static is an Endpoint with a fixed list of channel specs.
type Static []ChannelSpec

// Schema returns the channel specs.
func (s Static) Schema() []ChannelSpec { return s }
