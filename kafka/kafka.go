// Package kafka describes Kafka producers and consumers as endpoint
// descriptors.
//
// A [Publisher] is one channel named "<topic>:Publisher". A [Subscriber]
// contributes one channel per topic it reads, named "<topic>:<handler>",
// with its consumer group recorded in the operation binding.
package kafka

import (
	"strings"

	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/payload"
	"github.com/erraggy/asyncspec/spec"
)

// Broker metadata for Kafka.
const (
	Protocol        = "kafka"
	ProtocolVersion = "auto"
)

// CorrelationIDLocation is where Kafka messages carry their correlation id.
const CorrelationIDLocation = "$message.header#/correlation_id"

// NewRegistry creates a Kafka broker description. Bootstrap servers are
// usually given without a scheme ("localhost:9092").
func NewRegistry(security descriptor.Security, bootstrapServers ...string) *descriptor.Registry {
	return descriptor.NewRegistry(descriptor.BrokerMetadata{
		Protocol:        Protocol,
		ProtocolVersion: ProtocolVersion,
		Security:        security,
	}, bootstrapServers...)
}

// Publisher describes a Kafka producer.
type Publisher struct {
	Topic string
	// Title overrides the generated channel name.
	Title       string
	Description string
	Payloads    []payload.Source
	// Hidden excludes the publisher from the document.
	Hidden bool
}

var _ descriptor.Endpoint = (*Publisher)(nil)

// Name returns the channel name.
func (p *Publisher) Name() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Topic + ":Publisher"
}

// Schema implements descriptor.Endpoint.
func (p *Publisher) Schema() []descriptor.ChannelSpec {
	if p.Hidden {
		return nil
	}
	name := p.Name()
	return []descriptor.ChannelSpec{{
		Name:        name,
		Description: p.Description,
		Bindings:    topicBinding(p.Topic),
		Publish: &descriptor.OperationSpec{
			Message: &descriptor.MessageSpec{
				Title:         name + ":Message",
				Payload:       payload.ResolvePayloads(p.Payloads, "Publisher", 1),
				CorrelationID: &spec.CorrelationID{Location: CorrelationIDLocation},
			},
		},
	}}
}

// Subscriber describes a Kafka consumer reading one or more topics.
type Subscriber struct {
	Topics  []string
	GroupID string
	// CallName names the consuming handler. It defaults to the handler
	// names joined with "_".
	CallName string
	// Title overrides the generated channel names. Every topic then maps to
	// the same channel.
	Title       string
	Description string
	Handlers    []payload.Source
	// Hidden excludes the subscriber from the document.
	Hidden bool
}

var _ descriptor.Endpoint = (*Subscriber)(nil)

func (s *Subscriber) callName() string {
	if s.CallName != "" {
		return s.CallName
	}
	names := make([]string, 0, len(s.Handlers))
	for _, h := range s.Handlers {
		if h.Handler != "" {
			names = append(names, h.Handler)
		}
	}
	return strings.Join(names, "_")
}

// ChannelName returns the channel name for one topic.
func (s *Subscriber) ChannelName(topic string) string {
	if s.Title != "" {
		return s.Title
	}
	return topic + ":" + s.callName()
}

// Schema implements descriptor.Endpoint.
func (s *Subscriber) Schema() []descriptor.ChannelSpec {
	if s.Hidden {
		return nil
	}
	resolved := payload.ResolvePayloads(s.Handlers, "", 1)

	var opBindings *spec.OperationBindings
	if s.GroupID != "" {
		opBindings = &spec.OperationBindings{Kafka: &spec.KafkaOperationBinding{
			GroupID:        spec.Schema{"type": "string", "enum": []any{s.GroupID}},
			BindingVersion: spec.KafkaBindingVersion,
		}}
	}

	specs := make([]descriptor.ChannelSpec, 0, len(s.Topics))
	for _, topic := range s.Topics {
		name := s.ChannelName(topic)
		specs = append(specs, descriptor.ChannelSpec{
			Name:        name,
			Description: s.Description,
			Bindings:    topicBinding(topic),
			Subscribe: &descriptor.OperationSpec{
				Bindings: opBindings,
				Message: &descriptor.MessageSpec{
					Title:         name + ":Message",
					Payload:       resolved,
					CorrelationID: &spec.CorrelationID{Location: CorrelationIDLocation},
				},
			},
		})
	}
	return specs
}

func topicBinding(topic string) *spec.ChannelBindings {
	return &spec.ChannelBindings{Kafka: &spec.KafkaChannelBinding{
		Topic:          topic,
		BindingVersion: spec.KafkaBindingVersion,
	}}
}
