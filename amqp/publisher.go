package amqp

import (
	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/payload"
	"github.com/erraggy/asyncspec/spec"
)

// Publisher describes a RabbitMQ publisher.
type Publisher struct {
	// RoutingKey is the key messages are published with. It falls back to
	// the queue's routing key on routing exchanges.
	RoutingKey  string
	Queue       Queue
	Exchange    Exchange
	VirtualHost string

	// Publish settings reflected in the operation binding.
	Persist   bool
	Mandatory *bool
	ReplyTo   string
	Priority  *int

	// Title overrides the generated channel name.
	Title       string
	Description string
	// Payloads are the message bodies the publisher sends, one per
	// producing handler.
	Payloads []payload.Source
	// Hidden excludes the publisher from the document.
	Hidden bool
}

var _ descriptor.Endpoint = (*Publisher)(nil)

// routing returns the effective routing key.
func (p *Publisher) routing() string {
	if p.RoutingKey != "" {
		return p.RoutingKey
	}
	return p.Queue.Routing()
}

// Name returns the channel name.
func (p *Publisher) Name() string {
	if p.Title != "" {
		return p.Title
	}
	routing := p.RoutingKey
	if routing == "" && p.Exchange.IsRouting() {
		routing = p.Queue.Routing()
	}
	return orUnderscore(routing) + ":" + orUnderscore(p.Exchange.Name) + ":Publisher"
}

// Schema implements descriptor.Endpoint.
func (p *Publisher) Schema() []descriptor.ChannelSpec {
	if p.Hidden {
		return nil
	}
	name := p.Name()
	vhost := virtualHost(p.VirtualHost)

	served := 2
	if p.Title != "" {
		served = 1
	}

	op := &descriptor.OperationSpec{
		Message: &descriptor.MessageSpec{
			Title:         name + ":Message",
			Payload:       payload.ResolvePayloads(p.Payloads, "Publisher", served),
			CorrelationID: correlationID(),
		},
	}
	if p.Exchange.IsRouting() {
		b := &spec.AMQPOperationBinding{
			DeliveryMode:   1,
			Mandatory:      p.Mandatory,
			ReplyTo:        p.ReplyTo,
			Priority:       p.Priority,
			BindingVersion: spec.AMQPBindingVersion,
		}
		if r := p.routing(); r != "" {
			b.CC = []string{r}
		}
		if p.Persist {
			b.DeliveryMode = 2
		}
		op.Bindings = &spec.OperationBindings{AMQP: b}
	}

	return []descriptor.ChannelSpec{{
		Name:        name,
		Description: p.Description,
		Bindings:    channelBindings(p.Queue, p.Exchange, vhost),
		Publish:     op,
	}}
}
