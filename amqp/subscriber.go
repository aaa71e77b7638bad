package amqp

import (
	"strings"

	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/payload"
	"github.com/erraggy/asyncspec/spec"
)

// Subscriber describes a RabbitMQ consumer.
type Subscriber struct {
	Queue       Queue
	Exchange    Exchange
	VirtualHost string

	// CallName names the consuming handler. It defaults to the handler
	// names joined with "_".
	CallName string
	// Title overrides the generated channel name.
	Title       string
	Description string
	// Handlers are the functions consuming from the queue, with the
	// payload each accepts.
	Handlers []payload.Source
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

// Name returns the channel name.
func (s *Subscriber) Name() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Queue.Name + ":" + orUnderscore(s.Exchange.Name) + ":" + orUnderscore(s.callName())
}

// Schema implements descriptor.Endpoint.
func (s *Subscriber) Schema() []descriptor.ChannelSpec {
	if s.Hidden {
		return nil
	}
	name := s.Name()

	op := &descriptor.OperationSpec{
		Message: &descriptor.MessageSpec{
			Title:         name + ":Message",
			Payload:       payload.ResolvePayloads(s.Handlers, "", 1),
			CorrelationID: correlationID(),
		},
	}
	if s.Exchange.IsRouting() {
		ack := true
		b := &spec.AMQPOperationBinding{Ack: &ack, BindingVersion: spec.AMQPBindingVersion}
		if r := s.Queue.Routing(); r != "" {
			b.CC = []string{r}
		}
		op.Bindings = &spec.OperationBindings{AMQP: b}
	}

	return []descriptor.ChannelSpec{{
		Name:        name,
		Description: s.Description,
		Bindings:    channelBindings(s.Queue, s.Exchange, virtualHost(s.VirtualHost)),
		Subscribe:   op,
	}}
}
