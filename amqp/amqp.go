package amqp

import (
	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/spec"
)

// Broker metadata for RabbitMQ.
const (
	Protocol        = "amqp"
	ProtocolVersion = "0.9.1"
)

// CorrelationIDLocation is where AMQP messages carry their correlation id.
const CorrelationIDLocation = "$message.header#/correlation_id"

// DefaultVirtualHost is used when no virtual host is configured.
const DefaultVirtualHost = "/"

// ExchangeType is an AMQP exchange type.
type ExchangeType string

// Exchange types.
const (
	ExchangeDirect  ExchangeType = "direct"
	ExchangeFanout  ExchangeType = "fanout"
	ExchangeTopic   ExchangeType = "topic"
	ExchangeHeaders ExchangeType = "headers"
)

// Exchange is a RabbitMQ exchange. The zero value is the default
// exchange.
type Exchange struct {
	Name       string
	Type       ExchangeType
	Durable    bool
	AutoDelete bool
}

// kind returns the exchange type, direct when unset.
func (e Exchange) kind() ExchangeType {
	if e.Type == "" {
		return ExchangeDirect
	}
	return e.Type
}

// IsRouting reports whether messages are routed by routing key: the
// default, direct and topic exchanges.
func (e Exchange) IsRouting() bool {
	k := e.kind()
	return k == ExchangeDirect || k == ExchangeTopic
}

// Queue is a RabbitMQ queue.
type Queue struct {
	Name       string
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	// RoutingKey binds the queue to its exchange. It defaults to the
	// queue name.
	RoutingKey string
}

// Routing returns the routing key the queue is bound with.
func (q Queue) Routing() string {
	if q.RoutingKey != "" {
		return q.RoutingKey
	}
	return q.Name
}

// NewRegistry creates a RabbitMQ broker description.
func NewRegistry(security descriptor.Security, urls ...string) *descriptor.Registry {
	return descriptor.NewRegistry(descriptor.BrokerMetadata{
		Protocol:        Protocol,
		ProtocolVersion: ProtocolVersion,
		Security:        security,
	}, urls...)
}

// channelBindings builds the AMQP channel binding shared by publishers and
// subscribers.
func channelBindings(q Queue, e Exchange, vhost string) *spec.ChannelBindings {
	b := &spec.AMQPChannelBinding{Is: "routingKey", BindingVersion: spec.AMQPBindingVersion}
	if e.IsRouting() && q.Name != "" {
		b.Queue = &spec.AMQPQueue{
			Name:       q.Name,
			Durable:    q.Durable,
			Exclusive:  q.Exclusive,
			AutoDelete: q.AutoDelete,
			VHost:      vhost,
		}
	}
	if e.Name == "" {
		b.Exchange = &spec.AMQPExchange{Type: "default", VHost: vhost}
	} else {
		b.Exchange = &spec.AMQPExchange{
			Name:       e.Name,
			Type:       string(e.kind()),
			Durable:    &e.Durable,
			AutoDelete: &e.AutoDelete,
			VHost:      vhost,
		}
	}
	return &spec.ChannelBindings{AMQP: b}
}

func orUnderscore(s string) string {
	if s == "" {
		return "_"
	}
	return s
}

func virtualHost(v string) string {
	if v == "" {
		return DefaultVirtualHost
	}
	return v
}

func correlationID() *spec.CorrelationID {
	return &spec.CorrelationID{Location: CorrelationIDLocation}
}
