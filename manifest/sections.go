package manifest

import (
	"fmt"
	"os"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncspec/amqp"
	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/kafka"
	"github.com/erraggy/asyncspec/payload"
	"github.com/erraggy/asyncspec/security"
	"github.com/erraggy/asyncspec/spec"
	"github.com/erraggy/asyncspec/specerrors"
)

// SourceEntry is one handler and the payload it handles.
type SourceEntry struct {
	Handler string             `yaml:"handler"`
	Payload descriptor.Payload `yaml:"payload"`
}

// AMQPSection lists RabbitMQ endpoints.
type AMQPSection struct {
	VirtualHost string           `yaml:"virtualHost"`
	Publishers  []AMQPPublisher  `yaml:"publishers"`
	Subscribers []AMQPSubscriber `yaml:"subscribers"`
}

// AMQPQueue is a queue declaration.
type AMQPQueue struct {
	Name       string `yaml:"name"`
	Durable    bool   `yaml:"durable"`
	Exclusive  bool   `yaml:"exclusive"`
	AutoDelete bool   `yaml:"autoDelete"`
	RoutingKey string `yaml:"routingKey"`
}

// AMQPExchange is an exchange declaration.
type AMQPExchange struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"autoDelete"`
}

// AMQPPublisher is a RabbitMQ publisher entry.
type AMQPPublisher struct {
	RoutingKey  string        `yaml:"routingKey"`
	Queue       AMQPQueue     `yaml:"queue"`
	Exchange    AMQPExchange  `yaml:"exchange"`
	VirtualHost string        `yaml:"virtualHost"`
	Persist     bool          `yaml:"persist"`
	Mandatory   *bool         `yaml:"mandatory"`
	ReplyTo     string        `yaml:"replyTo"`
	Priority    *int          `yaml:"priority"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Payloads    []SourceEntry `yaml:"payloads"`
	Hidden      bool          `yaml:"hidden"`
}

// AMQPSubscriber is a RabbitMQ subscriber entry.
type AMQPSubscriber struct {
	Queue       AMQPQueue     `yaml:"queue"`
	Exchange    AMQPExchange  `yaml:"exchange"`
	VirtualHost string        `yaml:"virtualHost"`
	CallName    string        `yaml:"callName"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Handlers    []SourceEntry `yaml:"handlers"`
	Hidden      bool          `yaml:"hidden"`
}

// KafkaSection lists Kafka endpoints.
type KafkaSection struct {
	Publishers  []KafkaPublisher  `yaml:"publishers"`
	Subscribers []KafkaSubscriber `yaml:"subscribers"`
}

// KafkaPublisher is a Kafka producer entry.
type KafkaPublisher struct {
	Topic       string        `yaml:"topic"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Payloads    []SourceEntry `yaml:"payloads"`
	Hidden      bool          `yaml:"hidden"`
}

// KafkaSubscriber is a Kafka consumer entry.
type KafkaSubscriber struct {
	Topics      []string      `yaml:"topics"`
	GroupID     string        `yaml:"groupId"`
	CallName    string        `yaml:"callName"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Handlers    []SourceEntry `yaml:"handlers"`
	Hidden      bool          `yaml:"hidden"`
}

// Endpoint roles.
const (
	RolePublisher  = "publisher"
	RoleSubscriber = "subscriber"
)

// EndpointEntry is a generic endpoint given as literal channel specs.
type EndpointEntry struct {
	Role     string         `yaml:"role"`
	Channels []ChannelEntry `yaml:"channels"`
	line     int
}

// UnmarshalYAML records the source line.
func (e *EndpointEntry) UnmarshalYAML(node *yaml.Node) error {
	type plain EndpointEntry
	if err := node.Decode((*plain)(e)); err != nil {
		return err
	}
	e.line = node.Line
	return nil
}

// ChannelEntry is a literal channel spec.
type ChannelEntry struct {
	Name        string                `yaml:"name"`
	Description string                `yaml:"description"`
	Bindings    *spec.ChannelBindings `yaml:"bindings"`
	Publish     *OperationEntry       `yaml:"publish"`
	Subscribe   *OperationEntry       `yaml:"subscribe"`
	line        int
}

// UnmarshalYAML records the source line.
func (c *ChannelEntry) UnmarshalYAML(node *yaml.Node) error {
	type plain ChannelEntry
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.line = node.Line
	return nil
}

// OperationEntry is a literal operation spec.
type OperationEntry struct {
	Summary     string                  `yaml:"summary"`
	Description string                  `yaml:"description"`
	Bindings    *spec.OperationBindings `yaml:"bindings"`
	Message     *MessageEntry           `yaml:"message"`
}

// MessageEntry is a literal message spec.
type MessageEntry struct {
	Title         string                `yaml:"title"`
	Summary       string                `yaml:"summary"`
	Description   string                `yaml:"description"`
	ContentType   string                `yaml:"contentType"`
	Payload       descriptor.Payload    `yaml:"payload"`
	CorrelationID *spec.CorrelationID   `yaml:"correlationId"`
	Bindings      *spec.MessageBindings `yaml:"bindings"`
	Tags          []*spec.Tag           `yaml:"tags"`
}

// registry converts the manifest into a broker description.
func (m *Manifest) registry(path string) (*descriptor.Registry, error) {
	if m.AMQP != nil && m.Kafka != nil {
		return nil, &specerrors.ConfigError{Option: "broker", Message: "a manifest describes one broker: use either amqp or kafka"}
	}

	meta := descriptor.BrokerMetadata{
		Protocol:        m.Broker.Protocol,
		ProtocolVersion: m.Broker.ProtocolVersion,
		Description:     m.Broker.Description,
		Tags:            m.Broker.Tags,
	}
	switch {
	case m.AMQP != nil && meta.Protocol == "":
		meta.Protocol, meta.ProtocolVersion = amqp.Protocol, orDefault(meta.ProtocolVersion, amqp.ProtocolVersion)
	case m.Kafka != nil && meta.Protocol == "":
		meta.Protocol, meta.ProtocolVersion = kafka.Protocol, orDefault(meta.ProtocolVersion, kafka.ProtocolVersion)
	}

	if s := m.Broker.Security; s != nil {
		sec, err := s.descriptor()
		if err != nil {
			return nil, fmt.Errorf("%w (%s)", err, location(path, s.line))
		}
		meta.Security = sec
	}

	urls := slices.Clone(m.Broker.URLs)
	if m.Broker.URL != "" {
		urls = append([]string{m.Broker.URL}, urls...)
	}
	reg := descriptor.NewRegistry(meta, urls...)

	if m.AMQP != nil {
		m.AMQP.register(reg)
	}
	if m.Kafka != nil {
		m.Kafka.register(reg)
	}
	for i := range m.Endpoints {
		if err := m.Endpoints[i].register(reg, path); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (s *Security) descriptor() (descriptor.Security, error) {
	password := s.Password
	if s.PasswordEnv != "" {
		password = os.Getenv(s.PasswordEnv)
	}
	return security.FromConfig(s.Type, security.Credentials{Username: s.Username, Password: password}, s.TLS)
}

func (a *AMQPSection) register(reg *descriptor.Registry) {
	for _, p := range a.Publishers {
		reg.AddPublisher(&amqp.Publisher{
			RoutingKey:  p.RoutingKey,
			Queue:       p.Queue.toQueue(),
			Exchange:    p.Exchange.toExchange(),
			VirtualHost: orDefault(p.VirtualHost, a.VirtualHost),
			Persist:     p.Persist,
			Mandatory:   p.Mandatory,
			ReplyTo:     p.ReplyTo,
			Priority:    p.Priority,
			Title:       p.Title,
			Description: p.Description,
			Payloads:    sources(p.Payloads),
			Hidden:      p.Hidden,
		})
	}
	for _, s := range a.Subscribers {
		reg.AddSubscriber(&amqp.Subscriber{
			Queue:       s.Queue.toQueue(),
			Exchange:    s.Exchange.toExchange(),
			VirtualHost: orDefault(s.VirtualHost, a.VirtualHost),
			CallName:    s.CallName,
			Title:       s.Title,
			Description: s.Description,
			Handlers:    sources(s.Handlers),
			Hidden:      s.Hidden,
		})
	}
}

func (q AMQPQueue) toQueue() amqp.Queue {
	return amqp.Queue{
		Name:       q.Name,
		Durable:    q.Durable,
		Exclusive:  q.Exclusive,
		AutoDelete: q.AutoDelete,
		RoutingKey: q.RoutingKey,
	}
}

func (e AMQPExchange) toExchange() amqp.Exchange {
	return amqp.Exchange{
		Name:       e.Name,
		Type:       amqp.ExchangeType(e.Type),
		Durable:    e.Durable,
		AutoDelete: e.AutoDelete,
	}
}

func (k *KafkaSection) register(reg *descriptor.Registry) {
	for _, p := range k.Publishers {
		reg.AddPublisher(&kafka.Publisher{
			Topic:       p.Topic,
			Title:       p.Title,
			Description: p.Description,
			Payloads:    sources(p.Payloads),
			Hidden:      p.Hidden,
		})
	}
	for _, s := range k.Subscribers {
		reg.AddSubscriber(&kafka.Subscriber{
			Topics:      s.Topics,
			GroupID:     s.GroupID,
			CallName:    s.CallName,
			Title:       s.Title,
			Description: s.Description,
			Handlers:    sources(s.Handlers),
			Hidden:      s.Hidden,
		})
	}
}

func (e *EndpointEntry) register(reg *descriptor.Registry, path string) error {
	specs := make(descriptor.Static, 0, len(e.Channels))
	for _, c := range e.Channels {
		if c.Name == "" {
			return fieldError(path, c.line, "channel has no name")
		}
		specs = append(specs, descriptor.ChannelSpec{
			Name:        c.Name,
			Description: c.Description,
			Bindings:    c.Bindings,
			Publish:     c.Publish.toOperation(),
			Subscribe:   c.Subscribe.toOperation(),
		})
	}

	switch e.Role {
	case RolePublisher:
		reg.AddPublisher(specs)
	case RoleSubscriber:
		reg.AddSubscriber(specs)
	default:
		return fieldError(path, e.line, fmt.Sprintf("endpoint role %q must be %q or %q", e.Role, RolePublisher, RoleSubscriber))
	}
	return nil
}

func (o *OperationEntry) toOperation() *descriptor.OperationSpec {
	if o == nil {
		return nil
	}
	op := &descriptor.OperationSpec{
		Summary:     o.Summary,
		Description: o.Description,
		Bindings:    o.Bindings,
	}
	if msg := o.Message; msg != nil {
		op.Message = &descriptor.MessageSpec{
			Title:         msg.Title,
			Summary:       msg.Summary,
			Description:   msg.Description,
			ContentType:   msg.ContentType,
			Payload:       msg.Payload,
			CorrelationID: msg.CorrelationID,
			Bindings:      msg.Bindings,
			Tags:          msg.Tags,
		}
	}
	return op
}

func sources(entries []SourceEntry) []payload.Source {
	if len(entries) == 0 {
		return nil
	}
	out := make([]payload.Source, len(entries))
	for i, e := range entries {
		out[i] = payload.Source{Handler: e.Handler, Payload: e.Payload}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func location(path string, line int) string {
	switch {
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case line > 0:
		return fmt.Sprintf("line %d", line)
	case path != "":
		return path
	}
	return "manifest"
}
