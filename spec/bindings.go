package spec

// Binding versions emitted for each transport.
const (
	AMQPBindingVersion  = "0.3.0"
	KafkaBindingVersion = "0.5.0"
	NATSBindingVersion  = "custom"
	RedisBindingVersion = "custom"
)

// ChannelBindings holds the transport-specific channel settings.
// At most one variant is normally set; each is passed through unchanged.
type ChannelBindings struct {
	AMQP  *AMQPChannelBinding  `yaml:"amqp,omitempty" json:"amqp,omitempty"`
	Kafka *KafkaChannelBinding `yaml:"kafka,omitempty" json:"kafka,omitempty"`
	NATS  *NATSChannelBinding  `yaml:"nats,omitempty" json:"nats,omitempty"`
	Redis *RedisChannelBinding `yaml:"redis,omitempty" json:"redis,omitempty"`
}

// OperationBindings holds the transport-specific operation settings.
type OperationBindings struct {
	AMQP  *AMQPOperationBinding  `yaml:"amqp,omitempty" json:"amqp,omitempty"`
	Kafka *KafkaOperationBinding `yaml:"kafka,omitempty" json:"kafka,omitempty"`
	NATS  *NATSOperationBinding  `yaml:"nats,omitempty" json:"nats,omitempty"`
	Redis *RedisOperationBinding `yaml:"redis,omitempty" json:"redis,omitempty"`
}

// MessageBindings holds the transport-specific message settings.
type MessageBindings struct {
	AMQP  *AMQPMessageBinding  `yaml:"amqp,omitempty" json:"amqp,omitempty"`
	Kafka *KafkaMessageBinding `yaml:"kafka,omitempty" json:"kafka,omitempty"`
}

// AMQPChannelBinding describes an AMQP 0-9-1 exchange/queue pair.
type AMQPChannelBinding struct {
	// Is is "routingKey" or "queue".
	Is             string        `yaml:"is" json:"is"`
	Exchange       *AMQPExchange `yaml:"exchange,omitempty" json:"exchange,omitempty"`
	Queue          *AMQPQueue    `yaml:"queue,omitempty" json:"queue,omitempty"`
	BindingVersion string        `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}

// AMQPExchange is the exchange part of an AMQP channel binding.
type AMQPExchange struct {
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	Type       string `yaml:"type" json:"type"`
	Durable    *bool  `yaml:"durable,omitempty" json:"durable,omitempty"`
	AutoDelete *bool  `yaml:"autoDelete,omitempty" json:"autoDelete,omitempty"`
	VHost      string `yaml:"vhost,omitempty" json:"vhost,omitempty"`
}

// AMQPQueue is the queue part of an AMQP channel binding.
type AMQPQueue struct {
	Name       string `yaml:"name" json:"name"`
	Durable    bool   `yaml:"durable" json:"durable"`
	Exclusive  bool   `yaml:"exclusive" json:"exclusive"`
	AutoDelete bool   `yaml:"autoDelete" json:"autoDelete"`
	VHost      string `yaml:"vhost,omitempty" json:"vhost,omitempty"`
}

// AMQPOperationBinding describes publish/consume flags for AMQP.
type AMQPOperationBinding struct {
	CC []string `yaml:"cc,omitempty" json:"cc,omitempty"`
	// Ack is set on receive operations.
	Ack *bool `yaml:"ack,omitempty" json:"ack,omitempty"`
	// DeliveryMode is 1 (transient) or 2 (persistent).
	DeliveryMode   int    `yaml:"deliveryMode,omitempty" json:"deliveryMode,omitempty"`
	Mandatory      *bool  `yaml:"mandatory,omitempty" json:"mandatory,omitempty"`
	ReplyTo        string `yaml:"replyTo,omitempty" json:"replyTo,omitempty"`
	Priority       *int   `yaml:"priority,omitempty" json:"priority,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}

// AMQPMessageBinding describes AMQP message properties.
type AMQPMessageBinding struct {
	ContentEncoding string `yaml:"contentEncoding,omitempty" json:"contentEncoding,omitempty"`
	MessageType     string `yaml:"messageType,omitempty" json:"messageType,omitempty"`
	BindingVersion  string `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}

// KafkaChannelBinding describes a Kafka topic.
type KafkaChannelBinding struct {
	Topic          string `yaml:"topic,omitempty" json:"topic,omitempty"`
	Partitions     *int   `yaml:"partitions,omitempty" json:"partitions,omitempty"`
	Replicas       *int   `yaml:"replicas,omitempty" json:"replicas,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}

// KafkaOperationBinding describes the consumer identity for Kafka.
// GroupID and ClientID are schemas, as the Kafka binding defines them.
type KafkaOperationBinding struct {
	GroupID        Schema `yaml:"groupId,omitempty" json:"groupId,omitempty"`
	ClientID       Schema `yaml:"clientId,omitempty" json:"clientId,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}

// KafkaMessageBinding describes the Kafka record key.
type KafkaMessageBinding struct {
	Key            Schema `yaml:"key,omitempty" json:"key,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}

// NATSChannelBinding describes a NATS subject.
type NATSChannelBinding struct {
	Subject        string `yaml:"subject" json:"subject"`
	Queue          string `yaml:"queue,omitempty" json:"queue,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}

// NATSOperationBinding describes a NATS queue group.
type NATSOperationBinding struct {
	Queue          string `yaml:"queue,omitempty" json:"queue,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}

// RedisChannelBinding describes a Redis pub/sub channel, list or stream.
type RedisChannelBinding struct {
	Channel        string `yaml:"channel" json:"channel"`
	Method         string `yaml:"method,omitempty" json:"method,omitempty"`
	Stream         string `yaml:"stream,omitempty" json:"stream,omitempty"`
	GroupName      string `yaml:"groupName,omitempty" json:"groupName,omitempty"`
	ConsumerName   string `yaml:"consumerName,omitempty" json:"consumerName,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}

// RedisOperationBinding carries Redis reply settings.
type RedisOperationBinding struct {
	ReplyTo        string `yaml:"replyTo,omitempty" json:"replyTo,omitempty"`
	BindingVersion string `yaml:"bindingVersion,omitempty" json:"bindingVersion,omitempty"`
}
