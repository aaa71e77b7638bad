package spec

// AsyncAPI versions understood by the assembler.
const (
	// Version300 is the AsyncAPI 3.0.0 document version.
	Version300 = "3.0.0"
	// DefaultVersion is emitted when no version is configured.
	DefaultVersion = Version300
	// DefaultContentType is the document-wide default message content type.
	DefaultContentType = "application/json"
)

// Schema is a JSON Schema object kept in its decoded map form.
// Bodies are carried through the assembler opaquely; only "$ref" targets
// and shared-definition blocks are ever rewritten.
type Schema = map[string]any

// Document is an AsyncAPI 3.0 document.
type Document struct {
	AsyncAPI           string                `yaml:"asyncapi" json:"asyncapi"`
	ID                 string                `yaml:"id,omitempty" json:"id,omitempty"`
	Info               *Info                 `yaml:"info" json:"info"`
	Servers            map[string]*Server    `yaml:"servers,omitempty" json:"servers,omitempty"`
	DefaultContentType string                `yaml:"defaultContentType,omitempty" json:"defaultContentType,omitempty"`
	Channels           map[string]*Channel   `yaml:"channels,omitempty" json:"channels,omitempty"`
	Operations         map[string]*Operation `yaml:"operations,omitempty" json:"operations,omitempty"`
	Components         *Components           `yaml:"components,omitempty" json:"components,omitempty"`
}

// Info provides metadata about the application.
type Info struct {
	Title          string        `yaml:"title" json:"title"`
	Version        string        `yaml:"version" json:"version"`
	Description    string        `yaml:"description,omitempty" json:"description,omitempty"`
	TermsOfService string        `yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`
	Contact        *Contact      `yaml:"contact,omitempty" json:"contact,omitempty"`
	License        *License      `yaml:"license,omitempty" json:"license,omitempty"`
	Tags           []*Tag        `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs   *ExternalDocs `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	// Extra captures extension fields (keys starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Contact information for the exposed application
type Contact struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// License information for the exposed application
type License struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
}

// ExternalDocs allows referencing external documentation
type ExternalDocs struct {
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string `yaml:"url" json:"url"`
}

// Tag adds metadata to servers, operations and messages
type Tag struct {
	Name         string        `yaml:"name" json:"name"`
	Description  string        `yaml:"description,omitempty" json:"description,omitempty"`
	ExternalDocs *ExternalDocs `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
}

// Reference is a JSON Reference ($ref) to another part of the document.
type Reference struct {
	Ref string `yaml:"$ref" json:"$ref"`
}

// Ref returns a Reference pointing at target.
func Ref(target string) *Reference {
	return &Reference{Ref: target}
}

// Server describes one broker endpoint the application connects to.
type Server struct {
	Host            string       `yaml:"host" json:"host"`
	Protocol        string       `yaml:"protocol" json:"protocol"`
	ProtocolVersion string       `yaml:"protocolVersion,omitempty" json:"protocolVersion,omitempty"`
	Pathname        string       `yaml:"pathname,omitempty" json:"pathname,omitempty"`
	Description     string       `yaml:"description,omitempty" json:"description,omitempty"`
	Tags            []*Tag       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Security        []*Reference `yaml:"security,omitempty" json:"security,omitempty"`
}

// Channel is an addressable component the application sends to or
// receives from.
type Channel struct {
	Address     string                `yaml:"address" json:"address"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Servers     []*Reference          `yaml:"servers,omitempty" json:"servers,omitempty"`
	Messages    map[string]*Reference `yaml:"messages,omitempty" json:"messages,omitempty"`
	Parameters  map[string]*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Bindings    *ChannelBindings      `yaml:"bindings,omitempty" json:"bindings,omitempty"`
}

// Parameter describes one "{name}" expression in a channel address.
type Parameter struct {
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Location    string `yaml:"location,omitempty" json:"location,omitempty"`
}

// Action is the direction of an operation from the application's view.
type Action string

const (
	// ActionSend means the application publishes to the channel.
	ActionSend Action = "send"
	// ActionReceive means the application consumes from the channel.
	ActionReceive Action = "receive"
)

// Operation describes what the application does on a channel.
type Operation struct {
	Action      Action             `yaml:"action" json:"action"`
	Channel     *Reference         `yaml:"channel" json:"channel"`
	Messages    []*Reference       `yaml:"messages,omitempty" json:"messages,omitempty"`
	Summary     string             `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Bindings    *OperationBindings `yaml:"bindings,omitempty" json:"bindings,omitempty"`
}

// CorrelationID locates the correlation identifier inside a message.
type CorrelationID struct {
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Location    string `yaml:"location" json:"location"`
}

// Message describes one message type exchanged on a channel.
type Message struct {
	Title         string           `yaml:"title" json:"title"`
	Summary       string           `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description   string           `yaml:"description,omitempty" json:"description,omitempty"`
	ContentType   string           `yaml:"contentType,omitempty" json:"contentType,omitempty"`
	CorrelationID *CorrelationID   `yaml:"correlationId,omitempty" json:"correlationId,omitempty"`
	Tags          []*Tag           `yaml:"tags,omitempty" json:"tags,omitempty"`
	Bindings      *MessageBindings `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	Payload       *MessagePayload  `yaml:"payload,omitempty" json:"payload,omitempty"`
}

// Components holds the reusable objects every reference points into.
type Components struct {
	Messages        map[string]*Message        `yaml:"messages,omitempty" json:"messages,omitempty"`
	Schemas         map[string]Schema          `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
}

// SecurityScheme defines a security mechanism a server accepts.
type SecurityScheme struct {
	Type             string   `yaml:"type" json:"type"`
	Description      string   `yaml:"description,omitempty" json:"description,omitempty"`
	Name             string   `yaml:"name,omitempty" json:"name,omitempty"`
	In               string   `yaml:"in,omitempty" json:"in,omitempty"`
	Scheme           string   `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	BearerFormat     string   `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"`
	OpenIDConnectURL string   `yaml:"openIdConnectUrl,omitempty" json:"openIdConnectUrl,omitempty"`
	Scopes           []string `yaml:"scopes,omitempty" json:"scopes,omitempty"`
}

// SecurityRequirement maps a security scheme name to the scopes it needs.
type SecurityRequirement map[string][]string
