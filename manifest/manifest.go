package manifest

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncspec/builder"
	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/spec"
	"github.com/erraggy/asyncspec/specerrors"
)

// Manifest is the decoded manifest file.
type Manifest struct {
	AsyncAPI           string          `yaml:"asyncapi"`
	ID                 string          `yaml:"id"`
	DefaultContentType string          `yaml:"defaultContentType"`
	Info               spec.Info       `yaml:"info"`
	Broker             Broker          `yaml:"broker"`
	AMQP               *AMQPSection    `yaml:"amqp"`
	Kafka              *KafkaSection   `yaml:"kafka"`
	Endpoints          []EndpointEntry `yaml:"endpoints"`
}

// Broker is the broker section.
type Broker struct {
	Protocol        string      `yaml:"protocol"`
	ProtocolVersion string      `yaml:"protocolVersion"`
	Description     string      `yaml:"description"`
	URL             string      `yaml:"url"`
	URLs            []string    `yaml:"urls"`
	Tags            []*spec.Tag `yaml:"tags"`
	Security        *Security   `yaml:"security"`
}

// Security selects a security descriptor by type name.
type Security struct {
	Type     string `yaml:"type"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// PasswordEnv names an environment variable holding the password.
	PasswordEnv string `yaml:"passwordEnv"`
	TLS         bool   `yaml:"tls"`
	line        int
}

// UnmarshalYAML records the source line.
func (s *Security) UnmarshalYAML(node *yaml.Node) error {
	type plain Security
	if err := node.Decode((*plain)(s)); err != nil {
		return err
	}
	s.line = node.Line
	return nil
}

// Result is a parsed manifest ready to build.
type Result struct {
	Manifest *Manifest
	Registry *descriptor.Registry
	// Options carry the document-level fields (info, id, version,
	// default content type) into builder.New.
	Options []builder.Option
	// Path is the file the manifest was loaded from, if any.
	Path string
}

// Load reads and parses the manifest at path.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", &specerrors.ParseError{Path: path, Message: "cannot read file", Cause: err})
	}
	res, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	res.Path = path
	return res, nil
}

// Parse parses a YAML or JSON manifest.
func Parse(data []byte) (*Result, error) {
	return parse(data, "")
}

func parse(data []byte, path string) (*Result, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("manifest: %w", yamlError(path, "invalid YAML", err))
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("manifest: %w", &specerrors.ParseError{Path: path, Message: "empty manifest"})
	}

	var m Manifest
	if err := root.Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: %w", yamlError(path, "cannot decode manifest", err))
	}

	reg, err := m.registry(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &Result{Manifest: &m, Registry: reg, Options: m.Options()}, nil
}

// Build assembles the manifest's document. Extra options are applied after
// the manifest's own, so callers can override them.
func (r *Result) Build(ctx context.Context, opts ...builder.Option) (*builder.Result, error) {
	all := append(slices.Clone(r.Options), opts...)
	return builder.New(all...).Build(ctx, r.Registry)
}

// Options returns the builder options for the document-level fields.
func (m *Manifest) Options() []builder.Option {
	opts := []builder.Option{builder.WithInfo(m.Info)}
	if m.ID != "" {
		opts = append(opts, builder.WithIdentifier(m.ID))
	}
	if m.AsyncAPI != "" {
		opts = append(opts, builder.WithSchemaVersion(m.AsyncAPI))
	}
	if m.DefaultContentType != "" {
		opts = append(opts, builder.WithDefaultContentType(m.DefaultContentType))
	}
	return opts
}

var lineRe = regexp.MustCompile(`line (\d+)`)

// yamlError converts a YAML decoding error into a ParseError, keeping the
// first line number the message mentions.
func yamlError(path, msg string, err error) *specerrors.ParseError {
	pe := &specerrors.ParseError{Path: path, Message: msg, Cause: err}
	if m := lineRe.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}

func fieldError(path string, line int, msg string) *specerrors.ParseError {
	return &specerrors.ParseError{Path: path, Line: line, Message: msg}
}
