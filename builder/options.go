package builder

import (
	"fmt"
	"strings"

	"github.com/erraggy/asyncspec/spec"
)

// Option configures a Builder instance.
// Options are applied when creating a new Builder with New().
type Option func(*config)

// config holds builder configuration applied via options.
type config struct {
	info               spec.Info
	id                 string
	schemaVersion      string
	defaultContentType string
	logger             Logger
	checkReferences    bool
	strictCollisions   bool
	configError        error // Returned by Build
}

// Default info values used when no title or version is configured.
const (
	DefaultTitle      = "AsyncAPI"
	DefaultAppVersion = "0.1.0"
)

// defaultConfig returns a new config with default values.
func defaultConfig() *config {
	return &config{
		info:               spec.Info{Title: DefaultTitle, Version: DefaultAppVersion},
		schemaVersion:      spec.DefaultVersion,
		defaultContentType: spec.DefaultContentType,
		logger:             NopLogger{},
	}
}

// WithInfo sets the whole info block. Empty title and version fall back to
// the defaults. The value is copied.
func WithInfo(info spec.Info) Option {
	return func(cfg *config) {
		cfg.info = info
		if cfg.info.Title == "" {
			cfg.info.Title = DefaultTitle
		}
		if cfg.info.Version == "" {
			cfg.info.Version = DefaultAppVersion
		}
	}
}

// WithTitle sets the application title in the info block.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.info.Title = title
		}
	}
}

// WithAppVersion sets the application version in the info block.
// Note: This is the application version, not the AsyncAPI document version.
func WithAppVersion(version string) Option {
	return func(cfg *config) {
		if version != "" {
			cfg.info.Version = version
		}
	}
}

// WithDescription sets the description in the info block.
func WithDescription(desc string) Option {
	return func(cfg *config) {
		cfg.info.Description = desc
	}
}

// WithIdentifier sets the document "id" (a URI identifying the application).
func WithIdentifier(id string) Option {
	return func(cfg *config) {
		cfg.id = id
	}
}

// WithSchemaVersion sets the AsyncAPI document version. Only 3.x versions
// are supported; anything else makes Build return a configuration error.
func WithSchemaVersion(version string) Option {
	return func(cfg *config) {
		if !strings.HasPrefix(version, "3.") {
			cfg.configError = fmt.Errorf("unsupported AsyncAPI version %q: only 3.x is supported", version)
			return
		}
		cfg.schemaVersion = version
	}
}

// WithDefaultContentType sets the document-wide defaultContentType.
// The default is "application/json".
func WithDefaultContentType(contentType string) Option {
	return func(cfg *config) {
		if contentType != "" {
			cfg.defaultContentType = contentType
		}
	}
}

// WithLogger sets the logger. A nil logger restores the no-op default.
func WithLogger(l Logger) Option {
	return func(cfg *config) {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
	}
}

// WithReferenceCheck makes Build verify that every local "$ref" in the
// assembled document resolves. Dangling references fail the build with a
// BuilderErrors listing each one.
func WithReferenceCheck(enabled bool) Option {
	return func(cfg *config) {
		cfg.checkReferences = enabled
	}
}

// WithStrictCollisions makes Build fail on the first component-table
// collision instead of logging a warning and keeping the later write.
func WithStrictCollisions(enabled bool) Option {
	return func(cfg *config) {
		cfg.strictCollisions = enabled
	}
}
