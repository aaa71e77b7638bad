package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/internal/pathutil"
	"github.com/erraggy/asyncspec/spec"
	"github.com/erraggy/asyncspec/specerrors"
)

// Builder assembles AsyncAPI documents from a broker's endpoint
// descriptors. It holds configuration only: every Build call owns fresh
// component tables, so one Builder may be used from several goroutines.
type Builder struct {
	cfg *config
}

// New creates a Builder.
//
// Example:
//
//	b := builder.New(
//		builder.WithTitle("Orders"),
//		builder.WithAppVersion("1.2.0"),
//	)
//	result, err := b.Build(ctx, broker)
func New(opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Builder{cfg: cfg}
}

// Result is the outcome of a successful Build.
type Result struct {
	// Document is the assembled AsyncAPI document.
	Document *spec.Document
	// Collisions lists every component key written twice with different
	// content. The later write is what the document holds.
	Collisions []Collision
	// Warnings are human-readable forms of Collisions.
	Warnings []string
	// Stats summarizes the document.
	Stats Stats
}

// Stats counts the records of an assembled document.
type Stats struct {
	Servers    int
	Channels   int
	Operations int
	Messages   int
	Schemas    int
}

// assembly is the state of one Build call.
type assembly struct {
	cfg   *config
	log   Logger
	comps *components

	channels   map[string]*pendingChannel
	operations map[string]*spec.Operation
	opSources  map[string]string
}

// Build generates the document for broker.
//
// It runs the broker's Setup first, then builds servers, channels
// (subscribers before publishers), operations, attaches every server to
// every channel, resolves every message payload into the component tables
// and assembles the document. Build either returns a complete document or
// an error; malformed descriptors fail immediately.
//
// The output depends only on the registered descriptors and the options:
// two calls without new registrations yield equal documents.
func (b *Builder) Build(ctx context.Context, broker descriptor.Broker) (*Result, error) {
	cfg := b.cfg
	if cfg.configError != nil {
		return nil, fmt.Errorf("builder: configuration error: %w", &specerrors.ConfigError{
			Option:  "builder",
			Message: cfg.configError.Error(),
		})
	}
	if broker == nil {
		return nil, &BuilderError{Component: ComponentBroker, Message: "broker is nil"}
	}

	meta := broker.Metadata()
	if err := broker.Setup(ctx); err != nil {
		return nil, fmt.Errorf("builder: %w", &specerrors.SetupError{Protocol: meta.Protocol, Cause: err})
	}

	a := &assembly{
		cfg:        cfg,
		log:        cfg.logger.With("component", "builder"),
		channels:   make(map[string]*pendingChannel),
		operations: make(map[string]*spec.Operation),
		opSources:  make(map[string]string),
	}
	a.comps = newComponents(a.log, cfg.strictCollisions)

	servers, serverNames, err := buildServers(broker.URLs(), meta)
	if err != nil {
		return nil, err
	}

	sides, err := collectSides(broker)
	if err != nil {
		return nil, err
	}
	for _, side := range sides {
		if err := a.addChannel(side); err != nil {
			return nil, err
		}
	}
	for _, side := range sides {
		if err := a.addOperation(side); err != nil {
			return nil, err
		}
	}

	channels := make(map[string]*spec.Channel, len(a.channels))
	for _, key := range sortedKeys(a.channels) {
		pc := a.channels[key]
		ch := pc.channel
		for _, name := range serverNames {
			ch.Servers = append(ch.Servers, spec.Ref(pathutil.ServerRef(name)))
		}
		ch.Messages = make(map[string]*spec.Reference, len(pc.messages))
		for _, name := range sortedKeys(pc.messages) {
			ref, err := resolvePayload(pc.messages[name], name, key, a.comps)
			if err != nil {
				return nil, err
			}
			ch.Messages[name] = ref
		}
		channels[key] = ch
	}

	doc := a.document(servers, channels, meta)
	if cfg.checkReferences {
		if err := checkReferences(doc); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Document:   doc,
		Collisions: a.comps.collisions,
		Stats: Stats{
			Servers:    len(doc.Servers),
			Channels:   len(doc.Channels),
			Operations: len(doc.Operations),
			Messages:   len(a.comps.messages),
			Schemas:    len(a.comps.schemas),
		},
	}
	for _, c := range result.Collisions {
		result.Warnings = append(result.Warnings, c.String())
	}
	a.log.Info("assembled document",
		"channels", result.Stats.Channels,
		"operations", result.Stats.Operations,
		"messages", result.Stats.Messages,
		"schemas", result.Stats.Schemas,
		"collisions", len(result.Collisions))
	return result, nil
}

// collectSides asks every endpoint for its schema once, subscribers first,
// and flattens the result into channel sides in registration order. Every
// declared side is kept whatever the endpoint's role; the side decides the
// operation action.
func collectSides(broker descriptor.Broker) ([]channelSide, error) {
	var sides []channelSide
	groups := []struct {
		role      string
		endpoints []descriptor.Endpoint
	}{
		{"subscriber", broker.Subscribers()},
		{"publisher", broker.Publishers()},
	}
	for _, g := range groups {
		for i, ep := range g.endpoints {
			if ep == nil {
				continue
			}
			source := g.role + "[" + strconv.Itoa(i) + "]"
			for _, cs := range ep.Schema() {
				if cs.Subscribe == nil && cs.Publish == nil {
					return nil, newDescriptorError(ComponentChannel, cs.Name, "", "operation",
						"channel declares neither a subscribe nor a publish operation")
				}
				if cs.Subscribe != nil {
					sides = append(sides, channelSide{spec: cs, op: cs.Subscribe, dir: directionSubscribe, source: source + " " + cs.Name})
				}
				if cs.Publish != nil {
					sides = append(sides, channelSide{spec: cs, op: cs.Publish, dir: directionPublish, source: source + " " + cs.Name})
				}
			}
		}
	}
	return sides, nil
}

func (a *assembly) document(servers map[string]*spec.Server, channels map[string]*spec.Channel, meta descriptor.BrokerMetadata) *spec.Document {
	info := a.cfg.info
	doc := &spec.Document{
		AsyncAPI:           a.cfg.schemaVersion,
		ID:                 a.cfg.id,
		Info:               &info,
		Servers:            servers,
		DefaultContentType: a.cfg.defaultContentType,
	}
	if len(channels) > 0 {
		doc.Channels = channels
	}
	if len(a.operations) > 0 {
		doc.Operations = a.operations
	}

	components := &spec.Components{}
	if len(a.comps.messages) > 0 {
		components.Messages = a.comps.messages
	}
	if len(a.comps.schemas) > 0 {
		components.Schemas = a.comps.schemas
	}
	if meta.Security != nil {
		if schemes := meta.Security.SchemeFragment(); len(schemes) > 0 {
			components.SecuritySchemes = schemes
		}
	}
	if components.Messages != nil || components.Schemas != nil || components.SecuritySchemes != nil {
		doc.Components = components
	}
	return doc
}

// checkReferences converts dangling references into BuilderErrors.
func checkReferences(doc *spec.Document) error {
	refErrs := doc.CheckReferences()
	if len(refErrs) == 0 {
		return nil
	}
	errs := make(BuilderErrors, 0, len(refErrs))
	for _, err := range refErrs {
		be := &BuilderError{Component: ComponentReference, Cause: err}
		var re *specerrors.ReferenceError
		if errors.As(err, &re) {
			be.Field = re.Location
			be.Cause = re
		}
		errs = append(errs, be)
	}
	return errs
}

// outputFileMode is the file permission mode for output files (owner read/write only)
const outputFileMode = 0600

// WriteFile writes the document to a file.
// The format is inferred from the file extension (.json for JSON, YAML otherwise).
func (r *Result) WriteFile(path string) error {
	safe, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return fmt.Errorf("builder: %w", err)
	}
	data, err := r.Document.Marshal(spec.FormatFromPath(safe))
	if err != nil {
		return fmt.Errorf("builder: failed to marshal document: %w", err)
	}
	if err := os.WriteFile(safe, data, outputFileMode); err != nil {
		return fmt.Errorf("builder: failed to write file: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
