package builder

import (
	"strings"

	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/internal/naming"
	"github.com/erraggy/asyncspec/internal/pathutil"
	"github.com/erraggy/asyncspec/spec"
)

// pendingMessage is a message waiting for payload resolution.
type pendingMessage struct {
	// title is the message title after any Subscribe relabeling.
	title string
	desc  *descriptor.MessageSpec
}

// resolver hoists the payload of one message into the component tables.
type resolver struct {
	c       *components
	channel string // normalized channel key
	title   string
	source  string
}

// resolvePayload replaces the message's inline payload with references
// into components.schemas, registers the message in components.messages
// and returns the reference the channel should hold in its place.
//
// Shared definitions are hoisted under their normalized names and every
// "#/$defs/X" or "#/definitions/X" reference is rewritten to
// "#/components/schemas/X". A keyed union becomes a "oneOf" list of
// references, one per variant, in variant order. Any other payload is
// stored under its own title, or "<channel>:<message>:Payload" when it has
// none.
func resolvePayload(m pendingMessage, messageName, channel string, c *components) (*spec.Reference, error) {
	if m.desc == nil || m.title == "" {
		return nil, newDescriptorError(ComponentMessage, channel, "", "title", "message has no title")
	}
	r := &resolver{c: c, channel: channel, title: m.title, source: channel + "/" + messageName}
	p := m.desc.Payload

	for _, def := range p.Definitions {
		if err := r.hoist(def.Name, spec.CloneSchema(def.Schema), true); err != nil {
			return nil, err
		}
	}

	msg := newMessage(m)
	if p.IsUnion() {
		payload, err := r.union(p)
		if err != nil {
			return nil, err
		}
		msg.Payload = payload
	} else {
		body, err := r.prepare(p.Schema)
		if err != nil {
			return nil, err
		}
		name, ok := spec.SchemaTitle(body)
		if !ok {
			name = channel + ":" + messageName + ":Payload"
		}
		key := naming.ClearKey(name)
		if err := c.putSchema(key, body, r.source); err != nil {
			return nil, err
		}
		msg.Payload = &spec.MessagePayload{Ref: pathutil.SchemaRef(key)}
	}

	key := naming.ClearKey(m.title)
	if err := c.putMessage(key, msg, r.source); err != nil {
		return nil, err
	}
	return spec.Ref(pathutil.MessageRef(key)), nil
}

func (r *resolver) union(p descriptor.Payload) (*spec.MessagePayload, error) {
	for _, reserved := range []string{"oneOf", "$ref"} {
		if _, clash := p.Schema[reserved]; clash {
			return nil, r.malformed("oneOf", "keyed union also declares "+reserved)
		}
	}
	if len(p.Variants) == 0 {
		return nil, r.malformed("oneOf", "union has no variants")
	}

	extra, err := r.prepare(p.Schema)
	if err != nil {
		return nil, err
	}
	refs := make([]*spec.Reference, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.Name == "" {
			return nil, r.malformed("oneOf", "union variant has no name")
		}
		if v.Schema == nil {
			return nil, r.malformed("oneOf", "union variant "+v.Name+" has no schema")
		}
		body, err := r.prepare(v.Schema)
		if err != nil {
			return nil, err
		}
		key := naming.ClearKey(v.Name)
		if err := r.c.putSchema(key, body, r.source); err != nil {
			return nil, err
		}
		refs = append(refs, spec.Ref(pathutil.SchemaRef(key)))
	}

	payload := &spec.MessagePayload{OneOf: refs}
	if len(extra) > 0 {
		payload.Extra = extra
	}
	return payload, nil
}

// prepare copies a schema body, rewrites its definition references and
// hoists every definition block nested anywhere inside it.
func (r *resolver) prepare(s spec.Schema) (spec.Schema, error) {
	body := spec.CloneSchema(s)
	if body == nil {
		body = spec.Schema{}
	}
	rewriteDefinitionRefs(body)
	if err := r.extractBlocks(body); err != nil {
		return nil, err
	}
	return body, nil
}

// hoist stores a definition. Bodies that have not been through prepare
// are rewritten first.
func (r *resolver) hoist(name string, body spec.Schema, rewrite bool) error {
	if name == "" {
		return r.malformed(descriptor.DefsKey, "definition has no name")
	}
	if body == nil {
		body = spec.Schema{}
	}
	if rewrite {
		rewriteDefinitionRefs(body)
	}
	if err := r.extractBlocks(body); err != nil {
		return err
	}
	return r.c.putSchema(naming.ClearKey(name), body, r.source)
}

// extractBlocks removes every "$defs" and "definitions" block from body,
// at any depth, and hoists their entries. Entries and keywords are visited
// in name order.
func (r *resolver) extractBlocks(body spec.Schema) error {
	for _, key := range []string{descriptor.DefsKey, descriptor.DefinitionsKey} {
		raw, ok := body[key]
		if !ok {
			continue
		}
		block, ok := raw.(map[string]any)
		if !ok {
			return r.malformed(key, "definitions block is not a mapping")
		}
		delete(body, key)

		for _, name := range sortedKeys(block) {
			sub, ok := block[name].(map[string]any)
			if !ok {
				return r.malformed(key, "definition "+name+" is not a mapping")
			}
			if err := r.hoist(name, sub, false); err != nil {
				return err
			}
		}
	}
	for _, keyword := range sortedKeys(body) {
		if err := r.extractNested(keyword, body[keyword]); err != nil {
			return err
		}
	}
	return nil
}

// extractNested descends into the subschemas held under keyword.
func (r *resolver) extractNested(keyword string, v any) error {
	switch keyword {
	case "const", "enum", "default", "example", "examples":
		// literal data, not schemas
		return nil
	case "properties", "patternProperties", "dependentSchemas":
		// keys are property names, so a property called "$defs" survives
		named, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		for _, name := range sortedKeys(named) {
			if sub, ok := named[name].(map[string]any); ok {
				if err := r.extractBlocks(sub); err != nil {
					return err
				}
			}
		}
		return nil
	}
	switch t := v.(type) {
	case map[string]any:
		return r.extractBlocks(t)
	case []any:
		for _, item := range t {
			if sub, ok := item.(map[string]any); ok {
				if err := r.extractBlocks(sub); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (r *resolver) malformed(field, msg string) error {
	return newDescriptorError(ComponentSchema, r.channel, r.title, field, msg)
}

// rewriteDefinitionRefs rewrites, in place, every local definition
// reference inside v, including discriminator mapping targets.
func rewriteDefinitionRefs(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			switch k {
			case "$ref":
				if s, ok := val.(string); ok {
					t[k] = rewriteRef(s)
				}
				continue
			case "discriminator":
				if d, ok := val.(map[string]any); ok {
					if mapping, ok := d["mapping"].(map[string]any); ok {
						for mk, mv := range mapping {
							if s, ok := mv.(string); ok {
								mapping[mk] = rewriteRef(s)
							}
						}
					}
				}
			}
			rewriteDefinitionRefs(val)
		}
	case []any:
		for _, item := range t {
			rewriteDefinitionRefs(item)
		}
	}
}

// rewriteRef maps "#/$defs/Name[/rest]" to "#/components/schemas/<key>[/rest]".
func rewriteRef(ref string) string {
	name, ok := pathutil.DefinitionName(ref)
	if !ok {
		return ref
	}
	name, rest, nested := strings.Cut(name, "/")
	target := pathutil.SchemaRef(naming.ClearKey(pathutil.UnescapeSegment(name)))
	if nested {
		target += "/" + rest
	}
	return target
}

func newMessage(m pendingMessage) *spec.Message {
	d := m.desc
	return &spec.Message{
		Title:         m.title,
		Summary:       d.Summary,
		Description:   d.Description,
		ContentType:   d.ContentType,
		CorrelationID: d.CorrelationID,
		Tags:          d.Tags,
		Bindings:      d.Bindings,
	}
}
