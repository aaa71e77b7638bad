package spec

import "encoding/json"

// MessagePayload is a resolved message payload: either a single reference
// to a schema component or a "oneOf" list of references.
// Remaining union-level keywords (for example "discriminator") are kept
// in Extra, but the variants themselves are never inlined.
type MessagePayload struct {
	Ref   string       `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	OneOf []*Reference `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	// Extra captures union-level keywords other than "oneOf"
	Extra map[string]any `yaml:",inline" json:"-"`
}

// IsUnion reports whether the payload is a polymorphic union.
func (p *MessagePayload) IsUnion() bool {
	return p != nil && len(p.OneOf) > 0
}

// MarshalJSON implements custom JSON marshaling for MessagePayload.
// Extra keywords are flattened into the top-level JSON object, as
// encoding/json doesn't support inline maps like yaml:",inline".
func (p *MessagePayload) MarshalJSON() ([]byte, error) {
	if len(p.Extra) == 0 {
		type Alias MessagePayload
		return json.Marshal((*Alias)(p))
	}

	m := make(map[string]any, 2+len(p.Extra))
	for k, v := range p.Extra {
		m[k] = v
	}
	if p.Ref != "" {
		m["$ref"] = p.Ref
	}
	if len(p.OneOf) > 0 {
		m["oneOf"] = p.OneOf
	}
	return json.Marshal(m)
}

// MarshalJSON implements custom JSON marshaling for Info, flattening
// "x-" extension fields into the top-level object.
func (i *Info) MarshalJSON() ([]byte, error) {
	if len(i.Extra) == 0 {
		type Alias Info
		return json.Marshal((*Alias)(i))
	}

	m := make(map[string]any, 8+len(i.Extra))
	m["title"] = i.Title
	m["version"] = i.Version
	if i.Description != "" {
		m["description"] = i.Description
	}
	if i.TermsOfService != "" {
		m["termsOfService"] = i.TermsOfService
	}
	if i.Contact != nil {
		m["contact"] = i.Contact
	}
	if i.License != nil {
		m["license"] = i.License
	}
	if len(i.Tags) > 0 {
		m["tags"] = i.Tags
	}
	if i.ExternalDocs != nil {
		m["externalDocs"] = i.ExternalDocs
	}
	for k, v := range i.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}
