// Package security describes how clients authenticate to a broker.
//
// Each type implements [descriptor.Security]: it contributes a fragment of
// components.securitySchemes and the requirement list referenced from every
// server record. Credentials are carried for the broker client but are
// never validated or emitted.
package security

import (
	"crypto/tls"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/spec"
	"github.com/erraggy/asyncspec/specerrors"
)

// Scheme names used as components.securitySchemes keys.
const (
	SchemeUserPassword = "user-password"
	SchemeScram256     = "scram256"
	SchemeScram512     = "scram512"
	SchemeOAuthBearer  = "oauthbearer"
	SchemeGSSAPI       = "gssapi"
)

// TLS is transport security without client authentication. It adds no
// security scheme.
type TLS struct {
	// Config is handed to the broker client.
	Config *tls.Config
	// UseTLS is set when the connection is encrypted.
	UseTLS bool
}

// SchemeFragment returns nil; TLS alone declares no scheme.
func (TLS) SchemeFragment() map[string]*spec.SecurityScheme { return nil }

// Requirement returns nil.
func (TLS) Requirement() []spec.SecurityRequirement { return nil }

// Credentials is a username and password pair.
type Credentials struct {
	Username string
	Password string
}

// SASLPlaintext authenticates with SASL PLAIN.
type SASLPlaintext struct {
	TLS
	Credentials
}

// SchemeFragment implements descriptor.Security.
func (SASLPlaintext) SchemeFragment() map[string]*spec.SecurityScheme {
	return scheme(SchemeUserPassword, "userPassword")
}

// Requirement implements descriptor.Security.
func (SASLPlaintext) Requirement() []spec.SecurityRequirement {
	return requirement(SchemeUserPassword)
}

// SASLScram256 authenticates with SCRAM-SHA-256.
type SASLScram256 struct {
	TLS
	Credentials
}

// SchemeFragment implements descriptor.Security.
func (SASLScram256) SchemeFragment() map[string]*spec.SecurityScheme {
	return scheme(SchemeScram256, "scramSha256")
}

// Requirement implements descriptor.Security.
func (SASLScram256) Requirement() []spec.SecurityRequirement {
	return requirement(SchemeScram256)
}

// SASLScram512 authenticates with SCRAM-SHA-512.
type SASLScram512 struct {
	TLS
	Credentials
}

// SchemeFragment implements descriptor.Security.
func (SASLScram512) SchemeFragment() map[string]*spec.SecurityScheme {
	return scheme(SchemeScram512, "scramSha512")
}

// Requirement implements descriptor.Security.
func (SASLScram512) Requirement() []spec.SecurityRequirement {
	return requirement(SchemeScram512)
}

// SASLOAuthBearer authenticates with an OAuth bearer token.
type SASLOAuthBearer struct {
	TLS
}

// SchemeFragment implements descriptor.Security.
func (SASLOAuthBearer) SchemeFragment() map[string]*spec.SecurityScheme {
	return scheme(SchemeOAuthBearer, "oauth2")
}

// Requirement implements descriptor.Security.
func (SASLOAuthBearer) Requirement() []spec.SecurityRequirement {
	return requirement(SchemeOAuthBearer)
}

// SASLGSSAPI authenticates with Kerberos.
type SASLGSSAPI struct {
	TLS
}

// SchemeFragment implements descriptor.Security.
func (SASLGSSAPI) SchemeFragment() map[string]*spec.SecurityScheme {
	return scheme(SchemeGSSAPI, "gssapi")
}

// Requirement implements descriptor.Security.
func (SASLGSSAPI) Requirement() []spec.SecurityRequirement {
	return requirement(SchemeGSSAPI)
}

var (
	_ descriptor.Security = TLS{}
	_ descriptor.Security = SASLPlaintext{}
	_ descriptor.Security = SASLScram256{}
	_ descriptor.Security = SASLScram512{}
	_ descriptor.Security = SASLOAuthBearer{}
	_ descriptor.Security = SASLGSSAPI{}
)

func scheme(name, typ string) map[string]*spec.SecurityScheme {
	return map[string]*spec.SecurityScheme{name: {Type: typ}}
}

func requirement(name string) []spec.SecurityRequirement {
	return []spec.SecurityRequirement{{name: {}}}
}

// constructors maps configuration type names to security values.
var constructors = map[string]func(Credentials, bool) descriptor.Security{
	"tls":         func(_ Credentials, useTLS bool) descriptor.Security { return TLS{UseTLS: useTLS} },
	"plain":       func(c Credentials, useTLS bool) descriptor.Security { return SASLPlaintext{TLS{UseTLS: useTLS}, c} },
	"scram-256":   func(c Credentials, useTLS bool) descriptor.Security { return SASLScram256{TLS{UseTLS: useTLS}, c} },
	"scram-512":   func(c Credentials, useTLS bool) descriptor.Security { return SASLScram512{TLS{UseTLS: useTLS}, c} },
	"oauthbearer": func(_ Credentials, useTLS bool) descriptor.Security { return SASLOAuthBearer{TLS{UseTLS: useTLS}} },
	"gssapi":      func(_ Credentials, useTLS bool) descriptor.Security { return SASLGSSAPI{TLS{UseTLS: useTLS}} },
}

// Types returns the accepted configuration type names, sorted.
func Types() []string {
	return slices.Sorted(maps.Keys(constructors))
}

// FromConfig builds a security value from a configuration type name such
// as "plain" or "scram-256". Names are case-insensitive.
func FromConfig(typ string, creds Credentials, useTLS bool) (descriptor.Security, error) {
	ctor, ok := constructors[strings.ToLower(strings.TrimSpace(typ))]
	if !ok {
		return nil, &specerrors.ConfigError{
			Option:  "security.type",
			Value:   typ,
			Message: fmt.Sprintf("unknown security type (want one of %s)", strings.Join(Types(), ", ")),
		}
	}
	return ctor(creds, useTLS), nil
}
