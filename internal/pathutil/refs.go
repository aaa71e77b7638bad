// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// AsyncAPI 3.0 reference prefixes
const (
	RefPrefixServers         = "#/servers/"
	RefPrefixChannels        = "#/channels/"
	RefPrefixOperations      = "#/operations/"
	RefPrefixMessages        = "#/components/messages/"
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
)

// Local definition-block prefixes produced by JSON Schema generators.
const (
	RefPrefixDefs        = "#/$defs/"
	RefPrefixDefinitions = "#/definitions/"
)

// ServerRef builds "#/servers/{name}".
func ServerRef(name string) string {
	return RefPrefixServers + name
}

// ChannelRef builds "#/channels/{name}".
func ChannelRef(name string) string {
	return RefPrefixChannels + name
}

// ChannelMessageRef builds "#/channels/{channel}/messages/{message}".
func ChannelMessageRef(channel, message string) string {
	return RefPrefixChannels + channel + "/messages/" + message
}

// OperationRef builds "#/operations/{name}".
func OperationRef(name string) string {
	return RefPrefixOperations + name
}

// MessageRef builds "#/components/messages/{name}".
func MessageRef(name string) string {
	return RefPrefixMessages + name
}

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + name
}

// SecuritySchemeRef builds "#/components/securitySchemes/{name}".
func SecuritySchemeRef(name string) string {
	return RefPrefixSecuritySchemes + name
}

// DefinitionName reports the definition name referenced by a local
// "#/$defs/{name}" or "#/definitions/{name}" ref.
func DefinitionName(ref string) (string, bool) {
	if name, ok := strings.CutPrefix(ref, RefPrefixDefs); ok {
		return name, name != ""
	}
	if name, ok := strings.CutPrefix(ref, RefPrefixDefinitions); ok {
		return name, name != ""
	}
	return "", false
}

// SplitLocal splits a local ref into its pointer segments.
// "#/channels/orders/messages/Message" -> ["channels", "orders", "messages", "Message"].
// Non-local refs return ok == false.
func SplitLocal(ref string) (segments []string, ok bool) {
	rest, ok := strings.CutPrefix(ref, "#/")
	if !ok || rest == "" {
		return nil, false
	}
	segments = strings.Split(rest, "/")
	for i, s := range segments {
		segments[i] = UnescapeSegment(s)
	}
	return segments, true
}

// UnescapeSegment decodes the RFC 6901 escapes "~1" and "~0".
func UnescapeSegment(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

// EscapeSegment applies the RFC 6901 escapes for "~" and "/".
func EscapeSegment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
