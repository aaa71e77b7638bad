package mcpserver

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/asyncspec/spec"
)

// Inspectable document sections.
const (
	sectionServers    = "servers"
	sectionChannels   = "channels"
	sectionOperations = "operations"
	sectionMessages   = "messages"
	sectionSchemas    = "schemas"
)

var inspectSections = []string{sectionServers, sectionChannels, sectionOperations, sectionMessages, sectionSchemas}

type inspectInput struct {
	Manifest manifestInput `json:"manifest"          jsonschema:"The manifest describing the broker and its endpoints"`
	Section  string        `json:"section,omitempty" jsonschema:"One of servers, channels, operations, messages, schemas (default: channels)"`
	Name     string        `json:"name,omitempty"    jsonschema:"Filter keys by name (substring, or glob with *)"`
	Offset   int           `json:"offset,omitempty"  jsonschema:"Skip the first N results (for pagination)"`
	Limit    int           `json:"limit,omitempty"   jsonschema:"Maximum number of results to return (default from ASYNCSPEC_MCP_INSPECT_LIMIT)"`
}

type inspectItem struct {
	Key      string   `json:"key"`
	Address  string   `json:"address,omitempty"`
	Host     string   `json:"host,omitempty"`
	Protocol string   `json:"protocol,omitempty"`
	Action   string   `json:"action,omitempty"`
	Channel  string   `json:"channel,omitempty"`
	Messages []string `json:"messages,omitempty"`
	Title    string   `json:"title,omitempty"`
	Payload  []string `json:"payload,omitempty"`
	Type     string   `json:"type,omitempty"`
}

type inspectOutput struct {
	Title      string        `json:"title"`
	Version    string        `json:"version"`
	Section    string        `json:"section"`
	Total      int           `json:"total"`
	Returned   int           `json:"returned"`
	Items      []inspectItem `json:"items,omitempty"`
	Stats      statsOutput   `json:"stats"`
	Collisions int           `json:"collisions"`
}

func handleInspect(ctx context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	section := strings.ToLower(strings.TrimSpace(input.Section))
	if section == "" {
		section = sectionChannels
	}
	if !slices.Contains(inspectSections, section) {
		return errResult(fmt.Errorf("invalid section %q; valid values: %s", input.Section, strings.Join(inspectSections, ", "))), inspectOutput{}, nil
	}

	res, err := input.Manifest.resolve(ctx)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	out, err := res.Build(ctx)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	var items []inspectItem
	for _, item := range sectionItems(out.Document, section) {
		if matchName(input.Name, item.Key) {
			items = append(items, item)
		}
	}
	page := paginate(items, input.Offset, input.Limit)

	output := inspectOutput{
		Section:    section,
		Total:      len(items),
		Returned:   len(page),
		Items:      page,
		Stats:      newStats(out.Stats),
		Collisions: len(out.Collisions),
	}
	if info := out.Document.Info; info != nil {
		output.Title, output.Version = info.Title, info.Version
	}
	return nil, output, nil
}

// sectionItems lists one document section in key order.
func sectionItems(doc *spec.Document, section string) []inspectItem {
	var items []inspectItem
	switch section {
	case sectionServers:
		for _, key := range slices.Sorted(maps.Keys(doc.Servers)) {
			s := doc.Servers[key]
			items = append(items, inspectItem{Key: key, Host: s.Host, Protocol: s.Protocol})
		}
	case sectionChannels:
		for _, key := range slices.Sorted(maps.Keys(doc.Channels)) {
			ch := doc.Channels[key]
			items = append(items, inspectItem{
				Key:      key,
				Address:  ch.Address,
				Messages: slices.Sorted(maps.Keys(ch.Messages)),
			})
		}
	case sectionOperations:
		for _, key := range slices.Sorted(maps.Keys(doc.Operations)) {
			op := doc.Operations[key]
			item := inspectItem{Key: key, Action: string(op.Action)}
			if op.Channel != nil {
				item.Channel = op.Channel.Ref
			}
			for _, m := range op.Messages {
				item.Messages = append(item.Messages, m.Ref)
			}
			items = append(items, item)
		}
	case sectionMessages:
		if doc.Components == nil {
			return nil
		}
		for _, key := range slices.Sorted(maps.Keys(doc.Components.Messages)) {
			msg := doc.Components.Messages[key]
			items = append(items, inspectItem{Key: key, Title: msg.Title, Payload: payloadRefs(msg.Payload)})
		}
	case sectionSchemas:
		if doc.Components == nil {
			return nil
		}
		for _, key := range slices.Sorted(maps.Keys(doc.Components.Schemas)) {
			item := inspectItem{Key: key}
			if t, ok := doc.Components.Schemas[key]["type"].(string); ok {
				item.Type = t
			}
			items = append(items, item)
		}
	}
	return items
}

func payloadRefs(p *spec.MessagePayload) []string {
	switch {
	case p == nil:
		return nil
	case p.IsUnion():
		refs := make([]string, 0, len(p.OneOf))
		for _, r := range p.OneOf {
			refs = append(refs, r.Ref)
		}
		return refs
	case p.Ref != "":
		return []string{p.Ref}
	}
	return nil
}
