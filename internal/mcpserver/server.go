// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes asyncspec document generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/asyncspec"
)

const serverInstructions = `asyncspec MCP server. Assembles AsyncAPI 3.0 documents from broker manifests and inspects the result.

Manifests describe a broker (protocol, urls, security) and its publishers and subscribers as amqp, kafka or generic endpoint sections. Every tool accepts the manifest as a file path, a URL or inline content.

Configuration: defaults are set via ASYNCSPEC_MCP_* environment variables in your MCP client config.
- ASYNCSPEC_MCP_CACHE_ENABLED (default: true): cache parsed manifests per session
- ASYNCSPEC_MCP_CACHE_FILE_TTL (default: 15m), ASYNCSPEC_MCP_CACHE_URL_TTL (default: 5m)
- ASYNCSPEC_MCP_INSPECT_LIMIT (default: 100): default result limit for inspect
- ASYNCSPEC_MCP_MAX_INLINE_SIZE (default: 1MiB): maximum inline or fetched manifest size
- ASYNCSPEC_MCP_ALLOW_PRIVATE_IPS (default: false): allow manifest URLs on private networks
- ASYNCSPEC_STRICT (default: false): treat component name collisions as errors`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		manifestCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "asyncspec", Version: asyncspec.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Assemble an AsyncAPI 3.0 document from a broker manifest. Returns the document as JSON or YAML, with component counts and any name collisions (a later component replaced an earlier one with the same key). Use strict=true to fail on collisions, check_references=true to verify every $ref resolves, and output to write the document to a file instead of returning it inline.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Summarize the AsyncAPI document a manifest produces without returning it in full. Lists servers, channels, operations, messages or schemas (section parameter) with their key details. Filter keys with name (supports * glob). Use offset/limit to paginate.",
	}, handleInspect)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.InspectLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.InspectLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// matchName reports whether key matches a name filter. Filters without
// glob characters match case-insensitively as substrings.
func matchName(pattern, key string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.Contains(strings.ToLower(key), strings.ToLower(pattern))
	}
	ok, _ := filepath.Match(pattern, key)
	return ok
}
