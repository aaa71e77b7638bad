package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/asyncspec/builder"
	"github.com/erraggy/asyncspec/internal/pathutil"
	"github.com/erraggy/asyncspec/spec"
)

type generateInput struct {
	Manifest        manifestInput `json:"manifest"                   jsonschema:"The manifest describing the broker and its endpoints"`
	Format          string        `json:"format,omitempty"           jsonschema:"Output encoding: json or yaml (default: yaml, or inferred from output)"`
	Output          string        `json:"output,omitempty"           jsonschema:"File to write the document to instead of returning it"`
	Strict          *bool         `json:"strict,omitempty"           jsonschema:"Fail when two components share a key (default from ASYNCSPEC_STRICT)"`
	CheckReferences bool          `json:"check_references,omitempty" jsonschema:"Verify every $ref in the document resolves"`
}

type generateOutput struct {
	Success    bool        `json:"success"`
	Format     string      `json:"format"`
	Document   string      `json:"document,omitempty"`
	OutputPath string      `json:"output_path,omitempty"`
	Stats      statsOutput `json:"stats"`
	Collisions []string    `json:"collisions,omitempty"`
}

type statsOutput struct {
	Servers    int `json:"servers"`
	Channels   int `json:"channels"`
	Operations int `json:"operations"`
	Messages   int `json:"messages"`
	Schemas    int `json:"schemas"`
}

func newStats(s builder.Stats) statsOutput {
	return statsOutput{
		Servers:    s.Servers,
		Channels:   s.Channels,
		Operations: s.Operations,
		Messages:   s.Messages,
		Schemas:    s.Schemas,
	}
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	format, err := resolveFormat(input.Format, input.Output)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	res, err := input.Manifest.resolve(ctx)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	strict := cfg.GenerateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}
	out, err := res.Build(ctx,
		builder.WithStrictCollisions(strict),
		builder.WithReferenceCheck(input.CheckReferences),
	)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	data, err := out.Document.Marshal(format)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:    true,
		Format:     string(format),
		Stats:      newStats(out.Stats),
		Collisions: out.Warnings,
	}
	if input.Output == "" {
		output.Document = string(data)
		return nil, output, nil
	}

	safe, err := pathutil.SanitizeOutputPath(input.Output)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	if err := os.WriteFile(safe, data, 0o600); err != nil {
		return errResult(fmt.Errorf("failed to write document: %w", err)), generateOutput{}, nil
	}
	output.OutputPath = safe
	return nil, output, nil
}

// resolveFormat picks the encoding from an explicit name, falling back to
// the output path's extension.
func resolveFormat(name, output string) (spec.Format, error) {
	if name != "" {
		return spec.ParseFormat(name)
	}
	if output != "" {
		return spec.FormatFromPath(output), nil
	}
	return spec.FormatYAML, nil
}
