package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/erraggy/asyncspec/internal/docserver"
	"github.com/erraggy/asyncspec/internal/pathutil"
	"github.com/erraggy/asyncspec/manifest"
	"github.com/erraggy/asyncspec/spec"
)

const outputFileMode = 0o600

type generateFlags struct {
	buildFlags
	output string
	format string
}

func newGenerateCommand(a *app) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <manifest>",
		Short: "Generate an AsyncAPI document from a manifest",
		Long: `Generate reads a broker manifest and writes the assembled AsyncAPI 3.0
document to stdout, or to the file named by --output.

The encoding is taken from --format, then from the output file extension
(.json is JSON, anything else YAML). Stdout defaults to YAML.

With --watch the document is rewritten every time the manifest changes
until the command is interrupted. --watch requires --output.`,
		Example: `  asyncspec generate asyncapi.manifest.yaml
  asyncspec generate -o asyncapi.json --check-refs asyncapi.manifest.yaml
  asyncspec generate --watch -o asyncapi.yaml asyncapi.manifest.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.resolve(cmd, a.cfg)
			return runGenerate(cmd, a, f, args[0])
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the document to this file instead of stdout")
	cmd.Flags().StringVar(&f.format, "format", "", "output encoding: json or yaml")
	f.register(cmd)
	return cmd
}

func (f *generateFlags) encoding() (spec.Format, error) {
	if f.format != "" {
		return spec.ParseFormat(f.format)
	}
	if f.output != "" {
		return spec.FormatFromPath(f.output), nil
	}
	return spec.FormatYAML, nil
}

func runGenerate(cmd *cobra.Command, a *app, f *generateFlags, path string) error {
	format, err := f.encoding()
	if err != nil {
		return err
	}
	if f.watch {
		if f.output == "" {
			return errors.New("--watch requires --output")
		}
		return watchGenerate(cmd.Context(), a, f, format, path)
	}

	res, err := manifest.Load(path)
	if err != nil {
		return err
	}
	out, err := res.Build(cmd.Context(), f.options(a.logger)...)
	if err != nil {
		return err
	}
	data, err := out.Document.Marshal(format)
	if err != nil {
		return err
	}

	if f.output == "" {
		return writeDocument(cmd.OutOrStdout(), data)
	}
	dest, err := writeOutput(f.output, data)
	if err != nil {
		return err
	}
	a.logger.Info().
		Str("output", dest).
		Int("channels", out.Stats.Channels).
		Int("operations", out.Stats.Operations).
		Int("schemas", out.Stats.Schemas).
		Int("collisions", len(out.Collisions)).
		Msg("document written")
	return nil
}

// watchGenerate writes the document once, then again after every manifest
// change that alters it. A manifest that fails to build leaves the last
// good document in place.
func watchGenerate(ctx context.Context, a *app, f *generateFlags, format spec.Format, path string) error {
	holder, err := docserver.NewHolder(ctx, path, a.logger, nil, f.options(a.logger)...)
	if err != nil {
		return err
	}
	defer holder.Stop()

	write := func(snap *docserver.Snapshot) {
		dest, err := writeOutput(f.output, snapshotBytes(snap, format))
		if err != nil {
			a.logger.Error().Err(err).Str("output", f.output).Msg("failed to write document")
			return
		}
		a.logger.Info().Str("output", dest).Str("etag", snap.ETag).Msg("document written")
	}
	holder.OnChange(write)
	if err := holder.WatchFile(); err != nil {
		return err
	}
	write(holder.Get())
	a.logger.Info().Str("manifest", holder.Path()).Msg("watching for changes")
	<-ctx.Done()
	return nil
}

func snapshotBytes(snap *docserver.Snapshot, format spec.Format) []byte {
	if format == spec.FormatJSON {
		return snap.JSON
	}
	return snap.YAML
}

func writeOutput(path string, data []byte) (string, error) {
	safe, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(safe, data, outputFileMode); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return safe, nil
}

func writeDocument(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
