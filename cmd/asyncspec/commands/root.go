// Package commands provides the cobra commands of the asyncspec CLI.
package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/erraggy/asyncspec/builder"
	"github.com/erraggy/asyncspec/internal/config"
)

// app carries state shared by every subcommand once the root command's
// pre-run hook has loaded configuration.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	logLevel  string
	logFormat string
}

// NewRootCommand returns the asyncspec command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "asyncspec",
		Short: "Assemble AsyncAPI 3.0 documents from broker manifests",
		Long: `asyncspec reads a manifest describing a message broker, its publishers and
subscribers, and writes the AsyncAPI 3.0 document that describes them.

Settings are read from ASYNCSPEC_* environment variables. Flags override
the environment.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (default from "+config.EnvLogLevel+")")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: console or json (default from "+config.EnvLogFormat+")")

	root.AddCommand(
		newGenerateCommand(a),
		newServeCommand(a),
		newMCPCommand(),
		newVersionCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Load()
	if a.logLevel != "" {
		level, err := zerolog.ParseLevel(a.logLevel)
		if err != nil {
			return err
		}
		a.cfg.LogLevel = level
	}
	switch a.logFormat {
	case "":
	case config.FormatConsole, config.FormatJSON:
		a.cfg.LogFormat = a.logFormat
	default:
		return fmt.Errorf("invalid --log-format '%s' (want console or json)", a.logFormat)
	}
	a.logger = a.cfg.Logger(cmd.ErrOrStderr())
	return nil
}

// buildFlags are the generation flags shared by generate and serve.
type buildFlags struct {
	strict      bool
	checkRefs   bool
	watch       bool
	contentType string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.strict, "strict", false, "fail when two components share a key (default from "+config.EnvStrict+")")
	fs.BoolVar(&f.checkRefs, "check-refs", false, "verify every $ref in the document resolves")
	fs.BoolVar(&f.watch, "watch", false, "regenerate when the manifest changes (default from "+config.EnvWatch+")")
	fs.StringVar(&f.contentType, "content-type", "", "default message content type (default from "+config.EnvContentType+")")
}

// resolve fills unset flags from configuration.
func (f *buildFlags) resolve(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if !fs.Changed("strict") {
		f.strict = cfg.Strict
	}
	if !fs.Changed("watch") {
		f.watch = cfg.Watch
	}
	if !fs.Changed("content-type") {
		f.contentType = cfg.ContentType
	}
}

func (f *buildFlags) options(logger zerolog.Logger) []builder.Option {
	opts := []builder.Option{
		builder.WithLogger(config.NewZerologAdapter(logger)),
		builder.WithStrictCollisions(f.strict),
		builder.WithReferenceCheck(f.checkRefs),
	}
	if f.contentType != "" {
		opts = append(opts, builder.WithDefaultContentType(f.contentType))
	}
	return opts
}
