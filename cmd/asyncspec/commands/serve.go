package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/asyncspec/internal/config"
	"github.com/erraggy/asyncspec/internal/docserver"
)

type serveFlags struct {
	buildFlags
	addr string
}

func newServeCommand(a *app) *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve <manifest>",
		Short: "Serve the generated document over HTTP",
		Long: `Serve generates the document from a manifest and serves it over HTTP:

  /                 rendered documentation
  /asyncapi.json    the document as JSON
  /asyncapi.yaml    the document as YAML
  /healthz          generation status
  /metrics          Prometheus metrics

With --watch the document is regenerated whenever the manifest changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.resolve(cmd, a.cfg)
			if !cmd.Flags().Changed("addr") {
				f.addr = a.cfg.Addr
			}
			return runServe(cmd, a, f, args[0])
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", config.DefaultAddr, "listen address (default from "+config.EnvAddr+")")
	f.register(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, a *app, f *serveFlags, path string) error {
	ctx := cmd.Context()
	metrics := docserver.NewMetrics()
	holder, err := docserver.NewHolder(ctx, path, a.logger, metrics, f.options(a.logger)...)
	if err != nil {
		return err
	}
	defer holder.Stop()

	if f.watch {
		if err := holder.WatchFile(); err != nil {
			return err
		}
	}

	srv := docserver.New(holder, a.logger, docserver.Options{
		Addr:         f.addr,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	})
	return srv.Run(ctx)
}
