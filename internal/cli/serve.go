package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clevacompass/internal/server"
	"github.com/matzehuels/clevacompass/pkg/cache"
	"github.com/matzehuels/clevacompass/pkg/errors"
	"github.com/matzehuels/clevacompass/pkg/metrics"
	"github.com/matzehuels/clevacompass/pkg/observability"
	"github.com/matzehuels/clevacompass/pkg/render"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		template  string
		cacheName string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compose and render HTTP API",
		Long: `Serve starts an HTTP server with these routes:

  GET  /health
  GET  /api/v1/palette
  POST /api/v1/compose          entry document -> .tex
  POST /api/v1/render/{format}  entry document -> svg, png, pdf or tex
  GET  /metrics                 Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			if template == "" {
				template = c.cfg.Template
			}

			var tmpl string
			if template != "" {
				data, err := os.ReadFile(template)
				if err != nil {
					if os.IsNotExist(err) {
						return errors.Wrap(errors.ErrCodeFileNotFound, err, "template %s not found", template)
					}
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "read template %s", template)
				}
				tmpl = string(data)
			}

			p, err := c.palette()
			if err != nil {
				return err
			}

			m := metrics.NewRegistry()
			observability.SetPipelineHooks(m)
			observability.SetCacheHooks(m)
			observability.SetHTTPHooks(m)

			ch := c.newCache(ctx, false)
			defer ch.Close()
			r := render.New(
				render.WithCache(ch),
				render.WithCacheTTL(c.cfg.Cache.TTL.Duration),
				render.WithKeyer(cache.NewScopedKeyer(nil, cacheName+":")),
				render.WithLogger(logger),
			)

			for _, f := range []render.Format{render.FormatPDF, render.FormatSVG, render.FormatPNG} {
				if err := render.Available(f); err != nil {
					logger.Warn("format disabled", "format", f, "reason", errors.UserMessage(err))
				}
			}

			srv := server.New(server.Config{
				Addr:     addr,
				Timeout:  c.cfg.Server.Timeout.Duration,
				Template: tmpl,
				Palette:  p,
				Renderer: r,
				Metrics:  m,
				Logger:   logger,
			})
			printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "TikZ template file (default: built-in template)")
	cmd.Flags().StringVar(&cacheName, "cache-scope", appName, "key prefix in a shared cache")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
