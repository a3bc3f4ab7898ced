package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clevacompass/pkg/errors"
	"github.com/matzehuels/clevacompass/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	generateOpts
	width   int  // PNG width in pixels
	noCache bool // bypass the artifact cache
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{width: render.DefaultPNGWidth}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the compass to svg, png, pdf or tex",
		Long: `Render fills the compass template and compiles it with pdflatex. The
output format follows the file extension of --output. SVG needs pdf2svg,
PNG needs pdftoppm (poppler).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "TikZ template file (default: built-in template)")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "entries as JSON file (default: configured store)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "cleva_filled.svg", "output file; the extension selects the format")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "PNG width in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runRender reports an unsupported extension or missing tooling as a
// message and writes nothing.
func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	f, err := render.FormatFromPath(opts.output)
	if err != nil {
		printInfo("%s", errors.UserMessage(err))
		return nil
	}

	entries, err := c.loadEntries(ctx, opts.data)
	if err != nil {
		return err
	}
	tex, err := c.fill(ctx, opts.template, entries)
	if err != nil {
		return err
	}

	ch := c.newCache(ctx, opts.noCache)
	defer ch.Close()
	r := render.New(
		render.WithCache(ch),
		render.WithCacheTTL(c.cfg.Cache.TTL.Duration),
		render.WithLogger(loggerFromContext(ctx)),
		render.WithPNGWidth(opts.width),
	)

	prog := newProgress(loggerFromContext(ctx), "render")
	spin := startSpinner(ctx, os.Stderr, "Compiling "+pluralize(len(entries), "entry", "entries")+" to "+string(f)+"...")
	data, err := r.Render(ctx, tex, f)
	if errors.Is(err, errors.ErrCodeUnavailable) {
		spin.stop()
		printWarning("%s", errors.UserMessage(err))
		return nil
	}
	if err != nil {
		spin.fail("Render failed")
		return err
	}
	spin.stop()

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
	}
	prog.done("rendered", "file", opts.output, "bytes", len(data))
	printSuccess("Successfully saved CLEVA Compass to %s", opts.output)
	return nil
}
