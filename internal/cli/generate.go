package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/compose"
	"github.com/matzehuels/clevacompass/pkg/errors"
	cio "github.com/matzehuels/clevacompass/pkg/io"
	"github.com/matzehuels/clevacompass/pkg/observability"
)

// generateOpts holds the flags shared by generate, render and watch.
type generateOpts struct {
	template string // template file; empty uses the configured or built-in template
	data     string // entry document; empty uses the configured store
	output   string
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill the compass template and write the .tex document",
		Long: `Generate reads the entries, fills the four placeholders of the compass
template (legend, outer circle, inner circle and number of methods) and
writes the resulting LaTeX document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				opts.output = c.cfg.Output
			}
			n, err := c.runGenerate(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printSuccess("Saved CLEVA Compass to %s", opts.output)
			printDetail("%d entries", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "TikZ template file (default: built-in template)")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "entries as JSON file (default: configured store)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "TikZ filled output file (default from config, cleva_filled.tex)")

	return cmd
}

// runGenerate writes the filled template to opts.output and returns the
// number of entries.
func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) (int, error) {
	entries, err := c.loadEntries(ctx, opts.data)
	if err != nil {
		return 0, err
	}
	tex, err := c.fill(ctx, opts.template, entries)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(opts.output, []byte(tex), 0o644); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
	}
	return len(entries), nil
}

// loadEntries reads the entry document at path, or the configured store
// when path is empty.
func (c *CLI) loadEntries(ctx context.Context, path string) ([]compass.Entry, error) {
	if path != "" {
		return cio.ImportJSON(path)
	}
	s, err := c.openStore(ctx, "")
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Load(ctx)
}

// fill composes the compass document from the template at path, the
// configured template, or the built-in one.
func (c *CLI) fill(ctx context.Context, path string, entries []compass.Entry) (string, error) {
	p, err := c.palette()
	if err != nil {
		return "", err
	}
	if path == "" {
		path = c.cfg.Template
	}

	start := time.Now()
	var tex string
	if path == "" {
		tex = compose.Fill(compose.DefaultTemplate(), entries, compose.WithPalette(p))
	} else {
		tex, err = compose.FillFile(path, entries, compose.WithPalette(p))
		if err != nil {
			return "", err
		}
	}
	observability.Pipeline().OnCompose(ctx, len(entries), len(tex), time.Since(start))
	loggerFromContext(ctx).Debug("composed", "entries", len(entries), "template", path, "bytes", len(tex))
	return tex, nil
}
