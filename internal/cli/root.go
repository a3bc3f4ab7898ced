package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/clevacompass/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "clevacompass draws CLEVA-Compass diagrams of continual learning methods",
		Long: `clevacompass manages a list of compass entries (one per method) and turns
them into a CLEVA-Compass: a TikZ document with the inner level polygons,
the outer level measurement wedges and a legend. The document can be
exported as .tex or rendered to PDF, SVG or PNG with a local LaTeX setup.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+"$XDG_CONFIG_HOME/"+appName+"/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.entryCommand())
	root.AddCommand(c.colorsCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
