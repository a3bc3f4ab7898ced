package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/config"
)

func (c *CLI) colorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "colors",
		Aliases: []string{"colours"},
		Short:   "Show and extend the entry colour palette",
	}
	cmd.AddCommand(c.colorsListCommand())
	cmd.AddCommand(c.colorsAddCommand())
	return cmd
}

func (c *CLI) colorsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active colours and the ones that can be added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.palette()
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render("Palette"))
			for _, col := range p.Colors() {
				printColor(col)
			}
			if pool := p.Pool(); len(pool) > 0 {
				printNewline()
				fmt.Println(StyleDim.Render("Available with 'colors add':"))
				for _, col := range pool {
					printColor(col)
				}
			}
			return nil
		},
	}
}

func (c *CLI) colorsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a colour from the extra pool to the palette",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			names := make([]string, 0, len(compass.ExtraColors))
			for _, col := range compass.ExtraColors {
				names = append(names, col.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			p, err := c.palette()
			if err != nil {
				return err
			}
			if err := p.Register(name); err != nil {
				return err
			}
			if !c.cfg.AddColor(name) {
				printInfo("%s is already in the palette", name)
				return nil
			}
			if err := config.Save(c.configFile(), c.cfg); err != nil {
				return err
			}
			printSuccess("Added %s", name)
			printDetail("Saved to %s", c.configFile())
			return nil
		},
	}
}

// printColor prints a swatch, the name and the xcolor expression.
func printColor(col compass.Color) {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex)).Render("■")
	printKeyValue(swatch+" "+col.Name, StyleDim.Render(col.TeX))
}
