package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/errors"
	cio "github.com/matzehuels/clevacompass/pkg/io"
)

// noIndex marks an unset --index flag; the picker is used instead.
const noIndex = -1

func (c *CLI) entryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"entries"},
		Short:   "Manage the compass entries",
		Long: `Entries are kept in the configured store: the JSON document named by
"data" in the config file (default data.json) or a MongoDB collection.`,
	}

	cmd.AddCommand(c.entryAddCommand())
	cmd.AddCommand(c.entryUpdateCommand())
	cmd.AddCommand(c.entryDeleteCommand())
	cmd.AddCommand(c.entryListCommand())
	cmd.AddCommand(c.entryExportCommand())
	cmd.AddCommand(c.entryImportCommand())

	return cmd
}

// =============================================================================
// Entry Flags
// =============================================================================

// entryFlags holds the attribute flags of add and update.
type entryFlags struct {
	label string
	color string
	inner map[string]int
	outer []string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.label, "label", "l", "", "method label")
	cmd.Flags().StringVarP(&f.color, "color", "c", compass.DefaultColor, "entry colour")
	cmd.Flags().StringToIntVar(&f.inner, "inner", nil,
		"inner level values as name=0|1|2, e.g. online=1,uncertainty=2\n("+strings.Join(compass.InnerAttributes[:], ", ")+")")
	cmd.Flags().StringSliceVar(&f.outer, "outer", nil,
		"outer level measurements that are reported\n("+strings.Join(compass.OuterAttributes[:], ", ")+")")

	_ = cmd.RegisterFlagCompletionFunc("inner", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, compass.NumInner*3)
		for _, name := range compass.InnerAttributes {
			for v := compass.None; v <= compass.Unsupervised; v++ {
				out = append(out, fmt.Sprintf("%s=%d", name, int(v)))
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("outer", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return compass.OuterAttributes[:], cobra.ShellCompDirectiveNoFileComp
	})
}

// apply writes the flags onto e. With onlyChanged set, flags the user did
// not pass leave e untouched. --outer replaces the whole outer level.
func (f *entryFlags) apply(cmd *cobra.Command, e *compass.Entry, onlyChanged bool) error {
	changed := func(name string) bool { return !onlyChanged || cmd.Flags().Changed(name) }

	if changed("label") {
		e.Label = f.label
	}
	if changed("color") {
		e.Color = f.color
	}
	if changed("inner") {
		names := make([]string, 0, len(f.inner))
		for name := range f.inner {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if err := e.Inner.Set(name, compass.TriState(f.inner[name])); err != nil {
				return err
			}
		}
	}
	if changed("outer") {
		e.Outer = compass.OuterLevel{}
		for _, name := range f.outer {
			if err := e.Outer.Set(strings.TrimSpace(name), true); err != nil {
				return err
			}
		}
	}
	return e.Validate()
}

// =============================================================================
// Subcommands
// =============================================================================

func (c *CLI) entryAddCommand() *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry",
		Example: `  clevacompass entry add --label EWC --color magenta \
    --inner online=1,uncertainty=2 --outer forgetting,parameters`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var e compass.Entry
			if err := f.apply(cmd, &e, false); err != nil {
				return err
			}
			var idx int
			err := c.editEntries(cmd.Context(), func(l *compass.List) error {
				idx = l.Add(e)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s at index %d", e, idx)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (c *CLI) entryUpdateCommand() *cobra.Command {
	var f entryFlags
	index := noIndex
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an entry; only the given flags change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var updated compass.Entry
			err := c.editEntries(cmd.Context(), func(l *compass.List) error {
				i, err := resolveIndex(l, index, "Select entry to update")
				if err != nil {
					return err
				}
				e, err := l.At(i)
				if err != nil {
					return err
				}
				if err := f.apply(cmd, &e, true); err != nil {
					return err
				}
				updated = e
				return l.Update(i, e)
			})
			if err != nil {
				return noSelection(err)
			}
			printSuccess("Updated %s", updated)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntVarP(&index, "index", "i", noIndex, "entry index (default: interactive picker)")
	return cmd
}

func (c *CLI) entryDeleteCommand() *cobra.Command {
	index := noIndex
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed compass.Entry
			err := c.editEntries(cmd.Context(), func(l *compass.List) error {
				i, err := resolveIndex(l, index, "Select entry to delete")
				if err != nil {
					return err
				}
				removed, err = l.Delete(i)
				return err
			})
			if err != nil {
				return noSelection(err)
			}
			printSuccess("Deleted %s", removed)
			return nil
		},
	}
	cmd.Flags().IntVarP(&index, "index", "i", noIndex, "entry index (default: interactive picker)")
	return cmd
}

func (c *CLI) entryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.loadEntries(cmd.Context(), "")
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("There were no entries in the list.")
				return nil
			}
			fmt.Println(entryTable(entries, noIndex))
			return nil
		},
	}
}

func (c *CLI) entryExportCommand() *cobra.Command {
	index := noIndex
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one entry as an entry document",
		Long:  `Export writes the selected entry to <label>.json unless --output is given.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.loadEntries(cmd.Context(), "")
			if err != nil {
				return err
			}
			l := compass.NewList(entries...)
			if l.Len() == 0 {
				printInfo("There were no entries in the list.")
				return nil
			}
			i, err := resolveIndex(l, index, "Select entry to export")
			if err != nil {
				return noSelection(err)
			}
			e, err := l.At(i)
			if err != nil {
				return err
			}
			out := output
			if out == "" {
				out = e.Label + ".json"
			}
			if err := cio.ExportJSON(out, []compass.Entry{e}); err != nil {
				return err
			}
			printSuccess("Successfully saved %s", e)
			printFile(out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&index, "index", "i", noIndex, "entry index (default: interactive picker)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <label>.json)")
	return cmd
}

func (c *CLI) entryImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>...",
		Short: "Append the entries of one or more entry documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := cio.ImportFiles(args...)
			if err != nil {
				return err
			}
			err = c.editEntries(cmd.Context(), func(l *compass.List) error {
				l.Append(imported...)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Imported %d entries from %d files", len(imported), len(args))
			for _, e := range imported {
				printDetail("%s", e)
			}
			return nil
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

// editEntries loads the store into a List, applies fn and saves the result.
// Nothing is saved when fn fails.
func (c *CLI) editEntries(ctx context.Context, fn func(*compass.List) error) error {
	s, err := c.openStore(ctx, "")
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}
	l := compass.NewList(entries...)
	if err := fn(l); err != nil {
		return err
	}
	return s.Save(ctx, l.Entries())
}

// resolveIndex returns index, or asks with the picker when it is unset.
func resolveIndex(l *compass.List, index int, title string) (int, error) {
	if index != noIndex {
		return index, nil
	}
	if l.Len() == 0 {
		return 0, errors.New(errors.ErrCodeInvalidIndex, "there are no entries in the list")
	}
	return pickEntry(l.Entries(), title)
}

// noSelection turns an aborted picker into a clean exit.
func noSelection(err error) error {
	if err == errNoSelection {
		printInfo("Nothing selected")
		return nil
	}
	return err
}
