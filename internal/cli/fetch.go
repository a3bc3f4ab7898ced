package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clevacompass/pkg/cache"
	"github.com/matzehuels/clevacompass/pkg/integrations/github"
)

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	url         string
	output      string
	flatten     bool
	concurrency int
	noCache     bool
}

func (c *CLI) fetchCommand() *cobra.Command {
	var opts fetchOpts

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download method entry documents from GitHub",
		Long: `Fetch mirrors a GitHub directory of entry documents into a local
directory. Files that already exist locally are kept. Set GITHUB_TOKEN to
raise the API rate limit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if opts.url == "" {
				opts.url = c.cfg.Methods.URL
			}
			if opts.output == "" {
				opts.output = c.cfg.Methods.Dir
			}
			if !cmd.Flags().Changed("flatten") {
				opts.flatten = c.cfg.Methods.Flatten
			}

			ch := c.newCache(ctx, opts.noCache)
			defer ch.Close()

			spin := startSpinner(ctx, os.Stderr, "Fetching methods from "+opts.url)
			res, err := github.FetchMethods(ctx, opts.url, github.FetchOptions{
				OutputDir:   opts.output,
				Flatten:     opts.flatten,
				Token:       os.Getenv("GITHUB_TOKEN"),
				Concurrency: opts.concurrency,
				Cache:       ch,
				Keyer:       cache.NewDefaultKeyer(),
				ListingTTL:  c.cfg.Cache.TTL.Duration,
				Logger:      loggerFromContext(ctx),
			})
			if err != nil {
				spin.fail("Download failed")
				return err
			}
			spin.stop()

			if len(res.New) > 0 {
				printSuccess("Downloaded %d new methods.", len(res.New))
				for _, p := range res.New {
					printFile(p)
				}
			} else {
				printInfo("No new method found on the repo.")
			}
			printDetail("%d methods already in `%s`.", len(res.Existing), opts.output)
			if len(res.New) > 0 {
				printNextStep("Import them", "clevacompass entry import "+opts.output+"/*.json")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "GitHub tree URL (default from config, the cleva_methods repository)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "local directory (default from config, methods)")
	cmd.Flags().BoolVar(&opts.flatten, "flatten", false, "store all files directly in the output directory")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", github.DefaultConcurrency, "parallel downloads")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not reuse cached directory listings")

	return cmd
}
