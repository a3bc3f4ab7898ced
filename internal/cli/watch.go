package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clevacompass/pkg/config"
	"github.com/matzehuels/clevacompass/pkg/errors"
)

// defaultDebounce batches the burst of events editors emit on save.
const defaultDebounce = 300 * time.Millisecond

func (c *CLI) watchCommand() *cobra.Command {
	var opts generateOpts
	debounce := defaultDebounce

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the .tex document whenever entries or template change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if opts.output == "" {
				opts.output = c.cfg.Output
			}

			var paths []string
			switch {
			case opts.data != "":
				paths = append(paths, opts.data)
			case c.cfg.Store.Backend == config.BackendFile:
				paths = append(paths, c.cfg.Data)
			default:
				printWarning("The %s store cannot be watched; only the template is", c.cfg.Store.Backend)
			}
			tmpl := opts.template
			if tmpl == "" {
				tmpl = c.cfg.Template
			}
			if tmpl != "" {
				paths = append(paths, tmpl)
			}
			if len(paths) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to watch")
			}

			regenerate := func() {
				prog := newProgress(logger, "generate")
				n, err := c.runGenerate(ctx, opts)
				if err != nil {
					logger.Error("generate failed", "err", errors.UserMessage(err))
					return
				}
				prog.done("wrote", "file", opts.output, "entries", n)
			}

			regenerate()
			printInfo("Watching %d files, press Ctrl+C to stop", len(paths))
			for _, p := range paths {
				printFile(p)
			}
			err := watchFiles(ctx, paths, debounce, regenerate)
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "TikZ template file (default: built-in template)")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "entries as JSON file (default: configured store)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "TikZ filled output file (default from config, cleva_filled.tex)")
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "quiet period before regenerating")

	return cmd
}

// watchFiles calls fn once the given files have been quiet for debounce
// after a change. It watches the parent directories so files replaced by
// rename are still seen. It returns when ctx is done.
func watchFiles(ctx context.Context, paths []string, debounce time.Duration, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	defer w.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", p)
		}
		dir := filepath.Dir(abs)
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			dir = real
		}
		targets[filepath.Join(dir, filepath.Base(abs))] = true
		dirs[dir] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", dir)
		}
	}

	logger := loggerFromContext(ctx)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("file changed", "path", ev.Name, "op", ev.Op)
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)

		case <-timer.C:
			fn()
		}
	}
}
