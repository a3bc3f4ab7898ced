package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clevacompass/pkg/cache"
	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/config"
	"github.com/matzehuels/clevacompass/pkg/errors"
	"github.com/matzehuels/clevacompass/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "clevacompass"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file and attaches the logger to the
// command context. It runs before every subcommand.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", c.configFile())
	return nil
}

func (c *CLI) configFile() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.DefaultPath()
}

// =============================================================================
// Factories
// =============================================================================

// palette returns the base palette plus the configured extra colours.
func (c *CLI) palette() (*compass.Palette, error) {
	p := compass.DefaultPalette()
	for _, name := range c.cfg.Colors.Extra {
		if err := p.Register(name); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// openStore opens the configured entry store. path overrides the data file
// of the file backend.
func (c *CLI) openStore(ctx context.Context, path string) (store.Store, error) {
	switch c.cfg.Store.Backend {
	case config.BackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        c.cfg.Store.MongoURI,
			Database:   c.cfg.Store.MongoDatabase,
			Collection: c.cfg.Store.MongoCollection,
		})
	default:
		if path == "" {
			path = c.cfg.Data
		}
		return store.NewFileStore(path), nil
	}
}

// newCache opens the configured artifact cache. noCache forces the null
// cache. A cache that cannot be opened degrades to the null cache with a
// warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache()
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:        c.cfg.Cache.RedisAddr,
			Password:    c.cfg.Cache.RedisPassword,
			DB:          c.cfg.Cache.RedisDB,
			DialTimeout: 2 * time.Second,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", errors.UserMessage(err))
			return cache.NewNullCache()
		}
		return rc
	default:
		fc, err := cache.NewFileCache(c.cfg.Cache.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// cacheDir returns the directory of the file cache.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
