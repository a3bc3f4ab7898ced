// Package config loads the clevacompass configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/clevacompass/config.toml
// unless a path is given explicitly. Every field has a default, so a
// missing file is not an error:
//
//	template = "cleva_template.tex"   # empty: built-in template
//	data     = "data.json"
//	output   = "cleva_filled.tex"
//
//	[colors]
//	extra = ["teal"]
//
//	[cache]
//	backend = "redis"                 # file | redis | none
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "mongo"                 # file | mongo
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/clevacompass/pkg/errors"
	"github.com/matzehuels/clevacompass/pkg/integrations/github"
)

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
	BackendMongo = "mongo"
)

// Config is the decoded configuration file.
type Config struct {
	Template string        `toml:"template"`
	Data     string        `toml:"data"`
	Output   string        `toml:"output"`
	Methods  MethodsConfig `toml:"methods"`
	Colors   ColorsConfig  `toml:"colors"`
	Cache    CacheConfig   `toml:"cache"`
	Store    StoreConfig   `toml:"store"`
	Server   ServerConfig  `toml:"server"`
}

// MethodsConfig configures the fetch command.
type MethodsConfig struct {
	URL     string `toml:"url"`
	Dir     string `toml:"dir"`
	Flatten bool   `toml:"flatten"`
}

// ColorsConfig lists colours registered on top of the base palette.
type ColorsConfig struct {
	Extra []string `toml:"extra"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// StoreConfig selects where the entry list is kept. The file backend uses
// Config.Data.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr    string   `toml:"addr"`
	Timeout Duration `toml:"timeout"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Data:   "data.json",
		Output: "cleva_filled.tex",
		Methods: MethodsConfig{
			URL: github.DefaultMethodsURL,
			Dir: "methods",
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{7 * 24 * time.Hour},
		},
		Store: StoreConfig{
			Backend:         BackendFile,
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "clevacompass",
			MongoCollection: "entries",
		},
		Server: ServerConfig{
			Addr:    ":8080",
			Timeout: Duration{2 * time.Minute},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/clevacompass/config.toml (or the
// platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".clevacompass", "config.toml")
	}
	return filepath.Join(dir, "clevacompass", "config.toml")
}

// Load reads the file at path over the defaults. An empty path means
// DefaultPath. A missing file yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the backend names and extra colour names.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend: unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case BackendFile, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "store.backend: unknown backend %q (want file or mongo)", c.Store.Backend)
	}
	for _, name := range c.Colors.Extra {
		if err := errors.ValidateColorName(name); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath()
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config dir")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write config %s", path)
	}
	return nil
}

// AddColor appends name to the extra colours unless already present. It
// reports whether the list changed.
func (c *Config) AddColor(name string) bool {
	for _, n := range c.Colors.Extra {
		if n == name {
			return false
		}
	}
	c.Colors.Extra = append(c.Colors.Extra, name)
	return true
}
