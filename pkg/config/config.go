// Package config loads sprout's optional TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/sprout/config.toml (or
// ~/.config/sprout/config.toml) unless --config names another path. Every
// key is optional: [Load] starts from [Default] and overlays whatever the
// file sets. Command-line flags override both.
//
//	[render]
//	pot_style = "tapered"
//	formats = ["svg"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[presets.fern]
//	genome = [3, 4, 3, 1]
//	stage = 3
//	pot_style = "bowl"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/pipeline"
	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/pot"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Render    RenderConfig      `toml:"render"`
	Server    ServerConfig      `toml:"server"`
	Cache     CacheConfig       `toml:"cache"`
	Specimens SpecimensConfig   `toml:"specimens"`
	Presets   map[string]Preset `toml:"presets"`
}

// RenderConfig holds defaults for rendering commands.
type RenderConfig struct {
	PotStyle   string   `toml:"pot_style"`
	Formats    []string `toml:"formats"`
	SeedPrefix string   `toml:"seed_prefix"`
	Filters    bool     `toml:"filters"`
	Scale      float64  `toml:"scale"`
}

// ServerConfig configures `sprout serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend     string   `toml:"backend"`
	Dir         string   `toml:"dir"` // empty = user cache dir
	RedisAddr   string   `toml:"redis_addr"`
	RedisPrefix string   `toml:"redis_prefix"`
	TTL         Duration `toml:"ttl"`
}

// SpecimensConfig selects the specimen store.
type SpecimensConfig struct {
	MongoURI string `toml:"mongo_uri"` // empty = local store
	Database string `toml:"database"`
	Dir      string `toml:"dir"` // empty = ~/.config/sprout/specimens
}

// Preset is a named set of render inputs.
type Preset struct {
	Genome   []int  `toml:"genome"`
	Stage    int    `toml:"stage"`
	Seed     string `toml:"seed"`
	PotStyle string `toml:"pot_style"`
}

// Duration is a time.Duration written as a string ("24h", "90s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			PotStyle:   pot.Tapered.String(),
			Formats:    []string{pipeline.FormatSVG},
			SeedPrefix: pipeline.DefaultSeedPrefix,
			Filters:    true,
			Scale:      pipeline.DefaultScale,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Cache: CacheConfig{
			Backend:     BackendFile,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "sprout:",
			TTL:         Duration{pipeline.DefaultTTL},
		},
		Specimens: SpecimensConfig{
			Database: "sprout",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sprout", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sprout", "config.toml")
}

// Load reads the config file at path over the defaults. An empty path means
// DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text over the defaults and validates the result.
// Unknown keys are rejected so typos do not go unnoticed.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks styles, formats, the cache backend and every preset.
func (c Config) Validate() error {
	if _, err := pot.ParseStyle(c.Render.PotStyle); err != nil {
		return err
	}
	for _, f := range c.Render.Formats {
		if err := errors.ValidateFormat(f, pipeline.Formats()); err != nil {
			return err
		}
	}
	if c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.scale must be positive, got %v", c.Render.Scale)
	}
	backends := []string{BackendFile, BackendRedis, BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be one of %s, got %q", strings.Join(backends, ", "), c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	for _, name := range c.PresetNames() {
		opts, err := c.Presets[name].Options()
		if err == nil {
			err = opts.ValidateAndSetDefaults()
		}
		if err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return nil
}

// PresetNames returns preset names in sorted order.
func (c Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for n := range c.Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Preset returns the named preset.
func (c Config) Preset(name string) (Preset, error) {
	p, ok := c.Presets[name]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodeNotFound, "preset %q not found", name)
	}
	return p, nil
}

// Options converts the preset to pipeline options. Fields the preset leaves
// unset are filled in later by the pipeline defaults.
func (p Preset) Options() (pipeline.Options, error) {
	var opts pipeline.Options
	if len(p.Genome) > 0 {
		g, err := plant.FromValues(p.Genome)
		if err != nil {
			return opts, err
		}
		opts.Genome = g.String()
	}
	opts.Stage = p.Stage
	opts.Seed = p.Seed
	opts.PotStyle = p.PotStyle
	return opts, nil
}

// RenderOptions applies the [render] section to opts where opts leaves a
// field unset.
func (c Config) RenderOptions(opts pipeline.Options) pipeline.Options {
	if opts.PotStyle == "" {
		opts.PotStyle = c.Render.PotStyle
	}
	if len(opts.Formats) == 0 {
		opts.Formats = slices.Clone(c.Render.Formats)
	}
	if opts.SeedPrefix == "" {
		opts.SeedPrefix = c.Render.SeedPrefix
	}
	if opts.Scale == 0 {
		opts.Scale = c.Render.Scale
	}
	if !c.Render.Filters {
		opts.NoFilters = true
	}
	return opts
}
