package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sprout/pkg/cache"
	"github.com/matzehuels/sprout/pkg/compose"
	"github.com/matzehuels/sprout/pkg/observability"
	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, log output is discarded.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Execute runs validate → generate → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Generate
	result.Scene = r.Generate(ctx, opts)
	result.Stats.Primitives = result.Scene.Count(nil)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result.Scene, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheHit = hit

	r.Logger.Info("rendered plant",
		"genome", opts.Genome,
		"stage", opts.Stage,
		"seed", opts.Seed,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate composes the scene for validated options.
func (r *Runner) Generate(ctx context.Context, opts Options) scene.Scene {
	start := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, opts.Genome, opts.Stage)
	s := compose.FromSeed(opts.Seed, opts.PlantGenome(), opts.Input(), plant.Options{PotStyle: opts.Style()})
	d := time.Since(start)
	n := s.Count(nil)
	observability.Pipeline().OnGenerateComplete(ctx, opts.Genome, opts.Stage, n, d)
	r.Logger.Debug("generated scene", "primitives", n, "duration", d)
	return s
}

// RenderWithCacheInfo renders every requested format, reading and writing
// the artifact cache. hit is true when all formats came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s scene.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	ro := opts.RenderOptions()
	return r.renderCached(ctx, s, opts.Formats, opts.Refresh, "artifact", ro, func(format string) string {
		return r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
	})
}

// RenderSheet renders a showcase sheet scene, cached under the sheet name.
func (r *Runner) RenderSheet(ctx context.Context, name string, s scene.Scene, formats []string, ro RenderOptions, refresh bool) (map[string][]byte, bool, error) {
	if len(formats) == 0 {
		formats = []string{FormatSVG}
	}
	return r.renderCached(ctx, s, formats, refresh, "sheet", ro, func(format string) string {
		k := cache.SheetKeyOpts{Sheet: name, Format: format, Filters: !ro.NoFilters}
		if format == FormatPNG {
			k.Scale = ro.Scale
		}
		return r.Keyer.SheetKey(k)
	})
}

func (r *Runner) renderCached(ctx context.Context, s scene.Scene, formats []string, refresh bool, keyType string, ro RenderOptions, key func(string) string) (map[string][]byte, bool, error) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(formats))
	allHit := true

	for _, format := range formats {
		k := key(format)
		if !refresh {
			data, hit, err := r.Cache.Get(ctx, k)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if err == nil && hit {
				hooks.OnCacheHit(ctx, keyType)
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, keyType)
		}
		allHit = false

		data, err := Render(ctx, s, format, ro)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		err = cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, k, data, r.TTL)
		})
		if err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, keyType, len(data))
	}

	return artifacts, allHit, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
