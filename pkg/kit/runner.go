package kit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skyforge/astropress/pkg/booklet"
	"github.com/skyforge/astropress/pkg/cache"
	"github.com/skyforge/astropress/pkg/catalog"
	"github.com/skyforge/astropress/pkg/errors"
	"github.com/skyforge/astropress/pkg/observability"
	"github.com/skyforge/astropress/pkg/parts"
)

// Runner encapsulates booklet generation with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store build results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Variant resolves the skeleton variant for a language. Languages without a
// dedicated skeleton translation fall back to the default variant.
func Variant(lang string) string {
	l, err := catalog.FindLanguage(lang)
	if err != nil || l.Skeleton == "" {
		return booklet.DefaultVariant
	}
	return l.Skeleton
}

// BookletParameters assembles the render parameters of one kit. With a
// non-empty outputDir the image references are absolute paths into its part
// directory, so the booklet compiles from anywhere. With an empty outputDir
// they are bare file names, for callers that serve booklets without owning
// an output tree.
func BookletParameters(comb Combination, outputDir string) (booklet.Parameters, error) {
	paths := make(map[string]string, len(parts.BookletKinds))
	for _, ref := range parts.BookletRefs(outputDir, comb.Latitude, comb.Language, comb.Type, comb.Format) {
		target := ref.Filename
		if outputDir != "" {
			abs, err := filepath.Abs(ref.Path)
			if err != nil {
				return booklet.Parameters{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve part path %s", ref.Path)
			}
			target = abs
		}
		paths[ref.BookletSlot()] = target
	}
	return booklet.Parameters{
		Latitude:    comb.Latitude.TeX(),
		MotherBack:  paths[parts.KindMotherBack],
		MotherFront: paths[parts.KindMotherFront],
		Rule:        paths[parts.KindRule],
		Rete:        paths[parts.KindRete],
	}, nil
}

// RenderBooklet renders the booklet of one kit, consulting the cache first.
// The returned bool reports whether the bytes came from the cache. A zero
// ttl means cache.DefaultTTL. Cache failures degrade to a plain render and
// are never fatal.
func (r *Runner) RenderBooklet(ctx context.Context, comb Combination, outputDir string, ttl time.Duration) ([]byte, bool, error) {
	variant := Variant(comb.Language)
	tmpl, err := booklet.TemplateFor(variant)
	if err != nil {
		return nil, false, err
	}
	params, err := BookletParameters(comb, outputDir)
	if err != nil {
		return nil, false, err
	}
	if err := params.Validate(); err != nil {
		return nil, false, err
	}

	values := params.Values()
	key := r.Keyer.BookletKey(variant, tmpl.Fingerprint(), values)
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "booklet")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "booklet")

	doc, err := tmpl.Render(values)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	data := []byte(doc)
	if err := r.Cache.Set(ctx, key, data, ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "booklet", len(data))
	}
	return data, false, nil
}

// Build renders the booklet of every kit combination in opts and writes the
// .tex files into the output tree, then writes a run manifest at the tree
// root. Part images are not drawn here; the build records which image files
// each kit expects and, when opts.CheckImages is set, fails before writing
// anything if one is missing.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	start := time.Now()

	combos := opts.Combinations()
	observability.Build().OnBuildStart(ctx, len(combos))
	logger.Info("starting build",
		"combinations", len(combos),
		"output", opts.OutputDir,
		"theme", opts.Theme)

	if err := os.MkdirAll(parts.PartsDir(opts.OutputDir), 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create part directory")
	}
	if err := os.MkdirAll(parts.BookletsDir(opts.OutputDir), 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create booklet directory")
	}

	if opts.CheckImages {
		if err := checkImages(opts.OutputDir, combos); err != nil {
			observability.Build().OnBuildComplete(ctx, 0, time.Since(start), err)
			return nil, err
		}
	}

	result := &Result{RunID: newRunID()}
	result.Stats.Combinations = len(combos)

	for _, comb := range combos {
		select {
		case <-ctx.Done():
			observability.Build().OnBuildComplete(ctx, result.Stats.Booklets, time.Since(start), ctx.Err())
			return nil, ctx.Err()
		default:
		}

		name := comb.BookletName()
		observability.Build().OnBookletStart(ctx, name)
		bookletStart := time.Now()

		data, fromCache, err := r.RenderBooklet(ctx, comb, opts.OutputDir, opts.CacheTTL)
		if err != nil {
			err = wrapKit(err, comb)
			observability.Build().OnBookletComplete(ctx, name, 0, time.Since(bookletStart), err)
			observability.Build().OnBuildComplete(ctx, result.Stats.Booklets, time.Since(start), err)
			return nil, err
		}

		path := filepath.Join(parts.BookletsDir(opts.OutputDir), name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			err = errors.Wrap(errors.ErrCodeInternal, err, "write booklet %s", name)
			observability.Build().OnBookletComplete(ctx, name, 0, time.Since(bookletStart), err)
			observability.Build().OnBuildComplete(ctx, result.Stats.Booklets, time.Since(start), err)
			return nil, err
		}

		elapsed := time.Since(bookletStart)
		result.Stats.RenderTime += elapsed
		result.Stats.Booklets++
		if fromCache {
			result.Stats.CacheHits++
		}
		result.Artifacts = append(result.Artifacts, Artifact{
			Combination: comb,
			Path:        path,
			Size:        len(data),
			FromCache:   fromCache,
			Parts:       parts.KitSet(opts.OutputDir, comb.Latitude, comb.Language, comb.Type, comb.Format),
		})
		observability.Build().OnBookletComplete(ctx, name, len(data), elapsed, nil)
		logger.Debug("booklet written", "path", path, "bytes", len(data), "cached", fromCache)
	}

	manifestPath, err := writeManifest(opts, result)
	if err != nil {
		observability.Build().OnBuildComplete(ctx, result.Stats.Booklets, time.Since(start), err)
		return nil, err
	}
	result.ManifestPath = manifestPath

	result.Stats.TotalTime = time.Since(start)
	observability.Build().OnBuildComplete(ctx, result.Stats.Booklets, result.Stats.TotalTime, nil)
	logger.Info("build complete",
		"booklets", result.Stats.Booklets,
		"cache_hits", result.Stats.CacheHits,
		"duration", result.Stats.TotalTime)
	return result, nil
}

// checkImages stats every part image the booklets will reference before any
// booklet is written, so a missing image fails the run with nothing on disk.
func checkImages(outputDir string, combos []Combination) error {
	for _, comb := range combos {
		params, err := BookletParameters(comb, outputDir)
		if err != nil {
			return wrapKit(err, comb)
		}
		if err := params.CheckPaths(); err != nil {
			return wrapKit(err, comb)
		}
	}
	return nil
}

// wrapKit prefixes an error with the kit combination it belongs to,
// preserving the error code.
func wrapKit(err error, comb Combination) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "kit %s", comb)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
