package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyforge/astropress/internal/server"
	"github.com/skyforge/astropress/pkg/cache"
)

// Cache backends for the serve command.
const (
	cacheModeNone  = "none"
	cacheModeFile  = "file"
	cacheModeRedis = "redis"
)

// defaultRedisURL is used when --cache redis is set without --redis-url.
const defaultRedisURL = "redis://localhost:6379/0"

// validCacheModes is the set of supported --cache values.
var validCacheModes = map[string]bool{
	cacheModeNone:  true,
	cacheModeFile:  true,
	cacheModeRedis: true,
}

// validateCacheMode checks that the cache mode is supported.
func validateCacheMode(mode string) error {
	if !validCacheModes[mode] {
		return fmt.Errorf("invalid cache mode: %s (must be 'none', 'file', or 'redis')", mode)
	}
	return nil
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		cacheMode  string
		redisURL   string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve booklets over HTTP",
		Long: `Serve booklets over HTTP.

The server renders booklets on demand from query parameters and exposes
the language and location catalogs:

  GET /healthz
  GET /api/languages
  GET /api/locations?q=tokyo
  GET /api/booklet?latitude=52&language=en&type=full&format=png

Rendered booklets are cached in the configured backend. A Redis backend
lets several instances share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// Flags win over config, config over built-ins.
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			if !cmd.Flags().Changed("cache") && cfg.Serve.Cache != "" {
				cacheMode = cfg.Serve.Cache
			}
			if !cmd.Flags().Changed("redis-url") && cfg.Serve.RedisURL != "" {
				redisURL = cfg.Serve.RedisURL
			}

			if err := validateCacheMode(cacheMode); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, cacheMode, redisURL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", `listen address (default ":8787")`)
	cmd.Flags().StringVar(&cacheMode, "cache", cacheModeFile, "render cache backend: file, redis, none")
	cmd.Flags().StringVar(&redisURL, "redis-url", defaultRedisURL, "redis connection URL for --cache redis")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (default astropress.toml)")

	return cmd
}

// runServe builds the cache backend and runs the HTTP server until ctx is done.
func (c *CLI) runServe(ctx context.Context, addr, cacheMode, redisURL string) error {
	if addr == "" {
		addr = server.DefaultAddr
	}

	renderCache, err := newServeCache(ctx, cacheMode, redisURL)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer renderCache.Close()

	srv := server.New(server.Config{
		Addr:   addr,
		Cache:  renderCache,
		Logger: c.Logger,
	})

	if cacheMode == cacheModeNone {
		printWarning("Render cache disabled; every request re-renders")
	}
	printInfo("Listening on %s", StyleHighlight.Render(addr))
	printDetail("GET /api/booklet?latitude=52&language=en")
	printNewline()

	return srv.Run(ctx)
}

// newServeCache builds the cache backend for the serve command.
// The file backend falls back to no caching when no cache directory can
// be resolved.
func newServeCache(ctx context.Context, mode, redisURL string) (cache.Cache, error) {
	switch mode {
	case cacheModeNone:
		return cache.NewNullCache(), nil
	case cacheModeRedis:
		return cache.NewRedisCache(ctx, redisURL)
	default:
		dir, err := cache.DefaultDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}
