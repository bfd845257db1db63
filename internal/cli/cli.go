// Package cli implements the astropress command-line interface.
//
// This package provides commands for building astrolabe kit instruction
// booklets, inspecting the part and location catalogs, and serving booklets
// over HTTP. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Render booklets for a set of latitude/language/type/format combinations
//   - render: Render one booklet from explicit part image paths
//   - parts, languages, locations: Inspect the catalogs a kit is assembled from
//   - pick: Interactively pick a location and build its kit
//   - serve: Serve booklets over HTTP, rendered on demand
//   - cache: Manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// shared through the CLI struct so library calls report progress through the
// same sink.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/skyforge/astropress/pkg/buildinfo"
	"github.com/skyforge/astropress/pkg/cache"
	"github.com/skyforge/astropress/pkg/kit"
	"github.com/skyforge/astropress/pkg/latitude"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "astropress"

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "astropress",
		Short:        "Astropress renders astrolabe kit instruction booklets",
		Long:         `Astropress builds the LaTeX instruction booklets that ship with paper astrolabe kits, pairing each booklet with the part images drawn for a latitude, language, kit type, and image format.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.partsCommand())
	root.AddCommand(c.languagesCommand())
	root.AddCommand(c.locationsCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a kit runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*kit.Runner, error) {
	renderCache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return kit.NewRunner(renderCache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseList splits a comma-separated flag value into its entries.
// Blank entries are dropped, so "en, de," parses the same as "en,de".
func parseList(s string) []string {
	var out []string
	for _, entry := range strings.Split(s, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// parseLatitudes parses a comma-separated latitude list, south negative.
func parseLatitudes(s string) ([]latitude.Latitude, error) {
	return latitude.ParseMany(parseList(s))
}
