package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skyforge/astropress/pkg/kit"
	"github.com/skyforge/astropress/pkg/parts"
)

// maxListedArtifacts caps how many booklet paths the build summary lists
// individually before collapsing to the booklets directory.
const maxListedArtifacts = 8

// buildCommand creates the build command, the main driver of the tool.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		latitudesStr string
		languagesStr string
		typesStr     string
		formatsStr   string
		theme        string
		output       string
		checkImages  bool
		noCache      bool
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build instruction booklets for a set of kit combinations",
		Long: `Build instruction booklets for a set of kit combinations.

The build expands every combination of latitude, language, kit type, and
image format, renders one LaTeX booklet per combination into
<output>/astrolabes/, and records the run in a manifest.json at the output
root. Booklets reference the part images the companion generator draws
into <output>/astrolabe_parts/; pass --check-images to fail early when
those images are missing.

Renders are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			opts, err := cfg.buildOptions()
			if err != nil {
				return err
			}

			// Flags win over config, config over the kit defaults.
			if latitudesStr != "" {
				if opts.Latitudes, err = parseLatitudes(latitudesStr); err != nil {
					return err
				}
			}
			if languagesStr != "" {
				opts.Languages = parseList(languagesStr)
			}
			if typesStr != "" {
				opts.Types = parseList(typesStr)
			}
			if formatsStr != "" {
				opts.Formats = parseList(formatsStr)
			}
			if theme != "" {
				opts.Theme = theme
			}
			if output != "" {
				opts.OutputDir = output
			}
			if cmd.Flags().Changed("check-images") {
				opts.CheckImages = checkImages
			}

			return c.runBuild(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringVar(&latitudesStr, "latitudes", "", `comma-separated latitudes in degrees, south negative (default "52")`)
	cmd.Flags().StringVar(&languagesStr, "languages", "", `comma-separated booklet language codes (default "en")`)
	cmd.Flags().StringVar(&typesStr, "types", "", `comma-separated kit types: full, simplified (default "full")`)
	cmd.Flags().StringVar(&formatsStr, "formats", "", `comma-separated part image formats: png, svg, pdf (default "png")`)
	cmd.Flags().StringVar(&theme, "theme", "", `color theme recorded for the part generator: default, dark`)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output directory (default "output")`)
	cmd.Flags().BoolVar(&checkImages, "check-images", false, "fail when an expected part image is missing")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (default astropress.toml)")

	return cmd
}

// runBuild executes a full booklet build and prints the result summary.
// It is shared by the build and pick commands.
func (c *CLI) runBuild(ctx context.Context, opts kit.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering booklets...")
	spinner.Start()

	result, err := runner.Build(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Built %d booklets", result.Stats.Booklets)
	if len(result.Artifacts) <= maxListedArtifacts {
		for _, artifact := range result.Artifacts {
			printFile(artifact.Path)
		}
	} else {
		printFile(parts.BookletsDir(filepath.Dir(result.ManifestPath)))
	}
	printFile(result.ManifestPath)
	printStats(result.Stats.Booklets, result.Stats.CacheHits, result.Stats.TotalTime)
	printNewline()
	printNextStep("Serve booklets over HTTP", "astropress serve")

	return nil
}
