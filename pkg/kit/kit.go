// Package kit drives booklet generation for whole kit matrices.
//
// A build expands the requested latitudes, languages, kit types, and image
// formats into one kit per combination, renders each kit's booklet against
// the bundled skeleton, and writes the .tex files into the same output tree
// the part images live in. Rendered booklets are cached by skeleton
// fingerprint and substituted values, and every run leaves a manifest
// describing what it produced and which part images it expects.
//
// Basic usage:
//
//	runner := kit.NewRunner(fileCache, nil, logger)
//	result, err := runner.Build(ctx, kit.Options{
//		Latitudes: []latitude.Latitude{52},
//		Languages: []string{"en"},
//	})
package kit

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skyforge/astropress/pkg/cache"
	"github.com/skyforge/astropress/pkg/catalog"
	"github.com/skyforge/astropress/pkg/errors"
	"github.com/skyforge/astropress/pkg/latitude"
	"github.com/skyforge/astropress/pkg/parts"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Server, and Config
// =============================================================================

const (
	// DefaultLanguage is the booklet language used when none is given.
	DefaultLanguage = "en"

	// DefaultOutputDir is the output tree root used when none is given.
	DefaultOutputDir = "output"
)

// Print themes. Themes color the part images, which are drawn by the
// companion generator; a build records the theme so the manifest says which
// plates the booklets belong to.
const (
	ThemeDefault = "default"
	ThemeDark    = "dark"
)

// ValidThemes is the set of supported print themes.
var ValidThemes = map[string]bool{
	ThemeDefault: true,
	ThemeDark:    true,
}

// ValidateTheme checks that theme is a supported print theme.
func ValidateTheme(theme string) error {
	if !ValidThemes[theme] {
		return errors.New(errors.ErrCodeInvalidTheme, "unsupported theme %q (supported: default, dark)", theme)
	}
	return nil
}

// =============================================================================
// Options - Build Configuration
// =============================================================================

// Options contains all configuration for one build run.
// The struct supports JSON serialization for the run manifest.
type Options struct {
	Latitudes []latitude.Latitude `json:"latitudes,omitempty"`
	Languages []string            `json:"languages,omitempty"`
	Types     []string            `json:"types,omitempty"`
	Formats   []string            `json:"formats,omitempty"`
	Theme     string              `json:"theme,omitempty"`
	OutputDir string              `json:"output_dir,omitempty"`

	// CheckImages fails the build before any booklet is written when an
	// expected part image is missing from the output tree.
	CheckImages bool `json:"check_images,omitempty"`

	// Runtime options (not serialized)
	CacheTTL time.Duration `json:"-"`
	Logger   *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks all option fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Latitudes) == 0 {
		o.Latitudes = []latitude.Latitude{latitude.Default}
	}
	if len(o.Languages) == 0 {
		o.Languages = []string{DefaultLanguage}
	}
	if len(o.Types) == 0 {
		o.Types = []string{parts.TypeFull}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{parts.FormatPNG}
	}
	if o.Theme == "" {
		o.Theme = ThemeDefault
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = cache.DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	for _, lat := range o.Latitudes {
		if _, err := latitude.New(lat.Degrees()); err != nil {
			return err
		}
	}
	for _, lang := range o.Languages {
		if err := catalog.ValidateLanguage(lang); err != nil {
			return err
		}
	}
	for _, kitType := range o.Types {
		if err := parts.ValidateType(kitType); err != nil {
			return err
		}
	}
	for _, format := range o.Formats {
		if err := parts.ValidateFormat(format); err != nil {
			return err
		}
	}
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	if err := errors.ValidateOutputDir(o.OutputDir); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// Combinations expands the options into one kit per combination. The order
// is deterministic and mirrors the generation loop: language, then kit type,
// then latitude, then image format.
func (o *Options) Combinations() []Combination {
	out := make([]Combination, 0, len(o.Languages)*len(o.Types)*len(o.Latitudes)*len(o.Formats))
	for _, lang := range o.Languages {
		for _, kitType := range o.Types {
			for _, lat := range o.Latitudes {
				for _, format := range o.Formats {
					out = append(out, Combination{
						Latitude: lat,
						Language: lang,
						Type:     kitType,
						Format:   format,
					})
				}
			}
		}
	}
	return out
}

// =============================================================================
// Combination - One Kit
// =============================================================================

// Combination identifies one kit: a latitude, language, kit type, and part
// image format.
type Combination struct {
	Latitude latitude.Latitude `json:"latitude"`
	Language string            `json:"language"`
	Type     string            `json:"type"`
	Format   string            `json:"format"`
}

// BookletName returns the file name of this kit's booklet.
func (c Combination) BookletName() string {
	return parts.BookletFilename(c.Latitude, c.Language, c.Type)
}

// String renders the combination for logs and error messages,
// e.g. "52N/en/full/png".
func (c Combination) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", c.Latitude.Code(), c.Language, c.Type, c.Format)
}

// =============================================================================
// Result - Build Outputs
// =============================================================================

// Result contains the outputs of a build run.
type Result struct {
	// RunID is the unique identifier of this run, echoed in the manifest.
	RunID string

	// Artifacts lists the written booklets in build order.
	Artifacts []Artifact

	// ManifestPath is where the run manifest was written.
	ManifestPath string

	// Stats contains timing and cache information.
	Stats Stats
}

// Artifact is one written booklet.
type Artifact struct {
	Combination Combination `json:"combination"`
	Path        string      `json:"path"`
	Size        int         `json:"size_bytes"`
	FromCache   bool        `json:"from_cache"`

	// Parts lists the six part images this kit expects the companion
	// generator to have drawn into the output tree.
	Parts []parts.Ref `json:"parts"`
}

// Stats contains build execution statistics.
type Stats struct {
	Combinations int
	Booklets     int
	CacheHits    int
	RenderTime   time.Duration
	TotalTime    time.Duration
}
