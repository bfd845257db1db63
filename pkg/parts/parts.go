// Package parts models the printable components of an astrolabe kit and the
// naming scheme that ties part images and rendered booklets together.
//
// A kit is one combination of latitude, language, kit type, and image format.
// Every part image of a kit lives under <output>/astrolabe_parts and follows
// the pattern <kind>_<latcode>_<lang>_<type>.<format>; the booklet that
// references the parts lives under <output>/astrolabes. The package only
// names files, it never draws them.
package parts

import (
	"fmt"
	"path/filepath"

	"github.com/skyforge/astropress/pkg/errors"
	"github.com/skyforge/astropress/pkg/latitude"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Part kinds, in generation order.
const (
	KindMotherFront      = "mother_front"
	KindMotherBack       = "mother_back"
	KindRete             = "rete"
	KindRule             = "rule"
	KindClimate          = "climate"
	KindMotherFrontCombi = "mother_front_combi"
)

// Image formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// Kit types.
const (
	TypeFull       = "full"
	TypeSimplified = "simplified"
)

// Output tree layout.
const (
	// PartsDirName is the subdirectory of the output tree that holds part images.
	PartsDirName = "astrolabe_parts"

	// BookletsDirName is the subdirectory that holds rendered booklets.
	BookletsDirName = "astrolabes"
)

// Kinds lists all part kinds in generation order.
var Kinds = []string{
	KindMotherFront,
	KindMotherBack,
	KindRete,
	KindRule,
	KindClimate,
	KindMotherFrontCombi,
}

// BookletKinds lists the four parts the booklet embeds, in the order their
// figures appear. The combi part stands in for the bare mother front: the
// booklet shows the mother with the climate already composited.
var BookletKinds = []string{
	KindMotherBack,
	KindMotherFrontCombi,
	KindRule,
	KindRete,
}

// ValidKinds is the set of recognized part kinds.
var ValidKinds = map[string]bool{
	KindMotherFront:      true,
	KindMotherBack:       true,
	KindRete:             true,
	KindRule:             true,
	KindClimate:          true,
	KindMotherFrontCombi: true,
}

// ValidFormats is the set of supported part image formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatPDF: true,
}

// ValidTypes is the set of supported kit types.
var ValidTypes = map[string]bool{
	TypeFull:       true,
	TypeSimplified: true,
}

// descriptions holds the short human-readable summary shown by the CLI.
var descriptions = map[string]string{
	KindMotherFront:      "Front of the mother, the fixed base plate",
	KindMotherBack:       "Back of the mother with its sighting scales",
	KindRete:             "Rotating star-map overlay",
	KindRule:             "Rotating sighting arm",
	KindClimate:          "Latitude-specific plate of altitude lines",
	KindMotherFrontCombi: "Mother front with the climate already in place",
}

// =============================================================================
// Validation
// =============================================================================

// ValidateKind checks that kind names a known part.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput, "unknown part kind %q", kind)
	}
	return nil
}

// ValidateFormat checks that format is a supported part image format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q (supported: png, svg, pdf)", format)
	}
	return nil
}

// ValidateType checks that kitType is a supported kit type.
func ValidateType(kitType string) error {
	if !ValidTypes[kitType] {
		return errors.New(errors.ErrCodeInvalidType, "unsupported kit type %q (supported: full, simplified)", kitType)
	}
	return nil
}

// Describe returns a one-line description of a part kind, or "" for unknown kinds.
func Describe(kind string) string {
	return descriptions[kind]
}

// =============================================================================
// Ref - One Part File of a Kit
// =============================================================================

// Ref is one part file of a concrete kit.
type Ref struct {
	Kind     string `json:"kind"`
	Filename string `json:"filename"`
	Path     string `json:"path,omitempty"` // Location under the output tree, when one exists
}

// BookletSlot returns the booklet slot this part fills. The combi part fills
// the mother_front slot; every other part fills the slot of its own kind.
func (r Ref) BookletSlot() string {
	if r.Kind == KindMotherFrontCombi {
		return KindMotherFront
	}
	return r.Kind
}

// =============================================================================
// Naming
// =============================================================================

// Filename returns the canonical file name of one part image,
// e.g. "mother_back_52N_en_full.png".
func Filename(kind string, lat latitude.Latitude, lang, kitType, format string) string {
	return fmt.Sprintf("%s_%s_%s_%s.%s", kind, lat.Code(), lang, kitType, format)
}

// BookletFilename returns the file name of the rendered booklet for a kit,
// e.g. "astrolabe_52N_en_full.tex". The booklet sits beside the part images
// in the output tree, under BookletsDirName.
func BookletFilename(lat latitude.Latitude, lang, kitType string) string {
	return fmt.Sprintf("astrolabe_%s_%s_%s.tex", lat.Code(), lang, kitType)
}

// PartsDir returns the part image directory under outputDir.
func PartsDir(outputDir string) string {
	return filepath.Join(outputDir, PartsDirName)
}

// BookletsDir returns the booklet directory under outputDir.
func BookletsDir(outputDir string) string {
	return filepath.Join(outputDir, BookletsDirName)
}

// =============================================================================
// Kit Sets
// =============================================================================

// KitSet returns refs for all six part images of a kit, rooted under
// outputDir when it is non-empty and bare otherwise.
func KitSet(outputDir string, lat latitude.Latitude, lang, kitType, format string) []Ref {
	return refs(Kinds, outputDir, lat, lang, kitType, format)
}

// BookletRefs returns refs for the four parts the booklet embeds, in figure
// order. Callers map each ref to its booklet slot via Ref.BookletSlot.
func BookletRefs(outputDir string, lat latitude.Latitude, lang, kitType, format string) []Ref {
	return refs(BookletKinds, outputDir, lat, lang, kitType, format)
}

func refs(kinds []string, outputDir string, lat latitude.Latitude, lang, kitType, format string) []Ref {
	out := make([]Ref, 0, len(kinds))
	for _, kind := range kinds {
		name := Filename(kind, lat, lang, kitType, format)
		ref := Ref{Kind: kind, Filename: name}
		if outputDir != "" {
			ref.Path = filepath.Join(PartsDir(outputDir), name)
		}
		out = append(out, ref)
	}
	return out
}
