// Package booklet renders the printable instruction booklet of an astrolabe
// kit.
//
// The booklet is produced from a fixed LaTeX skeleton bundled with the
// binary: a latitude string and the paths of four part images are substituted
// into its prose and figure blocks, and every other byte is emitted verbatim.
// The result is a complete .tex document for an external typesetting run; the
// package never invokes a compiler and never reads the images it references.
//
// Basic usage:
//
//	doc, err := booklet.Render(booklet.Parameters{
//		Latitude:    `$52^\circ$N`,
//		MotherBack:  "parts/mother_back_52N_en_full.png",
//		MotherFront: "parts/mother_front_combi_52N_en_full.png",
//		Rule:        "parts/rule_52N_en_full.png",
//		Rete:        "parts/rete_52N_en_full.png",
//	})
//
// Callers with their own skeleton use Parse and Template.Render directly.
package booklet

import (
	"io"
	"os"
	"sync"

	"github.com/skyforge/astropress/pkg/errors"
)

// =============================================================================
// Parameters
// =============================================================================

// Parameters carries the five values the bundled skeleton substitutes: the
// latitude display string and the four part image paths. A Parameters value
// is built by the caller, rendered once, and never mutated.
type Parameters struct {
	Latitude    string `json:"latitude"`
	MotherBack  string `json:"mother_back"`
	MotherFront string `json:"mother_front"`
	Rule        string `json:"rule"`
	Rete        string `json:"rete"`
}

// imageFields returns the four image path fields in figure order.
func (p Parameters) imageFields() []struct{ Name, Path string } {
	return []struct{ Name, Path string }{
		{SlotMotherBack, p.MotherBack},
		{SlotMotherFront, p.MotherFront},
		{SlotRule, p.Rule},
		{SlotRete, p.Rete},
	}
}

// Validate checks that every field is present and that the image paths are
// safe to embed in the output document. An absent field is MISSING_PARAMETER,
// a present but unusable path is INVALID_PATH.
func (p Parameters) Validate() error {
	if p.Latitude == "" {
		return errors.New(errors.ErrCodeMissingParameter, "missing value for slot %q", SlotLatitude)
	}
	for _, f := range p.imageFields() {
		if f.Path == "" {
			return errors.New(errors.ErrCodeMissingParameter, "missing value for slot %q", f.Name)
		}
		if err := errors.ValidateImagePath(f.Path); err != nil {
			return err
		}
	}
	return nil
}

// CheckPaths verifies that each image path references an existing regular
// file. The check is optional: by default missing images are left for the
// downstream typesetting run to discover.
func (p Parameters) CheckPaths() error {
	for _, f := range p.imageFields() {
		info, err := os.Stat(f.Path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "part image %s not found at %s", f.Name, f.Path)
		}
		if info.IsDir() {
			return errors.New(errors.ErrCodeInvalidPath, "part image path %s is a directory", f.Path)
		}
	}
	return nil
}

// Values returns the parameters as a slot value map for Template.Render.
func (p Parameters) Values() map[string]string {
	return map[string]string{
		SlotLatitude:    p.Latitude,
		SlotMotherBack:  p.MotherBack,
		SlotMotherFront: p.MotherFront,
		SlotRule:        p.Rule,
		SlotRete:        p.Rete,
	}
}

// =============================================================================
// Bundled Skeleton Facade
// =============================================================================

var defaultTemplate = sync.OnceValues(func() (*Template, error) {
	return TemplateFor(DefaultVariant)
})

// DefaultTemplate returns the parsed bundled skeleton of the default variant.
// The skeleton is embedded in the binary and parsed once.
func DefaultTemplate() (*Template, error) {
	return defaultTemplate()
}

// TemplateFor parses the embedded skeleton of the given variant against the
// default slot set.
func TemplateFor(variant string) (*Template, error) {
	src, err := Skeleton(variant)
	if err != nil {
		return nil, err
	}
	return Parse(src, DefaultSlots())
}

// Render renders the bundled skeleton with params and returns the complete
// document source.
func Render(params Parameters) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}
	t, err := DefaultTemplate()
	if err != nil {
		return "", err
	}
	return t.Render(params.Values())
}

// RenderTo renders the bundled skeleton with params into w. Nothing is
// written when validation fails.
func RenderTo(w io.Writer, params Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	t, err := DefaultTemplate()
	if err != nil {
		return err
	}
	return t.RenderTo(w, params.Values())
}
