package booklet

import (
	"embed"
	"io/fs"
	"slices"
	"strings"

	"github.com/skyforge/astropress/pkg/errors"
)

// DefaultVariant is the skeleton variant used for languages that do not
// bundle a translation of their own.
const DefaultVariant = "en"

//go:embed assets/*.tex
var assetsFS embed.FS

// Skeleton returns the embedded skeleton source of a variant.
func Skeleton(variant string) (string, error) {
	data, err := assetsFS.ReadFile("assets/booklet_" + variant + ".tex")
	if err != nil {
		return "", errors.New(errors.ErrCodeNotFound, "no bundled skeleton variant %q", variant)
	}
	return string(data), nil
}

// Variants lists the embedded skeleton variants in sorted order.
func Variants() []string {
	entries, err := fs.ReadDir(assetsFS, "assets")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "booklet_") && strings.HasSuffix(name, ".tex") {
			out = append(out, strings.TrimSuffix(strings.TrimPrefix(name, "booklet_"), ".tex"))
		}
	}
	slices.Sort(out)
	return out
}
