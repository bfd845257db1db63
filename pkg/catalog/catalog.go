// Package catalog exposes the data tables bundled with astropress: the
// languages a booklet can be produced in and a small gazetteer of cities
// used by the interactive location picker.
//
// Both tables are TOML files embedded in the binary and parsed once on first
// use. The catalog is read-only; editing a table means rebuilding.
package catalog

import (
	"embed"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/skyforge/astropress/pkg/errors"
)

//go:embed data/languages.toml data/locations.toml
var dataFS embed.FS

// Language is one booklet language. Skeleton names the bundled skeleton
// variant for the language; languages without a translation of their own
// leave it empty and fall back to the default variant.
type Language struct {
	Code     string `toml:"code" json:"code"`
	Name     string `toml:"name" json:"name"`
	Native   string `toml:"native" json:"native"`
	Skeleton string `toml:"skeleton" json:"skeleton,omitempty"`
}

// Location is one gazetteer entry: a city with the latitude a kit for that
// city should be built at.
type Location struct {
	Name     string  `toml:"name" json:"name"`
	Country  string  `toml:"country" json:"country"`
	Latitude float64 `toml:"latitude" json:"latitude"`
}

type tables struct {
	Languages []Language `toml:"languages"`
	Locations []Location `toml:"locations"`
}

var load = sync.OnceValues(func() (*tables, error) {
	var t tables

	langs, err := dataFS.ReadFile("data/languages.toml")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read embedded language table")
	}
	if err := toml.Unmarshal(langs, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded language table")
	}

	locs, err := dataFS.ReadFile("data/locations.toml")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read embedded location table")
	}
	if err := toml.Unmarshal(locs, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded location table")
	}

	sort.Slice(t.Locations, func(i, j int) bool { return t.Locations[i].Name < t.Locations[j].Name })
	return &t, nil
})

// Languages returns all booklet languages in catalog order.
func Languages() ([]Language, error) {
	t, err := load()
	if err != nil {
		return nil, err
	}
	return append([]Language(nil), t.Languages...), nil
}

// FindLanguage returns the language with the given code.
func FindLanguage(code string) (Language, error) {
	t, err := load()
	if err != nil {
		return Language{}, err
	}
	for _, l := range t.Languages {
		if l.Code == code {
			return l, nil
		}
	}
	return Language{}, errors.New(errors.ErrCodeInvalidLanguage, "unsupported language %q", code)
}

// ValidateLanguage checks that code names a supported booklet language.
func ValidateLanguage(code string) error {
	if err := errors.ValidateLanguageCode(code); err != nil {
		return err
	}
	_, err := FindLanguage(code)
	return err
}

// Locations returns the gazetteer sorted by city name.
func Locations() ([]Location, error) {
	t, err := load()
	if err != nil {
		return nil, err
	}
	return append([]Location(nil), t.Locations...), nil
}

// SearchLocations returns the gazetteer entries whose city or country
// contains the query, case-insensitively. An empty query returns everything.
func SearchLocations(query string) ([]Location, error) {
	all, err := Locations()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	var out []Location
	for _, loc := range all {
		if strings.Contains(strings.ToLower(loc.Name), q) || strings.Contains(strings.ToLower(loc.Country), q) {
			out = append(out, loc)
		}
	}
	return out, nil
}
