// Package latitude provides the latitude value type used throughout astropress.
//
// A kit is built for one geographic latitude. The type carries the parsing,
// range checking, and the three string forms the rest of the system needs:
// the filename code ("52N", "07S"), the typeset form ("$52^\circ$N") that is
// interpolated into the booklet, and a plain display form ("52°N").
package latitude

import (
	"math"
	"strconv"
	"strings"

	"github.com/skyforge/astropress/pkg/errors"
)

// Valid range in degrees.
const (
	Min = -90.0
	Max = 90.0
)

// Default is the latitude a kit is built for when none is given,
// matching the historical default of the original generator.
const Default = Latitude(52)

// Latitude is a geographic latitude in degrees.
// Positive values are northern, negative southern.
type Latitude float64

// New validates deg and returns it as a Latitude.
func New(deg float64) (Latitude, error) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, errors.New(errors.ErrCodeInvalidLatitude, "latitude must be a finite number")
	}
	if deg < Min || deg > Max {
		return 0, errors.New(errors.ErrCodeInvalidLatitude, "latitude %v out of range [%v, %v]", deg, Min, Max)
	}
	return Latitude(deg), nil
}

// Parse reads a latitude from its common textual forms: a signed decimal
// number of degrees ("52", "-7", "51.5") or a number with a hemisphere
// suffix ("52N", "7s", "51.5S"). An explicit sign combined with a southern
// suffix is rejected as ambiguous.
func Parse(s string) (Latitude, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.New(errors.ErrCodeInvalidLatitude, "latitude cannot be empty")
	}

	southern := false
	switch trimmed[len(trimmed)-1] {
	case 'N', 'n':
		trimmed = trimmed[:len(trimmed)-1]
	case 'S', 's':
		southern = true
		trimmed = trimmed[:len(trimmed)-1]
	}

	deg, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidLatitude, "cannot parse latitude %q", s)
	}
	if southern {
		if deg < 0 {
			return 0, errors.New(errors.ErrCodeInvalidLatitude, "latitude %q combines a sign with a hemisphere suffix", s)
		}
		deg = -deg
	}

	return New(deg)
}

// ParseMany parses a list of latitude strings, failing on the first invalid one.
func ParseMany(values []string) ([]Latitude, error) {
	out := make([]Latitude, 0, len(values))
	for _, v := range values {
		lat, err := Parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, lat)
	}
	return out, nil
}

// Degrees returns the signed value in degrees.
func (l Latitude) Degrees() float64 {
	return float64(l)
}

// Southern reports whether the latitude lies in the southern hemisphere.
func (l Latitude) Southern() bool {
	return l < 0
}

// Hemisphere returns "N" or "S". The equator counts as northern.
func (l Latitude) Hemisphere() string {
	if l.Southern() {
		return "S"
	}
	return "N"
}

// Code returns the compact form used in part and booklet filenames:
// the absolute number of degrees (zero-padded to two digits when integral)
// followed by the hemisphere letter. Examples: "52N", "07S", "51.5N".
func (l Latitude) Code() string {
	return l.format(true) + l.Hemisphere()
}

// TeX returns the latitude as typeset in the booklet, e.g. "$52^\circ$N".
func (l Latitude) TeX() string {
	return "$" + l.format(false) + `^\circ$` + l.Hemisphere()
}

// String returns a plain human-readable form, e.g. "52°N".
func (l Latitude) String() string {
	return l.format(false) + "°" + l.Hemisphere()
}

// format renders the absolute number of degrees. Integral values are padded
// to two digits when pad is set, keeping filenames aligned with the naming
// scheme of the part generator.
func (l Latitude) format(pad bool) string {
	abs := math.Abs(float64(l))
	if abs == math.Trunc(abs) {
		s := strconv.FormatFloat(abs, 'f', 0, 64)
		if pad && len(s) < 2 {
			s = "0" + s
		}
		return s
	}
	return strconv.FormatFloat(abs, 'f', -1, 64)
}
