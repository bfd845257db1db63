package booklet

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"regexp"
	"strings"

	"github.com/skyforge/astropress/pkg/errors"
)

// =============================================================================
// Slots
// =============================================================================

// Slot names of the bundled skeleton.
const (
	SlotLatitude    = "latitude"
	SlotMotherBack  = "mother_back"
	SlotMotherFront = "mother_front"
	SlotRule        = "rule"
	SlotRete        = "rete"
)

// Slot declares one substitution point of a skeleton. A required slot must
// appear in the skeleton and must receive a non-empty value at render time.
type Slot struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// DefaultSlots returns the slot set of the bundled skeleton: the latitude
// string and the four part image paths, all required.
func DefaultSlots() []Slot {
	return []Slot{
		{Name: SlotLatitude, Required: true},
		{Name: SlotMotherBack, Required: true},
		{Name: SlotMotherFront, Required: true},
		{Name: SlotRule, Required: true},
		{Name: SlotRete, Required: true},
	}
}

// slotNameRegex is the name grammar. Only tokens matching it can ever be
// substitution points; everything else in the skeleton is literal text.
var slotNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// =============================================================================
// Template - Parsed Skeleton
// =============================================================================

// A Template is a parsed skeleton: literal text interleaved with slot
// references. Parsing resolves every substitution point up front, so
// rendering is a pure lookup pass that cannot leave placeholders behind.
type Template struct {
	segments    []segment
	slots       []Slot
	byName      map[string]Slot
	fingerprint string
}

// segment is one piece of a parsed skeleton. Exactly one field is set.
type segment struct {
	text string
	slot string
}

// Parse scans skeleton for slot tokens of the form {name}. Only declared
// slot names are recognized; any other brace construct, including the target
// syntax's own groups, passes through byte-for-byte. Writing {{name}} in the
// skeleton places the substituted value inside a literal brace pair.
//
// Parse fails with MALFORMED_TEMPLATE when a declared slot token is opened
// but unterminated at end of input, or when a required slot never appears in
// the skeleton. The second check is what catches a typo'd token before any
// document is produced.
func Parse(skeleton string, slots []Slot) (*Template, error) {
	byName := make(map[string]Slot, len(slots))
	for _, s := range slots {
		if !slotNameRegex.MatchString(s.Name) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid slot name %q", s.Name)
		}
		if _, dup := byName[s.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate slot %q", s.Name)
		}
		byName[s.Name] = s
	}

	sum := sha256.Sum256([]byte(skeleton))
	t := &Template{
		slots:       append([]Slot(nil), slots...),
		byName:      byName,
		fingerprint: hex.EncodeToString(sum[:]),
	}

	seen := make(map[string]bool, len(slots))
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(skeleton) {
		c := skeleton[i]
		if c != '{' {
			lit.WriteByte(c)
			i++
			continue
		}

		// Candidate token: scan the longest run matching the name grammar.
		j := i + 1
		for j < len(skeleton) && isNameByte(skeleton[j], j == i+1) {
			j++
		}
		name := skeleton[i+1 : j]
		if _, declared := byName[name]; name == "" || !declared {
			lit.WriteByte('{')
			i++
			continue
		}
		if j == len(skeleton) {
			return nil, errors.New(errors.ErrCodeMalformedTemplate, "slot {%s is unterminated at end of input", name)
		}
		if skeleton[j] != '}' {
			lit.WriteByte('{')
			i++
			continue
		}

		flush()
		t.segments = append(t.segments, segment{slot: name})
		seen[name] = true
		i = j + 1
	}
	flush()

	for _, s := range t.slots {
		if s.Required && !seen[s.Name] {
			return nil, errors.New(errors.ErrCodeMalformedTemplate, "required slot {%s} does not appear in the skeleton", s.Name)
		}
	}

	return t, nil
}

func isNameByte(c byte, first bool) bool {
	if c >= 'a' && c <= 'z' {
		return true
	}
	if first {
		return false
	}
	return c >= '0' && c <= '9' || c == '_'
}

// Slots returns the declared slots in declaration order.
func (t *Template) Slots() []Slot {
	return append([]Slot(nil), t.slots...)
}

// Fingerprint returns the hex SHA-256 of the skeleton source, used to key
// cached render output.
func (t *Template) Fingerprint() string {
	return t.fingerprint
}

// =============================================================================
// Rendering
// =============================================================================

// Render substitutes values into the template and returns the complete
// document. It is a pure function of (template, values): rendering twice with
// the same values yields byte-identical output.
//
// Every required slot needs a non-empty value (MISSING_PARAMETER otherwise),
// and every supplied value must belong to a declared slot (INVALID_INPUT).
// On error no partial output is returned.
func (t *Template) Render(values map[string]string) (string, error) {
	if err := t.check(values); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, seg := range t.segments {
		if seg.slot != "" {
			b.WriteString(values[seg.slot])
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String(), nil
}

// RenderTo renders the template into w. Validation happens before the first
// byte is written, so a failed render writes nothing.
func (t *Template) RenderTo(w io.Writer, values map[string]string) error {
	if err := t.check(values); err != nil {
		return err
	}

	for _, seg := range t.segments {
		out := seg.text
		if seg.slot != "" {
			out = values[seg.slot]
		}
		if _, err := io.WriteString(w, out); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write rendered document")
		}
	}
	return nil
}

func (t *Template) check(values map[string]string) error {
	for name := range values {
		if _, ok := t.byName[name]; !ok {
			return errors.New(errors.ErrCodeInvalidInput, "value supplied for undeclared slot %q", name)
		}
	}
	for _, s := range t.slots {
		if s.Required && values[s.Name] == "" {
			return errors.New(errors.ErrCodeMissingParameter, "missing value for slot %q", s.Name)
		}
	}
	return nil
}
