package booklet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/skyforge/astropress/pkg/errors"
)

func TestParse(t *testing.T) {
	latSlot := []Slot{{Name: "latitude", Required: true}}

	tests := []struct {
		name     string
		skeleton string
		slots    []Slot
		values   map[string]string
		want     string
		wantCode errors.Code
	}{
		{
			name:     "plain text without slots",
			skeleton: `\begin{document}x\end{document}`,
			want:     `\begin{document}x\end{document}`,
		},
		{
			name:     "empty skeleton without slots",
			skeleton: "",
			want:     "",
		},
		{
			name:     "recognized slot substitutes",
			skeleton: "latitude {latitude}.",
			slots:    latSlot,
			values:   map[string]string{"latitude": "52°N"},
			want:     "latitude 52°N.",
		},
		{
			name:     "undeclared token passes through",
			skeleton: "{unknown} {latitude}",
			slots:    latSlot,
			values:   map[string]string{"latitude": "52°N"},
			want:     "{unknown} 52°N",
		},
		{
			name:     "doubled braces compose a group",
			skeleton: `\includegraphics{{img}}`,
			slots:    []Slot{{Name: "img", Required: true}},
			values:   map[string]string{"img": "rete.png"},
			want:     `\includegraphics{rete.png}`,
		},
		{
			name:     "slot names are case sensitive",
			skeleton: "{Latitude} {latitude}",
			slots:    latSlot,
			values:   map[string]string{"latitude": "52°N"},
			want:     "{Latitude} 52°N",
		},
		{
			name:     "leading digit is not a token",
			skeleton: "{2col} {latitude}",
			slots:    latSlot,
			values:   map[string]string{"latitude": "52°N"},
			want:     "{2col} 52°N",
		},
		{
			name:     "label arguments stay literal",
			skeleton: `\ref{fig:latitude} {latitude}`,
			slots:    latSlot,
			values:   map[string]string{"latitude": "52°N"},
			want:     `\ref{fig:latitude} 52°N`,
		},
		{
			name:     "interrupted token stays literal",
			skeleton: "a {latitude b {latitude}",
			slots:    latSlot,
			values:   map[string]string{"latitude": "52°N"},
			want:     "a {latitude b 52°N",
		},
		{
			name:     "optional slot may be absent",
			skeleton: "plain",
			slots:    []Slot{{Name: "note"}},
			want:     "plain",
		},
		{
			name:     "unterminated slot at end of input",
			skeleton: "text {latitude",
			slots:    latSlot,
			wantCode: errors.ErrCodeMalformedTemplate,
		},
		{
			name:     "required slot never appears",
			skeleton: "no substitution points here",
			slots:    latSlot,
			wantCode: errors.ErrCodeMalformedTemplate,
		},
		{
			name:     "invalid slot name",
			skeleton: "{Bad}",
			slots:    []Slot{{Name: "Bad", Required: true}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "duplicate slot declaration",
			skeleton: "{latitude}",
			slots:    []Slot{{Name: "latitude", Required: true}, {Name: "latitude"}},
			wantCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.skeleton, tt.slots)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("Parse() expected error code %v, got nil", tt.wantCode)
				}
				if code := errors.GetCode(err); code != tt.wantCode {
					t.Errorf("Parse() error code = %v, want %v", code, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}

			got, err := tmpl.Render(tt.values)
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	tmpl, err := Parse("lat {latitude}", []Slot{{Name: "latitude", Required: true}})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		values   map[string]string
		wantCode errors.Code
	}{
		{name: "nil values", values: nil, wantCode: errors.ErrCodeMissingParameter},
		{name: "empty value", values: map[string]string{"latitude": ""}, wantCode: errors.ErrCodeMissingParameter},
		{name: "undeclared value", values: map[string]string{"latitude": "52°N", "extra": "x"}, wantCode: errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tmpl.Render(tt.values)
			if err == nil {
				t.Fatalf("Render() expected error code %v, got nil", tt.wantCode)
			}
			if code := errors.GetCode(err); code != tt.wantCode {
				t.Errorf("Render() error code = %v, want %v", code, tt.wantCode)
			}
			if got != "" {
				t.Errorf("Render() returned partial output %q on error", got)
			}
		})
	}
}

func TestRenderRepeatedSlot(t *testing.T) {
	tmpl, err := Parse("{latitude} and again {latitude}", []Slot{{Name: "latitude", Required: true}})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	got, err := tmpl.Render(map[string]string{"latitude": "52°N"})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if want := "52°N and again 52°N"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderOptionalSlotEmpty(t *testing.T) {
	tmpl, err := Parse("[{note}]", []Slot{{Name: "note"}})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	got, err := tmpl.Render(nil)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if got != "[]" {
		t.Errorf("Render() = %q, want %q", got, "[]")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	tmpl, err := Parse("lat {latitude} end", []Slot{{Name: "latitude", Required: true}})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	values := map[string]string{"latitude": "51.5°N"}
	first, err := tmpl.Render(values)
	if err != nil {
		t.Fatalf("first Render() unexpected error: %v", err)
	}
	second, err := tmpl.Render(values)
	if err != nil {
		t.Fatalf("second Render() unexpected error: %v", err)
	}
	if first != second {
		t.Error("Render() output differs between identical invocations")
	}
}

func TestRenderTo(t *testing.T) {
	tmpl, err := Parse("lat {latitude}", []Slot{{Name: "latitude", Required: true}})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.RenderTo(&buf, map[string]string{"latitude": "52°N"}); err != nil {
		t.Fatalf("RenderTo() unexpected error: %v", err)
	}
	if got := buf.String(); got != "lat 52°N" {
		t.Errorf("RenderTo() wrote %q, want %q", got, "lat 52°N")
	}

	buf.Reset()
	if err := tmpl.RenderTo(&buf, nil); err == nil {
		t.Fatal("RenderTo() with missing value expected error, got nil")
	}
	if buf.Len() != 0 {
		t.Errorf("RenderTo() wrote %d bytes on error, want 0", buf.Len())
	}
}

func TestFingerprint(t *testing.T) {
	a, err := Parse("one {x}", []Slot{{Name: "x", Required: true}})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	b, err := Parse("two {x}", []Slot{{Name: "x", Required: true}})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("Fingerprint() identical for different skeletons")
	}
	if len(a.Fingerprint()) != 64 {
		t.Errorf("Fingerprint() length = %d, want 64", len(a.Fingerprint()))
	}

	again, err := Parse("one {x}", []Slot{{Name: "x", Required: true}})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if a.Fingerprint() != again.Fingerprint() {
		t.Error("Fingerprint() differs for identical skeletons")
	}
}

func TestSlots(t *testing.T) {
	declared := []Slot{{Name: "a", Required: true}, {Name: "b"}}
	tmpl, err := Parse("{a}", declared)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	got := tmpl.Slots()
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "b" {
		t.Errorf("Slots() = %v, want declared order %v", got, declared)
	}

	// Mutating the returned slice must not affect the template.
	got[0].Name = "mutated"
	if tmpl.Slots()[0].Name != "a" {
		t.Error("Slots() exposes internal state")
	}
}

func TestParseUnicodePassThrough(t *testing.T) {
	skeleton := "Breite {latitude} über dem Äquator"
	tmpl, err := Parse(skeleton, []Slot{{Name: "latitude", Required: true}})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	got, err := tmpl.Render(map[string]string{"latitude": "52°N"})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if !strings.Contains(got, "über dem Äquator") {
		t.Errorf("Render() mangled multibyte text: %q", got)
	}
}
