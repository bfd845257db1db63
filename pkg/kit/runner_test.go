package kit

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/skyforge/astropress/pkg/cache"
	"github.com/skyforge/astropress/pkg/errors"
	"github.com/skyforge/astropress/pkg/latitude"
	"github.com/skyforge/astropress/pkg/parts"
)

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testCombination() Combination {
	return Combination{Latitude: 52, Language: "en", Type: parts.TypeFull, Format: parts.FormatPNG}
}

func TestVariant(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en", "en"},
		{"de", "de"},
		{"fr", "en"}, // no dedicated translation
		{"xx", "en"}, // unknown language
	}

	for _, tt := range tests {
		if got := Variant(tt.lang); got != tt.want {
			t.Errorf("Variant(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestBookletParameters(t *testing.T) {
	params, err := BookletParameters(testCombination(), "out")
	if err != nil {
		t.Fatalf("BookletParameters() error = %v", err)
	}

	if params.Latitude != `$52^\circ$N` {
		t.Errorf("Latitude = %q, want %q", params.Latitude, `$52^\circ$N`)
	}
	if !filepath.IsAbs(params.MotherBack) {
		t.Errorf("MotherBack = %q, want an absolute path", params.MotherBack)
	}
	wantBack := filepath.Join("astrolabe_parts", "mother_back_52N_en_full.png")
	if !strings.HasSuffix(params.MotherBack, wantBack) {
		t.Errorf("MotherBack = %q, want suffix %q", params.MotherBack, wantBack)
	}

	// The front slot takes the combined front image, not the plain front.
	wantFront := filepath.Join("astrolabe_parts", "mother_front_combi_52N_en_full.png")
	if !strings.HasSuffix(params.MotherFront, wantFront) {
		t.Errorf("MotherFront = %q, want suffix %q", params.MotherFront, wantFront)
	}
}

func TestBookletParametersBareFilenames(t *testing.T) {
	params, err := BookletParameters(testCombination(), "")
	if err != nil {
		t.Fatalf("BookletParameters() error = %v", err)
	}

	if params.MotherBack != "mother_back_52N_en_full.png" {
		t.Errorf("MotherBack = %q, want a bare filename", params.MotherBack)
	}
	if params.MotherFront != "mother_front_combi_52N_en_full.png" {
		t.Errorf("MotherFront = %q, want a bare filename", params.MotherFront)
	}
	if params.Rete != "rete_52N_en_full.png" {
		t.Errorf("Rete = %q, want a bare filename", params.Rete)
	}
}

func TestRenderBooklet(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())

	data, fromCache, err := r.RenderBooklet(context.Background(), testCombination(), "", 0)
	if err != nil {
		t.Fatalf("RenderBooklet() error = %v", err)
	}
	if fromCache {
		t.Error("first render should not come from the cache")
	}

	doc := string(data)
	if !strings.Contains(doc, "{mother_back_52N_en_full.png}") {
		t.Error("rendered booklet should embed the mother back filename")
	}
	if !strings.Contains(doc, "{mother_front_combi_52N_en_full.png}") {
		t.Error("rendered booklet should embed the combined front filename")
	}
	if !strings.Contains(doc, `$52^\circ$N`) {
		t.Error("rendered booklet should state the latitude")
	}
}

func TestRenderBookletUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c, nil, discardLogger())
	ctx := context.Background()

	first, fromCache, err := r.RenderBooklet(ctx, testCombination(), "", 0)
	if err != nil {
		t.Fatalf("first render error = %v", err)
	}
	if fromCache {
		t.Error("first render should miss the cache")
	}

	second, fromCache, err := r.RenderBooklet(ctx, testCombination(), "", 0)
	if err != nil {
		t.Fatalf("second render error = %v", err)
	}
	if !fromCache {
		t.Error("second render should hit the cache")
	}
	if string(first) != string(second) {
		t.Error("cached render should match the original")
	}
}

func TestBuild(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	r := NewRunner(nil, nil, discardLogger())

	result, err := r.Build(context.Background(), Options{
		Latitudes: []latitude.Latitude{52, 35},
		OutputDir: out,
		Logger:    discardLogger(),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if result.Stats.Combinations != 2 || result.Stats.Booklets != 2 {
		t.Errorf("Stats = %+v, want 2 combinations and 2 booklets", result.Stats)
	}
	if result.Stats.CacheHits != 0 {
		t.Errorf("CacheHits = %d, want 0 with caching disabled", result.Stats.CacheHits)
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if len(result.Artifacts) != 2 {
		t.Fatalf("Artifacts = %d, want 2", len(result.Artifacts))
	}

	for _, name := range []string{"astrolabe_52N_en_full.tex", "astrolabe_35N_en_full.tex"} {
		data, err := os.ReadFile(filepath.Join(out, "astrolabes", name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if !strings.Contains(string(data), `\includegraphics`) {
			t.Errorf("%s does not look like a booklet", name)
		}
	}

	// Booklets reference part images by absolute path into the output tree.
	doc, err := os.ReadFile(filepath.Join(out, "astrolabes", "astrolabe_52N_en_full.tex"))
	if err != nil {
		t.Fatalf("reading booklet: %v", err)
	}
	wantPath := filepath.Join(out, "astrolabe_parts", "mother_back_52N_en_full.png")
	if !strings.Contains(string(doc), wantPath) {
		t.Errorf("booklet should reference %s", wantPath)
	}

	if info, err := os.Stat(filepath.Join(out, "astrolabe_parts")); err != nil || !info.IsDir() {
		t.Error("build should create the part directory")
	}
}

func TestBuildWritesManifest(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	r := NewRunner(nil, nil, discardLogger())

	result, err := r.Build(context.Background(), Options{
		Latitudes: []latitude.Latitude{52},
		Languages: []string{"de"},
		OutputDir: out,
		Logger:    discardLogger(),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	wantPath := filepath.Join(out, ManifestFilename)
	if result.ManifestPath != wantPath {
		t.Errorf("ManifestPath = %q, want %q", result.ManifestPath, wantPath)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decoding manifest: %v", err)
	}

	if m.RunID != result.RunID {
		t.Errorf("manifest RunID = %q, want %q", m.RunID, result.RunID)
	}
	if m.Version == "" {
		t.Error("manifest version should be set")
	}
	if len(m.Artifacts) != 1 {
		t.Fatalf("manifest artifacts = %d, want 1", len(m.Artifacts))
	}
	if got := m.Artifacts[0].Combination.Language; got != "de" {
		t.Errorf("artifact language = %q, want %q", got, "de")
	}
	if len(m.Artifacts[0].Parts) != 6 {
		t.Errorf("artifact parts = %d, want 6", len(m.Artifacts[0].Parts))
	}
}

func TestBuildCacheHits(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c, nil, discardLogger())

	first, err := r.Build(context.Background(), Options{OutputDir: out, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("first Build() error = %v", err)
	}
	if first.Stats.CacheHits != 0 {
		t.Errorf("first run CacheHits = %d, want 0", first.Stats.CacheHits)
	}

	second, err := r.Build(context.Background(), Options{OutputDir: out, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	if second.Stats.CacheHits != second.Stats.Booklets {
		t.Errorf("second run CacheHits = %d, want %d", second.Stats.CacheHits, second.Stats.Booklets)
	}
}

func TestBuildCheckImages(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	r := NewRunner(nil, nil, discardLogger())

	_, err := r.Build(context.Background(), Options{
		OutputDir:   out,
		CheckImages: true,
		Logger:      discardLogger(),
	})
	if err == nil {
		t.Fatal("expected an error for missing part images")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}

	entries, err := os.ReadDir(filepath.Join(out, "astrolabes"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("no booklet should be written when images are missing, found %d entries", len(entries))
	}

	// With the referenced images in place the same build succeeds.
	partsDir := filepath.Join(out, "astrolabe_parts")
	for _, name := range []string{
		"mother_back_52N_en_full.png",
		"mother_front_combi_52N_en_full.png",
		"rule_52N_en_full.png",
		"rete_52N_en_full.png",
	} {
		if err := os.WriteFile(filepath.Join(partsDir, name), []byte("png"), 0644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}

	result, err := r.Build(context.Background(), Options{
		OutputDir:   out,
		CheckImages: true,
		Logger:      discardLogger(),
	})
	if err != nil {
		t.Fatalf("Build() with images present error = %v", err)
	}
	if result.Stats.Booklets != 1 {
		t.Errorf("Booklets = %d, want 1", result.Stats.Booklets)
	}
}

func TestBuildContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, discardLogger())
	_, err := r.Build(ctx, Options{OutputDir: filepath.Join(t.TempDir(), "out"), Logger: discardLogger()})
	if err != context.Canceled {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestRunnerClose(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
