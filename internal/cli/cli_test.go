package cli

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// testCLI returns a CLI whose logger writes nowhere.
func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestNew(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c.Logger == nil {
		t.Fatal("New() returned CLI without logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := testCLI()
	c.SetLogLevel(LogDebug)
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("log level = %v, want %v", got, log.DebugLevel)
	}
}

func TestRootCommand(t *testing.T) {
	root := testCLI().RootCommand()

	if root.Use != "astropress" {
		t.Errorf("root.Use = %q, want %q", root.Use, "astropress")
	}
	if !root.SilenceUsage {
		t.Error("root command should silence usage on errors")
	}

	want := []string{"build", "render", "parts", "languages", "locations", "pick", "serve", "cache", "completion"}
	registered := make(map[string]bool)
	for _, cmd := range root.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "en", []string{"en"}},
		{"multiple", "en,de", []string{"en", "de"}},
		{"spaces", " en , de ", []string{"en", "de"}},
		{"trailing comma", "png,svg,", []string{"png", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseList(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseList(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseList(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestParseLatitudes(t *testing.T) {
	lats, err := parseLatitudes("52, -33.9")
	if err != nil {
		t.Fatalf("parseLatitudes() error: %v", err)
	}
	if len(lats) != 2 {
		t.Fatalf("parseLatitudes() returned %d latitudes, want 2", len(lats))
	}
	if lats[0].Degrees() != 52 || lats[1].Degrees() != -33.9 {
		t.Errorf("parseLatitudes() = %v", lats)
	}
}

func TestParseLatitudesInvalid(t *testing.T) {
	if _, err := parseLatitudes("52,north"); err == nil {
		t.Error("parseLatitudes() should reject non-numeric entries")
	}
	if _, err := parseLatitudes("95"); err == nil {
		t.Error("parseLatitudes() should reject out-of-range latitudes")
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()

	// A disabled cache never stores anything.
	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("Get() = hit %v, err %v; want miss", hit, err)
	}
}
