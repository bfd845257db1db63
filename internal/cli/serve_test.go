package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/skyforge/astropress/pkg/cache"
)

func TestValidateCacheMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"none", false},
		{"file", false},
		{"redis", false},
		{"memcached", true},
		{"", true},
	}

	for _, tt := range tests {
		err := validateCacheMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateCacheMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
		}
	}
}

func TestNewServeCacheNone(t *testing.T) {
	renderCache, err := newServeCache(context.Background(), cacheModeNone, "")
	if err != nil {
		t.Fatalf("newServeCache() error: %v", err)
	}
	defer renderCache.Close()

	if _, ok := renderCache.(*cache.NullCache); !ok {
		t.Errorf("newServeCache(none) = %T, want *cache.NullCache", renderCache)
	}
}

func TestNewServeCacheFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	renderCache, err := newServeCache(context.Background(), cacheModeFile, "")
	if err != nil {
		t.Fatalf("newServeCache() error: %v", err)
	}
	defer renderCache.Close()

	if _, ok := renderCache.(*cache.FileCache); !ok {
		t.Errorf("newServeCache(file) = %T, want *cache.FileCache", renderCache)
	}
}

func TestServeCommandInvalidCacheMode(t *testing.T) {
	c := testCLI()
	root := c.RootCommand()
	root.SetArgs([]string{"serve", "--cache", "bogus"})
	root.SetOut(new(strings.Builder))
	root.SetErr(new(strings.Builder))

	err := root.Execute()
	if err == nil {
		t.Fatal("expected an error for an unsupported cache mode")
	}
	if !strings.Contains(err.Error(), "invalid cache mode") {
		t.Errorf("error = %v, want it to name the invalid cache mode", err)
	}
}
