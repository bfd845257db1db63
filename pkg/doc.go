// Package pkg provides the core libraries for astropress booklet generation.
//
// # Overview
//
// astropress produces the printable instruction booklet for a paper model
// astrolabe kit: a LaTeX document that interpolates the kit's latitude and
// references the part images the owner cuts out and assembles. The pkg
// directory is organized into three main areas:
//
//  1. [booklet] - The template renderer (skeleton parsing, slot substitution)
//  2. [kit] - The build pipeline (combinations, part sets, manifest)
//  3. [cache] - Render caching (file, redis, null backends)
//
// plus the value and catalog packages that feed them ([latitude], [parts],
// [catalog]) and the ambient infrastructure ([errors], [observability],
// [buildinfo]).
//
// # Architecture
//
// The typical data flow through astropress:
//
//	Options (latitude × language × type × format)
//	         ↓
//	    [parts] package (derive the part image filenames)
//	         ↓
//	    [booklet] package (substitute into the LaTeX skeleton)
//	         ↓
//	    [kit] package (write the .tex tree + run manifest)
//	         ↓
//	    external LaTeX compiler + part generator
//
// # Quick Start
//
// Render a single booklet:
//
//	import (
//	    "github.com/skyforge/astropress/pkg/booklet"
//	    "github.com/skyforge/astropress/pkg/latitude"
//	)
//
//	// 1. Parse the latitude
//	lat, _ := latitude.Parse("51.5")
//
//	// 2. Name the part images the booklet embeds
//	params := booklet.Parameters{
//	    Latitude:    lat.TeX(),
//	    MotherBack:  "parts/mother_back_51.5N_en_full.png",
//	    MotherFront: "parts/mother_front_combi_51.5N_en_full.png",
//	    Rule:        "parts/rule_51.5N_en_full.png",
//	    Rete:        "parts/rete_51.5N_en_full.png",
//	}
//
//	// 3. Render the .tex source
//	tex, _ := booklet.Render(params)
//
// # Main Packages
//
// ## Domain
//
// [booklet] - The template renderer. Parses a LaTeX skeleton into literal
// segments and declared slots, then substitutes parameter values with strict
// pass-through of every other byte. Skeleton variants are embedded in the
// binary.
//
// [latitude] - Latitude value type with the three renderings a kit needs:
// filename code ("52N", "07S"), TeX string ("$52^\circ$N"), and display
// form ("52°N").
//
// [parts] - The six part images of a kit and their filename scheme. Knows
// which four parts the booklet embeds (the mother front is represented by
// its climate composite).
//
// [catalog] - Embedded TOML catalogs: booklet languages (with skeleton
// fallback) and a location gazetteer for the interactive picker.
//
// [kit] - The build pipeline. Expands Options into latitude × language ×
// type × format combinations, renders one booklet per combination through
// the cache, and writes the output tree with a run manifest.
//
// ## Infrastructure
//
// [cache] - Byte-oriented render cache behind a single interface. FileCache
// for CLI runs (XDG cache dir, sharded layout), RedisCache for shared serve
// deployments, NullCache to disable caching.
//
// [errors] - Structured errors with machine-readable codes
// (MISSING_PARAMETER, MALFORMED_TEMPLATE, INVALID_LATITUDE, ...) plus user
// input validation helpers.
//
// [observability] - Hook interfaces for builds, cache operations, and HTTP
// traffic with no-op defaults. Register implementations at startup; nothing
// here depends on a metrics backend.
//
// [buildinfo] - Version metadata injected via ldflags.
//
// # Common Workflows
//
// Build a full kit combination set:
//
//	runner := kit.NewRunner(renderCache, nil, logger)
//	defer runner.Close()
//	result, _ := runner.Build(ctx, kit.Options{
//	    Latitudes: []latitude.Latitude{lat},
//	    Languages: []string{"en", "de"},
//	})
//
// Parse a custom skeleton:
//
//	tmpl, _ := booklet.Parse(skeletonText, booklet.DefaultSlots())
//	tex, _ := tmpl.Render(params.Values())
//
// Check part images before building:
//
//	opts := kit.Options{CheckImages: true}
//
// # Testing
//
// Run tests:
//
//	go test ./...                  # All tests
//	go test ./pkg/booklet/...      # Specific package
//	go test -run Example           # Examples only
//
// [booklet]: https://pkg.go.dev/github.com/skyforge/astropress/pkg/booklet
// [latitude]: https://pkg.go.dev/github.com/skyforge/astropress/pkg/latitude
// [parts]: https://pkg.go.dev/github.com/skyforge/astropress/pkg/parts
// [catalog]: https://pkg.go.dev/github.com/skyforge/astropress/pkg/catalog
// [kit]: https://pkg.go.dev/github.com/skyforge/astropress/pkg/kit
// [cache]: https://pkg.go.dev/github.com/skyforge/astropress/pkg/cache
// [errors]: https://pkg.go.dev/github.com/skyforge/astropress/pkg/errors
// [observability]: https://pkg.go.dev/github.com/skyforge/astropress/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/skyforge/astropress/pkg/buildinfo
package pkg
