package kit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/skyforge/astropress/pkg/buildinfo"
	"github.com/skyforge/astropress/pkg/errors"
)

// ManifestFilename is the name of the run manifest written at the root of
// the output tree.
const ManifestFilename = "manifest.json"

// Manifest records one build run: the options it ran with, the booklets it
// wrote, and the part images those booklets expect. Downstream tooling reads
// it to locate every artifact without re-deriving the naming scheme.
type Manifest struct {
	RunID     string     `json:"run_id"`
	CreatedAt time.Time  `json:"created_at"`
	Version   string     `json:"version"`
	Options   Options    `json:"options"`
	Artifacts []Artifact `json:"artifacts"`
}

// newRunID returns the unique identifier of one build run.
func newRunID() string {
	return uuid.NewString()
}

// writeManifest writes the run manifest for a finished build and returns
// its path.
func writeManifest(opts Options, result *Result) (string, error) {
	m := Manifest{
		RunID:     result.RunID,
		CreatedAt: time.Now().UTC(),
		Version:   buildinfo.Version,
		Options:   opts,
		Artifacts: result.Artifacts,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	path := filepath.Join(opts.OutputDir, ManifestFilename)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write manifest")
	}
	return path, nil
}
