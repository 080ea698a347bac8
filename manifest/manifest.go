// Package manifest accumulates original→fingerprinted path pairs for one run
// and persists them as a JSON object.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/projecteru2/cachebust/types"
	"github.com/projecteru2/cachebust/utils"
)

// Manifest maps normalized original paths to normalized fingerprinted paths.
// It is owned by a single run and never shared across goroutines.
type Manifest struct {
	assetRoot string
	entries   map[string]string
}

// New returns an empty manifest whose entries are relativized against assetRoot.
func New(assetRoot string) *Manifest {
	return &Manifest{assetRoot: assetRoot, entries: make(map[string]string)}
}

// Add records original → fingerprinted. A repeated original overwrites the
// earlier value.
func (m *Manifest) Add(original, fingerprinted string) {
	m.entries[Relativize(original, m.assetRoot)] = Relativize(fingerprinted, m.assetRoot)
}

// Len returns the number of entries.
func (m *Manifest) Len() int { return len(m.entries) }

// Entries returns a copy of the mapping.
func (m *Manifest) Entries() map[string]string {
	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// Write serializes the manifest to path, replacing any previous file. The
// temp file used for the swap carries marker in its name, so an orphan left
// by a crash is skipped by later runs and removed by clean.
// Failures wrap types.ErrManifestWrite.
func (m *Manifest) Write(path, marker string) error {
	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", types.ErrManifestWrite, err)
	}
	data = append(data, '\n')
	if err := utils.WriteFileAtomic(path, data, 0o644, marker); err != nil { //nolint:gosec
		return fmt.Errorf("%w: %w", types.ErrManifestWrite, err)
	}
	return nil
}

// Load reads a manifest previously written by Write.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return entries, nil
}
