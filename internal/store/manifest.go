package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alessandroseni/spotisync/pkg/metadata"
)

// WriteManifest stamps the data directory with the snapshot row counts
// and a checksum over the library files.
func (s *Store) WriteManifest(collectedAt time.Time) error {
	stats, err := s.Stats()
	if err != nil {
		return err
	}

	hash, err := s.snapshotHash()
	if err != nil {
		return err
	}

	m := &metadata.Manifest{
		CollectedAt: collectedAt,
		Tracks:      stats.Tracks,
		Albums:      stats.Albums,
		Artists:     stats.Artists,
		Hash:        hash,
	}

	path := filepath.Join(s.dataDir, manifestFile)
	if err := os.WriteFile(path, []byte(m.Render()), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// VerifyManifest recomputes the snapshot checksum and compares it with
// the recorded one, returning the manifest when they match.
func (s *Store) VerifyManifest() (*metadata.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	hash, err := s.snapshotHash()
	if err != nil {
		return nil, err
	}

	return metadata.Verify(string(data), hash)
}

// snapshotHash hashes the three library files in a fixed order.
func (s *Store) snapshotHash() (string, error) {
	parts := make([][]byte, 0, 3)

	for _, name := range []string{tracksFile, albumsFile, artistsFile} {
		data, err := os.ReadFile(filepath.Join(s.dataDir, name))
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", name, err)
		}

		parts = append(parts, data)
	}

	return metadata.CalculateHash(parts...), nil
}
