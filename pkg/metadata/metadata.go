// Package metadata reads and writes the manifest block that stamps a
// library snapshot directory.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// TagStart is the start of the manifest block.
	TagStart = "SNAPSHOT_START"
	// TagEnd is the end of the manifest block.
	TagEnd = "SNAPSHOT_END"
)

// Manifest verification errors.
var (
	ErrNoManifestBlock = errors.New("no manifest block found")
	ErrNoHashFound     = errors.New("no hash found in manifest")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Manifest describes one library snapshot.
type Manifest struct {
	CollectedAt time.Time
	Tracks      int
	Albums      int
	Artists     int
	Hash        string
}

// manifestRegex matches the entire manifest block including tags.
var manifestRegex = regexp.MustCompile(`(?s)SNAPSHOT_START\s*\n(.*?)\n\s*SNAPSHOT_END`)

// Extract parses the manifest block out of content. It returns nil
// when no block is present.
func Extract(content string) *Manifest {
	match := manifestRegex.FindStringSubmatch(content)
	if len(match) < 2 {
		return nil
	}

	m := &Manifest{}

	lines := strings.SplitSeq(match[1], "\n")
	for line := range lines {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "COLLECTED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				m.CollectedAt = t
			}
		case "TRACKS":
			if n, err := strconv.Atoi(val); err == nil {
				m.Tracks = n
			}
		case "ALBUMS":
			if n, err := strconv.Atoi(val); err == nil {
				m.Albums = n
			}
		case "ARTISTS":
			if n, err := strconv.Atoi(val); err == nil {
				m.Artists = n
			}
		case "HASH":
			m.Hash = val
		}
	}

	return m
}

// Render produces the manifest block in its on-disk form.
func (m *Manifest) Render() string {
	return fmt.Sprintf("%s\nCOLLECTED_AT: %s\nTRACKS: %d\nALBUMS: %d\nARTISTS: %d\nHASH: %s\n%s\n",
		TagStart,
		m.CollectedAt.UTC().Format(time.RFC3339),
		m.Tracks,
		m.Albums,
		m.Artists,
		m.Hash,
		TagEnd)
}

// CalculateHash computes the SHA-256 checksum over the snapshot parts
// in the order given.
func CalculateHash(parts ...[]byte) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write(part)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks the hash recorded in content against the computed
// checksum and returns the parsed manifest on success.
func Verify(content, computed string) (*Manifest, error) {
	m := Extract(content)
	if m == nil {
		return nil, ErrNoManifestBlock
	}

	if m.Hash == "" {
		return nil, ErrNoHashFound
	}

	if m.Hash != computed {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, m.Hash, computed)
	}

	return m, nil
}
