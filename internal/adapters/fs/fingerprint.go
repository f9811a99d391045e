package fs

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter computes fast, non-cryptographic fingerprints of source trees.
// Watch mode uses it to tell real edits from editor noise before asking the
// build cache for a full content hash.
type Fingerprinter struct {
	walker *Walker
}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter(walker *Walker) *Fingerprinter {
	return &Fingerprinter{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (f *Fingerprinter) ComputeFileHash(path string) (uint64, error) {
	file, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint hashes the path and content hash of every file under root.
func (f *Fingerprinter) Fingerprint(root string) (uint64, error) {
	files, err := f.walker.SortedFiles(root, nil)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to walk source tree"), "root", root)
	}

	digest := xxhash.New()
	for _, path := range files {
		_, _ = digest.WriteString(path)
		_, _ = digest.Write([]byte{0})

		sum, err := f.ComputeFileHash(path)
		if err != nil {
			return 0, err
		}
		if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
			return 0, zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return digest.Sum64(), nil
}
