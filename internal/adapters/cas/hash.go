package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hash returns the hex sha256 of the bytes of every file under sourceDir, taken in
// lexicographic path order, followed by each coordinate in the given order.
// A missing source directory contributes no bytes, and excluded directories are skipped.
func (s *Store) Hash(sourceDir string, coordinates []string) (string, error) {
	files, err := s.walker.SortedFiles(sourceDir, s.exclude)
	if err != nil {
		return "", s.fail(zerr.With(zerr.Wrap(err, domain.ErrSourceHashFailed.Error()), "path", sourceDir))
	}

	digest := sha256.New()
	for _, path := range files {
		if err := hashFile(digest, path); err != nil {
			return "", s.fail(zerr.With(zerr.Wrap(err, domain.ErrSourceHashFailed.Error()), "path", path))
		}
	}
	for _, coordinate := range coordinates {
		_, _ = io.WriteString(digest, coordinate)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path) //nolint:gosec // Path comes from walking the source tree
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // Read-only file

	_, err = io.Copy(w, f)
	return err
}
