package cas

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// copyFile copies src to dst, creating parent directories and keeping the permission bits.
func copyFile(src, dst string) error {
	fail := func(err error) error {
		err = zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "src", src)
		return zerr.With(err, "dst", dst)
	}

	in, err := os.Open(src) //nolint:gosec // Paths are built from the cache root and target dir
	if err != nil {
		return fail(err)
	}
	defer in.Close() //nolint:errcheck // Read-only file

	info, err := in.Stat()
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return fail(err)
	}

	//nolint:gosec // Paths are built from the cache root and target dir
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fail(err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fail(err)
	}
	if err := out.Close(); err != nil {
		return fail(err)
	}
	return nil
}
