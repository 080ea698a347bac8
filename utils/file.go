package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// tempPath returns a unique hidden sibling of path for write-then-rename.
// A non-empty tag is embedded in the name after the base.
func tempPath(path, tag string) string {
	name := "." + filepath.Base(path)
	if tag != "" {
		name += "." + tag
	}
	return filepath.Join(filepath.Dir(path), name+"."+uuid.NewString()+".tmp")
}

// CopyFile copies src to dst atomically: bytes go to a temp sibling of dst
// which is renamed over dst once fully written and synced. The temp name
// embeds dst's base name. Missing parent directories of dst are created.
// dst gets src's permission bits.
func CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src) //nolint:gosec
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close() //nolint:errcheck

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return 0, fmt.Errorf("create directory %s: %w", filepath.Dir(dst), err)
	}

	var n int64
	err = writeAtomic(dst, "", info.Mode().Perm(), func(w io.Writer) error {
		var copyErr error
		n, copyErr = io.Copy(w, in)
		return copyErr
	})
	return n, err
}

// WriteFileAtomic writes data to path via a temp sibling and rename, so
// readers never observe a partially written file. tag, if set, is embedded
// in the temp file's name.
func WriteFileAtomic(path string, data []byte, perm os.FileMode, tag string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}
	return writeAtomic(path, tag, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func writeAtomic(path, tag string, perm os.FileMode, fill func(io.Writer) error) error {
	tmp := tempPath(path, tag)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm) //nolint:gosec
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := fill(f); err != nil {
		f.Close()      //nolint:errcheck,gosec
		os.Remove(tmp) //nolint:errcheck,gosec
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()      //nolint:errcheck,gosec
		os.Remove(tmp) //nolint:errcheck,gosec
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp) //nolint:errcheck,gosec
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) //nolint:errcheck,gosec
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
