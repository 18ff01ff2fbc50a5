// Package atomicfile writes files in a way that leaves no partial output
// visible on error: content is written to a uniquely-named temporary file
// in the destination directory, then renamed into place.
package atomicfile

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFile calls write with a handle to a temporary file, then renames
// that file to path on success. On any error the temporary file is removed
// and path is left untouched.
func WriteFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// ReadOrCreate returns the contents of path, creating it with the result
// of def first if it does not yet exist.
func ReadOrCreate(path string, def func() string) (string, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		return string(b), nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	content := def()
	if err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	}); err != nil {
		return "", err
	}
	return content, nil
}
