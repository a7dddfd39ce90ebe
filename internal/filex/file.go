// Package filex has filesystem helpers for the CLI.
package filex

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path, so SQLite can
// create the file itself. Paths without a directory part need nothing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// OpenUpload opens a regular file for upload and reports its size and a
// content type guessed from the extension.
func OpenUpload(path string) (*os.File, int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, "", err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, "", err
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, 0, "", fmt.Errorf("%s is not a regular file", path)
	}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return f, fi.Size(), ct, nil
}
