// Package output writes relief grids to disk in the formats the CLI
// produces, and publishes finished files to object storage.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrWrite marks every failure to produce an output file.
var ErrWrite = errors.New("write failed")

// writeAtomic writes through a temp file next to path and renames it into
// place, so a failed write never leaves a partial file behind.
func writeAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}
