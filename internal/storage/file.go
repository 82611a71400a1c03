package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a Slot stored in a single file.
type File struct {
	Path string
}

// Save implements Slot, replacing the file through a rename so that a failed
// save leaves any earlier image intact.
func (f File) Save(image []byte) (rerr error) {
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if rerr != nil {
			os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

// Load implements Slot.
func (f File) Load() ([]byte, error) {
	image, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrEmpty
	}
	return image, err
}
