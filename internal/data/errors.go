package data

import (
	"fmt"
	"io/fs"
)

// MissingSourceError means the backing data file does not exist.
type MissingSourceError struct {
	Path string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("could not find %q", e.Path)
}

// Is lets errors.Is(err, fs.ErrNotExist) match.
func (e *MissingSourceError) Is(target error) bool {
	return target == fs.ErrNotExist
}
