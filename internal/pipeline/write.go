package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const artifactPerm = 0o644

// WriteError reports an artifact that could not be placed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write places every artifact at its path. Each one is first written in
// full to a temporary file in its destination directory; only when all
// temporaries exist are they renamed into place. On failure the
// temporaries are removed and existing files are left as they were.
// Previous versions are overwritten unconditionally.
func Write(arts []Artifact) error {
	temps := make([]string, 0, len(arts))
	cleanup := func(from int) {
		for _, t := range temps[from:] {
			_ = os.Remove(t)
		}
	}

	for _, a := range arts {
		tmp, err := writeTemp(a)
		if err != nil {
			cleanup(0)
			return err
		}
		temps = append(temps, tmp)
	}

	for i, a := range arts {
		if err := os.Rename(temps[i], a.Path); err != nil {
			cleanup(i)
			return &WriteError{Path: a.Path, Err: err}
		}
	}
	return nil
}

func writeTemp(a Artifact) (string, error) {
	dir := filepath.Dir(a.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &WriteError{Path: a.Path, Err: fmt.Errorf("creating output directory: %w", err)}
	}
	if info, err := os.Stat(a.Path); err == nil && info.IsDir() {
		return "", &WriteError{Path: a.Path, Err: errors.New("is a directory")}
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(a.Path)+".tmp-*")
	if err != nil {
		return "", &WriteError{Path: a.Path, Err: err}
	}
	name := f.Name()

	_, err = f.Write(a.Content)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(name, artifactPerm)
	}
	if err != nil {
		_ = os.Remove(name)
		return "", &WriteError{Path: a.Path, Err: err}
	}
	return name, nil
}
