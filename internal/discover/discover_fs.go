package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/modql/modql"
)

// FileSystemDiscovery implements Discovery over the local filesystem.
// Directories are listed in name order, so dependency order is stable across
// runs.
type FileSystemDiscovery struct{}

// ListModules returns the immediate subdirectories of dir.
func (FileSystemDiscovery) ListModules(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read module directory %q: %w", dir, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(dir, e.Name()))
		}
	}
	return dirs, nil
}

// ReadFragment reads <dir>/<name>.graphql. A missing file is not an error;
// the module simply has no fragment for that category.
func (FileSystemDiscovery) ReadFragment(ctx context.Context, dir, name string) (string, bool, error) {
	path := filepath.Join(dir, name+".graphql")
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read fragment %q: %w", path, err)
	}
	return string(content), true, nil
}

// LoadDir is a convenience that loads a module directory tree from disk.
func LoadDir(ctx context.Context, dir string) (*modql.Record, error) {
	return Load(ctx, FileSystemDiscovery{}, dir)
}
