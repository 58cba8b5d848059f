package discover

import (
	"context"
	"path"
	"sort"
)

// InMemoryModule describes one module for InMemoryDiscovery. Path is a
// slash-separated module path; the root module's path is ".".
type InMemoryModule struct {
	Path      string
	Fragments map[string]string
}

// InMemoryDiscovery is a test implementation of Discovery that stores module
// fragments in memory.
type InMemoryDiscovery struct {
	fragments map[string]map[string]string
}

// NewInMemoryDiscovery creates a new InMemoryDiscovery instance.
func NewInMemoryDiscovery(mods []InMemoryModule) *InMemoryDiscovery {
	d := &InMemoryDiscovery{fragments: make(map[string]map[string]string)}
	for _, m := range mods {
		p := m.Path
		if p == "" {
			p = "."
		}
		d.fragments[p] = m.Fragments
	}
	return d
}

// ListModules implements Discovery.
func (d *InMemoryDiscovery) ListModules(ctx context.Context, dir string) ([]string, error) {
	var dirs []string
	for p := range d.fragments {
		if p != dir && path.Dir(p) == dir {
			dirs = append(dirs, p)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ReadFragment implements Discovery.
func (d *InMemoryDiscovery) ReadFragment(ctx context.Context, dir, name string) (string, bool, error) {
	frags, ok := d.fragments[dir]
	if !ok {
		return "", false, nil
	}
	content, ok := frags[name]
	return content, ok, nil
}
