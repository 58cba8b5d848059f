// Package discover loads schema modules from module directories. A module
// directory contributes up to four fragment files (schema.graphql,
// queries.graphql, mutations.graphql, subscriptions.graphql); each
// subdirectory becomes a dependency module, recursively.
package discover

import (
	"context"
	"fmt"
	"strings"

	"github.com/modql/modql"
	"github.com/modql/modql/internal/eventbus"
	"github.com/modql/modql/internal/events"
)

// FragmentNames lists the recognized fragment file basenames, in the order
// they map onto a record's text categories.
var FragmentNames = [4]string{"schema", "queries", "mutations", "subscriptions"}

// Discovery enumerates module directories and reads their SDL fragments.
type Discovery interface {
	// ListModules returns the immediate child module directories of dir.
	ListModules(ctx context.Context, dir string) ([]string, error)

	// ReadFragment reads the named fragment of the module at dir. The
	// second return reports whether the fragment exists.
	ReadFragment(ctx context.Context, dir, name string) (string, bool, error)
}

// Load reads the module rooted at dir into a record tree.
func Load(ctx context.Context, d Discovery, dir string) (*modql.Record, error) {
	rec := &modql.Record{}
	for i, name := range FragmentNames {
		content, ok, err := d.ReadFragment(ctx, dir, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		content = strings.TrimRight(content, "\n")
		switch i {
		case 0:
			rec.Schema = content
		case 1:
			rec.Queries = content
		case 2:
			rec.Mutations = content
		case 3:
			rec.Subscriptions = content
		}
	}

	subdirs, err := d.ListModules(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list modules under %q: %w", dir, err)
	}
	for _, sub := range subdirs {
		dep, err := Load(ctx, d, sub)
		if err != nil {
			return nil, err
		}
		rec.Modules = append(rec.Modules, dep)
	}

	eventbus.Publish(ctx, events.ModuleDiscovered{Dir: dir, Dependencies: len(subdirs)})
	return rec, nil
}
