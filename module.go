package modql

import "context"

// Resolver is a field resolver invoked by the consuming execution engine.
// modql treats resolvers as opaque: they are carried into the merged result
// by reference, never wrapped or copied.
type Resolver func(ctx context.Context, source any, args map[string]any) (any, error)

// FieldResolvers maps field names to resolvers.
type FieldResolvers map[string]Resolver

// TypeResolvers maps type names to that type's field resolvers.
type TypeResolvers map[string]FieldResolvers

// Resolvers is a record's resolver bundle. Queries, Mutations and
// Subscriptions feed the synthesized root types; Types carries resolvers for
// any other type and is passed through to the result verbatim.
type Resolvers struct {
	Queries       FieldResolvers
	Mutations     FieldResolvers
	Subscriptions FieldResolvers
	Types         TypeResolvers
}

// Module is one unit of schema contribution. Exactly three shapes implement
// it: *Record, Factory and Collection.
type Module interface {
	module()
}

// Record is the concrete leaf shape of a module. All fields are optional; an
// empty text fragment contributes nothing to the corresponding category.
type Record struct {
	// Schema holds plain SDL type definitions, concatenated into TypeDefs
	// as-is.
	Schema string

	// Queries, Mutations and Subscriptions hold field fragments for the
	// corresponding root type, e.g. "users: [User!]!".
	Queries       string
	Mutations     string
	Subscriptions string

	Resolvers Resolvers

	// Modules lists dependency modules, resolved directly after this record.
	// Resolution detaches the list; the record is a pure content leaf
	// afterwards.
	Modules []Module

	// Alter, when set, rewrites the bundled result. Hooks run in record
	// order and each sees the cumulative effect of all earlier hooks.
	Alter func(Result) Result
}

func (*Record) module() {}

// Factory produces a module when resolved. The factory is invoked at most
// once per top-level resolution, and its product is resolved recursively.
type Factory func() Module

func (Factory) module() {}

// Collection groups modules; each element is resolved independently in order.
type Collection []Module

func (Collection) module() {}
