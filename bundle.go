package modql

import (
	"fmt"
	"strings"
)

// Default root type names, overridable per category through Options.
const (
	DefaultQueryKey        = "Query"
	DefaultMutationKey     = "Mutation"
	DefaultSubscriptionKey = "Subscription"
)

// RootKeys names the root operation types in the composed schema. An empty
// field falls back to its default.
type RootKeys struct {
	Query        string
	Mutation     string
	Subscription string
}

// Options configures a Bundle call.
type Options struct {
	RootKeys RootKeys
}

// Result is the composed output: the full SDL text and the merged resolver
// map, keyed by type name.
type Result struct {
	TypeDefs  string
	Resolvers map[string]FieldResolvers
}

// Bundle resolves modules into a flat record list and merges their content
// into a single Result. opts may be nil; root key fields are individually
// overridable over the defaults.
//
// Text fragments join with a newline separator in record order. Resolver
// maps merge shallowly, later records winning key collisions. Each record's
// Alter hook is applied to the cumulative result, in record order.
//
// A root type, its schema block entry and its resolver map appear only when
// at least one record contributed a non-empty text fragment for that
// category. A resolver defined without matching text is silently dropped;
// text without resolvers attaches an empty map. Both are accepted behavior,
// not errors.
func Bundle(modules []Module, opts *Options) Result {
	rk := RootKeys{
		Query:        DefaultQueryKey,
		Mutation:     DefaultMutationKey,
		Subscription: DefaultSubscriptionKey,
	}
	if opts != nil {
		if opts.RootKeys.Query != "" {
			rk.Query = opts.RootKeys.Query
		}
		if opts.RootKeys.Mutation != "" {
			rk.Mutation = opts.RootKeys.Mutation
		}
		if opts.RootKeys.Subscription != "" {
			rk.Subscription = opts.RootKeys.Subscription
		}
	}

	// One seen set for the whole call: a module shared by several top-level
	// entries contributes once.
	seen := make(seenSet)
	var records []*Record
	for _, m := range modules {
		records = append(records, resolve(m, seen)...)
	}

	schemaText := joinFragments(records, func(r *Record) string { return r.Schema })
	queries := joinFragments(records, func(r *Record) string { return r.Queries })
	mutations := joinFragments(records, func(r *Record) string { return r.Mutations })
	subscriptions := joinFragments(records, func(r *Record) string { return r.Subscriptions })

	resolvers := make(map[string]FieldResolvers)
	for _, r := range records {
		for name, fields := range r.Resolvers.Types {
			resolvers[name] = fields
		}
	}
	if queries != "" {
		resolvers[rk.Query] = mergeFields(records, func(r *Record) FieldResolvers { return r.Resolvers.Queries })
	}
	if mutations != "" {
		resolvers[rk.Mutation] = mergeFields(records, func(r *Record) FieldResolvers { return r.Resolvers.Mutations })
	}
	if subscriptions != "" {
		resolvers[rk.Subscription] = mergeFields(records, func(r *Record) FieldResolvers { return r.Resolvers.Subscriptions })
	}

	result := Result{
		TypeDefs:  assembleTypeDefs(rk, schemaText, queries, mutations, subscriptions),
		Resolvers: resolvers,
	}

	for _, r := range records {
		if r.Alter != nil {
			result = r.Alter(result)
		}
	}
	return result
}

// joinFragments concatenates the non-empty fragments selected by get, in
// record order.
func joinFragments(records []*Record, get func(*Record) string) string {
	var parts []string
	for _, r := range records {
		if s := get(r); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// mergeFields merges the field resolver maps selected by get, shallowly,
// later records overwriting earlier ones on collision. The result is never
// nil: a category with text but no resolvers still attaches an empty map.
func mergeFields(records []*Record, get func(*Record) FieldResolvers) FieldResolvers {
	merged := make(FieldResolvers)
	for _, r := range records {
		for name, fn := range get(r) {
			merged[name] = fn
		}
	}
	return merged
}

func assembleTypeDefs(rk RootKeys, schemaText, queries, mutations, subscriptions string) string {
	var b strings.Builder
	b.WriteString(schemaText)
	b.WriteString("\n")

	writeRootType(&b, rk.Query, queries)
	writeRootType(&b, rk.Mutation, mutations)
	writeRootType(&b, rk.Subscription, subscriptions)

	b.WriteString("\nschema {\n")
	if queries != "" {
		fmt.Fprintf(&b, "  query: %s\n", rk.Query)
	}
	if mutations != "" {
		fmt.Fprintf(&b, "  mutation: %s\n", rk.Mutation)
	}
	if subscriptions != "" {
		fmt.Fprintf(&b, "  subscription: %s\n", rk.Subscription)
	}
	b.WriteString("}\n")
	return b.String()
}

func writeRootType(b *strings.Builder, name, fields string) {
	if fields == "" {
		return
	}
	fmt.Fprintf(b, "\ntype %s {\n%s\n}\n", name, fields)
}
