// Package modql composes independently authored schema modules into a single
// GraphQL SDL definition and a single merged resolver map.
//
// A Module contributes SDL text fragments (plain type definitions plus field
// fragments for Query, Mutation and Subscription), a bundle of resolver
// functions, and optionally a list of dependency modules. Modules come in
// three shapes:
//
//   - *Record: the concrete leaf carrying content.
//   - Factory: a nullary function producing a module when resolved.
//   - Collection: an ordered list of modules, each resolved independently.
//
// Bundle flattens an arbitrarily nested module graph into an ordered record
// list and merges the records into a Result: one TypeDefs string with
// synthesized root types and a schema block, and one resolver map keyed by
// type name. Each distinct module instance contributes at most once, so
// shared and cyclic dependency graphs are safe. Insertion order drives the
// merge: text fragments concatenate in record order, later records win
// resolver key collisions, and Alter hooks fold over the result in record
// order.
//
// The produced Result is shaped for direct consumption by an SDL parser and
// a resolver-driven execution engine. modql never validates the SDL text it
// concatenates.
package modql
