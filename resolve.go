package modql

import "unsafe"

// seenKind disambiguates identities drawn from different pointer spaces.
type seenKind uint8

const (
	seenRecord seenKind = iota
	seenFactory
	seenCollection
)

type seenKey struct {
	kind seenKind
	ptr  uintptr
}

// seenSet tracks module identities visited during one top-level resolution.
// It is created fresh per Bundle or Resolve call, so resolving the same
// module instance in two independent calls yields the same contribution in
// both. The module is stored as the value: keys are bare uintptrs, so every
// seen module must stay reachable for the whole call or a later allocation
// could reuse its address and collide with the stale key.
type seenSet map[seenKey]Module

// identityOf returns the reference identity of m: the record pointer, the
// function value, or the collection's backing array. Nil modules have no
// identity and resolve to nothing.
func identityOf(m Module) (seenKey, bool) {
	switch v := m.(type) {
	case *Record:
		if v == nil {
			return seenKey{}, false
		}
		return seenKey{kind: seenRecord, ptr: uintptr(unsafe.Pointer(v))}, true
	case Factory:
		if v == nil {
			return seenKey{}, false
		}
		// A func value points at its func object. reflect's Pointer would
		// collapse distinct closures sharing one code body, so identity
		// goes through the value's data word instead.
		return seenKey{kind: seenFactory, ptr: uintptr(*(*unsafe.Pointer)(unsafe.Pointer(&v)))}, true
	case Collection:
		if v == nil {
			return seenKey{}, false
		}
		return seenKey{kind: seenCollection, ptr: uintptr(unsafe.Pointer(unsafe.SliceData(v)))}, true
	}
	return seenKey{}, false
}

// Resolve flattens m into an ordered record list using a fresh seen set.
// Bundle threads one seen set across all of its top-level modules instead;
// use Resolve directly only when composing a single module tree by hand.
func Resolve(m Module) []*Record {
	return resolve(m, make(seenSet))
}

// resolve classifies m and expands it depth-first, left to right. A module
// already present in seen contributes nothing, which both deduplicates
// shared modules and terminates cyclic dependency graphs.
func resolve(m Module, seen seenSet) []*Record {
	key, ok := identityOf(m)
	if !ok {
		return nil
	}
	if _, dup := seen[key]; dup {
		return nil
	}
	seen[key] = m

	switch v := m.(type) {
	case Factory:
		// The factory itself is marked seen, and its product gets its own
		// marking on the recursive call.
		return resolve(v(), seen)

	case Collection:
		var records []*Record
		for _, el := range v {
			records = append(records, resolve(el, seen)...)
		}
		return records

	case *Record:
		deps := v.Modules
		v.Modules = nil
		records := []*Record{v}
		for _, dep := range deps {
			records = append(records, resolve(dep, seen)...)
		}
		return records
	}
	return nil
}
