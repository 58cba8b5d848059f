// Package events defines the events published around bundling operations.
package events

import "time"

// BundleStart is emitted before a bundling operation begins loading and
// composing modules.
type BundleStart struct {
	Modules int
}

// BundleFinish is emitted after the composed result has been produced.
type BundleFinish struct {
	TypeDefsBytes int
	ResolverTypes int
	Duration      time.Duration
}

// ModuleDiscovered is emitted when a module directory has been loaded.
type ModuleDiscovered struct {
	Dir          string
	Dependencies int
}
