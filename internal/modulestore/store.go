// Package modulestore defines the cache of resolved shader modules consulted
// by the resolver.
//
// # Lifecycle
//
// A store is created by whoever owns a resolver and injected into it. A
// record is written the first time a module is read through to its terminal
// export line and is never updated or evicted afterwards: later requires of
// the same name get the stored lines back verbatim, without reading the file
// again and without applying their own substitutions.
//
// Entries are not namespaced per run. Hosts that compile unrelated shader
// trees concurrently should give each tree its own store.
package modulestore

import "context"

// Record is a fully resolved module keyed by the name of its terminal export.
type Record struct {
	Name    string
	Content []string
}

// Store holds module records for the lifetime of a resolver.
type Store interface {
	// Get returns the record for name, if one was stored.
	Get(ctx context.Context, name string) (*Record, bool)
	// Put stores rec unless a record with the same name already exists. It
	// reports whether rec was stored.
	Put(ctx context.Context, rec *Record) bool
	// Len reports how many modules are stored.
	Len() int
}
