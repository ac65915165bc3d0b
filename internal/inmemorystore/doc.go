// Package inmemorystore provides a thread-safe, in-memory implementation of
// the modulestore.Store interface. It is the default module cache for a
// resolver and lives exactly as long as the resolver holding it.
package inmemorystore
