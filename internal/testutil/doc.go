// Package testutil holds fixtures shared by the package tests: log capture,
// shader trees on disk and a file system spy for the resolver.
package testutil
