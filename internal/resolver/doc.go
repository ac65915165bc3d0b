// Package resolver inlines glsipy shader modules into a single compiled
// shader.
//
// # Resolution
//
// Expansion starts at an entry file and walks it line by line. A require
// pragma is replaced by the fully expanded content of the module it names; an
// export pragma applies the requiring site's key=value substitutions to the
// lines the current module has produced so far; everything else is copied
// through untouched.
//
// Paths are always resolved one directory above the directory of the file
// being expanded. Requires written in the entry file are additionally looked
// up through the configured search directories (followed by "partials"); the
// first directory containing the path wins. Requires inside modules are used
// as written.
//
// # Caching
//
// A module whose last physical line is its terminal export pragma is stored
// under the exported name. Any later require whose alias equals that name is
// answered from the store: the file is not read again and the new require's
// substitutions are not applied. A terminal export anywhere but on the last
// line is dropped from the output and registers nothing. This is kept for
// compatibility with existing shader trees, not because it is a good rule.
//
// # Duplicates and cycles
//
// In the entry file, a require whose argument text was already expanded is
// dropped. Nested modules get no such guard; only the cache shields them from
// repeated work. A module that requires itself, directly or through other
// modules, before reaching its terminal export fails with ErrCyclicRequire.
package resolver
