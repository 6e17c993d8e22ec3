// Package tags holds the dialect-aware grammar of block tags.
//
// Every known tag maps to a small function from dialect.Mode to Constraints:
// which positions (name, type) the tag supports or requires, and what its
// name slot denotes. Keeping each definition local to its tag means a
// dialect quirk never leaks into unrelated tags.
//
// Resolve evaluates one definition on demand. Grammar precomputes the whole
// table for one mode and answers the derived questions rules ask
// ("might this tag carry a type?"). A Grammar is built once per run and is
// read-only afterwards; there is no package-level mutable state.
package tags
