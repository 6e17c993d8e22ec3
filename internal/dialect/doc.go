// Package dialect names the documentation dialects a comment block can be
// written in (plain JSDoc, Closure, TypeScript-flavoured, permissive).
//
// The dialect never changes how tags are tokenized; it only selects which
// tag grammar the rules consult.
package dialect
