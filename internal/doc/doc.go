// Package doc models tokenized documentation blocks: the tags a comment
// carries, in source order, after an external tokenizer split each one into
// tag name, type, name and description.
//
// It also owns the dotted-path helpers (options.timeout, items[].id) shared
// by every rule that reconciles nested tag names.
package doc
