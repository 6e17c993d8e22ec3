// Package input loads declaration bundles: the tokenized documentation
// blocks and parameter trees an external JavaScript traversal produced for
// one source file. Bundles come as JSON, YAML or MessagePack and are written
// back in the format they were read from.
package input
