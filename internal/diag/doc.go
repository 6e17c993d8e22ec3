// Package diag defines the diagnostic model shared by rules, the loader and
// the CLI.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string
//     form (PRM1001, PRP2001, IO4001, ...). The code range also names the
//     rule that produced it.
//   - Message – human oriented text. Rule messages are part of the output
//     contract; tests compare them verbatim.
//   - Primary span – documented source file plus line.
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional Fix records.
//
// # Fix suggestions
//
// Fixes are data-only. The only edit kind is TagEdit, which removes one
// documented tag from a declaration of a bundle; internal/fix applies it to
// the tokenized data and re-encodes the bundle. The documented source text
// is never rewritten.
//
// # Emitting diagnostics
//
// Rules use a Reporter, usually through ReportBuilder (ReportError /
// ReportWarning) chaining WithNote / WithFix before Emit. BagReporter
// collects into a Bag, which supports limiting, filtering, deduplication
// and a per-file sort that keeps emission order inside each file.
package diag
