// Package rules holds the documentation rules and the registry that runs
// them over one declaration at a time.
//
// A rule sees a Context: the tokenized tag block, the extracted parameter
// tree, the run's tag grammar and a diag.Reporter. Rules never return
// errors for well-formed input; findings are diagnostics.
package rules
