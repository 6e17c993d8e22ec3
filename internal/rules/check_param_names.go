package rules

import (
	"fmt"
	"regexp"
	"strings"

	"doclint/internal/diag"
	"doclint/internal/doc"
	"doclint/internal/fix"
	"doclint/internal/params"
)

const checkParamNamesDescription = "Ensures that parameter names in documentation match those in the declaration."

// DefaultCheckTypesPattern selects the types whose properties are checked.
const DefaultCheckTypesPattern = `/^(?:[oO]bject|[aA]rray|PlainObject|Generic(?:Object|Array))$/`

// ParamNamesOptions configures CheckParamNames.
type ParamNamesOptions struct {
	AllowExtraTrailingParamDocs   bool
	CheckDestructured             bool
	CheckRestProperty             bool
	CheckTypesPattern             string
	EnableFixer                   bool
	UseDefaultObjectProperties    bool
	DisableExtraPropertyReporting bool
}

// DefaultParamNamesOptions returns the documented defaults.
func DefaultParamNamesOptions() ParamNamesOptions {
	return ParamNamesOptions{
		CheckDestructured: true,
		CheckTypesPattern: DefaultCheckTypesPattern,
	}
}

// CheckParamNames reconciles @param tags with the declaration's parameters.
//
// A flat pass walks the tags in order and stops at the first duplicate,
// extra trailing tag, destructuring mismatch or name mismatch. Inside one
// destructured parameter every missing property is reported, then every
// unknown one. When the flat pass is clean a deep pass checks that dotted
// names follow the parameter they belong to.
type CheckParamNames struct {
	opts  ParamNamesOptions
	types *regexp.Regexp
}

// NewCheckParamNames compiles opts.CheckTypesPattern; an empty pattern
// means the default.
func NewCheckParamNames(opts ParamNamesOptions) (*CheckParamNames, error) {
	pattern := opts.CheckTypesPattern
	if pattern == "" {
		pattern = DefaultCheckTypesPattern
	}
	re, err := CompilePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: check_types_pattern: %w", diag.RuleCheckParamNames, err)
	}
	opts.CheckTypesPattern = pattern
	return &CheckParamNames{opts: opts, types: re}, nil
}

func (r *CheckParamNames) Name() string        { return diag.RuleCheckParamNames }
func (r *CheckParamNames) Description() string { return checkParamNamesDescription }

// Options returns the effective options.
func (r *CheckParamNames) Options() ParamNamesOptions { return r.opts }

func (r *CheckParamNames) Check(ctx *Context) {
	target := ctx.Preferred("param")
	if !ctx.Block.Has(target) {
		return
	}
	tree := ctx.Params.Expand(r.opts.UseDefaultObjectProperties)
	if r.validateFlat(ctx, target, tree) || !r.opts.CheckDestructured {
		return
	}
	r.validateDeep(ctx, target)
}

// skipsType reports whether a declared type opts out of property checks.
func (r *CheckParamNames) skipsType(typ string) bool {
	return typ != "" && !r.types.MatchString(typ)
}

func (r *CheckParamNames) validateFlat(ctx *Context, target string, tree params.Tree) bool {
	tagged := ctx.Block.Filter(target)
	dotted := 0

	for i, it := range tagged {
		tag := it.Tag

		if dup, ok := findDuplicate(tagged, i); ok {
			b := ctx.report(diag.ParamDuplicate, dup.Tag.Line, fmt.Sprintf(`Duplicate @%s "%s"`, target, tag.Name)).
				WithNote(ctx.at(tag.Line), "first documented here")
			if r.opts.EnableFixer {
				b.WithFix(fix.RemoveTag(fmt.Sprintf("Remove duplicate @%s", target),
					diag.TagEdit{Bundle: ctx.Bundle, Decl: ctx.Decl, Tag: dup.Index, Expect: dup.Tag.Name},
					fix.Preferred()))
			}
			b.Emit()
			return true
		}

		if tag.IsPath() {
			dotted++
			continue
		}

		p, ok := tree.At(i - dotted)
		if !ok {
			if r.opts.AllowExtraTrailingParamDocs {
				continue
			}
			ctx.report(diag.ParamExtraTrailing, tag.Line,
				fmt.Sprintf(`@%s "%s" does not match an existing function parameter.`, target, tag.Name)).Emit()
			return true
		}

		if p.IsDestructured() {
			if !r.opts.CheckDestructured || r.skipsType(tag.Type) {
				continue
			}
			if r.checkDestructured(ctx, target, tagged, tag, p) {
				return true
			}
			continue
		}

		if p.DocName() != tag.TrimmedName() {
			expected, actual := nameLists(tagged, tree)
			ctx.report(diag.ParamNameMismatch, tag.Line,
				fmt.Sprintf(`Expected @%s names to be "%s". Got "%s".`, target, expected, actual)).Emit()
			return true
		}
	}
	return false
}

// findDuplicate returns the first other tag with exactly the same raw name.
func findDuplicate(tagged []doc.Indexed, i int) (doc.Indexed, bool) {
	for j, other := range tagged {
		if j != i && other.Tag.Name == tagged[i].Tag.Name {
			return other, true
		}
	}
	return doc.Indexed{}, false
}

type missingProperty struct {
	name string
	line int
}

func (r *CheckParamNames) checkDestructured(ctx *Context, target string, tagged []doc.Indexed, tag doc.Tag, p params.Param) bool {
	name := tag.TrimmedName()
	if p.Annotation != "" && name != p.Annotation {
		ctx.report(diag.ParamAnnotationMismatch, tag.Line,
			fmt.Sprintf(`@%s "%s" does not match parameter name "%s"`, target, name, p.Annotation)).Emit()
	}

	group := p.Name
	if group == "" {
		group = name
	}
	expected := make([]string, len(p.Properties))
	for k, prop := range p.Properties {
		expected[k] = group + "." + prop.Name
	}

	actual := make([]string, len(tagged))
	for j, it := range tagged {
		actual[j] = it.Tag.TrimmedName()
	}

	var missing []missingProperty
	var unchecked []string
	for k, exp := range expected {
		if hasAnyPrefix(exp, unchecked) {
			continue
		}
		idx := indexOf(actual, func(a string) bool { return doc.SamePath(exp, a) })
		if idx < 0 {
			if !r.opts.CheckRestProperty && p.Properties[k].Rest {
				continue
			}
			gap := indexOf(actual, func(a string) bool { return !doc.HasPathPrefix(exp, a) })
			if gap < 0 {
				gap = len(actual)
			}
			line := tag.Line - 1 + gap
			if line < 1 {
				line = 1
			}
			missing = append(missing, missingProperty{name: exp, line: line})
		} else if r.skipsType(tagged[idx].Tag.Type) {
			unchecked = append(unchecked, exp)
		}
	}

	for _, m := range missing {
		ctx.report(diag.ParamMissingProperty, m.line, fmt.Sprintf(`Missing @%s "%s"`, target, m.name)).Emit()
	}

	if !p.HasRestProperty || r.opts.CheckRestProperty {
		var extra []doc.Indexed
		prefix := name + "."
		for j, a := range actual {
			if !strings.HasPrefix(a, prefix) {
				continue
			}
			if indexOf(expected, func(e string) bool { return doc.SamePath(a, e) }) >= 0 || doc.SamePath(a, tag.Name) {
				continue
			}
			if r.opts.DisableExtraPropertyReporting && !reachesDepth(p.Properties, doc.Depth(a)-1) {
				continue
			}
			extra = append(extra, tagged[j])
		}
		for _, it := range extra {
			ctx.report(diag.ParamUnknownProperty, it.Tag.Line,
				fmt.Sprintf(`@%s "%s" does not exist on %s`, target, it.Tag.TrimmedName(), tag.Name)).Emit()
		}
		if len(extra) > 0 {
			return true
		}
	}

	return len(missing) > 0
}

// nameLists renders the expected and actual top-level names for a mismatch
// message. Destructured slots have no name of their own and borrow the
// documented name at the same position.
func nameLists(tagged []doc.Indexed, tree params.Tree) (expected, actual string) {
	var got []string
	for _, it := range tagged {
		if !it.Tag.IsPath() {
			got = append(got, it.Tag.TrimmedName())
		}
	}
	want := make([]string, len(tree))
	for i, p := range tree {
		switch {
		case !p.IsDestructured():
			want[i] = p.DocName()
		case i < len(got):
			want[i] = got[i]
		}
	}
	return strings.Join(want, ", "), strings.Join(got, ", ")
}

func (r *CheckParamNames) validateDeep(ctx *Context, target string) bool {
	last := ""
	for _, it := range ctx.Block.Filter(target) {
		name := it.Tag.TrimmedName()
		if !doc.IsPath(name) {
			last = name
			continue
		}
		if last == "" {
			ctx.report(diag.ParamPathBeforeParam, it.Tag.Line,
				fmt.Sprintf(`@%s path declaration ("%s") appears before any real parameter.`, target, name)).Emit()
			return true
		}
		if root := doc.Root(name); root != last {
			ctx.report(diag.ParamPathRootMismatch, it.Tag.Line,
				fmt.Sprintf(`@%s path declaration ("%s") root node name ("%s") does not match previous real parameter name ("%s").`,
					target, name, root, last)).Emit()
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func reachesDepth(props []params.Property, depth int) bool {
	for _, p := range props {
		if doc.Depth(p.Name) >= depth {
			return true
		}
	}
	return false
}

func indexOf(items []string, pred func(string) bool) int {
	for i, s := range items {
		if pred(s) {
			return i
		}
	}
	return -1
}
