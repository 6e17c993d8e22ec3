package rules

import (
	"fmt"
	"strings"

	"doclint/internal/diag"
)

const requirePropertyDescriptionDescription = "Requires that each @property tag has a description."

// RequirePropertyDescription reports @property tags without a description.
type RequirePropertyDescription struct{}

func NewRequirePropertyDescription() *RequirePropertyDescription {
	return &RequirePropertyDescription{}
}

func (r *RequirePropertyDescription) Name() string {
	return diag.RuleRequirePropertyDescription
}

func (r *RequirePropertyDescription) Description() string {
	return requirePropertyDescriptionDescription
}

func (r *RequirePropertyDescription) Check(ctx *Context) {
	target := ctx.Preferred("property")
	for _, it := range ctx.Block.Filter(target) {
		if strings.TrimSpace(it.Tag.Description) != "" {
			continue
		}
		ctx.report(diag.PropMissingDescription, it.Tag.Line,
			fmt.Sprintf(`Missing JSDoc @%s "%s" description.`, target, it.Tag.Name)).Emit()
	}
}
