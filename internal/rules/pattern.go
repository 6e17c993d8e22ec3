package rules

import (
	"fmt"
	"regexp"
	"strings"
)

var literalRe = regexp.MustCompile(`(?s)^/(.*)/([gimyus]*)$`)

// CompilePattern accepts either a bare pattern or a `/body/flags` literal.
// Of the flags, i, m and s map onto RE2 flags; g, y and u have no meaning
// for a match test and are ignored.
func CompilePattern(s string) (*regexp.Regexp, error) {
	body := s
	if m := literalRe.FindStringSubmatch(s); m != nil {
		body = m[1]
		var rf strings.Builder
		for _, f := range "ims" {
			if strings.ContainsRune(m[2], f) {
				rf.WriteRune(f)
			}
		}
		if rf.Len() > 0 {
			body = "(?" + rf.String() + ")" + body
		}
	}
	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", s, err)
	}
	return re, nil
}
