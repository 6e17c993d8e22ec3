package doc

import "strings"

const arrayMarker = "[]"

// IsPath reports whether name is dotted.
func IsPath(name string) bool {
	return strings.Contains(name, ".")
}

// Root returns the first segment of a dotted name with any trailing array
// marker removed: "items[].id" -> "items".
func Root(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return stripArrayMarker(name)
}

// Depth counts the segments of a dotted name.
func Depth(name string) int {
	return strings.Count(name, ".") + 1
}

// SamePath compares two dotted names segment by segment, ignoring trailing
// array markers and quotes around a segment.
func SamePath(a, b string) bool {
	if a == b {
		return true
	}
	return NormalizePath(a) == NormalizePath(b)
}

// HasPathPrefix reports whether path starts with prefix once segment quotes
// are dropped. Array markers stay significant: "opts.a.b" does not start with
// "opts.a[]". This is a textual prefix test, so "opts.timeout" starts with
// "opt" as well as with "opts".
func HasPathPrefix(path, prefix string) bool {
	return strings.HasPrefix(dropQuotes(path), dropQuotes(prefix))
}

// NormalizePath drops trailing array markers and segment quotes.
func NormalizePath(name string) string {
	if !strings.Contains(name, arrayMarker) && !strings.ContainsAny(name, `'"`) {
		return name
	}
	segs := strings.Split(name, ".")
	for i, s := range segs {
		segs[i] = stripArrayMarker(unquote(s))
	}
	return strings.Join(segs, ".")
}

func dropQuotes(name string) string {
	if !strings.ContainsAny(name, `'"`) {
		return name
	}
	segs := strings.Split(name, ".")
	for i, s := range segs {
		segs[i] = unquote(s)
	}
	return strings.Join(segs, ".")
}

func stripArrayMarker(s string) string {
	for strings.HasSuffix(s, arrayMarker) {
		s = strings.TrimSuffix(s, arrayMarker)
	}
	return s
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
