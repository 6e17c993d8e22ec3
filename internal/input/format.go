package input

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a bundle encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

var extFormats = map[string]Format{
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".msgpack": FormatMsgpack,
	".mp":      FormatMsgpack,
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, bool) {
	f, ok := extFormats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unknown bundle format %q (expected json|yaml|msgpack)", s)
	}
}
