package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const template = `# doclint configuration

[settings]
# jsdoc | closure | typescript | permissive
mode = "jsdoc"

# Preferred spelling per tag, e.g. arg = "param" or param = "arg".
[settings.tag_name_preference]

[rules.check-param-names]
# error | warning | info | off
severity = "error"
allow_extra_trailing_param_docs = false
check_destructured = true
check_rest_property = false
check_types_pattern = '/^(?:[oO]bject|[aA]rray|PlainObject|Generic(?:Object|Array))$/'
enable_fixer = false
use_default_object_properties = false
disable_extra_property_reporting = false

[rules.require-property-description]
severity = "warning"
`

// Template returns the commented default config file.
func Template() string {
	return template
}

// WriteDefault creates dir/doclint.toml. An existing file is kept unless
// force is set.
func WriteDefault(dir string, force bool) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %q: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return path, fmt.Errorf("failed to stat %q: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(template), 0o600); err != nil {
		return path, fmt.Errorf("failed to write %q: %w", path, err)
	}
	return path, nil
}
