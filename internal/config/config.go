// Package config loads doclint.toml.
//
// The file is found by walking up from the checked path. Every key is
// optional; absent keys keep the values of Default. Unknown keys are
// rejected so typos in rule options do not pass silently.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"doclint/internal/diag"
	"doclint/internal/dialect"
	"doclint/internal/rules"
)

// FileName is the config file looked up by Find.
const FileName = "doclint.toml"

// ErrNotFound is returned by Discover when no config file exists up the tree.
var ErrNotFound = errors.New("no " + FileName + " found")

// SeverityOff disables a rule.
const SeverityOff = "off"

type Config struct {
	// Path is the file the config came from, empty for defaults.
	Path     string   `toml:"-"`
	Settings Settings `toml:"settings"`
	Rules    Rules    `toml:"rules"`
}

type Settings struct {
	Mode string `toml:"mode"`
	// TagNamePreference maps a tag to the spelling the project uses.
	TagNamePreference map[string]string `toml:"tag_name_preference"`
}

type Rules struct {
	CheckParamNames            ParamNamesRule `toml:"check-param-names"`
	RequirePropertyDescription SeverityRule   `toml:"require-property-description"`
}

type SeverityRule struct {
	Severity string `toml:"severity"`
}

type ParamNamesRule struct {
	Severity                      string `toml:"severity"`
	AllowExtraTrailingParamDocs   bool   `toml:"allow_extra_trailing_param_docs"`
	CheckDestructured             bool   `toml:"check_destructured"`
	CheckRestProperty             bool   `toml:"check_rest_property"`
	CheckTypesPattern             string `toml:"check_types_pattern"`
	EnableFixer                   bool   `toml:"enable_fixer"`
	UseDefaultObjectProperties    bool   `toml:"use_default_object_properties"`
	DisableExtraPropertyReporting bool   `toml:"disable_extra_property_reporting"`
}

// Options converts the table into rule options.
func (r ParamNamesRule) Options() rules.ParamNamesOptions {
	return rules.ParamNamesOptions{
		AllowExtraTrailingParamDocs:   r.AllowExtraTrailingParamDocs,
		CheckDestructured:             r.CheckDestructured,
		CheckRestProperty:             r.CheckRestProperty,
		CheckTypesPattern:             r.CheckTypesPattern,
		EnableFixer:                   r.EnableFixer,
		UseDefaultObjectProperties:    r.UseDefaultObjectProperties,
		DisableExtraPropertyReporting: r.DisableExtraPropertyReporting,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	opts := rules.DefaultParamNamesOptions()
	return Config{
		Settings: Settings{
			Mode:              dialect.Plain.String(),
			TagNamePreference: map[string]string{},
		},
		Rules: Rules{
			CheckParamNames: ParamNamesRule{
				Severity:          "error",
				CheckDestructured: opts.CheckDestructured,
				CheckTypesPattern: opts.CheckTypesPattern,
			},
			RequirePropertyDescription: SeverityRule{Severity: "warning"},
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the config governing startDir. When there is
// none it returns Default() together with ErrNotFound.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Default(), err
	}
	if !ok {
		return Default(), ErrNotFound
	}
	return Load(path)
}

// Load decodes path on top of Default and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("settings", "mode") && strings.TrimSpace(cfg.Settings.Mode) == "" {
		return Config{}, fmt.Errorf("%s: [settings].mode is empty", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that decode cannot.
func (c Config) Validate() error {
	if _, err := dialect.ParseMode(c.Settings.Mode); err != nil {
		return fmt.Errorf("[settings].mode: %w", err)
	}
	for tag, pref := range c.Settings.TagNamePreference {
		if strings.TrimSpace(pref) == "" {
			return fmt.Errorf("[settings.tag_name_preference].%s is empty", tag)
		}
	}
	if _, _, err := ruleSeverity(c.Rules.CheckParamNames.Severity); err != nil {
		return fmt.Errorf("[rules.%s].severity: %w", diag.RuleCheckParamNames, err)
	}
	if _, _, err := ruleSeverity(c.Rules.RequirePropertyDescription.Severity); err != nil {
		return fmt.Errorf("[rules.%s].severity: %w", diag.RuleRequirePropertyDescription, err)
	}
	if _, err := rules.CompilePattern(c.Rules.CheckParamNames.CheckTypesPattern); err != nil {
		return fmt.Errorf("[rules.%s].check_types_pattern: %w", diag.RuleCheckParamNames, err)
	}
	return nil
}

// Mode returns the configured dialect; Validate guarantees it parses.
func (c Config) Mode() dialect.Mode {
	m, err := dialect.ParseMode(c.Settings.Mode)
	if err != nil {
		return dialect.Plain
	}
	return m
}

// Registry builds the enabled rules in their built-in order.
func (c Config) Registry() (*rules.Registry, error) {
	reg := rules.NewRegistry()

	if sev, on, err := ruleSeverity(c.Rules.CheckParamNames.Severity); err != nil {
		return nil, err
	} else if on {
		rule, err := rules.NewCheckParamNames(c.Rules.CheckParamNames.Options())
		if err != nil {
			return nil, err
		}
		if err := reg.Add(rule, sev); err != nil {
			return nil, err
		}
	}

	if sev, on, err := ruleSeverity(c.Rules.RequirePropertyDescription.Severity); err != nil {
		return nil, err
	} else if on {
		if err := reg.Add(rules.NewRequirePropertyDescription(), sev); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func ruleSeverity(s string) (diag.Severity, bool, error) {
	if strings.EqualFold(strings.TrimSpace(s), SeverityOff) {
		return diag.SevInfo, false, nil
	}
	sev, err := diag.ParseSeverity(s)
	if err != nil {
		return diag.SevInfo, false, err
	}
	return sev, true, nil
}
