// Package config implements the configuration loader: a fixed search list
// of YAML files is deep-merged (array-additive for the list fields named in
// additiveKeys, overwrite for everything else, including
// selectorPolicy.priority), migrated by schema version, and validated
// against a CUE schema embedded via go:embed.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/journeyc/compiler/internal/errs"
)

//go:embed schema.cue
var schemaSource string

// CurrentSchemaVersion is the version new configs are written at and the
// version migrations converge to.
const CurrentSchemaVersion = 2

// Paths names the directories the pipeline reads from and writes to.
type Paths struct {
	Journeys  string `yaml:"journeys,omitempty"`
	Modules   string `yaml:"modules,omitempty"`
	Tests     string `yaml:"tests,omitempty"`
	Templates string `yaml:"templates,omitempty"`
	Catalog   string `yaml:"catalog,omitempty"`
}

// Selector mirrors the selector policy's overridable fields. Priority is
// overwritten wholesale by a later file; forbiddenPatterns accumulate
// additively across files.
type Selector struct {
	Priority          []string `yaml:"priority,omitempty"`
	ForbiddenPatterns []string `yaml:"forbiddenPatterns,omitempty"`
}

// Validation mirrors the validator's tunables: eslint-style rule
// severities and extra custom forbidden-pattern regexes.
type Validation struct {
	ESLintRules map[string]string `yaml:"eslintRules,omitempty"`
	CustomRules []string          `yaml:"customRules,omitempty"`
}

// LLKB mirrors the learned-pattern store's tunables.
type LLKB struct {
	Enabled            bool    `yaml:"enabled"`
	Level              string  `yaml:"level,omitempty"` // minimal | enhance | aggressive
	ConfigPath         string  `yaml:"configPath,omitempty"`
	GlossaryPath       string  `yaml:"glossaryPath,omitempty"`
	MinConfidence      float64 `yaml:"minConfidence,omitempty"`
	PromotionThreshold float64 `yaml:"promotionThreshold,omitempty"`
}

// Heal mirrors the healing engine's tunables.
type Heal struct {
	Enabled        bool     `yaml:"enabled"`
	MaxAttempts    int      `yaml:"maxAttempts,omitempty"`
	MaxSuggestions int      `yaml:"maxSuggestions,omitempty"`
	EnabledRules   []string `yaml:"enabledRules,omitempty"`
	SkipPatterns   []string `yaml:"skipPatterns,omitempty"`
}

// Config is the merged, validated, current-schema configuration.
type Config struct {
	SchemaVersion        int        `yaml:"schemaVersion"`
	Paths                Paths      `yaml:"paths,omitempty"`
	Selector             Selector   `yaml:"selectorPolicy,omitempty"`
	Validation           Validation `yaml:"validation,omitempty"`
	LLKB                 LLKB       `yaml:"llkb,omitempty"`
	Heal                 Heal       `yaml:"heal,omitempty"`
	RegenerationStrategy string     `yaml:"regenerationStrategy,omitempty"` // ast | blocks
	TestIDAttribute      string     `yaml:"testIDAttribute,omitempty"`
}

// Default returns the built-in default configuration at the current
// schema version.
func Default() Config {
	return Config{
		SchemaVersion: CurrentSchemaVersion,
		Selector: Selector{
			Priority: []string{"role", "label", "placeholder", "text", "testid", "css"},
		},
		LLKB:                 LLKB{Enabled: true, Level: "enhance", MinConfidence: 0.7, PromotionThreshold: 0.9},
		Heal:                 Heal{Enabled: true, MaxAttempts: 6, MaxSuggestions: 3},
		RegenerationStrategy: "blocks",
		TestIDAttribute:      "data-testid",
	}
}

// SearchPaths returns the fixed discovery list: CWD, then .journeyc/, then
// the XDG config directory, each looking for journeyc.yaml.
func SearchPaths() []string {
	var out []string
	if cwd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(cwd, "journeyc.yaml"))
		out = append(out, filepath.Join(cwd, ".journeyc", "journeyc.yaml"))
	}
	if xdg, err := os.UserConfigDir(); err == nil {
		out = append(out, filepath.Join(xdg, "journeyc", "journeyc.yaml"))
	}
	return out
}

// Load reads every existing file in paths (in order, later files taking
// precedence), deep-merges them over the built-in defaults, migrates the
// merged document to CurrentSchemaVersion, and validates the result.
func Load(paths []string) (Config, []errs.Issue, error) {
	merged := toMap(Default())

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, nil, errs.New(errs.CodeConfigLoad, fmt.Sprintf("reading %s: %v", p, err))
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Config{}, nil, errs.New(errs.CodeConfigLoad, fmt.Sprintf("parsing %s: %v", p, err))
		}
		merged = deepMerge(merged, doc)
	}

	merged = migrate(merged)

	cfg, err := fromMap(merged)
	if err != nil {
		return Config{}, nil, errs.New(errs.CodeConfigLoad, fmt.Sprintf("decoding merged config: %v", err))
	}

	issues := Validate(cfg)
	return cfg, issues, nil
}

// additiveKeys names the dotted paths merged by concatenation-with-
// deduplication rather than overwrite. selectorPolicy.priority is
// deliberately absent: a later file's priority order replaces the earlier
// one wholesale.
var additiveKeys = map[string]bool{
	"selectorPolicy.forbiddenPatterns": true,
	"validation.customRules":           true,
	"heal.enabledRules":                true,
	"heal.skipPatterns":                true,
}

func deepMerge(dst, src map[string]any) map[string]any {
	return deepMergeAt(dst, src, "")
}

func deepMergeAt(dst, src map[string]any, prefix string) map[string]any {
	out := make(map[string]any, len(dst))
	for k, v := range dst {
		out[k] = v
	}
	for k, sv := range src {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		dv, exists := out[k]
		switch {
		case !exists:
			out[k] = sv
		case additiveKeys[path]:
			out[k] = appendUnique(toSlice(dv), toSlice(sv))
		default:
			dstMap, dstOK := dv.(map[string]any)
			srcMap, srcOK := sv.(map[string]any)
			if dstOK && srcOK {
				out[k] = deepMergeAt(dstMap, srcMap, path)
			} else {
				out[k] = sv
			}
		}
	}
	return out
}

func toSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func appendUnique(a, b []any) []any {
	seen := map[string]bool{}
	var out []any
	for _, v := range append(append([]any{}, a...), b...) {
		key := fmt.Sprintf("%v", v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// migrate applies pure value-rewrite migrations keyed on schemaVersion.
// Migrations never touch the filesystem and re-running one on an already
// migrated document is a no-op.
func migrate(doc map[string]any) map[string]any {
	version := intField(doc["schemaVersion"], 0)

	if version < 1 {
		if llkb, ok := doc["llkb"].(map[string]any); ok {
			if _, has := llkb["level"]; !has {
				llkb["level"] = "minimal"
			}
		} else {
			doc["llkb"] = map[string]any{"level": "minimal"}
		}
		version = 1
	}
	if version < 2 {
		if healing, ok := doc["healing"]; ok {
			doc["heal"] = healing
			delete(doc, "healing")
		}
		version = 2
	}

	doc["schemaVersion"] = version
	return doc
}

func intField(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	default:
		return def
	}
}

func toMap(cfg Config) map[string]any {
	data, _ := yaml.Marshal(cfg)
	var m map[string]any
	_ = yaml.Unmarshal(data, &m)
	return m
}

func fromMap(m map[string]any) (Config, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded CUE schema.
func Validate(cfg Config) []errs.Issue {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return []errs.Issue{{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Message: "internal config schema error: " + err.Error()}}
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	encoded := ctx.Encode(toMap(cfg))
	unified := def.Unify(encoded)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return []errs.Issue{{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Message: err.Error()}}
	}
	return nil
}
