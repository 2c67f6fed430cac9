package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithNoFilesReturnsDefaults(t *testing.T) {
	cfg, issues, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected the built-in default to validate cleanly, got %v", issues)
	}
	if cfg.SchemaVersion != CurrentSchemaVersion {
		t.Fatalf("expected schema version %d, got %d", CurrentSchemaVersion, cfg.SchemaVersion)
	}
	if cfg.TestIDAttribute != "data-testid" {
		t.Fatalf("expected default test-id attribute, got %q", cfg.TestIDAttribute)
	}
}

func TestLoadMergesLaterFilesOverEarlier(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	override := filepath.Join(dir, "override.yaml")

	if err := os.WriteFile(base, []byte("schemaVersion: 2\ntestIDAttribute: data-qa\nheal:\n  enabled: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(override, []byte("schemaVersion: 2\nheal:\n  maxAttempts: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, issues, err := Load([]string{base, override})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no validation issues, got %v", issues)
	}
	if cfg.TestIDAttribute != "data-qa" {
		t.Fatalf("expected base file's scalar to survive the merge, got %q", cfg.TestIDAttribute)
	}
	if !cfg.Heal.Enabled {
		t.Fatal("expected base file's heal.enabled to survive the merge")
	}
	if cfg.Heal.MaxAttempts != 3 {
		t.Fatalf("expected override file's heal.maxAttempts to win, got %d", cfg.Heal.MaxAttempts)
	}
}

func TestLoadAdditiveMergeForForbiddenPatterns(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	if err := os.WriteFile(a, []byte("schemaVersion: 2\nselectorPolicy:\n  forbiddenPatterns:\n    - \"nth-child\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("schemaVersion: 2\nselectorPolicy:\n  forbiddenPatterns:\n    - \"xpath\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := Load([]string{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Selector.ForbiddenPatterns) != 2 {
		t.Fatalf("expected both forbidden patterns to accumulate additively, got %v", cfg.Selector.ForbiddenPatterns)
	}
}

func TestLoadMissingFileIsSkippedNotFatal(t *testing.T) {
	_, _, err := Load([]string{"/nonexistent/journeyc.yaml"})
	if err != nil {
		t.Fatalf("expected a missing config file to be skipped, got error: %v", err)
	}
}

func TestLoadMigratesPreVersionHealingKey(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "legacy.yaml")
	if err := os.WriteFile(p, []byte("schemaVersion: 0\nhealing:\n  enabled: true\n  maxAttempts: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := Load([]string{p})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SchemaVersion != CurrentSchemaVersion {
		t.Fatalf("expected migration to converge to current schema version, got %d", cfg.SchemaVersion)
	}
	if !cfg.Heal.Enabled || cfg.Heal.MaxAttempts != 4 {
		t.Fatalf("expected legacy 'healing' key migrated to 'heal', got %+v", cfg.Heal)
	}
}

func TestValidateRejectsUnknownLLKBLevel(t *testing.T) {
	cfg := Default()
	cfg.LLKB.Level = "bogus-level"
	issues := Validate(cfg)
	if len(issues) == 0 {
		t.Fatal("expected an invalid llkb.level to fail schema validation")
	}
}

func TestLoadPriorityIsOverwrittenNotMerged(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(p, []byte("schemaVersion: 2\nselectorPolicy:\n  priority:\n    - testid\n    - role\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := Load([]string{p})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Selector.Priority) != 2 || cfg.Selector.Priority[0] != "testid" {
		t.Fatalf("expected the file's priority to replace the default wholesale, got %v", cfg.Selector.Priority)
	}
}

func TestValidateRejectsUnknownRegenerationStrategy(t *testing.T) {
	cfg := Default()
	cfg.RegenerationStrategy = "rewrite-everything"
	issues := Validate(cfg)
	if len(issues) == 0 {
		t.Fatal("expected an invalid regenerationStrategy to fail schema validation")
	}
}

func TestSearchPathsIncludesCWDAndDotDir(t *testing.T) {
	paths := SearchPaths()
	if len(paths) < 2 {
		t.Fatalf("expected at least 2 search paths, got %v", paths)
	}
}
