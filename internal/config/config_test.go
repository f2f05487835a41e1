package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Jumplist.ExactMatchPoolSize != DefaultExactMatchPoolSize {
		t.Fatalf("expected default exact-match pool size, got %d", cfg.Jumplist.ExactMatchPoolSize)
	}
	if !cfg.SaveWithFilesDefault {
		t.Fatalf("expected default save_with_files_default to be true")
	}
}

func TestLoad_OverridesJumplistPoolSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := "jumplist:\n  exact_match_pool_size: 100\n  inference_pool_size: 10\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Jumplist.ExactMatchPoolSize != 100 {
		t.Fatalf("ExactMatchPoolSize = %d, want 100", cfg.Jumplist.ExactMatchPoolSize)
	}
	if cfg.Jumplist.InferencePoolSize != 10 {
		t.Fatalf("InferencePoolSize = %d, want 10", cfg.Jumplist.InferencePoolSize)
	}
	if cfg.Jumplist.DefaultQueryMax != DefaultQueryMax {
		t.Fatalf("DefaultQueryMax should keep its default when unset, got %d", cfg.Jumplist.DefaultQueryMax)
	}
}

func TestLoadLayered_LaterFileOverridesEarlier(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	override := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(base, []byte("default_workspace: base\nsave_with_files_default: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(override, []byte("default_workspace: override\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLayered([]string{base, override})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultWorkspace != "override" {
		t.Fatalf("DefaultWorkspace = %q, want %q", cfg.DefaultWorkspace, "override")
	}
	if !cfg.SaveWithFilesDefault {
		t.Fatalf("expected save_with_files_default from base layer to survive")
	}
}
