package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pwkeep/pwkeep/pkg/passgen"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ClipboardClearSeconds != DefaultClipboardClearSeconds {
		t.Errorf("ClipboardClearSeconds = %d, want %d", cfg.ClipboardClearSeconds, DefaultClipboardClearSeconds)
	}
	if cfg.Generator.Length != passgen.DefaultLength {
		t.Errorf("Generator.Length = %d, want %d", cfg.Generator.Length, passgen.DefaultLength)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("clipboard_clear_seconds: 10\ngenerator:\n  length: 24\n  no_symbols: true\n  exclude: \"lI1\"\n")
	if err := os.WriteFile(filepath.Join(dir, FileName), content, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ClipboardClearSeconds != 10 {
		t.Errorf("ClipboardClearSeconds = %d, want 10", cfg.ClipboardClearSeconds)
	}
	opts := cfg.GeneratorOptions()
	if opts.Length != 24 || !opts.NoSymbols || opts.Exclude != "lI1" {
		t.Errorf("GeneratorOptions() = %+v", opts)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("generator: [broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("Load() succeeded on invalid YAML")
	}
}

func TestLoadNegativeClipboardSeconds(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("clipboard_clear_seconds: -5\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("Load() accepted negative clipboard_clear_seconds")
	}
}
