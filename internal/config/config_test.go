package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": "my-office"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Name != "my-office" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Server.Port != DefaultPort || cfg.Server.Host != DefaultHost {
		t.Errorf("expected default server settings, got %+v", cfg.Server)
	}
	if cfg.Mods.Index != DefaultModIndex {
		t.Errorf("expected default mod index, got %q", cfg.Mods.Index)
	}
	if cfg.Library.File != DefaultLibraryFile {
		t.Errorf("expected default library file, got %q", cfg.Library.File)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if errors.CodeOf(err) != "E400" {
		t.Errorf("expected E400, got %v", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{broken`)

	_, err := Load(dir)
	if errors.CodeOf(err) != "E401" {
		t.Errorf("expected E401, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"server": {"port": 99999}}`)
	if _, err := Load(dir); errors.CodeOf(err) != "E401" {
		t.Errorf("expected E401 for bad port, got %v", err)
	}

	dir2 := t.TempDir()
	writeConfig(t, dir2, `{"s3": {"bucket": "mods"}}`)
	if _, err := Load(dir2); errors.CodeOf(err) != "E401" {
		t.Errorf("expected E401 for bucket without region, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"server": {"port": 5000}}`)

	t.Setenv("CREWHUB_PORT", "6001")
	t.Setenv("CREWHUB_HOST", "0.0.0.0")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 6001 {
		t.Errorf("CREWHUB_PORT should win, got %d", cfg.Server.Port)
	}
	if cfg.Address() != "0.0.0.0:6001" {
		t.Errorf("Address = %q", cfg.Address())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": "office"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Mods.Autoload = append(cfg.Mods.Autoload, "mods/neon-pack.json")
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Mods.Autoload) != 1 || reloaded.Mods.Autoload[0] != "mods/neon-pack.json" {
		t.Errorf("autoload not persisted: %+v", reloaded.Mods)
	}
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.LibraryPath(); got != filepath.Join(dir, DefaultLibraryFile) {
		t.Errorf("LibraryPath = %q", got)
	}
	if got := cfg.ModsDir(); got != filepath.Join(dir, DefaultModsDir) {
		t.Errorf("ModsDir = %q", got)
	}

	abs := filepath.Join(dir, "elsewhere.json")
	cfg.Library.File = abs
	if got := cfg.LibraryPath(); got != abs {
		t.Errorf("absolute paths should pass through, got %q", got)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{}`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot failed: %v", err)
	}
	// Resolve symlinks: on some systems TempDir returns a symlinked path.
	wantReal, _ := filepath.EvalSymlinks(root)
	foundReal, _ := filepath.EvalSymlinks(found)
	if foundReal != wantReal {
		t.Errorf("expected root %q, got %q", wantReal, foundReal)
	}
}
