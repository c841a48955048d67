package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestBasic(t *testing.T) {
	path := writeManifest(t, `
name: demo-app
version: "0.1.0"
sources:
  - main.lx
  - lib/extra.lx
settings:
  echo: false
  log_level: WARN
  history: .demo_history
dependencies:
  util:
    git: https://example.com/util.git
    tag: v1.0.0
    files: util.lx
  shared:
    path: ../shared
    files: [a.lx, b.lx]
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if got, want := manifest.Name, "demo_app"; got != want {
		t.Fatalf("Name = %q, want %q", got, want)
	}
	if got := manifest.Version; got != "0.1.0" {
		t.Fatalf("Version = %q, want 0.1.0", got)
	}
	sources := manifest.SourcePaths()
	if len(sources) != 2 || sources[1] != filepath.Join(filepath.Dir(path), "lib", "extra.lx") {
		t.Fatalf("SourcePaths unexpected: %#v", sources)
	}
	if manifest.Settings.Echo == nil || *manifest.Settings.Echo {
		t.Fatalf("settings.echo not parsed: %#v", manifest.Settings.Echo)
	}
	if manifest.Settings.LogLevel != "warn" || manifest.Settings.History != ".demo_history" {
		t.Fatalf("settings unexpected: %#v", manifest.Settings)
	}

	util := manifest.Dependencies["util"]
	if util == nil || !util.IsGit() || util.Tag != "v1.0.0" || strings.Join(util.Files, ",") != "util.lx" {
		t.Fatalf("git dependency not parsed: %#v", util)
	}
	shared := manifest.Dependencies["shared"]
	if shared == nil || shared.Path != "../shared" || strings.Join(shared.Files, ",") != "a.lx,b.lx" {
		t.Fatalf("path dependency not parsed: %#v", shared)
	}
	if got := strings.Join(manifest.DependencyNames(), ","); got != "shared,util" {
		t.Fatalf("DependencyNames = %q", got)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	path := writeManifest(t, `
version: one
settings:
  log_level: loud
dependencies:
  both:
    git: https://example.com/x.git
    path: ../x
    files: [x.lx]
  neither:
    files: [y.lx]
  pinned_twice:
    git: https://example.com/z.git
    tag: v1
    branch: main
    files: [z.lx]
  escaping:
    path: ../w
    files: [../../etc/passwd]
  no_files:
    path: ../v
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"name must be provided",
		`invalid version "one"`,
		`unknown level "loud"`,
		"dependencies.both: cannot specify both git and path",
		"dependencies.neither: must specify git or path",
		"dependencies.pinned_twice: specify at most one of rev, tag or branch",
		"must stay inside the dependency",
		"dependencies.no_files: files must list at least one source file",
	}
	msg := verr.Error()
	for _, fragment := range want {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, msg)
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, `
name: demo
targets:
  app: main.lx
`)
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "targets") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadManifestEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}
