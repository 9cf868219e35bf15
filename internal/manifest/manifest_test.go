package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `[package]
name = "demo"

[format]
indent_width = 4
use_tabs = true
max_line_length = 100
min_last_column_width = 30
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("package name: want %q got %q", "demo", m.Config.Package.Name)
	}
	opt, err := m.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opt.IndentWidth != 4 || !opt.UseTabs || opt.MaxLineLength != 100 || opt.MinLastColumnWidth != 30 {
		t.Fatalf("unexpected options: %+v", opt)
	}
}

func TestLoadRejectsBadRanges(t *testing.T) {
	cases := []string{
		"[format]\nindent_width = -1\n",
		"[format]\nmax_line_length = 0\n",
		"[format]\nmin_last_column_width = -5\n",
	}
	for _, content := range cases {
		dir := t.TempDir()
		path := writeManifest(t, dir, content)
		if _, err := Load(path); err == nil {
			t.Fatalf("expected range error for %q", content)
		}
	}
}

func TestPartialManifestKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[format]\nindent_width = 2\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	opt, err := m.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opt.IndentWidth != 2 {
		t.Fatalf("indent_width: want 2 got %d", opt.IndentWidth)
	}
	// Zero values defer to the engine defaults at render time.
	if opt.MaxLineLength != 0 || opt.MinLastColumnWidth != 0 {
		t.Fatalf("unset fields must stay zero: %+v", opt)
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "docs", "api")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find a manifest above %s", nested)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %s, want one in %s", path, root)
	}
}

func TestFindMissing(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if ok {
		t.Fatalf("unexpected manifest found")
	}
}
