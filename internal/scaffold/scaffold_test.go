package scaffold

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fpbx-tools/modgen/internal/logging"
	"github.com/fpbx-tools/modgen/internal/manifest"
	"github.com/fpbx-tools/modgen/internal/params"
	"github.com/fpbx-tools/modgen/internal/planner"
	"github.com/fpbx-tools/modgen/internal/platform"
	"github.com/fpbx-tools/modgen/internal/resources"
)

func newParams(t *testing.T, name, license string) *params.ParameterSet {
	t.Helper()
	p, err := params.New(params.Answers{
		Name:        name,
		Version:     "13.0.1",
		Description: "Generated Module",
		License:     license,
		Category:    "Connectivity",
	})
	if err != nil {
		t.Fatalf("params.New: %v", err)
	}
	return p
}

func TestRunHelloworld(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "helloworld")
	p := newParams(t, "helloworld", "AGPLv3")

	result, err := Run(p, outDir, Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	expectedFiles := []string{
		"Helloworld.class.php",
		"install.php",
		"uninstall.php",
		"module.xml",
		"page.helloworld.php",
		"assets/css/helloworld.css",
		"assets/js/helloworld.js",
		"views/main.php",
		"LICENSE",
	}
	assertFiles(t, result, expectedFiles)
	for _, f := range expectedFiles {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(f))); err != nil {
			t.Errorf("expected %s to exist: %v", f, err)
		}
	}

	page := readGenerated(t, outDir, "page.helloworld.php")
	assertNotContains(t, page, "##RAWNAME##")
	assertNotContains(t, page, "##CLASSNAME##")
	assertContains(t, page, "\\FreePBX::Helloworld()")

	class := readGenerated(t, outDir, "Helloworld.class.php")
	assertContains(t, class, "class Helloworld implements \\BMO")
	assertNotContains(t, class, "##")

	view := readGenerated(t, outDir, "views/main.php")
	if view != "IT WORKS!!!! Generated for Helloworld" {
		t.Errorf("view = %q", view)
	}

	for _, empty := range []string{"install.php", "uninstall.php", "assets/css/helloworld.css", "assets/js/helloworld.js"} {
		if content := readGenerated(t, outDir, empty); content != "" {
			t.Errorf("%s should be empty, got %q", empty, content)
		}
	}

	m, err := manifest.ParseFile(filepath.Join(outDir, "module.xml"))
	if err != nil {
		t.Fatalf("parsing generated manifest: %v", err)
	}
	if m.Changelog != "*13.0.1* Initial release" {
		t.Errorf("Changelog = %q", m.Changelog)
	}
	if len(m.MenuItems) != 1 || m.MenuItems[0].Key != "helloworld" || m.MenuItems[0].Label != "Helloworld" {
		t.Errorf("MenuItems = %+v", m.MenuItems)
	}
	if m.License != "AGPLv3" || m.Category != "Connectivity" {
		t.Errorf("license/category = %q/%q", m.License, m.Category)
	}
}

func TestRunCopiesLicense(t *testing.T) {
	for _, lic := range []string{"GPLv2", "GPLv3", "AGPLv3", "MIT"} {
		t.Run(lic, func(t *testing.T) {
			outDir := filepath.Join(t.TempDir(), "demo")
			if _, err := Run(newParams(t, "demo", lic), outDir, Options{}); err != nil {
				t.Fatalf("Run() error: %v", err)
			}

			got, err := os.ReadFile(filepath.Join(outDir, "LICENSE"))
			if err != nil {
				t.Fatal(err)
			}
			want, err := resources.License(lic)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("LICENSE differs from bundled %s text", lic)
			}
		})
	}
}

func TestRunIsIdempotent(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "helloworld")
	p := newParams(t, "helloworld", "MIT")

	if _, err := Run(p, outDir, Options{}); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	first := snapshot(t, outDir)

	// Scribble over a few files so the second run has something to undo.
	if err := os.WriteFile(filepath.Join(outDir, "install.php"), []byte("<?php // edited"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "module.xml"), bytes.Repeat([]byte("x"), 4096), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(p, outDir, Options{}); err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	second := snapshot(t, outDir)

	if len(first) != len(second) {
		t.Fatalf("file count changed: %d -> %d", len(first), len(second))
	}
	for path, content := range first {
		if second[path] != content {
			t.Errorf("%s differs after second run", path)
		}
	}
}

func TestRunOptions(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "demo")
	var logs bytes.Buffer

	_, err := Run(newParams(t, "demo", "MIT"), outDir, Options{
		Publisher: "Acme Telecom",
		Supported: "16.0",
		Logger:    logging.New(&logs, "info"),
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	xml := readGenerated(t, outDir, "module.xml")
	assertContains(t, xml, "<publisher>Acme Telecom</publisher>")
	assertContains(t, xml, "<supported>16.0</supported>")

	out := logs.String()
	assertContains(t, out, "Generating Directories for your module")
	assertContains(t, out, "Generating module.xml")
	assertContains(t, out, "module=demo")
}

func TestRunWarnsOnNonSemverVersion(t *testing.T) {
	p, err := params.New(params.Answers{
		Name:     "demo",
		Version:  "beta",
		License:  "MIT",
		Category: "Admin",
	})
	if err != nil {
		t.Fatal(err)
	}

	result, err := Run(p, filepath.Join(t.TempDir(), "demo"), Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a version warning")
	}
}

func TestRunInvalidName(t *testing.T) {
	parent := t.TempDir()
	outDir := filepath.Join(parent, "out")

	_, err := Run(&params.ParameterSet{}, outDir, Options{})
	if !errors.Is(err, params.ErrInvalidName) {
		t.Errorf("error = %v, want params.ErrInvalidName", err)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Errorf("output directory was created: %v", err)
	}
	if entries, _ := os.ReadDir(parent); len(entries) != 0 {
		t.Errorf("parent directory gained %d entries", len(entries))
	}
}

func TestResolveTargetsMissingRole(t *testing.T) {
	plan, err := planner.New(newParams(t, "demo", "MIT"), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := resolveTargets(plan); err != nil {
		t.Fatalf("resolveTargets() error: %v", err)
	}

	var kept []planner.Entry
	for _, e := range plan.Entries {
		if e.Role != planner.RoleLicense {
			kept = append(kept, e)
		}
	}
	plan.Entries = kept
	_, err = resolveTargets(plan)
	if err == nil || !strings.Contains(err.Error(), string(planner.RoleLicense)) {
		t.Errorf("error = %v, want missing %s entry", err, planner.RoleLicense)
	}
}

func TestRunDirectoryCreateFailed(t *testing.T) {
	tmp := t.TempDir()
	outDir := filepath.Join(tmp, "demo")
	if err := os.WriteFile(outDir, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Run(newParams(t, "demo", "MIT"), outDir, Options{})
	if !errors.Is(err, platform.ErrDirectoryCreateFailed) {
		t.Errorf("error = %v, want platform.ErrDirectoryCreateFailed", err)
	}
}

func TestRunWriteFailedLeavesPartialOutput(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "demo")
	// A directory where module.xml should go makes the touch step fail.
	if err := os.MkdirAll(filepath.Join(outDir, "module.xml"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := Run(newParams(t, "demo", "MIT"), outDir, Options{})
	if !errors.Is(err, platform.ErrWriteFailed) {
		t.Fatalf("error = %v, want platform.ErrWriteFailed", err)
	}

	// No rollback: directories and earlier files remain.
	for _, p := range []string{"views", "assets/css", "assets/js", "Demo.class.php"} {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(p))); err != nil {
			t.Errorf("expected %s to remain after failure: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "LICENSE")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LICENSE should not be written after an earlier failure, stat err = %v", err)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			files[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return files
}

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(filename)))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}
