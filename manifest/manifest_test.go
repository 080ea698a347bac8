package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/projecteru2/cachebust/types"
)

// --- Relativize ---

func TestRelativize_UnderAssetRoot(t *testing.T) {
	got := Relativize("/site/assets/css/app.css", "/site/assets")
	if got != "css/app.css" {
		t.Errorf("expected css/app.css, got %q", got)
	}
	got = Relativize("/site/assets/css/app.ABC123.cached.css", "/site/assets/")
	if got != "css/app.ABC123.cached.css" {
		t.Errorf("expected css/app.ABC123.cached.css, got %q", got)
	}
}

func TestRelativize_OutsideAssetRoot(t *testing.T) {
	got := Relativize("/site/other/app.css", "/site/assets")
	if got != "/site/other/app.css" {
		t.Errorf("expected absolute path, got %q", got)
	}
	// sibling sharing a name prefix is not "under"
	got = Relativize("/site/assets-old/app.css", "/site/assets")
	if got != "/site/assets-old/app.css" {
		t.Errorf("expected absolute path, got %q", got)
	}
}

func TestRelativize_RootItself(t *testing.T) {
	if got := Relativize("/site/assets", "/site/assets"); got != "/site/assets" {
		t.Errorf("expected root unchanged, got %q", got)
	}
}

func TestRelativize_NoAssetRootMakesAbsolute(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	got := Relativize(filepath.Join("assets", "app.js"), "")
	want := filepath.ToSlash(filepath.Join(wd, "assets", "app.js"))
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := Relativize("/abs/app.js", ""); got != "/abs/app.js" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestRelativize_RelativeInputsAgainstRelativeRoot(t *testing.T) {
	got := Relativize(filepath.Join("public", "js", "app.js"), "public")
	if got != "js/app.js" {
		t.Errorf("expected js/app.js, got %q", got)
	}
	got = Relativize("./public/../public/js/app.js", "./public")
	if got != "js/app.js" {
		t.Errorf("expected js/app.js for unclean input, got %q", got)
	}
}

// --- Manifest ---

func TestManifest_AddNormalizesBothSides(t *testing.T) {
	m := New("/site/assets")
	m.Add("/site/assets/css/app.css", "/site/assets/css/app.ABC123.cached.css")

	want := map[string]string{"css/app.css": "css/app.ABC123.cached.css"}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest_LastWriteWins(t *testing.T) {
	m := New("/a")
	m.Add("/a/x.js", "/a/x.1.cached.js")
	m.Add("/a/x.js", "/a/x.2.cached.js")
	if m.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", m.Len())
	}
	if v := m.Entries()["x.js"]; v != "x.2.cached.js" {
		t.Errorf("expected last write, got %q", v)
	}
}

func TestManifest_WriteAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "manifest.json")

	m := New("/site")
	m.Add("/site/b.js", "/site/b.f0.cached.js")
	m.Add("/site/a.css", "/site/a.0f.cached.css")
	if err := m.Write(path, "cached"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(m.Entries(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest_WriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte(`{"stale.js":"stale.0.cached.js","x":"y"}`), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := New("").Write(path, "cached"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty manifest, got %v", got)
	}
}

func TestManifest_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := New("").Write(filepath.Join(blocker, "manifest.json"), "cached")
	if !errors.Is(err, types.ErrManifestWrite) {
		t.Errorf("expected ErrManifestWrite, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing manifest")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("[1,2]"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for non-object manifest")
	}
}
