package assets

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeProfile creates {dir}/profiles/{name}.yaml.
func writeProfile(t *testing.T, dir, name, content string) {
	t.Helper()

	profiles := filepath.Join(dir, profilesDir)
	if err := os.MkdirAll(profiles, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", profiles, err)
	}
	if err := os.WriteFile(filepath.Join(profiles, name+profileExt), []byte(content), 0o644); err != nil {
		t.Fatalf("write profile %s: %v", name, err)
	}
}

func newLoader(t *testing.T, dir string) *FilesystemLoader {
	t.Helper()

	l, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader(%q): %v", dir, err)
	}
	return l
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
		t.Errorf("directory: unexpected error %v", err)
	}
	for name, dir := range map[string]string{
		"empty":   "",
		"missing": "/nonexistent/path/abc123xyz",
		"file":    file,
	} {
		if _, err := NewFilesystemLoader(dir); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("%s: error = %v, want ErrInvalidBasePath", name, err)
		}
	}
}

func TestNewFilesystemLoader_RelativePath(t *testing.T) {
	// Chdir affects the whole process.
	dir := t.TempDir()
	writeProfile(t, dir, "rel", "name: rel\n")
	t.Chdir(dir)

	l := newLoader(t, ".")
	if !filepath.IsAbs(l.basePath) {
		t.Errorf("basePath = %q, want absolute", l.basePath)
	}
	if _, err := l.LoadProfile("rel"); err != nil {
		t.Errorf("LoadProfile: %v", err)
	}
}

func TestFilesystemLoader_LoadProfile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "custom", "name: custom\n")
	l := newLoader(t, dir)

	got, err := l.LoadProfile("custom")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if string(got) != "name: custom\n" {
		t.Errorf("LoadProfile() = %q", got)
	}

	if _, err := l.LoadProfile("missing"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("missing: error = %v, want ErrProfileNotFound", err)
	}
	for _, name := range []string{"", "../x", "a/b", "a.yaml"} {
		if _, err := l.LoadProfile(name); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadProfile(%q) error = %v, want ErrInvalidAssetName", name, err)
		}
	}
}

func TestFilesystemLoader_ListProfiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "zeta", "name: zeta\n")
	writeProfile(t, dir, "alpha", "name: alpha\n")
	if err := os.WriteFile(filepath.Join(dir, profilesDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, profilesDir, "nested.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := newLoader(t, dir).ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if want := []string{"alpha", "zeta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListProfiles() = %v, want %v", got, want)
	}

	got, err = newLoader(t, t.TempDir()).ListProfiles()
	if err != nil || len(got) != 0 {
		t.Errorf("without a profiles dir: ListProfiles() = %v, %v; want none", got, err)
	}
}

func TestFilesystemLoader_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "real", "name: real\n")
	profiles := filepath.Join(dir, profilesDir)

	outside := filepath.Join(t.TempDir(), "secret.yaml")
	if err := os.WriteFile(outside, []byte("secret: content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(profiles, "evil.yaml")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink("real.yaml", filepath.Join(profiles, "alias.yaml")); err != nil {
		t.Fatal(err)
	}

	l := newLoader(t, dir)
	if _, err := l.LoadProfile("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("escaping link: error = %v, want ErrPathTraversal", err)
	}
	got, err := l.LoadProfile("alias")
	if err != nil {
		t.Fatalf("link inside the base path: %v", err)
	}
	if string(got) != "name: real\n" {
		t.Errorf("LoadProfile(alias) = %q", got)
	}
}
