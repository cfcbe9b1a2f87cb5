package classpath

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirEntryReadClass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pkg", "Add.class"), []byte{0xCA, 0xFE, 0xBA, 0xBE})

	e := NewDirEntry(dir)
	data, err := e.ReadClass("pkg/Add")
	if err != nil {
		t.Fatalf("ReadClass: %v", err)
	}
	if !bytes.Equal(data, []byte{0xCA, 0xFE, 0xBA, 0xBE}) {
		t.Errorf("got %x", data)
	}
}

func TestDirEntryReadClassMissing(t *testing.T) {
	e := NewDirEntry(t.TempDir())
	if _, err := e.ReadClass("NoSuchClass"); err == nil {
		t.Error("expected error for missing class")
	}
}

func buildJar(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestZipEntryReadClassFromJar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.jar")
	buildJar(t, path, map[string][]byte{
		"com/example/Foo.class": {1, 2, 3, 4},
	})

	e, err := NewJarEntry(path)
	if err != nil {
		t.Fatalf("NewJarEntry: %v", err)
	}
	defer e.Close()

	data, err := e.ReadClass("com/example/Foo")
	if err != nil {
		t.Fatalf("ReadClass: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3, 4}) {
		t.Errorf("got %x", data)
	}
}

func TestZipEntryReadClassFromJmod(t *testing.T) {
	path := filepath.Join(t.TempDir(), "java.base.jmod")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("JM\x01\x00")); err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("classes/java/lang/Object.class")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte{9, 9, 9}); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	e, err := NewJmodEntry(path)
	if err != nil {
		t.Fatalf("NewJmodEntry: %v", err)
	}
	defer e.Close()

	data, err := e.ReadClass("java/lang/Object")
	if err != nil {
		t.Fatalf("ReadClass: %v", err)
	}
	if !bytes.Equal(data, []byte{9, 9, 9}) {
		t.Errorf("got %x", data)
	}
}

func TestCompositeEntryFallsThrough(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writeFile(t, filepath.Join(dir2, "Only.class"), []byte{7})

	c := NewCompositeEntry(NewDirEntry(dir1), NewDirEntry(dir2))
	data, err := c.ReadClass("Only")
	if err != nil {
		t.Fatalf("ReadClass: %v", err)
	}
	if !bytes.Equal(data, []byte{7}) {
		t.Errorf("got %x", data)
	}
}

func TestCompositeEntryNotFound(t *testing.T) {
	c := NewCompositeEntry(NewDirEntry(t.TempDir()))
	if _, err := c.ReadClass("Missing"); err == nil {
		t.Error("expected not-found error")
	}
}

func TestParseClassPathSplitsEntries(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, "a.jar")
	buildJar(t, jarPath, map[string][]byte{"X.class": {1}})

	spec := dir + string(os.PathListSeparator) + jarPath
	c, err := ParseClassPath(spec)
	if err != nil {
		t.Fatalf("ParseClassPath: %v", err)
	}
	if len(c.entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(c.entries))
	}
}
