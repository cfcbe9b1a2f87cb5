// Package classpath implements the classpath entry collaborator spec.md
// names but leaves external: directory trees, jar/jmod archives, and
// wildcard-expanded composites that answer ReadClass(internal_name) with
// raw .class bytes for a ClassLoader to decode.
package classpath

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mmap "github.com/edsrzf/mmap-go"
)

// Entry answers ReadClass for one classpath element (a directory, a .jar,
// a .jmod, or a composite of several).
type Entry interface {
	ReadClass(name string) ([]byte, error)
}

// DirEntry reads "<root>/<name>.class" from a plain directory tree,
// memory-mapping the file instead of reading it into a heap buffer,
// grounded on saferwall-pe's File.New (file.go) use of mmap.Map.
type DirEntry struct {
	Root string
}

func NewDirEntry(root string) *DirEntry {
	return &DirEntry{Root: root}
}

func (e *DirEntry) ReadClass(name string) ([]byte, error) {
	path := filepath.Join(e.Root, filepath.FromSlash(name)+".class")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("classpath: %w", err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("classpath: mmap %s: %w", path, err)
	}
	defer m.Unmap()

	out := make([]byte, len(m))
	copy(out, m)
	return out, nil
}

// ZipEntry reads class bytes out of a .jar or .jmod archive. jmod files
// carry a 4-byte "JM\x01\x00" header before the zip payload begins; jar
// files are plain zips rooted at the archive top.
type ZipEntry struct {
	path       string
	namePrefix string // "" for jar, "classes/" for jmod
	data       mmap.MMap
	reader     *zip.Reader
}

func NewJarEntry(path string) (*ZipEntry, error) {
	return newZipEntry(path, "")
}

func NewJmodEntry(path string) (*ZipEntry, error) {
	return newZipEntry(path, "classes/")
}

func newZipEntry(path, prefix string) (*ZipEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("classpath: %w", err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("classpath: mmap %s: %w", path, err)
	}

	zipData := []byte(m)
	if prefix == "classes/" {
		if len(zipData) < 4 {
			m.Unmap()
			return nil, fmt.Errorf("classpath: %s too short to be a jmod", path)
		}
		zipData = zipData[4:] // skip "JM\x01\x00"
	}

	r, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		m.Unmap()
		return nil, fmt.Errorf("classpath: opening zip in %s: %w", path, err)
	}

	return &ZipEntry{path: path, namePrefix: prefix, data: m, reader: r}, nil
}

func (e *ZipEntry) ReadClass(name string) ([]byte, error) {
	target := e.namePrefix + name + ".class"
	for _, file := range e.reader.File {
		if file.Name != target {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("classpath: opening %s in %s: %w", target, e.path, err)
		}
		defer rc.Close()
		buf := make([]byte, file.UncompressedSize64)
		if _, err := readFull(rc, buf); err != nil {
			return nil, fmt.Errorf("classpath: reading %s in %s: %w", target, e.path, err)
		}
		return buf, nil
	}
	return nil, fmt.Errorf("classpath: class %s not found in %s", name, e.path)
}

func (e *ZipEntry) Close() error {
	return e.data.Unmap()
}

func readFull(r interface{ Read([]byte) (int, error) }, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if total == len(buf) {
				return total, nil
			}
			return total, err
		}
	}
	return total, nil
}

// WildcardEntry expands a directory of .jar files (a "lib/ext/*"-style
// classpath element) into a CompositeEntry over each jar found, matching
// the shell-glob convention the JVM launcher uses for a trailing "/*".
type WildcardEntry struct {
	composite *CompositeEntry
}

func NewWildcardEntry(dir string) (*WildcardEntry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.jar"))
	if err != nil {
		return nil, fmt.Errorf("classpath: globbing %s: %w", dir, err)
	}
	entries := make([]Entry, 0, len(matches))
	for _, jar := range matches {
		ze, err := NewJarEntry(jar)
		if err != nil {
			continue
		}
		entries = append(entries, ze)
	}
	return &WildcardEntry{composite: NewCompositeEntry(entries...)}, nil
}

func (w *WildcardEntry) ReadClass(name string) ([]byte, error) {
	return w.composite.ReadClass(name)
}

// CompositeEntry tries each child Entry in order, the way the platform
// classloader walks a ';'/':'-joined classpath string.
type CompositeEntry struct {
	entries []Entry
}

func NewCompositeEntry(entries ...Entry) *CompositeEntry {
	return &CompositeEntry{entries: entries}
}

func (c *CompositeEntry) ReadClass(name string) ([]byte, error) {
	var lastErr error
	for _, e := range c.entries {
		data, err := e.ReadClass(name)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("classpath: empty composite, class %s not found", name)
	}
	return nil, lastErr
}

// ParseClassPath splits a platform-list-separator-joined classpath
// specification into entries: directories, .jar/.jmod files, and
// trailing "/*" wildcard directories.
func ParseClassPath(spec string) (*CompositeEntry, error) {
	if spec == "" {
		return NewCompositeEntry(), nil
	}
	parts := strings.Split(spec, string(os.PathListSeparator))
	entries := make([]Entry, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		switch {
		case strings.HasSuffix(p, string(filepath.Separator)+"*"):
			w, err := NewWildcardEntry(strings.TrimSuffix(p, string(filepath.Separator)+"*"))
			if err != nil {
				return nil, err
			}
			entries = append(entries, w)
		case strings.HasSuffix(p, ".jar"):
			ze, err := NewJarEntry(p)
			if err != nil {
				return nil, err
			}
			entries = append(entries, ze)
		case strings.HasSuffix(p, ".jmod"):
			ze, err := NewJmodEntry(p)
			if err != nil {
				return nil, err
			}
			entries = append(entries, ze)
		default:
			entries = append(entries, NewDirEntry(p))
		}
	}
	return NewCompositeEntry(entries...), nil
}
