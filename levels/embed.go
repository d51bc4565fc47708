// Package levels holds the declarative level content: YAML descriptors,
// tengo scripts and TMX layouts, embedded in the binary and overridable
// from disk.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo maps/*.tmx
var ContentFS embed.FS

// ErrUnknownLevel is returned for level names that resolve to no
// descriptor and for out of range catalog indices.
var ErrUnknownLevel = errors.New("unknown level")

// Source resolves content names. Files under Dir win over the embedded
// copies so content can be edited without rebuilding.
type Source struct {
	Dir string
	// Embedded replaces ContentFS when set.
	Embedded fs.FS
}

func (s Source) embedded() fs.FS {
	if s.Embedded != nil {
		return s.Embedded
	}
	return ContentFS
}

func (s Source) diskPath(clean string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(clean))
}

// Read returns the bytes of name.
func (s Source) Read(name string) ([]byte, error) {
	clean := cleanPath(name)
	if clean == "" {
		return nil, fmt.Errorf("read content: empty name: %w", fs.ErrNotExist)
	}
	if s.Dir != "" {
		if data, err := os.ReadFile(s.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	data, err := fs.ReadFile(s.embedded(), clean)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", clean, err)
	}
	return data, nil
}

// FS returns the file system name should be opened from, along with the
// cleaned name to open.
func (s Source) FS(name string) (fs.FS, string) {
	clean := cleanPath(name)
	if s.Dir != "" {
		if _, err := os.Stat(s.diskPath(clean)); err == nil {
			return os.DirFS(s.Dir), clean
		}
	}
	return s.embedded(), clean
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	return strings.TrimPrefix(s, "./")
}
