// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tzdb

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// DefaultRoot is the usual location of the compiled zoneinfo tree.
const DefaultRoot = "/usr/share/zoneinfo"

// A Catalog lists the zone ids available in a zoneinfo directory tree.
//
// The package time API has no way to enumerate zones, so the catalog
// walks the tree itself: every file whose name starts with an upper-case
// letter and whose content starts with the TZif magic is a zone. The
// duplicate "posix" and "right" subtrees are skipped.
type Catalog struct {
	fs   afero.Fs
	root string
}

// NewCatalog returns a catalog of the tree at root in fs.
func NewCatalog(fs afero.Fs, root string) *Catalog {
	return &Catalog{fs: fs, root: root}
}

// SystemCatalog returns a read-only catalog of the tree at root on the
// operating system's filesystem.
func SystemCatalog(root string) *Catalog {
	return NewCatalog(afero.NewReadOnlyFs(afero.NewOsFs()), root)
}

// IDs returns the sorted zone ids in the catalog.
func (c *Catalog) IDs() ([]string, error) {
	var ids []string
	err := afero.Walk(c.fs, c.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(c.root, path)
		if err != nil || rel == "." {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			if rel == "posix" || rel == "right" {
				return filepath.SkipDir
			}
			return nil
		}
		if !isZoneName(rel) || !c.isTZif(path) {
			return nil
		}
		ids = append(ids, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing zones in %s: %w", c.root, err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Match returns the zone ids matching a doublestar glob such as
// "Europe/*" or "America/**".
func (c *Catalog) Match(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid zone pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	ids, err := c.IDs()
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, id := range ids {
		if ok, _ := doublestar.Match(pattern, id); ok {
			matched = append(matched, id)
		}
	}
	return matched, nil
}

func isZoneName(rel string) bool {
	for _, r := range rel {
		return unicode.IsUpper(r)
	}
	return false
}

// isTZif reports whether the file starts with the zoneinfo magic.
// Unreadable entries, such as links to directories, are not zones.
func (c *Catalog) isTZif(path string) bool {
	f, err := c.fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return false
	}
	return string(magic[:]) == "TZif"
}
