// Package resolver maps `mod name;` declarations to the files that hold the
// module body, following the Rust file layout conventions.
package resolver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/NewTec-GmbH/lobster-rust/internal/namespace"
)

const (
	// Extension of Rust source files.
	Extension = ".rs"
	// ModFile marks a directory module.
	ModFile = "mod.rs"

	// DefaultCacheSize is the number of directory listings kept per resolver.
	DefaultCacheSize = 64
)

// rootStems are file stems whose submodules live next to them instead of in
// a directory named after the file.
var rootStems = map[string]bool{
	"main": true,
	"lib":  true,
	"mod":  true,
}

// IsRootStem reports whether stem is a crate root or directory module stem.
func IsRootStem(stem string) bool {
	return rootStems[stem]
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Resolution is the outcome of resolving a module declaration.
type Resolution struct {
	// Path of the file holding the module body.
	Path string
	// Increment is the namespace the module adds relative to the declaring file.
	Increment namespace.Context
}

type entry struct {
	name string
	dir  bool
}

// Resolver resolves module declarations. Directory listings are cached for
// the lifetime of the resolver.
type Resolver struct {
	listings *lru.Cache[string, []entry]
}

// New creates a resolver keeping up to cacheSize directory listings.
func New(cacheSize int) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	listings, err := lru.New[string, []entry](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing cache: %w", err)
	}
	return &Resolver{listings: listings}, nil
}

// Resolve finds the file for module target declared in currentFile.
//
// In main.rs, lib.rs and mod.rs the module is looked up next to the file:
// first target.rs, then target/mod.rs. Any other file foo.rs looks in the
// directory foo/ the same way and prefixes the increment with foo.
// I/O errors make the resolution fail.
func (r *Resolver) Resolve(currentFile, target string) (Resolution, bool) {
	dir := filepath.Dir(currentFile)
	stem := Stem(currentFile)

	if IsRootStem(stem) {
		return r.resolveIn(dir, target)
	}

	entries, err := r.list(dir)
	if err != nil {
		return Resolution{}, false
	}
	if !hasEntry(entries, stem, true) {
		return Resolution{}, false
	}
	res, ok := r.resolveIn(filepath.Join(dir, stem), target)
	if !ok {
		return Resolution{}, false
	}
	res.Increment = namespace.FromSegments(stem).Combine(res.Increment)
	return res, true
}

// resolveIn applies the file strategy, then the directory strategy, in dir.
func (r *Resolver) resolveIn(dir, target string) (Resolution, bool) {
	entries, err := r.list(dir)
	if err != nil {
		return Resolution{}, false
	}

	if hasEntry(entries, target+Extension, false) {
		return Resolution{
			Path:      filepath.Join(dir, target+Extension),
			Increment: namespace.Empty,
		}, true
	}

	if hasEntry(entries, target, true) {
		sub, err := r.list(filepath.Join(dir, target))
		if err == nil && hasEntry(sub, ModFile, false) {
			return Resolution{
				Path:      filepath.Join(dir, target, ModFile),
				Increment: namespace.FromSegments(target),
			}, true
		}
	}

	return Resolution{}, false
}

// ResolveOverride resolves a #[path] attribute value relative to the
// directory of the declaring file. The increment is always Empty: the
// namespace segment the module would normally add is not reconstructed.
func ResolveOverride(currentFile, override string) Resolution {
	path := override
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(currentFile), path)
	}
	return Resolution{Path: path, Increment: namespace.Empty}
}

func (r *Resolver) list(dir string) ([]entry, error) {
	if cached, ok := r.listings.Get(dir); ok {
		return cached, nil
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, entry{name: de.Name(), dir: isDir(dir, de)})
	}
	r.listings.Add(dir, entries)
	return entries, nil
}

// isDir follows symlinks the way a stat of the path would.
func isDir(dir string, de fs.DirEntry) bool {
	if de.Type()&fs.ModeSymlink == 0 {
		return de.IsDir()
	}
	info, err := os.Stat(filepath.Join(dir, de.Name()))
	return err == nil && info.IsDir()
}

func hasEntry(entries []entry, name string, dir bool) bool {
	for _, e := range entries {
		if e.name == name && e.dir == dir {
			return true
		}
	}
	return false
}
