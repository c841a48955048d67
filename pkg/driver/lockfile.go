package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LockfileName sits next to lang.yml.
const LockfileName = "lang.lock"

// Lockfile models the lang.lock contents.
type Lockfile struct {
	Path      string
	Root      string
	Generated string
	Tool      string
	Packages  []*LockedPackage
}

// LockedPackage pins one resolved dependency. Source is `git+URL` or
// `path:DIR` (relative to the manifest).
type LockedPackage struct {
	Name     string
	Version  string
	Source   string
	Checksum string
	Files    []string
}

const (
	gitSourcePrefix  = "git+"
	pathSourcePrefix = "path:"
)

// GitSource formats the Source of a git dependency.
func GitSource(url string) string { return gitSourcePrefix + strings.TrimSpace(url) }

// PathSource formats the Source of a path dependency.
func PathSource(dir string) string { return pathSourcePrefix + filepath.ToSlash(strings.TrimSpace(dir)) }

// GitURL returns the repository of a git package.
func (p *LockedPackage) GitURL() (string, bool) {
	return strings.CutPrefix(p.Source, gitSourcePrefix)
}

// LocalPath returns the directory of a path package.
func (p *LockedPackage) LocalPath() (string, bool) {
	dir, ok := strings.CutPrefix(p.Source, pathSourcePrefix)
	return filepath.FromSlash(dir), ok
}

// NewLockfile constructs a lockfile with metadata seeded for the provided root.
func NewLockfile(root, tool string) *Lockfile {
	return &Lockfile{
		Root:      sanitizeSegment(root),
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      strings.TrimSpace(tool),
		Packages:  []*LockedPackage{},
	}
}

// Find returns the pinned package called name.
func (l *Lockfile) Find(name string) *LockedPackage {
	if l == nil {
		return nil
	}
	name = sanitizeSegment(name)
	for _, pkg := range l.Packages {
		if pkg != nil && pkg.Name == name {
			return pkg
		}
	}
	return nil
}

// Upsert replaces or adds pkg and reports whether the lockfile changed.
func (l *Lockfile) Upsert(pkg *LockedPackage) bool {
	existing := l.Find(pkg.Name)
	if existing == nil {
		l.Packages = append(l.Packages, pkg)
		l.normalize()
		return true
	}
	if existing.Version == pkg.Version && existing.Source == pkg.Source &&
		existing.Checksum == pkg.Checksum && strings.Join(existing.Files, "\n") == strings.Join(pkg.Files, "\n") {
		return false
	}
	*existing = *pkg
	l.normalize()
	return true
}

// Prune drops packages whose names are not in keep and reports whether any were removed.
func (l *Lockfile) Prune(keep []string) bool {
	wanted := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		wanted[sanitizeSegment(name)] = struct{}{}
	}
	out := l.Packages[:0]
	for _, pkg := range l.Packages {
		if _, ok := wanted[pkg.Name]; ok {
			out = append(out, pkg)
		}
	}
	changed := len(out) != len(l.Packages)
	l.Packages = out
	return changed
}

// LoadLockfile parses lang.lock from disk.
func LoadLockfile(path string) (*Lockfile, error) {
	if path == "" {
		return nil, fmt.Errorf("lockfile: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw lockfileDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}

	lock := raw.toLockfile()
	lock.Path = abs
	return lock, nil
}

// WriteLockfile serialises the lockfile back to disk, refreshing metadata.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	if path == "" {
		if lock.Path == "" {
			return fmt.Errorf("lockfile: missing path")
		}
		path = lock.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}

	if lock.Generated == "" {
		lock.Generated = time.Now().UTC().Format(time.RFC3339)
	}
	lock.Path = abs
	lock.normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lock.toDisk()); err != nil {
		return fmt.Errorf("lockfile: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lockfile: encoder close: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", abs, err)
	}
	return nil
}

func (l *Lockfile) normalize() {
	if l == nil {
		return
	}
	l.Root = sanitizeSegment(l.Root)
	l.Tool = strings.TrimSpace(l.Tool)
	sort.SliceStable(l.Packages, func(i, j int) bool {
		return l.Packages[i].Name < l.Packages[j].Name
	})
	for _, pkg := range l.Packages {
		if pkg == nil {
			continue
		}
		pkg.Name = sanitizeSegment(pkg.Name)
		pkg.Version = strings.TrimSpace(pkg.Version)
		pkg.Source = strings.TrimSpace(pkg.Source)
		pkg.Checksum = strings.TrimSpace(pkg.Checksum)
	}
}

func (l *Lockfile) toDisk() lockfileDisk {
	pkgs := make([]lockfilePackage, 0, len(l.Packages))
	for _, pkg := range l.Packages {
		if pkg == nil {
			continue
		}
		pkgs = append(pkgs, lockfilePackage{
			Name:     pkg.Name,
			Version:  pkg.Version,
			Source:   pkg.Source,
			Checksum: pkg.Checksum,
			Files:    pkg.Files,
		})
	}
	return lockfileDisk{
		Root:      l.Root,
		Generated: l.Generated,
		Tool:      l.Tool,
		Packages:  pkgs,
	}
}

type lockfileDisk struct {
	Root      string            `yaml:"root"`
	Generated string            `yaml:"generated"`
	Tool      string            `yaml:"tool"`
	Packages  []lockfilePackage `yaml:"packages"`
}

type lockfilePackage struct {
	Name     string   `yaml:"name"`
	Version  string   `yaml:"version"`
	Source   string   `yaml:"source"`
	Checksum string   `yaml:"checksum"`
	Files    []string `yaml:"files"`
}

func (d lockfileDisk) toLockfile() *Lockfile {
	lock := &Lockfile{
		Root:      d.Root,
		Generated: strings.TrimSpace(d.Generated),
		Tool:      d.Tool,
		Packages:  make([]*LockedPackage, 0, len(d.Packages)),
	}
	for _, pkg := range d.Packages {
		lock.Packages = append(lock.Packages, &LockedPackage{
			Name:     pkg.Name,
			Version:  pkg.Version,
			Source:   pkg.Source,
			Checksum: pkg.Checksum,
			Files:    append([]string(nil), pkg.Files...),
		})
	}
	lock.normalize()
	return lock
}
