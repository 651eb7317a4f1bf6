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

// LockfileName sits next to owo.yml and pins git preludes to commits.
const LockfileName = "owo.lock"

// Lockfile models the owo.lock contents.
type Lockfile struct {
	Path      string
	Generated string
	Tool      string
	Preludes  []*LockedPrelude
}

// LockedPrelude records the commit a git prelude resolved to.
type LockedPrelude struct {
	Git    string
	Pin    string
	Path   string
	Commit string
}

// NewLockfile returns an empty lockfile stamped with tool.
func NewLockfile(tool string) *Lockfile {
	return &Lockfile{
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      strings.TrimSpace(tool),
		Preludes:  []*LockedPrelude{},
	}
}

// LoadLockfile parses owo.lock from disk.
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

// Lookup returns the locked entry for a git prelude, if any.
func (l *Lockfile) Lookup(spec *PreludeSpec) *LockedPrelude {
	if l == nil || !spec.IsGit() {
		return nil
	}
	pin := preludePin(spec)
	for _, entry := range l.Preludes {
		if entry.Git == spec.Git && entry.Path == spec.Path && entry.Pin == pin {
			return entry
		}
	}
	return nil
}

// Record stores or replaces the commit for a git prelude and reports
// whether the lockfile changed.
func (l *Lockfile) Record(spec *PreludeSpec, commit string) bool {
	if existing := l.Lookup(spec); existing != nil {
		if existing.Commit == commit {
			return false
		}
		existing.Commit = commit
		return true
	}
	l.Preludes = append(l.Preludes, &LockedPrelude{
		Git:    spec.Git,
		Pin:    preludePin(spec),
		Path:   spec.Path,
		Commit: commit,
	})
	return true
}

func preludePin(spec *PreludeSpec) string {
	switch {
	case spec.Rev != "":
		return "rev:" + spec.Rev
	case spec.Tag != "":
		return "tag:" + spec.Tag
	case spec.Branch != "":
		return "branch:" + spec.Branch
	}
	return ""
}

func (l *Lockfile) normalize() {
	l.Tool = strings.TrimSpace(l.Tool)
	sort.SliceStable(l.Preludes, func(i, j int) bool {
		a, b := l.Preludes[i], l.Preludes[j]
		if a.Git != b.Git {
			return a.Git < b.Git
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Pin < b.Pin
	})
}

func (l *Lockfile) toDisk() lockfileDisk {
	preludes := make([]lockfilePrelude, 0, len(l.Preludes))
	for _, p := range l.Preludes {
		preludes = append(preludes, lockfilePrelude{
			Git:    p.Git,
			Pin:    p.Pin,
			Path:   p.Path,
			Commit: p.Commit,
		})
	}
	return lockfileDisk{
		Generated: l.Generated,
		Tool:      l.Tool,
		Preludes:  preludes,
	}
}

type lockfileDisk struct {
	Generated string            `yaml:"generated"`
	Tool      string            `yaml:"tool"`
	Preludes  []lockfilePrelude `yaml:"preludes"`
}

type lockfilePrelude struct {
	Git    string `yaml:"git"`
	Pin    string `yaml:"pin"`
	Path   string `yaml:"path"`
	Commit string `yaml:"commit"`
}

func (d lockfileDisk) toLockfile() *Lockfile {
	lock := &Lockfile{
		Generated: strings.TrimSpace(d.Generated),
		Tool:      strings.TrimSpace(d.Tool),
		Preludes:  make([]*LockedPrelude, 0, len(d.Preludes)),
	}
	for _, p := range d.Preludes {
		lock.Preludes = append(lock.Preludes, &LockedPrelude{
			Git:    strings.TrimSpace(p.Git),
			Pin:    strings.TrimSpace(p.Pin),
			Path:   strings.TrimSpace(p.Path),
			Commit: strings.TrimSpace(p.Commit),
		})
	}
	lock.normalize()
	return lock
}
