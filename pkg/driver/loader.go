package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fasihh/owo-lang/pkg/interpreter"
	"github.com/fasihh/owo-lang/pkg/parser"
)

// Version is stamped into lockfiles and printed by the CLI.
const Version = "0.1.0"

// Source is one script ready for execution.
type Source struct {
	Path string
	Text string
}

// ReadSource loads a script from disk.
func ReadSource(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return Source{}, err
	}
	return Source{Path: abs, Text: string(data)}, nil
}

// Loader resolves the preludes a manifest names, fetching git-hosted ones
// through a GitFetcher and pinning them in owo.lock.
type Loader struct {
	manifest    *Manifest
	fetcher     *GitFetcher
	lock        *Lockfile
	lockPath    string
	lockChanged bool
}

// NewLoader prepares prelude loading for m. home is the cache root used for
// git checkouts. A missing owo.lock is not an error.
func NewLoader(m *Manifest, home string) (*Loader, error) {
	l := &Loader{manifest: m, fetcher: NewGitFetcher(home)}
	if m == nil {
		return l, nil
	}
	l.lockPath = filepath.Join(m.Dir(), LockfileName)
	lock, err := LoadLockfile(l.lockPath)
	switch {
	case err == nil:
		l.lock = lock
	case errors.Is(err, os.ErrNotExist):
		l.lock = NewLockfile("owo " + Version)
	default:
		return nil, err
	}
	return l, nil
}

// Preludes reads every prelude in manifest order.
func (l *Loader) Preludes() ([]Source, error) {
	if l.manifest == nil {
		return nil, nil
	}
	sources := make([]Source, 0, len(l.manifest.Preludes))
	for _, spec := range l.manifest.Preludes {
		path, err := l.resolve(spec)
		if err != nil {
			return nil, fmt.Errorf("prelude %s: %w", spec.Describe(), err)
		}
		src, err := ReadSource(path)
		if err != nil {
			return nil, fmt.Errorf("prelude %s: %w", spec.Describe(), err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func (l *Loader) resolve(spec *PreludeSpec) (string, error) {
	if !spec.IsGit() {
		return filepath.Join(l.manifest.Dir(), spec.Path), nil
	}
	locked := ""
	if entry := l.lock.Lookup(spec); entry != nil {
		locked = entry.Commit
	}
	dir, commit, err := l.fetcher.Checkout(spec, locked)
	if err != nil {
		return "", err
	}
	if l.lock.Record(spec, commit) {
		l.lockChanged = true
	}
	return filepath.Join(dir, spec.Path), nil
}

// SaveLock writes owo.lock when a git prelude resolved to a new commit.
func (l *Loader) SaveLock() error {
	if !l.lockChanged {
		return nil
	}
	if err := WriteLockfile(l.lock, l.lockPath); err != nil {
		return err
	}
	l.lockChanged = false
	return nil
}

// Session runs sources against one interpreter and reports every failure
// through a Reporter before returning it.
type Session struct {
	Interp   *interpreter.Interpreter
	Reporter Reporter
}

func NewSession(interp *interpreter.Interpreter, rep Reporter) *Session {
	return &Session{Interp: interp, Reporter: rep}
}

// Run scans, parses and executes src. Syntax errors come back as
// *DiagnosticsError and nothing is executed; runtime failures come back as
// *runtime.RuntimeError.
func (s *Session) Run(src Source) error {
	stmts, diags := parser.ParseSource(src.Text)
	if len(diags) > 0 {
		ReportDiagnostics(s.Reporter, diags)
		return &DiagnosticsError{Path: src.Path, Diagnostics: diags}
	}
	if err := s.Interp.Interpret(stmts); err != nil {
		ReportRuntime(s.Reporter, err)
		return err
	}
	return nil
}

// RunAll runs sources in order, stopping at the first failure.
func (s *Session) RunAll(sources []Source) error {
	for _, src := range sources {
		if err := s.Run(src); err != nil {
			return err
		}
	}
	return nil
}
