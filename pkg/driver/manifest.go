// Package driver connects owo sources on disk to the interpreter: project
// manifests, prelude loading (local and git-hosted) and error reporting.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project file searched for by FindManifest.
const ManifestFileName = "owo.yml"

// DefaultPrompt is used by the REPL when the manifest does not set one.
const DefaultPrompt = ">>> "

// ErrManifestNotFound is wrapped by FindManifest when no owo.yml exists.
var ErrManifestNotFound = errors.New("manifest not found")

// Manifest represents the parsed contents of owo.yml.
type Manifest struct {
	Path     string
	Name     string
	Main     string
	Repl     ReplConfig
	Preludes []*PreludeSpec
}

// ReplConfig holds interactive-session settings.
type ReplConfig struct {
	Prompt  string
	History string
}

// PreludeSpec names a script executed into the global scope before the
// main program or REPL. Git preludes pin exactly one of Rev, Tag or Branch;
// Path is then relative to the checkout root.
type PreludeSpec struct {
	Path   string
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// IsGit reports whether the prelude is fetched from a repository.
func (p *PreludeSpec) IsGit() bool {
	return p != nil && p.Git != ""
}

// Describe renders the prelude for messages.
func (p *PreludeSpec) Describe() string {
	if !p.IsGit() {
		return p.Path
	}
	pin := p.Rev
	if pin == "" {
		pin = p.Tag
	}
	if pin == "" {
		pin = p.Branch
	}
	return fmt.Sprintf("%s@%s:%s", p.Git, pin, p.Path)
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses owo.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Main != "" && filepath.IsAbs(m.Main) {
		errs.Issues = append(errs.Issues, "main must be relative to the manifest")
	}
	for i, prelude := range m.Preludes {
		for _, issue := range prelude.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("preludes[%d]: %s", i, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (p *PreludeSpec) validate() []string {
	var errs []string
	if p.Path == "" {
		errs = append(errs, "path must be provided")
	}
	pins := 0
	for _, pin := range []string{p.Rev, p.Tag, p.Branch} {
		if pin != "" {
			pins++
		}
	}
	if p.Git == "" {
		if pins > 0 {
			errs = append(errs, "rev, tag and branch apply only to git preludes")
		}
		return errs
	}
	if pins == 0 {
		errs = append(errs, "git preludes require rev, tag, or branch")
	} else if pins > 1 {
		errs = append(errs, "git preludes accept only one of rev, tag, or branch")
	}
	if filepath.IsAbs(p.Path) {
		errs = append(errs, "git prelude path must be relative to the repository")
	}
	return errs
}

// Dir is the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// MainPath resolves the entry script, or returns "" when none is set.
func (m *Manifest) MainPath() string {
	if m == nil || m.Main == "" {
		return ""
	}
	return filepath.Join(m.Dir(), m.Main)
}

// Prompt returns the REPL prompt.
func (m *Manifest) Prompt() string {
	if m == nil || m.Repl.Prompt == "" {
		return DefaultPrompt
	}
	return m.Repl.Prompt
}

// HistoryPath resolves the REPL history file under home unless the manifest
// names an absolute path.
func (m *Manifest) HistoryPath(home string) string {
	name := ""
	if m != nil {
		name = m.Repl.History
	}
	if name == "" {
		name = "history"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(home, name)
}

// FindManifest walks from start towards the filesystem root looking for
// owo.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestFileName, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}

// ResolveHome returns $OWO_HOME, defaulting to ~/.owo.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("OWO_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve OWO_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".owo"), nil
}

type manifestFile struct {
	Name     string        `yaml:"name"`
	Main     string        `yaml:"main"`
	Repl     replYAML      `yaml:"repl"`
	Preludes []preludeYAML `yaml:"preludes"`
}

type replYAML struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
}

type preludeYAML struct {
	Path   string `yaml:"path"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

// UnmarshalYAML accepts either a bare path string or a mapping.
func (p *preludeYAML) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&p.Path)
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: prelude must be a path or a mapping")
	}
	type plain preludeYAML
	var out plain
	if err := value.Decode(&out); err != nil {
		return err
	}
	*p = preludeYAML(out)
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path: path,
		Name: strings.TrimSpace(mf.Name),
		Main: strings.TrimSpace(mf.Main),
		Repl: ReplConfig{
			Prompt:  mf.Repl.Prompt,
			History: strings.TrimSpace(mf.Repl.History),
		},
		Preludes: make([]*PreludeSpec, 0, len(mf.Preludes)),
	}
	for _, p := range mf.Preludes {
		result.Preludes = append(result.Preludes, &PreludeSpec{
			Path:   strings.TrimSpace(p.Path),
			Git:    strings.TrimSpace(p.Git),
			Rev:    strings.TrimSpace(p.Rev),
			Tag:    strings.TrimSpace(p.Tag),
			Branch: strings.TrimSpace(p.Branch),
		})
	}
	return result
}
