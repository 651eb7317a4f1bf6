package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/fasihh/owo-lang/pkg/parser"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

type scenario struct {
	Name        string `yaml:"name"`
	Source      string `yaml:"source"`
	Interactive bool   `yaml:"interactive"`
	Stdout      string `yaml:"stdout"`
	Error       string `yaml:"error"`
	Line        int    `yaml:"line"`
}

type scenarioFile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "scenarios.yml"))
	if err != nil {
		t.Fatalf("open scenarios: %v", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var file scenarioFile
	if err := dec.Decode(&file); err != nil {
		t.Fatalf("decode scenarios: %v", err)
	}
	if len(file.Scenarios) == 0 {
		t.Fatalf("no scenarios found")
	}
	return file.Scenarios
}

func TestScenarios(t *testing.T) {
	for _, sc := range loadScenarios(t) {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			stmts, diags := parser.ParseSource(sc.Source)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			var out bytes.Buffer
			interp := New(Options{Stdout: &out, Interactive: sc.Interactive})
			err := interp.Interpret(stmts)
			if out.String() != sc.Stdout {
				t.Fatalf("expected stdout %q, got %q", sc.Stdout, out.String())
			}
			if sc.Error == "" {
				if err != nil {
					t.Fatalf("unexpected runtime error: %v", err)
				}
				return
			}
			rtErr, ok := err.(*runtime.RuntimeError)
			if !ok {
				t.Fatalf("expected runtime error %q, got %v", sc.Error, err)
			}
			if rtErr.Message != sc.Error {
				t.Fatalf("expected message %q, got %q", sc.Error, rtErr.Message)
			}
			if sc.Line != 0 && rtErr.Line() != sc.Line {
				t.Fatalf("expected line %d, got %d", sc.Line, rtErr.Line())
			}
		})
	}
}
