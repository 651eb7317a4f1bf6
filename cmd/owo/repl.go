package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/fasihh/owo-lang/pkg/driver"
	"github.com/fasihh/owo-lang/pkg/interpreter"
)

// lineReader is the part of *liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type repl struct {
	session  *driver.Session
	reporter *driver.ConsoleReporter
	prompt   string
}

func runRepl(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "Usage: owo repl")
		return exitUsage
	}
	manifest, err := loadProject(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "owo: %v\n", err)
		return exitUsage
	}

	interp := interpreter.New(interpreter.Options{Stdout: os.Stdout})
	reporter := driver.NewConsoleReporter(os.Stderr)
	session := driver.NewSession(interp, reporter)
	if code := runPreludes(session, manifest); code != exitOK {
		return code
	}
	interp.SetInteractive(true)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if home, err := driver.ResolveHome(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
	} else {
		histPath := manifest.HistoryPath(home)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(ln, histPath)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	r := &repl{session: session, reporter: reporter, prompt: manifest.Prompt()}
	r.loop(ln)
	return exitOK
}

func saveHistory(ln *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: save history: %v\n", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: save history: %v\n", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		fmt.Fprintf(os.Stderr, "warning: save history: %v\n", err)
	}
}

// loop reads lines until exit, :quit or end of input. Ctrl-C abandons the
// current line only.
func (r *repl) loop(in lineReader) {
	for {
		line, err := in.Prompt(r.prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(os.Stdout)
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "owo: %v\n", err)
			return
		}
		if !r.eval(line) {
			return
		}
		if strings.TrimSpace(line) != "" {
			in.AppendHistory(line)
		}
	}
}

// eval runs one line and reports whether the session should continue.
// Errors are reported and then forgotten so the next line starts clean;
// definitions made before an error persist.
func (r *repl) eval(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return true
	case trimmed == "exit" || trimmed == ":quit":
		return false
	case strings.HasPrefix(trimmed, ":"):
		fmt.Fprintf(os.Stderr, "unknown command %s. Type :quit to exit.\n", trimmed)
		return true
	}
	r.reporter.Reset()
	_ = r.session.Run(driver.Source{Text: line})
	return true
}
