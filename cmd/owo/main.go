package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fasihh/owo-lang/pkg/driver"
	"github.com/fasihh/owo-lang/pkg/interpreter"
)

const cliToolVersion = "owo " + driver.Version

// Exit codes follow sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 64
	exitNoInput  = 66
	exitSoftware = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runRepl(nil)
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitOK
	case "run":
		return runEntry(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "tokens":
		return runTokens(args[1:])
	case "parse":
		return runParse(args[1:])
	default:
		if len(args) > 1 {
			fmt.Fprintln(os.Stderr, "Usage: owo [script]")
			return exitUsage
		}
		return runEntry(args)
	}
}

// runEntry executes a script, or the manifest's main when no script is
// given, after the manifest's preludes.
func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: owo run [script]")
		return exitUsage
	}

	start := "."
	if len(args) == 1 {
		start = filepath.Dir(args[0])
	}
	manifest, err := loadProject(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "owo: %v\n", err)
		return exitUsage
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else if path = manifest.MainPath(); path == "" {
		if manifest == nil {
			fmt.Fprintln(os.Stderr, "owo run: no script given and no owo.yml found")
		} else {
			fmt.Fprintf(os.Stderr, "owo run: no script given and %s has no main\n", manifest.Path)
		}
		return exitUsage
	}

	src, err := driver.ReadSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "owo: %v\n", err)
		return exitNoInput
	}

	session := driver.NewSession(
		interpreter.New(interpreter.Options{Stdout: os.Stdout}),
		driver.NewConsoleReporter(os.Stderr),
	)
	if code := runPreludes(session, manifest); code != exitOK {
		return code
	}
	return exitCodeFor(session.Run(src))
}

// loadProject returns the nearest owo.yml above start, or nil when there is
// none.
func loadProject(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return driver.LoadManifest(path)
}

func runPreludes(session *driver.Session, manifest *driver.Manifest) int {
	if manifest == nil || len(manifest.Preludes) == 0 {
		return exitOK
	}
	home, err := driver.ResolveHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	loader, err := driver.NewLoader(manifest, home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "owo: %v\n", err)
		return exitNoInput
	}
	preludes, err := loader.Preludes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "owo: %v\n", err)
		return exitNoInput
	}
	if err := loader.SaveLock(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return exitCodeFor(session.RunAll(preludes))
}

// exitCodeFor maps a session error onto a process exit code: syntax errors
// are usage errors and everything else failed while running. The error has
// already been reported.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var diagErr *driver.DiagnosticsError
	if errors.As(err, &diagErr) {
		return exitUsage
	}
	return exitSoftware
}
