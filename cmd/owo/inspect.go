package main

import (
	"fmt"
	"os"

	"github.com/fasihh/owo-lang/pkg/ast"
	"github.com/fasihh/owo-lang/pkg/driver"
	"github.com/fasihh/owo-lang/pkg/lexer"
	"github.com/fasihh/owo-lang/pkg/parser"
)

// runTokens prints one token per line, ending with EOF.
func runTokens(args []string) int {
	src, code := readSingleSource("tokens", args)
	if code != exitOK {
		return code
	}
	tokens, diags := lexer.Scan(src.Text)
	if len(diags) > 0 {
		driver.ReportDiagnostics(driver.NewConsoleReporter(os.Stderr), diags)
		return exitUsage
	}
	for _, tok := range tokens {
		fmt.Fprintln(os.Stdout, tok.String())
	}
	return exitOK
}

// runParse prints the syntax tree of a script, one statement per line.
func runParse(args []string) int {
	src, code := readSingleSource("parse", args)
	if code != exitOK {
		return code
	}
	stmts, diags := parser.ParseSource(src.Text)
	if len(diags) > 0 {
		driver.ReportDiagnostics(driver.NewConsoleReporter(os.Stderr), diags)
		return exitUsage
	}
	if len(stmts) > 0 {
		fmt.Fprintln(os.Stdout, ast.Print(stmts))
	}
	return exitOK
}

func readSingleSource(command string, args []string) (driver.Source, int) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: owo %s <script>\n", command)
		return driver.Source{}, exitUsage
	}
	src, err := driver.ReadSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "owo: %v\n", err)
		return driver.Source{}, exitNoInput
	}
	return src, exitOK
}
