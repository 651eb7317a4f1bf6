package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  owo                 start the REPL")
	fmt.Fprintln(os.Stderr, "  owo <script>        run a script")
	fmt.Fprintln(os.Stderr, "  owo run [script]    run a script, or the main named in owo.yml")
	fmt.Fprintln(os.Stderr, "  owo repl            start the REPL")
	fmt.Fprintln(os.Stderr, "  owo tokens <script> print the tokens of a script")
	fmt.Fprintln(os.Stderr, "  owo parse <script>  print the syntax tree of a script")
	fmt.Fprintln(os.Stderr, "  owo --version")
}
