// Command sexpr is the runtime binary. Per §6, it accepts one or more
// source paths; each is read, expanded, and evaluated in the shared root
// environment in command-line order. With no paths it starts a REPL.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/koskinen/sexpr/pkg/interp"
	"github.com/koskinen/sexpr/pkg/repl"
	"github.com/koskinen/sexpr/pkg/types"
)

func main() {
	var (
		help = flag.Bool("help", false, "Show help message")
		eval = flag.String("e", "", "Evaluate code directly instead of reading from a file")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                     # Start interactive REPL\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s script.lisp ...     # Execute one or more files in order\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -e '(+ 1 2 3)'      # Evaluate code directly\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -help               # Show this help message\n", os.Args[0])
	}

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	it, err := interp.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error initializing interpreter: %v\n", err)
		os.Exit(1)
	}

	if *eval != "" {
		result, err := it.InterpretString(*eval)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		printResult(result)
		return
	}

	if paths := flag.Args(); len(paths) > 0 {
		for _, path := range paths {
			result, err := it.InterpretFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				os.Exit(1)
			}
			printResult(result)
		}
		return
	}

	if err := repl.Run(it); err != nil {
		fmt.Fprintf(os.Stderr, "repl error: %v\n", err)
		os.Exit(1)
	}
}

func printResult(v types.Value) {
	if !types.IsNil(v) {
		fmt.Println(v.String())
	}
}
