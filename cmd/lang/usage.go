package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lang [--log-level=debug|info|warn|error] [run] [file ...]")
	fmt.Fprintln(os.Stderr, "  lang [--log-level=debug|info|warn|error] <file> [file ...]")
	fmt.Fprintln(os.Stderr, "  lang [--log-level=debug|info|warn|error] repl")
	fmt.Fprintln(os.Stderr, "  lang deps install")
	fmt.Fprintln(os.Stderr, "  lang version")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Without files, `lang run` loads lang.yml from the current directory or a parent;")
	fmt.Fprintln(os.Stderr, "with neither, statements are read from stdin.")
}
