package main

import (
	"errors"
	"fmt"
	"os"
)

const cliToolVersion = "lang-cli 0.1.0-dev"

var errManifestNotFound = errors.New("lang.yml not found")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runEntry(nil, globalOptions{})
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(remaining) == 0 {
		return runEntry(nil, opts)
	}

	switch remaining[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(remaining[1:], opts)
	case "repl":
		return runRepl(remaining[1:], opts)
	case "deps":
		return runDeps(remaining[1:])
	default:
		return runEntry(remaining, opts)
	}
}
