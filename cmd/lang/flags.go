package main

import (
	"fmt"
	"strings"
)

type globalOptions struct {
	logLevel string
}

func parseGlobalFlags(args []string) (globalOptions, []string, error) {
	var opts globalOptions
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		switch {
		case arg == "--log-level":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--log-level expects a value")
			}
			if _, err := parseLogLevel(args[i+1]); err != nil {
				return opts, nil, err
			}
			opts.logLevel = args[i+1]
			i++
		case strings.HasPrefix(arg, "--log-level="):
			value := strings.TrimPrefix(arg, "--log-level=")
			if _, err := parseLogLevel(value); err != nil {
				return opts, nil, err
			}
			opts.logLevel = value
		default:
			remaining = append(remaining, arg)
		}
	}
	return opts, remaining, nil
}
