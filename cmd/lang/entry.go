package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/SKyletoft/lang-experiment/pkg/driver"
	"github.com/SKyletoft/lang-experiment/pkg/interpreter"
)

// exitInterrupted follows the shell convention for SIGINT.
const exitInterrupted = 130

// runEntry imports args, or the project's files when args is empty, then
// keeps reading statements from stdin. Without files or a project it is a
// plain interactive session.
func runEntry(args []string, opts globalOptions) int {
	var manifest *driver.Manifest
	files := args

	if len(args) == 0 {
		var err error
		manifest, err = loadManifestFrom(".")
		switch {
		case errors.Is(err, errManifestNotFound):
			manifest = nil
		case err != nil:
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		default:
			files, err = manifestFiles(manifest)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				return 1
			}
		}
	}

	logger, err := buildLogger(opts, manifest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var reader driver.LineReader
	echo := false
	if stdinIsTerminal() {
		prompt := newPromptReader(resolveHistoryPath(manifest))
		defer prompt.Close()
		reader = prompt
		echo = true
	} else {
		reader = driver.NewStreamReader(os.Stdin)
	}
	if manifest != nil && manifest.Settings.Echo != nil {
		echo = *manifest.Settings.Echo
	}
	return executeProgram(files, reader, os.Stdout, echo, logger)
}

// manifestFiles lists dependency files first, then the project's sources.
func manifestFiles(manifest *driver.Manifest) ([]string, error) {
	lock, err := loadLockfileForManifest(manifest)
	if err != nil {
		return nil, err
	}
	var files []string
	if len(manifest.Dependencies) > 0 {
		cacheDir, err := resolveLangHome()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve LANG_HOME: %w", err)
		}
		files, err = dependencyFiles(manifest, lock, cacheDir)
		if err != nil {
			return nil, err
		}
	}
	files = append(files, manifest.SourcePaths()...)
	if len(files) == 0 {
		return nil, fmt.Errorf("%s lists no sources; add `sources:` or pass a file", manifest.Path)
	}
	return files, nil
}

func buildLogger(opts globalOptions, manifest *driver.Manifest) (*slog.Logger, error) {
	level, err := resolveLogLevel(opts, manifest)
	if err != nil {
		return nil, err
	}
	return newLogger(os.Stderr, level), nil
}

func executeProgram(files []string, reader driver.LineReader, stdout io.Writer, echo bool, logger *slog.Logger) int {
	src := driver.NewSource(reader)
	for _, file := range files {
		if err := src.Import(file); err != nil {
			fmt.Fprintf(os.Stderr, "failed to import: %v\n", err)
			return 1
		}
	}
	logger.Debug("program loaded", "files", strings.Join(files, ","), "statements", src.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interp := interpreter.New(interpreter.Options{
		Stdout: stdout,
		Logger: logger,
		Echo:   echo,
	})
	if err := interp.Run(ctx, src); err != nil {
		if errors.Is(err, context.Canceled) {
			return exitInterrupted
		}
		fmt.Fprintf(os.Stderr, "lang: %v\n", err)
		return 1
	}
	return 0
}
