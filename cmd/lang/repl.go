package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/SKyletoft/lang-experiment/pkg/driver"
)

const (
	replBanner = cliToolVersion + " (Ctrl+D to quit, `exit` to stop)"
	replPrompt = "lang> "
)

// promptReader reads interactive lines with line editing and history.
type promptReader struct {
	ln          *liner.State
	historyPath string
}

func newPromptReader(historyPath string) *promptReader {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &promptReader{ln: ln, historyPath: historyPath}
}

// ReadLine returns io.EOF on Ctrl+D. Ctrl+C drops the line being typed.
func (p *promptReader) ReadLine() (string, error) {
	line, err := p.ln.Prompt(replPrompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		p.ln.AppendHistory(line)
	}
	return line, nil
}

func (p *promptReader) Close() error {
	if p.historyPath != "" {
		if f, err := os.Create(p.historyPath); err == nil {
			_, _ = p.ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return p.ln.Close()
}

func runRepl(args []string, opts globalOptions) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "lang repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 1
	}
	manifest, err := loadManifestFrom(".")
	if err != nil && !errors.Is(err, errManifestNotFound) {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	logger, err := buildLogger(opts, manifest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Fprintln(os.Stdout, replBanner)
	prompt := newPromptReader(resolveHistoryPath(manifest))
	defer prompt.Close()

	echo := true
	if manifest != nil && manifest.Settings.Echo != nil {
		echo = *manifest.Settings.Echo
	}
	var reader driver.LineReader = prompt
	return executeProgram(nil, reader, os.Stdout, echo, logger)
}
