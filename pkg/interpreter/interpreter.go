package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/SKyletoft/lang-experiment/pkg/parser"
	"github.com/SKyletoft/lang-experiment/pkg/runtime"
)

// LineSource supplies program statements by index. fresh reports a line that
// was just read from an interactive reader. io.EOF ends the run.
type LineSource interface {
	Line(index int) (text string, fresh bool, err error)
}

// Options configures a new Interpreter.
type Options struct {
	// Stdout receives print, puts, type and echo output. Defaults to io.Discard.
	Stdout io.Writer
	// Logger receives statement failures. Defaults to a discarding logger.
	Logger *slog.Logger
	// Echo writes `> value` after each freshly read top-level statement.
	Echo bool
}

// Function is a registered `fn` definition. Header is the line it was
// declared on; calls resume on the line after it.
type Function struct {
	Name   string
	Params []Param
	Header int
}

type Param struct {
	Name string
	Type runtime.Type
}

// Frame is the caller state saved by a call.
type Frame struct {
	Env    *runtime.Environment
	Return int
}

// Interpreter executes a program line by line.
type Interpreter struct {
	env       *runtime.Environment
	labels    map[string]int
	functions map[string]*Function
	frames    []Frame

	cursor     int
	jumpTarget int
	jumpSet    bool
	skipDepth  int
	defDepth   int

	out    io.Writer
	logger *slog.Logger
	echo   bool
}

// New returns an interpreter positioned before the first line.
func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		env:       runtime.NewEnvironment(),
		labels:    make(map[string]int),
		functions: make(map[string]*Function),
		cursor:    -1,
		out:       out,
		logger:    logger,
		echo:      opts.Echo,
	}
}

// Environment returns the active environment.
func (i *Interpreter) Environment() *runtime.Environment { return i.env }

// Cursor is the index of the line executed last, or the target of the last jump.
func (i *Interpreter) Cursor() int { return i.cursor }

func (i *Interpreter) SkipDepth() int { return i.skipDepth }

func (i *Interpreter) CallDepth() int { return len(i.frames) }

func (i *Interpreter) Label(name string) (int, bool) {
	line, ok := i.labels[name]
	return line, ok
}

func (i *Interpreter) Function(name string) (*Function, bool) {
	fn, ok := i.functions[name]
	return fn, ok
}

// Run executes lines from src until `exit` or the end of input. Cancelling
// ctx stops it between lines. Statement failures are logged and do not stop
// the run; only errors from src or ctx are returned.
func (i *Interpreter) Run(ctx context.Context, src LineSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		index := i.cursor + 1
		text, fresh, err := src.Line(index)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading line %d: %w", index, err)
		}
		i.cursor = index
		if stop := i.execute(index, text, fresh); stop {
			return nil
		}
	}
}

// execute runs one line and reports whether the program asked to stop.
func (i *Interpreter) execute(index int, text string, fresh bool) bool {
	words, err := parser.Split(text)
	if err != nil {
		i.logFailure(index, text, err)
		return false
	}
	if len(words) == 0 {
		return false
	}

	switch {
	case i.defDepth > 0:
		if words[0] == "end" {
			i.defDepth--
		}
		return false
	case i.skipDepth > 0:
		switch words[0] {
		case "if":
			i.skipDepth++
		case "endif":
			i.skipDepth--
		}
		return false
	case words[0] == "exit":
		return true
	}

	val, err := i.dispatch(index, words)
	if err != nil {
		i.fail(index, text, err)
		return false
	}
	if fresh && i.echo && i.defDepth == 0 && len(i.frames) == 0 {
		fmt.Fprintf(i.out, "> %s\n", val)
	}
	i.env.SetLast(val)
	if i.jumpSet {
		i.cursor = i.jumpTarget
		i.jumpSet = false
	}
	return false
}

// fail logs a failed statement and resets last.
func (i *Interpreter) fail(index int, text string, err error) {
	i.logFailure(index, text, err)
	i.env.SetLast(runtime.BoolValue{Val: false})
}

// logFailure records err without touching interpreter state.
func (i *Interpreter) logFailure(index int, text string, err error) {
	kind := "unknown"
	if k, ok := runtime.KindOf(err); ok {
		kind = k.String()
	}
	i.logger.Error("statement failed", "line", index, "text", text, "kind", kind, "err", err)
}

// jump makes the line after target the next one to run.
func (i *Interpreter) jump(target int) {
	i.jumpTarget = target
	i.jumpSet = true
}
