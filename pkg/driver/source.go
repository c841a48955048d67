package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LineReader yields one interactive line per call. io.EOF ends input.
type LineReader interface {
	ReadLine() (string, error)
}

// Source buffers program statements. Statements come from imported files
// first; once the buffer runs out, Line pulls more from the reader.
type Source struct {
	lines  []string
	reader LineReader
}

// NewSource returns an empty source backed by reader, which may be nil.
func NewSource(reader LineReader) *Source {
	return &Source{reader: reader}
}

// Import appends the statements of a program file.
func (s *Source) Import(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	defer file.Close()
	return s.ImportReader(path, file)
}

// ImportReader appends the statements read from r. name labels errors.
func (s *Source) ImportReader(name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("import %s: %w", name, err)
	}
	s.lines = append(s.lines, SplitStatements(string(data))...)
	return nil
}

// PushLine appends one interactive line, dropping comments and blank input.
func (s *Source) PushLine(line string) {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	if line = strings.TrimSpace(line); line != "" {
		s.lines = append(s.lines, line)
	}
}

// Len reports how many statements are buffered.
func (s *Source) Len() int { return len(s.lines) }

// Line returns the statement at index, reading from the interactive reader
// while index is past the buffer. fresh is true when the statement had to be read.
func (s *Source) Line(index int) (string, bool, error) {
	if index < 0 {
		return "", false, fmt.Errorf("line %d is before the start of the program", index)
	}
	fresh := false
	for index >= len(s.lines) {
		if s.reader == nil {
			return "", false, io.EOF
		}
		text, err := s.reader.ReadLine()
		if err != nil {
			return "", false, err
		}
		s.PushLine(text)
		fresh = true
	}
	return s.lines[index], fresh, nil
}

// SplitStatements applies file preprocessing: `#` comments run to the end of
// the line, newlines join lines, `;` ends a statement.
func SplitStatements(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	comment := false
	for _, r := range text {
		switch {
		case r == '\n':
			comment = false
			b.WriteByte(' ')
		case comment:
		case r == '#':
			comment = true
		case r == ';':
			b.WriteByte('\n')
		default:
			b.WriteRune(r)
		}
	}

	var out []string
	for _, stmt := range strings.Split(b.String(), "\n") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// StreamReader reads interactive lines from a plain stream such as a pipe.
type StreamReader struct {
	r *bufio.Reader
}

func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its terminator.
func (s *StreamReader) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
