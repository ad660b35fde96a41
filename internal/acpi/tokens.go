package acpi

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// LineStream is a line-indexed view of a disassembled table. It tracks
// block nesting by brace count; quoted strings in the dialect never
// contain braces, so counting characters is sufficient.
type LineStream struct {
	lines []string
	idx   int
	depth int
	delta int
}

// NewLineStream reads all lines from r into a stream.
func NewLineStream(r io.Reader) (*LineStream, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read table text")
	}
	return &LineStream{lines: lines, idx: -1}, nil
}

// NewLineStreamFromString builds a stream over in-memory text.
func NewLineStreamFromString(s string) *LineStream {
	return &LineStream{lines: strings.Split(s, "\n"), idx: -1}
}

// Next advances to the next line, updating the brace depth.
// It returns false at end of input.
func (s *LineStream) Next() bool {
	if s.idx+1 >= len(s.lines) {
		return false
	}
	s.idx++
	s.delta = strings.Count(s.lines[s.idx], "{") - strings.Count(s.lines[s.idx], "}")
	s.depth += s.delta
	return true
}

// Back rewinds the stream by one line, undoing the depth update, so
// the line is re-delivered by the next call to Next. At most one line
// of pushback is supported.
func (s *LineStream) Back() {
	if s.idx < 0 {
		return
	}
	s.depth -= s.delta
	s.delta = 0
	s.idx--
}

// Text returns the current line.
func (s *LineStream) Text() string {
	if s.idx < 0 || s.idx >= len(s.lines) {
		return ""
	}
	return s.lines[s.idx]
}

// Depth returns the brace depth after the current line.
func (s *LineStream) Depth() int {
	return s.depth
}

// Delta returns the brace-depth delta contributed by the current line.
func (s *LineStream) Delta() int {
	return s.delta
}

// LineNo returns the 1-based number of the current line.
func (s *LineStream) LineNo() int {
	return s.idx + 1
}

// Indent returns the count of leading spaces on the current line.
func (s *LineStream) Indent() int {
	line := s.Text()
	return len(line) - len(strings.TrimLeft(line, " "))
}
