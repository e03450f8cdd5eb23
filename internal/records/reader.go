// Package records frames input streams into records and serializes
// clustering results.
package records

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Reader is a single-pass, pull-based record stream.
//
// Line and null modes split on their terminator byte and strip one trailing
// terminator; a final record without a terminator is still produced.
// Paragraph mode joins consecutive non-empty lines with '\n' and treats runs
// of empty lines as a single boundary. Bytes pass through unmodified.
type Reader struct {
	r    *bufio.Reader
	mode InputMode
	err  error
	done bool
}

// NewReader returns a Reader framing r according to mode.
func NewReader(r io.Reader, mode InputMode) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 64*1024)
	}
	return &Reader{r: br, mode: mode}
}

// Next returns the next record, or false at end of stream or on error.
// Check Err after Next returns false.
func (rd *Reader) Next() (string, bool) {
	if rd.done {
		return "", false
	}

	var (
		rec string
		ok  bool
	)
	switch rd.mode {
	case ModeNull:
		rec, ok = rd.until(0)
	case ModeParagraph:
		rec, ok = rd.paragraph()
	default:
		rec, ok = rd.until('\n')
	}
	if !ok {
		rd.done = true
	}
	return rec, ok
}

// Err returns the first read error other than io.EOF.
func (rd *Reader) Err() error {
	return rd.err
}

// until reads through the next sep byte and returns the bytes before it.
func (rd *Reader) until(sep byte) (string, bool) {
	buf, err := rd.r.ReadBytes(sep)
	if err != nil && !errors.Is(err, io.EOF) {
		rd.err = fmt.Errorf("reading records: %w", err)
		return "", false
	}
	if len(buf) == 0 {
		return "", false
	}
	return string(bytes.TrimSuffix(buf, []byte{sep})), true
}

func (rd *Reader) paragraph() (string, bool) {
	var lines []string
	for {
		line, ok := rd.until('\n')
		if !ok {
			break
		}
		if line == "" {
			if len(lines) == 0 {
				// Leading empty lines before the first content line.
				continue
			}
			break
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// ReadAll reads every record from r.
func ReadAll(r io.Reader, mode InputMode) ([]string, error) {
	rd := NewReader(r, mode)
	var out []string
	for {
		rec, ok := rd.Next()
		if !ok {
			break
		}
		out = append(out, rec)
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
