// Package line frames newline-terminated text records over byte streams.
//
// A record's terminator is stripped on read and re-appended on write, so the
// rest of the program only ever compares and moves terminator-free lines.
// Only '\n' is recognized as a terminator; any other byte, including '\r',
// is record data.
package line

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Reader yields one terminator-stripped line per call to Next.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r for line-at-a-time reading.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the next line without its terminator. A final line that ends
// at EOF without a terminator is returned as a normal record; the call after
// it reports io.EOF.
func (r *Reader) Next() (string, error) {
	s, err := r.br.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if s == "" {
				return "", io.EOF
			}
			return s, nil
		}
		return "", errors.Wrap(err, "line: read")
	}
	return strings.TrimSuffix(s, "\n"), nil
}

// ReadAll drains r into memory, preserving input order.
func (r *Reader) ReadAll() ([]string, error) {
	var lines []string
	for {
		s, err := r.Next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, s)
	}
}

// Writer emits lines with exactly one trailing terminator each.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter wraps w for buffered line emission. Call Flush before the
// underlying stream is considered complete.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// Emit writes s followed by a terminator.
func (w *Writer) Emit(s string) error {
	if _, err := w.bw.WriteString(s); err != nil {
		return errors.Wrap(err, "line: write")
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "line: write")
	}
	return nil
}

// Flush pushes buffered output to the underlying stream.
func (w *Writer) Flush() error {
	return errors.Wrap(w.bw.Flush(), "line: flush")
}
