// Package merge combines two independently sorted line streams into one.
//
// Each stream's producer promises up front how many lines it will deliver.
// The merger never buffers more than a single pending line: at any moment at
// most one side has a line that has been read but not yet emitted, and the
// other side is the one being advanced. A producer that delivers fewer lines
// than promised is a protocol violation and fails the merge.
package merge

import (
	"io"

	"github.com/pkg/errors"

	"github.com/dusk-indust/forksort/internal/line"
)

// pending identifies which side, if any, owns the held look-ahead line.
type pending int

const (
	unlocked pending = iota
	leftPending
	rightPending
)

// side tracks one input stream: its reader, the number of lines its producer
// promised, and how many of those have been emitted so far.
type side struct {
	name  string
	src   *line.Reader
	total int
	sent  int
}

// next reads one line, translating a premature end of stream into a
// protocol-violation error.
func (s *side) next() (string, error) {
	v, err := s.src.Next()
	if err == io.EOF {
		return "", errors.Errorf("merge: %s stream ended after %d of %d lines", s.name, s.sent, s.total)
	}
	if err != nil {
		return "", errors.Wrapf(err, "merge: reading %s stream", s.name)
	}
	return v, nil
}

// Merger merges a left and a right sorted stream of known lengths onto out.
type Merger struct {
	left  side
	right side
	out   *line.Writer
}

// New creates a Merger over the two streams. leftCount and rightCount are
// the line counts their producers promised.
func New(left io.Reader, leftCount int, right io.Reader, rightCount int, out *line.Writer) *Merger {
	return &Merger{
		left:  side{name: "left", src: line.NewReader(left), total: leftCount},
		right: side{name: "right", src: line.NewReader(right), total: rightCount},
		out:   out,
	}
}

// Run emits the merged stream. It returns after exactly
// leftCount+rightCount lines have been written, or with the first error.
func (m *Merger) Run() error {
	// A side with nothing promised reduces the merge to a drain.
	if m.left.total == 0 {
		return m.drain(&m.right)
	}
	if m.right.total == 0 {
		return m.drain(&m.left)
	}

	// Smallest non-trivial case: one comparison decides everything.
	if m.left.total == 1 && m.right.total == 1 {
		l, err := m.left.next()
		if err != nil {
			return err
		}
		r, err := m.right.next()
		if err != nil {
			return err
		}
		if l < r {
			return m.emitAll(l, r)
		}
		return m.emitAll(r, l)
	}

	var held string
	state := unlocked

	for m.left.sent < m.left.total && m.right.sent < m.right.total {
		var l, r string
		var err error
		switch state {
		case unlocked:
			if l, err = m.left.next(); err != nil {
				return err
			}
			if r, err = m.right.next(); err != nil {
				return err
			}
		case leftPending:
			// The left candidate is already held; only the right
			// side has something new to offer.
			l = held
			if r, err = m.right.next(); err != nil {
				return err
			}
		case rightPending:
			r = held
			if l, err = m.left.next(); err != nil {
				return err
			}
		}

		// Emit the smaller line, hold the larger for the next round.
		if l < r {
			if err := m.emit(&m.left, l); err != nil {
				return err
			}
			held = r
			state = rightPending
		} else {
			if err := m.emit(&m.right, r); err != nil {
				return err
			}
			held = l
			state = leftPending
		}
	}

	// One side is fully emitted, so the held line belongs to the other and
	// goes out before that side is drained.
	switch state {
	case leftPending:
		if err := m.emit(&m.left, held); err != nil {
			return err
		}
	case rightPending:
		if err := m.emit(&m.right, held); err != nil {
			return err
		}
	default:
		return errors.New("merge: loop exited with no held line")
	}

	if m.left.sent < m.left.total {
		return m.drain(&m.left)
	}
	if m.right.sent < m.right.total {
		return m.drain(&m.right)
	}
	return nil
}

// emit writes one line and charges it to s.
func (m *Merger) emit(s *side, v string) error {
	if err := m.out.Emit(v); err != nil {
		return err
	}
	s.sent++
	return nil
}

// drain copies the rest of s to the output without comparisons. Everything
// still unread on s is sorted and no smaller than anything already emitted.
func (m *Merger) drain(s *side) error {
	for s.sent < s.total {
		v, err := s.next()
		if err != nil {
			return err
		}
		if err := m.emit(s, v); err != nil {
			return err
		}
	}
	return nil
}

// emitAll writes the 1x1 fast-path result.
func (m *Merger) emitAll(first, second string) error {
	if err := m.out.Emit(first); err != nil {
		return err
	}
	m.left.sent = m.left.total
	m.right.sent = m.right.total
	return m.out.Emit(second)
}
