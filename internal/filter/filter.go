package filter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode"
)

// Sentinel errors that tell which side of a pass failed.
var (
	ErrRead  = errors.New("read input")
	ErrWrite = errors.New("write output")
)

// Verdict is the outcome of evaluating a single line.
type Verdict int

const (
	Accept    Verdict = iota // copied to the output
	DropBlank                // whitespace only
	DropChar                 // contains a letter or '+'
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "keep"
	case DropBlank:
		return "blank"
	case DropChar:
		return "rejected"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Stats counts what happened to the lines of one pass.
type Stats struct {
	Lines    int `json:"lines"`
	Kept     int `json:"kept"`
	Blank    int `json:"blank"`
	Rejected int `json:"rejected"`
}

// Dropped returns the number of lines that were not written.
func (s Stats) Dropped() int {
	return s.Blank + s.Rejected
}

func (s *Stats) add(v Verdict) {
	s.Lines++
	switch v {
	case Accept:
		s.Kept++
	case DropBlank:
		s.Blank++
	case DropChar:
		s.Rejected++
	}
}

// Classify evaluates line and reports why it is kept or dropped.
func Classify(line string) Verdict {
	if strings.TrimRightFunc(line, isSpace) == "" {
		return DropBlank
	}
	for _, r := range line {
		if r == '+' || unicode.IsLetter(r) {
			return DropChar
		}
	}
	return Accept
}

// isSpace reports whether r is whitespace. The ASCII file, group, record
// and unit separators count as whitespace too.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// Keep reports whether line belongs in the output.
func Keep(line string) bool {
	return Classify(line) == Accept
}

// Lines yields the lines of r with their terminators attached.
// A line ends at "\n", "\r\n" or a lone "\r". The final line is yielded
// even when it has no terminator. A read error is yielded once and ends
// the sequence.
func Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		br := bufio.NewReader(r)
		var line []byte
		for {
			b, err := br.ReadByte()
			if err != nil {
				if len(line) > 0 && !yield(string(line), nil) {
					return
				}
				if err != io.EOF {
					yield("", err)
				}
				return
			}
			line = append(line, b)

			switch b {
			case '\n':
			case '\r':
				next, err := br.Peek(1)
				if err == nil && next[0] == '\n' {
					continue
				}
				if err != nil && err != io.EOF {
					if yield(string(line), nil) {
						yield("", err)
					}
					return
				}
			default:
				continue
			}

			if !yield(string(line), nil) {
				return
			}
			line = line[:0]
		}
	}
}

// Kept yields only the lines of seq that pass Keep, unchanged and in order.
// Errors from seq are passed through.
func Kept(seq iter.Seq2[string, error]) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for line, err := range seq {
			if err != nil {
				yield("", err)
				return
			}
			if !Keep(line) {
				continue
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

// Process copies every kept line of r to w in a single pass.
// Read failures wrap ErrRead and write failures wrap ErrWrite. Stats
// reflect the lines handled before any failure.
func Process(r io.Reader, w io.Writer) (Stats, error) {
	var st Stats
	bw := bufio.NewWriter(w)

	for line, err := range Lines(r) {
		if err != nil {
			return st, fmt.Errorf("%w: %w", ErrRead, err)
		}
		v := Classify(line)
		st.add(v)
		if v != Accept {
			continue
		}
		if _, err := bw.WriteString(line); err != nil {
			return st, fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return st, nil
}
