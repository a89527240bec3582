package filter

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want Verdict
	}{
		{"integer", "42\n", Accept},
		{"decimal", "3.14\n", Accept},
		{"negative", "-1.5\n", Accept},
		{"comma separated", "1, 2, 3\n", Accept},
		{"internal whitespace", "  7\t8  \n", Accept},
		{"punctuation only", "--;;..\n", Accept},
		{"no terminator", "99", Accept},
		{"crlf", "12\r\n", Accept},
		{"empty", "", DropBlank},
		{"newline only", "\n", DropBlank},
		{"spaces", "   \n", DropBlank},
		{"tabs and crlf", "\t\t\r\n", DropBlank},
		{"lone cr", "\r", DropBlank},
		{"vertical tab and form feed", "\v\f\n", DropBlank},
		{"unit separators", "\x1c\x1d\x1e\x1f\n", DropBlank},
		{"no-break space", "\u00a0\n", DropBlank},
		{"separator beside digit", "\x1f1\n", Accept},
		{"header", "time,value\n", DropChar},
		{"exponent with plus", "2e+5\n", DropChar},
		{"exponent without plus", "2e5\n", DropChar},
		{"leading plus", "+5\n", DropChar},
		{"plus only", "+\n", DropChar},
		{"uppercase", "NaN\n", DropChar},
		{"non-ascii letter", "12 ü\n", DropChar},
		{"greek letter", "π\n", DropChar},
		{"digits beyond ascii", "٣٤\n", Accept},
		{"invalid utf8", "1\xff2\n", Accept},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
			if got, want := Keep(tt.line), tt.want == Accept; got != want {
				t.Errorf("Keep(%q) = %v, want %v", tt.line, got, want)
			}
		})
	}
}

func TestVerdictString(t *testing.T) {
	t.Parallel()

	tests := map[Verdict]string{
		Accept:      "keep",
		DropBlank:   "blank",
		DropChar:    "rejected",
		Verdict(42): "verdict(42)",
	}
	for v, want := range tests {
		if got := v.String(); got != want {
			t.Errorf("Verdict(%d).String() = %q, want %q", int(v), got, want)
		}
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single terminated", "1\n", []string{"1\n"}},
		{"unterminated tail", "1\n2", []string{"1\n", "2"}},
		{"blank lines kept raw", "\n\n", []string{"\n", "\n"}},
		{"crlf retained", "1\r\n2\r\n", []string{"1\r\n", "2\r\n"}},
		{"lone cr", "abc\r1\r2\r", []string{"abc\r", "1\r", "2\r"}},
		{"mixed terminators", "1\r2\n3\r\n4", []string{"1\r", "2\n", "3\r\n", "4"}},
		{"cr before blank line", "1\r\r\n", []string{"1\r", "\r\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got []string
			for line, err := range Lines(strings.NewReader(tt.input)) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				got = append(got, line)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Lines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLines_LongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("1", 1<<20) + "\n"
	var n int
	for line, err := range Lines(strings.NewReader(long)) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line != long {
			t.Errorf("line length = %d, want %d", len(line), len(long))
		}
		n++
	}
	if n != 1 {
		t.Errorf("got %d lines, want 1", n)
	}
}

func TestLines_StopEarly(t *testing.T) {
	t.Parallel()

	var got []string
	for line := range Lines(strings.NewReader("1\n2\n3\n")) {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	if want := []string{"1\n", "2\n"}; !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestKept(t *testing.T) {
	t.Parallel()

	input := "3.14\nabc\n   \n2e+5\n42\n"
	var got []string
	for line, err := range Kept(Lines(strings.NewReader(input))) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, line)
	}
	if want := []string{"3.14\n", "42\n"}; !slices.Equal(got, want) {
		t.Errorf("Kept() = %q, want %q", got, want)
	}
}

func TestKept_PassesReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := &failingReader{data: "1\n2\n", err: boom}

	var got []string
	var gotErr error
	for line, err := range Kept(Lines(r)) {
		if err != nil {
			gotErr = err
			continue
		}
		got = append(got, line)
	}
	if !errors.Is(gotErr, boom) {
		t.Errorf("error = %v, want %v", gotErr, boom)
	}
	if want := []string{"1\n", "2\n"}; !slices.Equal(got, want) {
		t.Errorf("lines before error = %q, want %q", got, want)
	}
}

func TestProcess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		stats Stats
	}{
		{
			name:  "mixed dump",
			input: "3.14\nabc\n   \n2e+5\n42\n",
			want:  "3.14\n42\n",
			stats: Stats{Lines: 5, Kept: 2, Blank: 1, Rejected: 2},
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
			stats: Stats{},
		},
		{
			name:  "blank only",
			input: "\n  \n\t\n",
			want:  "",
			stats: Stats{Lines: 3, Blank: 3},
		},
		{
			name:  "verbatim whitespace and crlf",
			input: "  1 ,\t2 \r\n# comment\r\n3",
			want:  "  1 ,\t2 \r\n3",
			stats: Stats{Lines: 3, Kept: 2, Rejected: 1},
		},
		{
			name:  "classic mac line endings",
			input: "abc\r1\r2\r",
			want:  "1\r2\r",
			stats: Stats{Lines: 3, Kept: 2, Rejected: 1},
		},
		{
			name:  "minus is not a trigger",
			input: "-5\n+5\n",
			want:  "-5\n",
			stats: Stats{Lines: 2, Kept: 1, Rejected: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			st, err := Process(strings.NewReader(tt.input), &buf)
			if err != nil {
				t.Fatalf("Process failed: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
			if st != tt.stats {
				t.Errorf("stats = %+v, want %+v", st, tt.stats)
			}
			if st.Dropped() != tt.stats.Blank+tt.stats.Rejected {
				t.Errorf("Dropped() = %d, want %d", st.Dropped(), tt.stats.Blank+tt.stats.Rejected)
			}
		})
	}
}

func TestProcess_Idempotent(t *testing.T) {
	t.Parallel()

	input := "header\n1\n\n2,3\nfoo 4\n+1\n-7.5e-3\n 8 \n"

	var first bytes.Buffer
	if _, err := Process(strings.NewReader(input), &first); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	var second bytes.Buffer
	st, err := Process(bytes.NewReader(first.Bytes()), &second)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if second.String() != first.String() {
		t.Errorf("second pass = %q, want %q", second.String(), first.String())
	}
	if st.Lines != st.Kept {
		t.Errorf("second pass dropped %d lines", st.Dropped())
	}
}

func TestProcess_OutputIsOrderedSubsequence(t *testing.T) {
	t.Parallel()

	input := []string{"1\n", "a\n", "2\n", "\n", "3\n", "x+\n", "4"}

	var buf bytes.Buffer
	if _, err := Process(strings.NewReader(strings.Join(input, "")), &buf); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	var out []string
	for line := range Lines(&buf) {
		out = append(out, line)
	}

	i := 0
	for _, line := range out {
		for i < len(input) && input[i] != line {
			i++
		}
		if i == len(input) {
			t.Fatalf("output %q is not an ordered subsequence of input %q", out, input)
		}
		i++
	}
}

func TestProcess_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	var buf bytes.Buffer
	_, err := Process(&failingReader{data: "1\n", err: boom}, &buf)
	if !errors.Is(err, ErrRead) {
		t.Errorf("error = %v, want ErrRead", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
}

func TestProcess_WriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	_, err := Process(strings.NewReader("1\n2\n"), failingWriter{err: boom})
	if !errors.Is(err, ErrWrite) {
		t.Errorf("error = %v, want ErrWrite", err)
	}
	if errors.Is(err, ErrRead) {
		t.Errorf("write failure should not match ErrRead: %v", err)
	}
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}
