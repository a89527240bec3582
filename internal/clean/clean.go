// Package clean runs the numeric line filter from an input file to its
// sibling .csv file.
package clean

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/raphi011/numclean/internal/filter"
	"github.com/raphi011/numclean/internal/log"
	"github.com/raphi011/numclean/internal/outpath"
	"github.com/raphi011/numclean/internal/storage"
)

// outputPerm is the mode of newly created output files before umask.
const outputPerm = 0o644

// Result describes a completed run.
type Result struct {
	Input    string
	Output   string
	Stats    filter.Stats
	Duration time.Duration
}

// Run filters input into outpath.Derive(input).
//
// The input is opened before the output is touched. The output is written
// to a temporary sibling and renamed into place, so a failed run leaves any
// previous output intact and the input may itself be a .csv file.
// Returned errors are *Error values classified by Kind.
func Run(ctx context.Context, input string) (Result, error) {
	l := log.FromContext(ctx)
	start := time.Now()

	if input == "" {
		return Result{}, &Error{Op: "usage", Kind: KindUsage, Err: errors.New("input path is empty")}
	}

	in, err := os.Open(input)
	if err != nil {
		return Result{}, &Error{Op: "open input", Kind: KindInput, Path: input, Err: unwrapPath(err)}
	}
	defer in.Close()

	res := Result{Input: input, Output: outpath.Derive(input)}
	l.Debug("filtering", "input", res.Input, "output", res.Output)

	err = storage.WriteFileAtomic(res.Output, outputPerm, func(w io.Writer) error {
		var perr error
		res.Stats, perr = filter.Process(in, w)
		return perr
	})
	res.Duration = time.Since(start)
	if err != nil {
		return res, classify(res, err)
	}

	l.Debug("filtered", "lines", res.Stats.Lines, "kept", res.Stats.Kept,
		"blank", res.Stats.Blank, "rejected", res.Stats.Rejected, "took", res.Duration.Round(time.Microsecond))
	return res, nil
}

// classify maps a failed write pass to an input or output error.
func classify(res Result, err error) error {
	if errors.Is(err, filter.ErrRead) {
		return &Error{Op: "read input", Kind: KindInput, Path: res.Input, Err: err}
	}

	op := "write output"
	var fe *storage.FileError
	if errors.As(err, &fe) {
		op = fe.Op + " output"
		err = unwrapPath(fe.Err)
	}
	return &Error{Op: op, Kind: KindOutput, Path: res.Output, Err: err}
}

// unwrapPath drops the *os.PathError layer, whose path and op are
// already carried by Error.
func unwrapPath(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
