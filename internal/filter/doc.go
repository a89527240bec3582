// Package filter implements the numeric line filter.
//
// A line survives when it has non-whitespace content and contains no
// letter and no '+' character. Everything else is dropped. Kept lines are
// written back byte for byte, terminators included, in input order.
//
// # Drop Triggers
//
//   - Blank lines: whitespace only, including a bare "\n" or "\r\n"
//   - Letters: any rune for which unicode.IsLetter reports true
//   - The '+' character
//
// Only these trigger a drop. '-', 'E'-less exponents, commas, dots and
// other punctuation are kept, so "-1.5,2" survives while "2e+5" and "+5"
// do not.
//
// # Sequences
//
// Lines and Kept return single-use iterators. They read lazily from the
// underlying reader and cannot be restarted.
package filter
