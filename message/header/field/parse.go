package field

import (
	"errors"
	"strings"
)

// ErrMissingName is returned by Parse when the logical line does not start
// with a field name followed by a colon.
var ErrMissingName = errors.New("missing field name")

// BadStartError is returned when the header begins with continuation lines
// that have no field to continue. These lines are preserved in the error
// object, in the order they were found.
type BadStartError struct {
	BadStart []string // the physical lines skipped at the start of header
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "first line cannot be a continuation line"
}

// Line represents a complete logical header field line. Folded continuation
// lines are joined to the line they continue with "\n".
type Line string

// Lines represents zero or more logical header field lines.
type Lines []Line

// isContinuation reports whether the physical line continues the previous
// field.
func isContinuation(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

// ParseLines joins the given physical header lines, which must already have
// had their line breaks removed, into logical lines. Any line starting with a
// space or tab continues the logical line before it and is appended to it
// after a "\n".
//
// If the first line (or lines) of input is a continuation, there is nothing
// to continue. These lines will be skipped in the Lines returned and a
// BadStartError will be returned alongside the lines that could be joined.
func ParseLines(physical []string) (Lines, error) {
	h := make(Lines, 0, len(physical))
	var err *BadStartError
	for _, line := range physical {
		if isContinuation(line) {
			if len(h) == 0 {
				if err == nil {
					err = &BadStartError{}
				}
				err.BadStart = append(err.BadStart, line)
				continue
			}

			h[len(h)-1] += Line("\n" + line)
			continue
		}

		h = append(h, Line(line))
	}

	if err != nil {
		return h, err
	}
	return h, nil
}

// Field is a logical header line split into its name and body. The body is
// kept exactly as it followed the colon, leading whitespace and folding
// included.
type Field struct {
	name string
	body string
}

// Parse splits a logical line into a Field. The name is everything before
// the first colon. The line is rejected with ErrMissingName if whitespace
// comes before the first colon or if the name is empty.
func Parse(l Line) (*Field, error) {
	s := string(l)
	ix := strings.IndexAny(s, ": \t\n\r\v\f")
	if ix <= 0 || s[ix] != ':' {
		return nil, ErrMissingName
	}

	return &Field{name: s[:ix], body: s[ix+1:]}, nil
}

// Name returns the name of the header field as it appeared in the input.
func (f *Field) Name() string {
	return f.name
}

// Body returns the raw value of the header field.
func (f *Field) Body() string {
	return f.body
}

// String returns the complete header field as a string.
func (f *Field) String() string {
	return f.name + ":" + f.body
}
