package header

import "strings"

// Break represents the line break found at the end of a header line.
type Break string

// These are the line breaks accepted on input. Output always uses LF.
const (
	Meh  Break = ""         // no break, the last line of input
	CRLF Break = "\x0d\x0a" // \r\n - Network linebreak
	LF   Break = "\x0a"     // \n - Unix/Linux/BSD linebreak
)

// Cut removes the line break from the end of a physical line and reports
// which break it was. A lone CR is not a line break and is left in place.
func Cut(line string) (string, Break) {
	for _, b := range []Break{CRLF, LF} {
		if rest, found := strings.CutSuffix(line, b.String()); found {
			return rest, b
		}
	}
	return line, Meh
}

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}
