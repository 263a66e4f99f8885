package message

import (
	"bufio"
	"errors"
	"io"

	"github.com/zostay/mailinject/message/header"
	"github.com/zostay/mailinject/message/header/field"
)

// Constants related to Parse() options.
const (
	// DefaultMaxHeaderLength is the default maximum byte length to scan before
	// giving up on finding the end of the header. Zero means no limit.
	DefaultMaxHeaderLength = 0

	// DefaultBufferSize is the size of the read buffer wrapped around the
	// input while the header is read.
	DefaultBufferSize = 16_384
)

// ErrLargeHeader is returned by Parse when the header is longer than the
// configured WithMaxHeaderLength option.
var ErrLargeHeader = errors.New("the header exceeds the maximum parse length")

type parser struct {
	maxHeaderLen int
	bufferSize   int
}

var defaultParser = parser{
	maxHeaderLen: DefaultMaxHeaderLength,
	bufferSize:   DefaultBufferSize,
}

// ParseOption refers to options that may be passed to the Parse function to
// modify how the parser works.
type ParseOption func(pr *parser)

// WithMaxHeaderLength is a ParseOption that sets the maximum size the header
// is allowed to reach before parsing exits with an ErrLargeHeader error.
// Setting this to a value less than or equal to 0 will result in there being
// no maximum length, which is the default.
func WithMaxHeaderLength(n int) ParseOption {
	return func(pr *parser) { pr.maxHeaderLen = n }
}

// WithBufferSize is a ParseOption that controls the size of the read buffer.
func WithBufferSize(n int) ParseOption {
	return func(pr *parser) { pr.bufferSize = n }
}

// readHeader reads physical lines up to and including the blank line that
// ends the header, or up to the end of input. It returns the lines without
// their line breaks and the break found on the first line.
func (pr *parser) readHeader(r *bufio.Reader) ([]string, header.Break, error) {
	var (
		lines []string
		lb    = header.Meh
		total int
	)
	for {
		raw, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, lb, err
		}

		total += len(raw)
		if pr.maxHeaderLen > 0 && total > pr.maxHeaderLen {
			return nil, lb, ErrLargeHeader
		}

		line, b := header.Cut(raw)
		if lb == header.Meh {
			lb = b
		}

		if line == "" {
			return lines, lb, nil
		}

		lines = append(lines, line)

		if err != nil {
			return lines, lb, nil
		}
	}
}

// Parse will consume the header from the given reader and return an Opaque
// message holding the logical header lines and a reader for the body.
//
// The header ends at the first empty line, which is consumed, or at the end
// of input. Both CRLF and LF line endings are accepted and removed from the
// header lines. Folded fields are joined as described by field.ParseLines.
// Nothing after the header is read ahead of the caller except what sits in
// the read buffer, which remains available through the body reader.
//
// If the header starts with a continuation line, a *field.BadStartError is
// returned along with the message. This error is recoverable: the skipped
// lines are reported in the error and the rest of the message is intact.
func Parse(r io.Reader, opts ...ParseOption) (*Opaque, error) {
	pr := defaultParser
	for _, opt := range opts {
		opt(&pr)
	}

	br := bufio.NewReaderSize(r, pr.bufferSize)
	physical, lb, err := pr.readHeader(br)
	if err != nil {
		return nil, err
	}

	lines, err := field.ParseLines(physical)

	var badStartErr *field.BadStartError // recoverable
	var finalErr error
	if errors.As(err, &badStartErr) {
		finalErr = badStartErr
	} else if err != nil {
		return nil, err
	}

	return &Opaque{
		Break:  lb,
		Lines:  lines,
		Reader: br,
	}, finalErr
}
