package message

import (
	"io"

	"github.com/zostay/mailinject/message/header"
	"github.com/zostay/mailinject/message/header/field"
)

// Opaque is a message split into its header and its body. The body is left
// unread and is never interpreted.
type Opaque struct {
	// Break is the line break found at the end of the first header line.
	Break header.Break

	// Lines holds the logical header lines in input order.
	Lines field.Lines

	// Reader will contain the body content of the message.
	io.Reader
}

// GetReader returns the reader for the message body.
func (m *Opaque) GetReader() io.Reader {
	return m.Reader
}
