// Package queue writes a reformatted message to the program that queues it
// for delivery, or to a display instead.
//
// The wire format has three sections, each ending with an empty line except
// the last: the envelope (the sender, then one recipient per line), the
// header (one field per line), and the body, copied byte-for-byte.
package queue

import (
	"bufio"
	"fmt"
	"io"
)

// Section names one of the three parts of the wire format.
type Section int

// These are the sections, in the order they are written.
const (
	SectionEnvelope Section = iota
	SectionHeader
	SectionBody
)

// String returns the name of the section.
func (s Section) String() string {
	switch s {
	case SectionEnvelope:
		return "envelope"
	case SectionHeader:
		return "header"
	case SectionBody:
		return "message body"
	default:
		return "unknown section"
	}
}

// SendError is returned when writing a section fails. Nothing after the
// failed section is written.
type SendError struct {
	Section Section
	Err     error
}

// Error returns the error message.
func (err *SendError) Error() string {
	return fmt.Sprintf("error sending %s: %v", err.Section, err.Err)
}

// Unwrap returns the write error.
func (err *SendError) Unwrap() error {
	return err.Err
}

// Message is a reformatted message ready to be queued.
type Message struct {
	// Sender is the envelope sender.
	Sender string

	// Recipients are the envelope recipients, in order.
	Recipients []string

	// Header holds the complete header lines, in order. Folded lines
	// contain "\n" between their physical lines.
	Header []string

	// Body is copied as-is after the header. It may be nil.
	Body io.Reader
}

// counter counts the bytes written through it.
type counter struct {
	w io.Writer
	n int64
}

func (c *counter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeLines writes each line followed by a line break and then one more line
// break to end the section.
func writeLines(w io.Writer, lines ...[]string) error {
	bw := bufio.NewWriter(w)
	for _, ls := range lines {
		for _, l := range ls {
			if _, err := bw.WriteString(l); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}

	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	return bw.Flush()
}

// WriteEnvelope writes the envelope section.
func (m *Message) WriteEnvelope(w io.Writer) error {
	if err := writeLines(w, []string{m.Sender}, m.Recipients); err != nil {
		return &SendError{SectionEnvelope, err}
	}
	return nil
}

// WriteHeader writes the header section.
func (m *Message) WriteHeader(w io.Writer) error {
	if err := writeLines(w, m.Header); err != nil {
		return &SendError{SectionHeader, err}
	}
	return nil
}

// WriteBody copies the body. This can only be done once as it consumes the
// body reader.
func (m *Message) WriteBody(w io.Writer) error {
	if m.Body == nil {
		return nil
	}

	if _, err := io.Copy(w, m.Body); err != nil {
		return &SendError{SectionBody, err}
	}
	return nil
}

// write writes the sections in order, stopping at the first failure.
func (m *Message) write(w io.Writer, envelope bool) (int64, error) {
	c := &counter{w: w}
	if envelope {
		if err := m.WriteEnvelope(c); err != nil {
			return c.n, err
		}
	}

	if err := m.WriteHeader(c); err != nil {
		return c.n, err
	}

	err := m.WriteBody(c)
	return c.n, err
}

// WriteTo writes all three sections to w. It returns the number of bytes
// written and a *SendError if any write fails.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	return m.write(w, true)
}

// WriteContentTo writes the message without its envelope: the header and the
// body.
func (m *Message) WriteContentTo(w io.Writer) (int64, error) {
	return m.write(w, false)
}
