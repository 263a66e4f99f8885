// Package inject reformats a submitted message for queuing. It reads the
// header, works out the envelope from it, cleans the header up, and adds the
// fields every message must have.
//
// An Injector handles exactly one message:
//
//	inj := inject.New(
//	  inject.WithConfig(cfg),
//	  inject.WithIdentity(id),
//	  inject.WithHeaderRecipients(mode.HeaderRecipients(len(args))),
//	)
//	if err := inj.AddRecipientArgs(args...); err != nil {
//	  return err
//	}
//
//	m, err := inj.Inject(os.Stdin)
//	if err != nil {
//	  return err
//	}
//
//	return transport.Send(m)
package inject

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/zostay/mailinject/address"
	"github.com/zostay/mailinject/envelope"
	"github.com/zostay/mailinject/identity"
	"github.com/zostay/mailinject/message"
	"github.com/zostay/mailinject/message/header"
	"github.com/zostay/mailinject/message/header/field"
	"github.com/zostay/mailinject/queue"
)

// Placeholder is added to a header that names no visible recipients.
const Placeholder = "Cc: recipient list not shown: ;"

// Injector processes a single message. Create one with New for each message.
type Injector struct {
	addrs            *address.Parser
	table            *header.Table
	env              *envelope.Envelope
	headerRecipients bool

	headers     []string
	diags       []Diagnostic
	synthesized bool

	flags     Flags
	id        *identity.Identity
	idHost    string
	now       func() time.Time
	messageID func() string
	logger    *slog.Logger
	parseOpts []message.ParseOption
}

// Option configures a new Injector.
type Option func(inj *Injector)

// WithLogger sets the logger. By default, nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(inj *Injector) { inj.logger = l }
}

// WithFlags sets the flags.
func WithFlags(f Flags) Option {
	return func(inj *Injector) { inj.flags = f }
}

// WithConfig sets the host used to qualify bare local parts and the host used
// in generated Message-Ids.
func WithConfig(cfg *identity.Config) Option {
	return func(inj *Injector) {
		inj.addrs = &address.Parser{DefaultHost: cfg.DefaultHost}
		inj.idHost = cfg.IDHost
	}
}

// WithIdentity sets the identity used to generate From and the default
// envelope sender.
func WithIdentity(id *identity.Identity) Option {
	return func(inj *Injector) { inj.id = id }
}

// WithHeaderRecipients enables or disables collecting recipients from the
// header. It is enabled by default.
func WithHeaderRecipients(enabled bool) Option {
	return func(inj *Injector) { inj.headerRecipients = enabled }
}

// WithClock sets the source of the time put into generated Date fields.
func WithClock(now func() time.Time) Option {
	return func(inj *Injector) { inj.now = now }
}

// WithMessageID sets the generator of Message-Id field bodies.
func WithMessageID(gen func() string) Option {
	return func(inj *Injector) { inj.messageID = gen }
}

// WithParseOptions passes options to message.Parse.
func WithParseOptions(opts ...message.ParseOption) Option {
	return func(inj *Injector) { inj.parseOpts = append(inj.parseOpts, opts...) }
}

// New returns an Injector ready for a new message.
func New(opts ...Option) *Injector {
	inj := &Injector{
		addrs:            &address.Parser{},
		headerRecipients: true,
		idHost:           "localhost",
		now:              time.Now,
		id: &identity.Identity{
			User:       identity.UnknownUser,
			Host:       "localhost",
			SenderUser: identity.UnknownUser,
			SenderHost: "localhost",
		},
	}

	for _, opt := range opts {
		opt(inj)
	}

	if inj.logger == nil {
		inj.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if inj.messageID == nil {
		inj.messageID = func() string { return identity.MessageID(inj.idHost) }
	}

	inj.table = header.NewTable(inj.flags.tableOptions()...)
	inj.env = envelope.New(inj.headerRecipients)

	return inj
}

// Envelope returns the envelope built so far.
func (inj *Injector) Envelope() *envelope.Envelope {
	return inj.env
}

// Headers returns a copy of the output header lines built so far.
func (inj *Injector) Headers() []string {
	hs := make([]string, len(inj.headers))
	copy(hs, inj.headers)
	return hs
}

// Diagnostics returns the header problems recorded so far.
func (inj *Injector) Diagnostics() []Diagnostic {
	ds := make([]Diagnostic, len(inj.diags))
	copy(ds, inj.diags)
	return ds
}

// Present returns true if the given field was found in the header or has
// been generated.
func (inj *Injector) Present(k header.Kind) bool {
	return inj.table.Present(k)
}

// SetSender sets the envelope sender before the header is read. It must be
// exactly one address. The header cannot change a sender set this way.
func (inj *Injector) SetSender(raw string) error {
	a, err := inj.addrs.ParseOne(raw)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidSender, raw, err)
	}

	inj.env.SetSender(a)
	return nil
}

// AddRecipientArgs parses each argument as a list of addresses and adds them
// to the recipients. Every argument is tried. If any fail, the error returned
// names each failure.
func (inj *Injector) AddRecipientArgs(args ...string) error {
	var errs []error
	for _, arg := range args {
		l, err := inj.addrs.Parse(arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w %q: %w", ErrInvalidRecipient, arg, err))
			continue
		}
		inj.env.AddRecipients(l.Addresses...)
	}
	return errors.Join(errs...)
}

// bad records a diagnostic for a line that could not be processed.
func (inj *Injector) bad(line, reason string) {
	inj.diags = append(inj.diags, Diagnostic{Line: line, Reason: reason})
	inj.logger.Warn("invalid header line", "line", line, "reason", reason)
}

// ProcessLine classifies one logical header line. It updates the envelope
// and the fields present, and adds the line, possibly rewritten, to the
// output header unless it is to be dropped.
func (inj *Injector) ProcessLine(l field.Line) {
	f, err := field.Parse(l)
	if err != nil {
		inj.bad(string(l), ReasonMissingName)
		return
	}

	d, found := inj.table.Lookup(f.Name())
	if !found {
		inj.headers = append(inj.headers, string(l))
		return
	}

	if d.Has(header.Ignore) {
		if inj.table.Replaced(d.Kind) {
			inj.logger.Debug("dropping field to be replaced", "field", d.Name)
		} else {
			inj.table.MarkPresent(d.Kind)
		}
		if !d.Has(header.Remove) {
			inj.headers = append(inj.headers, string(l))
		}
		return
	}

	resent := d.Has(header.IsResent)
	if inj.env.Enter(resent) {
		inj.logger.Debug("resent block begins", "field", d.Name)
	}

	line := string(l)
	if d.Has(header.IsAddress) {
		line = inj.processAddresses(d, f, line)
	}

	if d.Kind == header.KindDate || d.Kind == header.KindResentDate {
		if _, err := header.ParseTime(strings.TrimSpace(f.Body())); err != nil {
			inj.logger.Warn("unrecognized date", "field", d.Name, "error", err)
		}
	}

	inj.table.MarkPresent(d.Kind)
	if !d.Has(header.Remove) {
		inj.headers = append(inj.headers, line)
	}
}

// processAddresses parses the addresses of an address field and offers them
// to the envelope. It returns the line to output: rewritten with the
// normalized list or, if parsing failed, the original line.
func (inj *Injector) processAddresses(d header.Descriptor, f *field.Field, line string) string {
	l, err := inj.addrs.Parse(f.Body())
	if err != nil {
		inj.bad(line, ReasonBadAddresses)
		return line
	}

	resent := d.Has(header.IsResent)
	switch {
	case d.Has(header.IsRecipient):
		if inj.env.OfferRecipients(resent, l.Addresses) {
			inj.logger.Debug("recipients from header", "field", d.Name, "recipients", l.Addresses)
		}
	case d.Has(header.IsSender):
		if l.Len() != 1 {
			inj.logger.Warn("sender field does not name exactly one address",
				"field", d.Name, "count", l.Len())
		} else if inj.env.OfferSender(resent, l.Addresses[0]) {
			inj.logger.Debug("sender from header", "field", d.Name, "sender", l.Addresses[0])
		}
	}

	if l.Formatted == "" {
		return d.Name + ":"
	}
	return d.Name + ": " + l.Formatted
}

// ReadHeader reads the header from r and processes every line in it. It
// returns the reader for the body, which is left unread. Problems with
// individual lines are recorded as diagnostics and are not returned here.
func (inj *Injector) ReadHeader(r io.Reader) (io.Reader, error) {
	m, err := message.Parse(r, inj.parseOpts...)

	var badStartErr *field.BadStartError
	if errors.As(err, &badStartErr) {
		for _, line := range badStartErr.BadStart {
			inj.bad(line, ReasonContinuation)
		}
	} else if err != nil {
		return nil, fmt.Errorf("unable to read header: %w", err)
	}

	inj.logger.Debug("header read", "lines", len(m.Lines), "crlf", m.Break == header.CRLF)

	for _, l := range m.Lines {
		inj.ProcessLine(l)
	}

	return m.GetReader(), nil
}

// block names the fields that make up one header block.
type block struct {
	date, messageID, from, to, cc header.Kind
}

var (
	originalBlock = block{header.KindDate, header.KindMessageID, header.KindFrom, header.KindTo, header.KindCc}
	resentBlock   = block{header.KindResentDate, header.KindResentMessageID, header.KindResentFrom, header.KindResentTo, header.KindResentCc}
)

// add appends a generated field and marks it present.
func (inj *Injector) add(k header.Kind, body string) {
	inj.headers = append(inj.headers, k.String()+": "+body)
	inj.table.MarkPresent(k)
	inj.logger.Debug("generated field", "field", k.String())
}

// Synthesize adds the mandatory fields missing from the header to the
// current block: Date, Message-Id, From and, when the AddTo flag is set, To
// listing the recipients. Finally, if the header has neither To nor Cc, the
// Placeholder is added. It does nothing when called again.
func (inj *Injector) Synthesize() {
	if inj.synthesized {
		return
	}
	inj.synthesized = true

	b := originalBlock
	if inj.env.State() == envelope.Resent {
		b = resentBlock
	}

	if !inj.table.Present(b.date) {
		inj.add(b.date, identity.Date(inj.now()))
	}

	if !inj.table.Present(b.messageID) {
		inj.add(b.messageID, inj.messageID())
	}

	if !inj.table.Present(b.from) {
		inj.add(b.from, inj.id.From(inj.flags.CommentStyle))
	}

	rs := inj.env.Recipients()
	if !inj.table.Present(b.to) && !inj.table.Present(b.cc) && inj.flags.AddTo && len(rs) > 0 {
		inj.add(b.to, strings.Join(rs, ", "))
	}

	if !inj.table.Present(header.KindTo) && !inj.table.Present(header.KindCc) {
		inj.headers = append(inj.headers, Placeholder)
	}
}

// Inject reads the message from r and returns it ready for queuing.
//
// It fails with a *HeaderError if any header line could not be processed
// and with ErrNoRecipients if there is no one to deliver to. The body of the
// message returned reads the rest of r.
func (inj *Injector) Inject(r io.Reader) (*queue.Message, error) {
	body, err := inj.ReadHeader(r)
	if err != nil {
		return nil, err
	}

	if len(inj.diags) > 0 {
		return nil, &HeaderError{Diagnostics: inj.Diagnostics()}
	}

	inj.Synthesize()
	inj.env.DefaultSender(inj.id.EnvelopeSender())

	rs := inj.env.Recipients()
	if len(rs) == 0 {
		return nil, ErrNoRecipients
	}

	inj.logger.Debug("message ready",
		"sender", inj.env.Sender(),
		"recipients", rs,
		"block", inj.env.State().String())

	return &queue.Message{
		Sender:     inj.env.Sender(),
		Recipients: rs,
		Header:     inj.Headers(),
		Body:       body,
	}, nil
}
