// Package envelope accumulates the delivery envelope of a message: the
// sender and the recipients.
//
// Header fields come in two blocks. The original block describes the message
// as first written. A resent block, made of Resent-* fields, describes the
// message as it is forwarded again, and only the most recent one matters for
// delivery. The Envelope is a two-state machine that starts out in Original
// and moves to Resent on the first resent field. It never moves back.
package envelope

// State names the header block whose fields are honored.
type State int

// These are the states of an Envelope.
const (
	Original State = iota // honoring the original header block
	Resent                // honoring the resent block
)

// String returns the name of the state.
func (s State) String() string {
	if s == Resent {
		return "resent"
	}
	return "original"
}

// stateOf returns the state whose fields are honored for a field that is or
// is not part of a resent block.
func stateOf(resent bool) State {
	if resent {
		return Resent
	}
	return Original
}

// Envelope holds the sender and recipients of one message. Create one per
// message with New.
type Envelope struct {
	state            State
	sender           string
	fixed            bool
	recipients       []string
	headerRecipients bool
}

// New returns an empty Envelope in the Original state. If headerRecipients is
// false, recipients found in header fields are never collected and the
// recipients added with AddRecipients survive a resent block.
func New(headerRecipients bool) *Envelope {
	return &Envelope{headerRecipients: headerRecipients}
}

// State returns the current state.
func (e *Envelope) State() State {
	return e.state
}

// HeaderRecipients returns true if header fields may supply recipients.
func (e *Envelope) HeaderRecipients() bool {
	return e.headerRecipients
}

// Sender returns the envelope sender. It is empty while unresolved.
func (e *Envelope) Sender() string {
	return e.sender
}

// Recipients returns a copy of the recipients in the order they were found.
func (e *Envelope) Recipients() []string {
	rs := make([]string, len(e.recipients))
	copy(rs, e.recipients)
	return rs
}

// SetSender sets the sender unconditionally. It is meant for a sender
// supplied before any header field is seen. A sender set this way is fixed:
// no header field can change it afterward and the resent transition keeps it.
func (e *Envelope) SetSender(addr string) {
	e.sender = addr
	e.fixed = addr != ""
}

// AddRecipients appends recipients that did not come from the header, such as
// those named on the command line.
func (e *Envelope) AddRecipients(addrs ...string) {
	e.recipients = append(e.recipients, addrs...)
}

// Enter is called for every recognized header field before it is used. When a
// resent field arrives in the Original state, the machine moves to Resent:
// the sender is forgotten unless it is fixed and, when header recipients are
// enabled, so are the recipients. Enter returns true only for the call that made the transition.
func (e *Envelope) Enter(resent bool) bool {
	if !resent || e.state == Resent {
		return false
	}

	e.state = Resent
	if !e.fixed {
		e.sender = ""
	}
	if e.headerRecipients {
		e.recipients = nil
	}

	return true
}

// OfferRecipients adds recipients parsed from a header field. They are taken
// only when header recipients are enabled and the field belongs to the block
// of the current state. It returns true if they were taken.
func (e *Envelope) OfferRecipients(resent bool, addrs []string) bool {
	if !e.headerRecipients || stateOf(resent) != e.state {
		return false
	}

	e.recipients = append(e.recipients, addrs...)
	return true
}

// OfferSender sets the sender from a header field. The first offer from the
// block of the current state wins, so it is taken only while the sender is
// still unresolved. It returns true if it was taken.
func (e *Envelope) OfferSender(resent bool, addr string) bool {
	if e.sender != "" || addr == "" || stateOf(resent) != e.state {
		return false
	}

	e.sender = addr
	return true
}

// DefaultSender sets the sender only if it is still unresolved.
func (e *Envelope) DefaultSender(addr string) {
	if e.sender == "" {
		e.sender = addr
	}
}
