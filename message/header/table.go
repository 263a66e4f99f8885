package header

import "strings"

// Kind is the stable identifier of a recognized header field. It is used to
// refer to a particular field in a Table without depending on the order of
// the catalog.
type Kind int

// These are the recognized header fields.
const (
	KindSender Kind = iota
	KindFrom
	KindReplyTo
	KindReturnPath
	KindReturnReceiptTo
	KindErrorsTo
	KindResentSender
	KindResentFrom
	KindResentReplyTo
	KindTo
	KindCc
	KindBcc
	KindApparentlyTo
	KindResentTo
	KindResentCc
	KindResentBcc
	KindDate
	KindMessageID
	KindResentDate
	KindResentMessageID
	KindContentLength

	kindCount
)

// Flag describes how a recognized header field is to be treated.
type Flag uint8

// These are the flags that may be set on a Descriptor.
const (
	// IsAddress means the field body holds an address list to parse.
	IsAddress Flag = 1 << iota

	// IsRecipient means the parsed addresses are envelope recipients.
	IsRecipient

	// IsSender means the parsed address may become the envelope sender.
	IsSender

	// IsResent marks the Resent-* variants.
	IsResent

	// Remove means the field is stripped from the output after parsing.
	Remove

	// Ignore means the field is passed through without being parsed.
	Ignore
)

// Descriptor is the immutable description of a recognized header field.
type Descriptor struct {
	Kind  Kind
	Name  string
	Flags Flag
}

// Has returns true if every flag in f is set on the descriptor.
func (d Descriptor) Has(f Flag) bool {
	return d.Flags&f == f
}

var catalog = [kindCount]Descriptor{
	KindSender:          {KindSender, Sender, IsAddress | IsSender},
	KindFrom:            {KindFrom, From, IsAddress | IsSender},
	KindReplyTo:         {KindReplyTo, ReplyTo, IsAddress},
	KindReturnPath:      {KindReturnPath, ReturnPath, IsAddress | IsSender | Remove},
	KindReturnReceiptTo: {KindReturnReceiptTo, ReturnReceiptTo, IsAddress},
	KindErrorsTo:        {KindErrorsTo, ErrorsTo, IsAddress},
	KindResentSender:    {KindResentSender, ResentSender, IsAddress | IsSender | IsResent},
	KindResentFrom:      {KindResentFrom, ResentFrom, IsAddress | IsSender | IsResent},
	KindResentReplyTo:   {KindResentReplyTo, ResentReplyTo, IsAddress | IsResent},
	KindTo:              {KindTo, To, IsAddress | IsRecipient},
	KindCc:              {KindCc, Cc, IsAddress | IsRecipient},
	KindBcc:             {KindBcc, Bcc, IsAddress | IsRecipient | Remove},
	KindApparentlyTo:    {KindApparentlyTo, ApparentlyTo, IsAddress | IsRecipient},
	KindResentTo:        {KindResentTo, ResentTo, IsAddress | IsRecipient | IsResent},
	KindResentCc:        {KindResentCc, ResentCc, IsAddress | IsRecipient | IsResent},
	KindResentBcc:       {KindResentBcc, ResentBcc, IsAddress | IsRecipient | IsResent | Remove},
	KindDate:            {KindDate, Date, 0},
	KindMessageID:       {KindMessageID, MessageID, 0},
	KindResentDate:      {KindResentDate, ResentDate, IsResent},
	KindResentMessageID: {KindResentMessageID, ResentMessageID, IsResent},
	KindContentLength:   {KindContentLength, ContentLength, Remove},
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(catalog))
	for _, d := range catalog {
		m[strings.ToLower(d.Name)] = d.Kind
	}
	return m
}()

// String returns the canonical field name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return catalog[k].Name
}

// Catalog returns a copy of the descriptors of every recognized field.
func Catalog() []Descriptor {
	ds := make([]Descriptor, len(catalog))
	copy(ds, catalog[:])
	return ds
}

// Table is the per-message working copy of the catalog. Along with the
// descriptors, which may be adjusted by TableOption, it tracks which fields
// have been seen in the message being processed.
//
// A Table must not be shared between messages.
type Table struct {
	entries [kindCount]Descriptor
	replace [kindCount]bool
	present [kindCount]bool
}

// TableOption modifies the descriptors of a new Table.
type TableOption func(t *Table)

// WithReplaced is a TableOption that causes the named field to be dropped from
// the message without being parsed or marked present. Any such field in the
// input is thereby replaced by whatever is generated for it later.
func WithReplaced(k Kind) TableOption {
	return func(t *Table) {
		t.replace[k] = true
		t.entries[k].Flags |= Ignore | Remove
	}
}

// NewTable returns a fresh Table with nothing marked present.
func NewTable(opts ...TableOption) *Table {
	t := &Table{entries: catalog}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Lookup finds the descriptor for the given field name. Names are matched
// without regard to case. It returns false if the field is not recognized.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	k, found := byName[strings.ToLower(name)]
	if !found {
		return Descriptor{}, false
	}
	return t.entries[k], true
}

// Replaced returns true if the field was configured with WithReplaced.
func (t *Table) Replaced(k Kind) bool {
	return t.replace[k]
}

// MarkPresent records that the field has been seen.
func (t *Table) MarkPresent(k Kind) {
	t.present[k] = true
}

// Present returns true if the field has been seen or generated.
func (t *Table) Present(k Kind) bool {
	return t.present[k]
}
