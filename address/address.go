// Package address turns raw address list text, whether taken from a header
// field body or from the command line, into a normalized list of envelope
// addresses. Parsing is strict and is done by github.com/zostay/go-addr.
package address

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// ParseError is returned when a list of addresses cannot be parsed. No
// partial list accompanies it.
type ParseError struct {
	Input string // the text that failed to parse
	Err   error  // the underlying parser error
}

// Error returns the error message.
func (err *ParseError) Error() string {
	return fmt.Sprintf("unable to parse the addresses %q: %v", err.Input, err.Err)
}

// Unwrap returns the underlying parser error.
func (err *ParseError) Unwrap() error {
	return err.Err
}

// List is a successfully parsed address list.
type List struct {
	// Addresses holds the bare addr-spec of every mailbox, in order.
	Addresses []string

	// Formatted is the whole list rendered again, comma separated.
	Formatted string
}

// Len returns the number of addresses found.
func (l *List) Len() int {
	return len(l.Addresses)
}

// String returns the addresses one per line, each ending in a newline.
func (l *List) String() string {
	var sb strings.Builder
	for _, a := range l.Addresses {
		sb.WriteString(a)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// localPart matches an item that is nothing but a dot-atom local part.
var localPart = regexp.MustCompile("^[A-Za-z0-9!#$%&'*+/=?^_`{|}~.-]+$")

// Parser parses address lists. The zero value is ready to use, but will not
// qualify bare local parts.
type Parser struct {
	// DefaultHost is appended to any item of the list that is nothing more
	// than a local part, e.g., "root" becomes "root@DefaultHost".
	DefaultHost string
}

// Parse parses the given text as a comma separated list of addresses.
//
// Group syntax is accepted. The group is kept in the formatted text and each
// of its members is added to the addresses. An empty group adds nothing. An
// empty value parses successfully to an empty list.
//
// On failure, a *ParseError is returned.
func (p *Parser) Parse(raw string) (*List, error) {
	text := strings.TrimSpace(unfold(raw))
	if text == "" {
		return &List{}, nil
	}

	items, err := splitList(text, true)
	if err != nil {
		return nil, &ParseError{Input: raw, Err: err}
	}

	l := &List{}
	rendered := make([]string, 0, len(items))
	for _, it := range items {
		if !it.group {
			mb, err := p.parseMailbox(it.text)
			if err != nil {
				return nil, &ParseError{Input: raw, Err: err}
			}
			rendered = append(rendered, mb.formatted)
			l.Addresses = append(l.Addresses, mb.address)
			continue
		}

		members, err := splitList(it.text, false)
		if err != nil {
			return nil, &ParseError{Input: raw, Err: err}
		}

		formatted := make([]string, 0, len(members))
		for _, m := range members {
			mb, err := p.parseMailbox(m.text)
			if err != nil {
				return nil, &ParseError{Input: raw, Err: err}
			}
			formatted = append(formatted, mb.formatted)
			l.Addresses = append(l.Addresses, mb.address)
		}

		if len(formatted) == 0 {
			rendered = append(rendered, it.name+": ;")
		} else {
			rendered = append(rendered, it.name+": "+strings.Join(formatted, ", ")+";")
		}
	}
	l.Formatted = strings.Join(rendered, ", ")

	return l, nil
}

// mailbox is a single parsed mailbox.
type mailbox struct {
	address   string // bare addr-spec for the envelope
	formatted string // the mailbox as written, for the header
}

// parseMailbox parses one mailbox, qualifying it first if it is a bare local
// part.
func (p *Parser) parseMailbox(text string) (mb mailbox, err error) {
	if p.DefaultHost != "" && localPart.MatchString(text) {
		text += "@" + p.DefaultHost
	}

	// go-addr panics on some malformed input rather than returning an error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed address %q: %v", text, r)
		}
	}()

	m, err := addr.ParseEmailMailbox(text)
	if err != nil {
		return mailbox{}, err
	}

	formatted := strings.TrimSpace(m.OriginalString())
	if formatted == "" {
		formatted = m.CleanString()
	}

	return mailbox{
		address:   m.AddrSpec().CleanString(),
		formatted: formatted,
	}, nil
}

// item is one top-level element of an address list.
type item struct {
	group bool
	name  string // display name of a group
	text  string // the mailbox, or the member list of a group
}

// splitList splits an address list at the commas that separate its items.
// Commas inside quoted strings, comments, angle brackets and groups do not
// split. Groups are recognized only when allowGroups is set. Empty items are
// skipped.
func splitList(s string, allowGroups bool) ([]item, error) {
	var (
		items   []item
		quoted  bool
		escaped bool
		comment int
		angle   bool
		group   bool
		closed  bool
		start   int
		colon   int
	)

	flush := func(end int) error {
		text := strings.TrimSpace(s[start:end])
		switch {
		case text == "":
			return nil
		case closed:
			return fmt.Errorf("unexpected %q after group in %q", text, s)
		}
		items = append(items, item{text: text})
		return nil
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case quoted:
			switch c {
			case '\\':
				escaped = true
			case '"':
				quoted = false
			}
		case comment > 0:
			switch c {
			case '\\':
				escaped = true
			case '(':
				comment++
			case ')':
				comment--
			}
		default:
			switch c {
			case '"':
				quoted = true
			case '(':
				comment++
			case '<':
				angle = true
			case '>':
				angle = false
			case ':':
				if angle || group {
					break
				}
				if !allowGroups {
					return nil, fmt.Errorf("unexpected group in %q", s)
				}
				group = true
				colon = i
			case ';':
				if !group {
					return nil, fmt.Errorf("unexpected ';' in %q", s)
				}
				name := strings.TrimSpace(s[start:colon])
				if name == "" {
					return nil, fmt.Errorf("group without a name in %q", s)
				}
				items = append(items, item{
					group: true,
					name:  name,
					text:  s[colon+1 : i],
				})
				group = false
				closed = true
				start = i + 1
			case ',':
				if !angle && !group {
					if err := flush(i); err != nil {
						return nil, err
					}
					closed = false
					start = i + 1
				}
			}
		}
	}

	switch {
	case quoted || escaped:
		return nil, fmt.Errorf("unterminated quoted string in %q", s)
	case comment > 0:
		return nil, fmt.Errorf("unterminated comment in %q", s)
	case angle:
		return nil, fmt.Errorf("unterminated angle address in %q", s)
	case group:
		return nil, fmt.Errorf("unterminated group in %q", s)
	}

	if err := flush(len(s)); err != nil {
		return nil, err
	}
	return items, nil
}

// ParseOne parses text that must contain exactly one address. It returns
// that address.
func (p *Parser) ParseOne(raw string) (string, error) {
	l, err := p.Parse(raw)
	if err != nil {
		return "", err
	}

	if l.Len() != 1 {
		return "", &ParseError{
			Input: raw,
			Err:   fmt.Errorf("expected exactly one address, found %d", l.Len()),
		}
	}

	return l.Addresses[0], nil
}

// unfold removes the line breaks left from joining folded header lines.
func unfold(s string) string {
	return strings.NewReplacer("\r\n", "", "\n", "").Replace(s)
}
