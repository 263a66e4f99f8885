package inject

import "fmt"

// RecipientMode selects where the recipients of a message come from: the
// arguments given with the message, its header, or both.
type RecipientMode int

// These are the recipient modes.
const (
	UseEither RecipientMode = iota // the arguments if there are any, else the header
	UseArgs                        // only the arguments
	UseBoth                        // the arguments and the header
	UseHeader                      // only the header, arguments are ignored
)

// String returns the name of the mode.
func (m RecipientMode) String() string {
	switch m {
	case UseEither:
		return "either"
	case UseArgs:
		return "args"
	case UseBoth:
		return "both"
	case UseHeader:
		return "header"
	default:
		return fmt.Sprintf("RecipientMode(%d)", int(m))
	}
}

// HeaderRecipients returns true if recipients are to be collected from the
// header, given the number of recipient arguments.
func (m RecipientMode) HeaderRecipients(nargs int) bool {
	switch m {
	case UseArgs:
		return false
	case UseEither:
		return nargs == 0
	default:
		return true
	}
}

// ArgRecipients returns true if the recipient arguments are to be used.
func (m RecipientMode) ArgRecipients() bool {
	return m != UseHeader
}
