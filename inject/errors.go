package inject

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the Injector.
var (
	// ErrHeaderErrors is matched by the *HeaderError returned when one or
	// more header lines could not be processed.
	ErrHeaderErrors = errors.New("the header contains errors")

	// ErrNoRecipients is returned when no recipient could be found for the
	// message.
	ErrNoRecipients = errors.New("no recipients were listed")

	// ErrInvalidSender is returned when the sender given to SetSender is not
	// exactly one valid address.
	ErrInvalidSender = errors.New("invalid sender address")

	// ErrInvalidRecipient is returned when a recipient argument cannot be
	// parsed.
	ErrInvalidRecipient = errors.New("invalid recipient")
)

// These are the reasons recorded in a Diagnostic.
const (
	ReasonContinuation = "First line cannot be a continuation line."
	ReasonMissingName  = "Missing field name."
	ReasonBadAddresses = "Unable to parse the addresses."
)

// Diagnostic records a header line that could not be processed.
type Diagnostic struct {
	Line   string
	Reason string
}

// String returns the diagnostic the way it is shown to the user.
func (d Diagnostic) String() string {
	return "Invalid header line:\n  " + d.Line + "\n  " + d.Reason
}

// HeaderError is returned once the whole header has been read if any line
// in it could not be processed.
type HeaderError struct {
	Diagnostics []Diagnostic
}

// Error returns the error message.
func (err *HeaderError) Error() string {
	ds := make([]string, len(err.Diagnostics))
	for i, d := range err.Diagnostics {
		ds[i] = d.String()
	}
	return fmt.Sprintf("%v:\n%s", ErrHeaderErrors, strings.Join(ds, "\n"))
}

// Is matches ErrHeaderErrors.
func (err *HeaderError) Is(target error) bool {
	return target == ErrHeaderErrors
}
