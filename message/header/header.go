package header

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"
)

// These are the header fields the injector knows how to handle. Most are
// defined in RFC 5322. The rest are obsolete or common extensions still seen
// on mail submitted by older programs.
const (
	ApparentlyTo    = "Apparently-To"
	Bcc             = "Bcc"
	Cc              = "Cc"
	ContentLength   = "Content-Length"
	Date            = "Date"
	ErrorsTo        = "Errors-To"
	From            = "From"
	MessageID       = "Message-Id"
	ReplyTo         = "Reply-To"
	ResentBcc       = "Resent-Bcc"
	ResentCc        = "Resent-Cc"
	ResentDate      = "Resent-Date"
	ResentFrom      = "Resent-From"
	ResentMessageID = "Resent-Message-Id"
	ResentReplyTo   = "Resent-Reply-To"
	ResentSender    = "Resent-Sender"
	ResentTo        = "Resent-To"
	ReturnPath      = "Return-Path"
	ReturnReceiptTo = "Return-Receipt-To"
	Sender          = "Sender"
	To              = "To"
)

// Even more custom date formats, built from those seen in the wild that the
// usual parsers have trouble with.
const (
	// UnixDateWithEarlyYear is a weird one, eh?
	UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"
)

// ParseTime will attempt to parse the date using the format specified by RFC
// 5322 first and fallback to parsing it in many other formats.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// FormatTime renders t the way the Date and Resent-Date fields are written
// when they are generated.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC1123Z)
}
