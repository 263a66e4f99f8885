package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/zostay/mailinject/message/header"
)

// MessageID returns a new, unique Message-Id field body for the given host.
func MessageID(idHost string) string {
	return "<" + time.Now().UTC().Format("20060102150405") + "." + uuid.NewString() + "@" + idHost + ">"
}

// Date returns a Date field body for the given time.
func Date(t time.Time) string {
	return header.FormatTime(t)
}
