package identity

import (
	"mime"
	"strings"
	"unicode"

	"github.com/spf13/viper"
	"golang.org/x/text/unicode/norm"
)

// These are the keys bound to the environment by NewEnv.
const (
	KeyUser       = "user"
	KeyHost       = "host"
	KeyName       = "name"
	KeySenderUser = "suser"
	KeySenderHost = "shost"
	KeyFlags      = "flags"
)

// UnknownUser is the user name used when the environment names none.
const UnknownUser = "unknown"

// NewEnv returns a viper instance with the identity keys bound to the
// environment. Each key is bound to several variables, tried in order, and
// the first one set to a non-empty value wins.
func NewEnv() *viper.Viper {
	v := viper.New()
	_ = v.BindEnv(KeyUser, "NULLMAILER_USER", "MAILUSER", "USER", "LOGNAME")
	_ = v.BindEnv(KeyHost, "NULLMAILER_HOST", "MAILHOST", "HOSTNAME")
	_ = v.BindEnv(KeyName, "NULLMAILER_NAME", "MAILNAME", "NAME")
	_ = v.BindEnv(KeySenderUser, "NULLMAILER_SUSER")
	_ = v.BindEnv(KeySenderHost, "NULLMAILER_SHOST")
	_ = v.BindEnv(KeyFlags, "NULLMAILER_FLAGS")
	v.SetDefault(KeyUser, UnknownUser)
	return v
}

// Identity is the person submitting the message, as far as it can be worked
// out from the environment.
type Identity struct {
	User       string
	Host       string
	Name       string
	SenderUser string
	SenderHost string
}

// Resolve works out the identity from the given environment. Host names fall
// back on the configured default host and are canonicalized. The sender user
// and host fall back on the user and host.
func Resolve(v *viper.Viper, cfg *Config) *Identity {
	id := &Identity{
		User: v.GetString(KeyUser),
		Host: v.GetString(KeyHost),
		Name: v.GetString(KeyName),
	}

	if id.User == "" {
		id.User = UnknownUser
	}

	if id.Host == "" {
		id.Host = cfg.DefaultHost
	}
	id.Host = cfg.Canonicalize(id.Host)

	id.SenderUser = v.GetString(KeySenderUser)
	if id.SenderUser == "" {
		id.SenderUser = id.User
	}

	id.SenderHost = v.GetString(KeySenderHost)
	if id.SenderHost == "" {
		id.SenderHost = id.Host
	}
	id.SenderHost = cfg.Canonicalize(id.SenderHost)

	return id
}

// Address returns user@host.
func (id *Identity) Address() string {
	return id.User + "@" + id.Host
}

// EnvelopeSender returns the address to use as envelope sender when the
// message supplies none. It never includes a display name.
func (id *Identity) EnvelopeSender() string {
	return id.SenderUser + "@" + id.SenderHost
}

// From renders the identity as the body of a From field. By default, the
// display name comes first, "Name <user@host>", or just "<user@host>" when
// there is no name. With commentStyle, the name follows in a comment,
// "user@host (Name)", or just "user@host".
func (id *Identity) From(commentStyle bool) string {
	if commentStyle {
		if id.Name == "" {
			return id.Address()
		}
		return id.Address() + " (" + encodeWord(id.Name) + ")"
	}

	if id.Name == "" {
		return "<" + id.Address() + ">"
	}
	return phrase(id.Name) + " <" + id.Address() + ">"
}

// encodeWord normalizes the name and applies RFC 2047 encoding to it if it
// is not plain ASCII.
func encodeWord(name string) string {
	name = norm.NFC.String(name)
	for _, r := range name {
		if r > unicode.MaxASCII {
			return mime.QEncoding.Encode("utf-8", name)
		}
	}
	return name
}

// phrase renders the name as the display name of a mailbox, quoting it when
// it contains characters that are special in a phrase.
func phrase(name string) string {
	enc := encodeWord(name)
	if enc != name || !strings.ContainsAny(name, `()<>[]:;@\,."`) {
		return enc
	}

	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(name) + `"`
}
