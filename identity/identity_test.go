package identity_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/mailinject/identity"
)

var testConfig = &identity.Config{
	DefaultDomain: "example.com",
	DefaultHost:   "mail.example.com",
	IDHost:        "mail.example.com",
}

func TestResolve(t *testing.T) {
	t.Parallel()

	v := identity.NewEnv()
	v.Set(identity.KeyUser, "sterling")
	v.Set(identity.KeyHost, "desk")
	v.Set(identity.KeyName, "Sterling Hanenkamp")
	v.Set(identity.KeySenderUser, "")
	v.Set(identity.KeySenderHost, "")

	id := identity.Resolve(v, testConfig)
	assert.Equal(t, &identity.Identity{
		User:       "sterling",
		Host:       "desk.example.com",
		Name:       "Sterling Hanenkamp",
		SenderUser: "sterling",
		SenderHost: "desk.example.com",
	}, id)
	assert.Equal(t, "sterling@desk.example.com", id.EnvelopeSender())
}

func TestResolve_Fallbacks(t *testing.T) {
	t.Parallel()

	v := identity.NewEnv()
	v.Set(identity.KeyUser, "")
	v.Set(identity.KeyHost, "")
	v.Set(identity.KeyName, "")
	v.Set(identity.KeySenderUser, "bounces")
	v.Set(identity.KeySenderHost, "lists")

	id := identity.Resolve(v, testConfig)
	assert.Equal(t, identity.UnknownUser, id.User)
	assert.Equal(t, "mail.example.com", id.Host)
	assert.Equal(t, "bounces@lists.example.com", id.EnvelopeSender())
}

func TestIdentity_From(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		comment bool
		expect  string
	}{
		{"", false, "<joe@example.com>"},
		{"Joe Bloggs", false, "Joe Bloggs <joe@example.com>"},
		{"Joe Q. Bloggs", false, `"Joe Q. Bloggs" <joe@example.com>`},
		{"", true, "joe@example.com"},
		{"Joe Bloggs", true, "joe@example.com (Joe Bloggs)"},
		{"Jöe", false, "=?utf-8?q?J=C3=B6e?= <joe@example.com>"},
	}

	for _, tc := range tests {
		id := &identity.Identity{User: "joe", Host: "example.com", Name: tc.name}
		assert.Equal(t, tc.expect, id.From(tc.comment), "name %q", tc.name)
	}
}

func TestMessageID(t *testing.T) {
	t.Parallel()

	one := identity.MessageID("ids.example.com")
	two := identity.MessageID("ids.example.com")
	assert.NotEqual(t, one, two)
	assert.True(t, strings.HasPrefix(one, "<"))
	assert.True(t, strings.HasSuffix(one, "@ids.example.com>"))
	assert.Regexp(t, `^<\d{14}\.[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}@ids\.example\.com>$`, one)
}

func TestDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2010, 10, 10, 10, 10, 10, 0, time.FixedZone("", -6*60*60))
	assert.Equal(t, "Sun, 10 Oct 2010 10:10:10 -0600", identity.Date(d))
}
