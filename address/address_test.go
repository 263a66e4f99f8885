package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mailinject/address"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	p := &address.Parser{}

	l, err := p.Parse(" a@x")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x"}, l.Addresses)
	assert.Equal(t, "a@x", l.Formatted)
	assert.Equal(t, "a@x\n", l.String())

	l, err = p.Parse(`"Steve Steverson" <steve@example.com>, bob@example.com`)
	require.NoError(t, err)
	assert.Equal(t, []string{"steve@example.com", "bob@example.com"}, l.Addresses)
	assert.Equal(t, 2, l.Len())

	l, err = p.Parse(" one@example.com,\n two@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"one@example.com", "two@example.com"}, l.Addresses)

	l, err = p.Parse("   ")
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestParser_ParseError(t *testing.T) {
	t.Parallel()

	p := &address.Parser{}
	l, err := p.Parse("<<not an address")
	assert.Nil(t, l)

	var perr *address.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "<<not an address", perr.Input)
	assert.Error(t, perr.Unwrap())
}

func TestParser_Qualify(t *testing.T) {
	t.Parallel()

	p := &address.Parser{DefaultHost: "mail.example.com"}

	l, err := p.Parse("root, bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"root@mail.example.com", "bob@example.com"}, l.Addresses)

	_, err = (&address.Parser{}).Parse("root")
	assert.Error(t, err)
}

func TestParser_ParseOne(t *testing.T) {
	t.Parallel()

	p := &address.Parser{DefaultHost: "example.com"}

	a, err := p.ParseOne("sender@example.com")
	require.NoError(t, err)
	assert.Equal(t, "sender@example.com", a)

	a, err = p.ParseOne("postmaster")
	require.NoError(t, err)
	assert.Equal(t, "postmaster@example.com", a)

	_, err = p.ParseOne("a@example.com, b@example.com")
	var perr *address.ParseError
	assert.ErrorAs(t, err, &perr)

	_, err = p.ParseOne("")
	assert.ErrorAs(t, err, &perr)
}

func TestParser_RoundTrip(t *testing.T) {
	t.Parallel()

	p := &address.Parser{}
	inputs := []string{
		"a@x",
		"one@example.com, two@example.com",
		`"Stan Stanson" <stan@example.com>, "Stu Stuson" <stu@example.com>`,
		"Bob Smith <bob@example.com>",
		"bob@example.com (Bob)",
		"undisclosed-recipients: ;",
		"team: a@example.com, Bob Smith <b@example.com>;, c@example.com",
	}

	for _, in := range inputs {
		first, err := p.Parse(in)
		require.NoError(t, err, in)

		second, err := p.Parse(first.Formatted)
		require.NoError(t, err, first.Formatted)

		assert.Equal(t, first.Addresses, second.Addresses, in)
		assert.Equal(t, first.Formatted, second.Formatted, in)
	}
}

func TestParser_DisplayNames(t *testing.T) {
	t.Parallel()

	p := &address.Parser{}

	l, err := p.Parse(" Bob Smith <b@y.com>")
	require.NoError(t, err)
	assert.Equal(t, []string{"b@y.com"}, l.Addresses)
	assert.Equal(t, "Bob Smith <b@y.com>", l.Formatted)

	l, err = p.Parse(`"Smith, Bob" <b@y.com>, c@y.com`)
	require.NoError(t, err)
	assert.Equal(t, []string{"b@y.com", "c@y.com"}, l.Addresses)
	assert.Equal(t, `"Smith, Bob" <b@y.com>, c@y.com`, l.Formatted)
}

func TestParser_Comments(t *testing.T) {
	t.Parallel()

	p := &address.Parser{}

	l, err := p.Parse(" b@y.com (Bob)")
	require.NoError(t, err)
	assert.Equal(t, []string{"b@y.com"}, l.Addresses)
	assert.Equal(t, "b@y.com (Bob)", l.Formatted)

	l, err = p.Parse("b@y.com (Bob, Jr.), c@y.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"b@y.com", "c@y.com"}, l.Addresses)
}

func TestParser_Groups(t *testing.T) {
	t.Parallel()

	p := &address.Parser{DefaultHost: "example.com"}

	tests := []struct {
		in        string
		addresses []string
		formatted string
	}{
		{" undisclosed-recipients: ;", nil, "undisclosed-recipients: ;"},
		{" recipient list not shown: ;", nil, "recipient list not shown: ;"},
		{" grp: a@x.com, b@x.com;", []string{"a@x.com", "b@x.com"}, "grp: a@x.com, b@x.com;"},
		{"grp: root;, c@x.com", []string{"root@example.com", "c@x.com"}, "grp: root@example.com;, c@x.com"},
		{`"a: b": c@x.com;`, []string{"c@x.com"}, `"a: b": c@x.com;`},
	}

	for _, tc := range tests {
		l, err := p.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.addresses, l.Addresses, tc.in)
		assert.Equal(t, tc.formatted, l.Formatted, tc.in)
	}
}

func TestParser_Malformed(t *testing.T) {
	t.Parallel()

	p := &address.Parser{}
	inputs := []string{
		"grp: a@x.com",
		"grp: a@x.com; junk",
		": a@x.com;",
		"a@x.com;",
		"outer: inner: a@x.com;;",
		`"unterminated <a@x.com>`,
		"a@x.com (unterminated",
		"<a@x.com",
		"a@x.com junk",
	}

	for _, in := range inputs {
		var (
			l   *address.List
			err error
		)
		assert.NotPanics(t, func() { l, err = p.Parse(in) }, in)
		assert.Nil(t, l, in)

		var perr *address.ParseError
		assert.ErrorAs(t, err, &perr, in)
	}
}
