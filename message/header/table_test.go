package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mailinject/message/header"
)

func TestTable_Lookup(t *testing.T) {
	t.Parallel()

	tbl := header.NewTable()
	for _, name := range []string{"TO", "To", "to", "tO"} {
		d, found := tbl.Lookup(name)
		require.True(t, found, name)
		assert.Equal(t, header.KindTo, d.Kind)
		assert.Equal(t, "To", d.Name)
	}

	d, found := tbl.Lookup("resent-message-ID")
	require.True(t, found)
	assert.Equal(t, header.KindResentMessageID, d.Kind)
	assert.True(t, d.Has(header.IsResent))
	assert.False(t, d.Has(header.IsAddress))

	_, found = tbl.Lookup("Subject")
	assert.False(t, found)

	_, found = tbl.Lookup("To ")
	assert.False(t, found)
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	ds := header.Catalog()
	assert.Len(t, ds, 21)

	seen := map[header.Kind]bool{}
	for _, d := range ds {
		assert.False(t, seen[d.Kind], "duplicate %v", d.Kind)
		seen[d.Kind] = true

		assert.Equal(t, d.Name, d.Kind.String())

		if d.Has(header.IsRecipient) || d.Has(header.IsSender) {
			assert.True(t, d.Has(header.IsAddress), d.Name)
		}
	}

	removed := []string{}
	for _, d := range ds {
		if d.Has(header.Remove) {
			removed = append(removed, d.Name)
		}
	}
	assert.ElementsMatch(t, []string{"Return-Path", "Bcc", "Resent-Bcc", "Content-Length"}, removed)
}

func TestTable_Present(t *testing.T) {
	t.Parallel()

	one := header.NewTable()
	two := header.NewTable()

	assert.False(t, one.Present(header.KindFrom))
	one.MarkPresent(header.KindFrom)
	assert.True(t, one.Present(header.KindFrom))
	assert.False(t, two.Present(header.KindFrom))
}

func TestTable_Options(t *testing.T) {
	t.Parallel()

	tbl := header.NewTable(header.WithReplaced(header.KindFrom))

	d, _ := tbl.Lookup("From")
	assert.True(t, d.Has(header.Ignore|header.Remove))
	assert.True(t, tbl.Replaced(header.KindFrom))

	d, _ = tbl.Lookup("Date")
	assert.False(t, d.Has(header.Ignore))
	assert.False(t, tbl.Replaced(header.KindDate))

	d, _ = header.NewTable().Lookup("From")
	assert.False(t, d.Has(header.Ignore))
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	d, err := header.ParseTime("Mon, 02 Jan 2006 15:04:05 -0700")
	require.NoError(t, err)
	assert.Equal(t, 2006, d.Year())

	_, err = header.ParseTime("2010-10-10 10:10:10")
	assert.NoError(t, err)

	_, err = header.ParseTime("not a date at all")
	assert.Error(t, err)

	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 -0700", header.FormatTime(d))
}
