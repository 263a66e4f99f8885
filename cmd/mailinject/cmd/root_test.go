package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mailinject/message"
)

func TestRunInject_NoQueue(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defaultdomain"), []byte("example.com\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defaulthost"), []byte("mail\n"), 0o644))
	t.Setenv("NULLMAILER_FLAGS", "")

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	rootCmd.SetIn(strings.NewReader("From: a@x\nTo: b@y\nSubject: hi\n\nhello\n"))
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs([]string{"--config-dir", dir, "-n", "-v", "-b", "c@z"})

	require.NoError(t, Execute())

	lines := strings.Split(out.String(), "\n")
	require.Greater(t, len(lines), 4)
	assert.Equal(t, []string{"a@x", "c@z", "b@y", ""}, lines[:4])
	assert.Contains(t, lines, "From: a@x")
	assert.Contains(t, lines, "To: b@y")
	assert.Contains(t, lines, "Subject: hi")
	assert.True(t, strings.HasSuffix(out.String(), "\n\nhello\n"))
}

func TestRunInject_MaxHeaderLength(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defaulthost"), []byte("mail.example.com\n"), 0o644))
	t.Setenv("NULLMAILER_FLAGS", "")
	t.Cleanup(func() { maxHeaderLen = message.DefaultMaxHeaderLength })

	out := &bytes.Buffer{}
	rootCmd.SetIn(strings.NewReader("From: a@x\nTo: b@y\nSubject: a subject too long to fit\n\nhello\n"))
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config-dir", dir, "-n", "-b", "--max-header-length", "32"})

	assert.ErrorIs(t, Execute(), message.ErrLargeHeader)
	assert.Empty(t, out.String())
}
