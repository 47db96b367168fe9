package mails

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfirmationTemplate(t *testing.T) {
	parts, err := parseEmailTmpl(ConfirmationCodeTmpl, map[string]any{
		"username":         "alice",
		"confirmationCode": "AB12CD",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your YaMDb confirmation code", parts["subject"])
	assert.Contains(t, parts["plainBody"], "AB12CD")
	assert.Contains(t, parts["htmlBody"], "<strong>AB12CD</strong>")
}

func TestLogMailer(t *testing.T) {
	buf := new(bytes.Buffer)
	m := &LogMailer{Log: slog.New(slog.NewTextHandler(buf, nil)), Sender: "noreply@x"}
	err := m.Send("a@x.com", ConfirmationCodeTmpl, map[string]any{
		"username":         "alice",
		"confirmationCode": "ZZ99",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a@x.com")
	assert.Contains(t, buf.String(), "ZZ99")

	assert.Error(t, m.Send("a@x.com", "missing.html", nil))
}
