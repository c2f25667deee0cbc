package lib

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailMessage(t *testing.T) {
	msg, err := NewMailMessage(&SendMailInput{
		From:     "tickets@example.com",
		FromName: "Ticketing",
		To:       []string{"guest@example.com"},
		Subject:  "Your tickets",
		Body:     "<p>See you there</p>",
		Html:     true,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "Subject: Your tickets")
	assert.Contains(t, raw, "<guest@example.com>")
	assert.Contains(t, raw, "text/html")
}

func TestNewMailMessageInvalidRecipient(t *testing.T) {
	_, err := NewMailMessage(&SendMailInput{
		From: "tickets@example.com",
		To:   []string{"not an address"},
	})
	assert.Error(t, err)
}
