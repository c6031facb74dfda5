package email

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webitplay/depobill/internal/invoice"
)

func TestSender_BuildMessage(t *testing.T) {
	s := NewSender("smtp.example.test", 587, "pat@reporter.test", "secret")

	pdfPath := filepath.Join(t.TempDir(), "draft.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 stub"), 0o644))

	inv := &invoice.Invoice{
		Number: 7,
		Client: invoice.ClientInfo{Name: "Acme Legal", Email: "billing@acme.test"},
	}

	msg, err := s.buildMessage(inv, pdfPath)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()

	assert.Contains(t, raw, "From: <pat@reporter.test>")
	assert.Contains(t, raw, "To: <billing@acme.test>")
	assert.Contains(t, raw, "Subject: Invoice #7")
	assert.Contains(t, raw, "Hi Acme Legal,")
	// The attachment is renamed to the canonical invoice filename, not the
	// name it has on disk.
	assert.Contains(t, raw, `filename="Invoice-00007.pdf"`)
	assert.NotContains(t, raw, "draft.pdf")
}

func TestSender_BuildMessage_BadRecipient(t *testing.T) {
	s := NewSender("smtp.example.test", 587, "pat@reporter.test", "secret")

	pdfPath := filepath.Join(t.TempDir(), "Invoice-00007.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 stub"), 0o644))

	inv := &invoice.Invoice{
		Number: 7,
		Client: invoice.ClientInfo{Name: "Acme Legal", Email: "not an address"},
	}

	_, err := s.buildMessage(inv, pdfPath)

	assert.ErrorContains(t, err, "recipient")
}
