package email_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webitplay/depobill/internal/email"
	"github.com/webitplay/depobill/internal/invoice"
)

func TestSender_SendInvoice_MissingPDF(t *testing.T) {
	s := email.NewSender("smtp.example.test", 587, "pat@reporter.test", "secret")

	inv := &invoice.Invoice{
		Number: 7,
		Client: invoice.ClientInfo{Name: "Acme Legal", Email: "billing@acme.test"},
	}

	err := s.SendInvoice(context.Background(), inv, filepath.Join(t.TempDir(), "Invoice-00007.pdf"))

	assert.Error(t, err)
	assert.ErrorContains(t, err, "not found")
}
