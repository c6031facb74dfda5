package email

import (
	"context"
	"fmt"
	"os"

	"github.com/wneessen/go-mail"

	"github.com/webitplay/depobill/internal/invoice"
	"github.com/webitplay/depobill/internal/pdf"
)

// Sender delivers rendered invoices over SMTP. Delivery failures are the
// caller's to report; a failed send never rolls back the invoice or the
// PDF.
type Sender struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewSender(host string, port int, user, password string) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     user,
	}
}

// SendInvoice emails the invoice PDF to the client on record. The PDF is
// attached by path and must already exist on disk.
func (s *Sender) SendInvoice(ctx context.Context, inv *invoice.Invoice, pdfPath string) error {
	msg, err := s.buildMessage(inv, pdfPath)
	if err != nil {
		return err
	}

	c, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.user),
		mail.WithPassword(s.password),
	)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending invoice email to %s: %w", inv.Client.Email, err)
	}

	return nil
}

// buildMessage assembles the outgoing message addressed to the client
// snapshot embedded in the invoice.
func (s *Sender) buildMessage(inv *invoice.Invoice, pdfPath string) (*mail.Msg, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("invoice PDF not found at %s: %w", pdfPath, err)
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("setting sender: %w", err)
	}

	if err := msg.To(inv.Client.Email); err != nil {
		return nil, fmt.Errorf("setting recipient: %w", err)
	}

	msg.Subject(fmt.Sprintf("Invoice #%d", inv.Number))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nAttached is your invoice #%d.\n\nThank you!\n",
		inv.Client.Name, inv.Number,
	))
	msg.AttachFile(pdfPath, mail.WithFileName(pdf.Filename(inv.Number)))

	return msg, nil
}
