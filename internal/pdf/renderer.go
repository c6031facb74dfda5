package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/webitplay/depobill/internal/invoice"
	"github.com/webitplay/depobill/internal/settings"
)

// Renderer writes invoice PDFs into outDir.
type Renderer struct {
	outDir string
}

func NewRenderer(outDir string) *Renderer {
	return &Renderer{outDir: outDir}
}

// Filename is the canonical invoice file name, zero-padded to five digits.
func Filename(number int) string {
	return fmt.Sprintf("Invoice-%05d.pdf", number)
}

// Render lays out the invoice document and returns the written file path.
// Sections, in order: business header with invoice number and date, client
// block, optional subtitle, work log, optional service breakdown, expenses,
// notes, total.
func (r *Renderer) Render(inv *invoice.Invoice, issuer settings.Freelancer) (string, error) {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(12,
		col.New(8).Add(
			text.New(strings.ToUpper(issuer.Business), props.Text{
				Size:  18,
				Style: fontstyle.Bold,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Invoice #%d", inv.Number), props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(5,
		col.New(8).Add(
			text.New("Email: "+issuer.Email, props.Text{Size: 9}),
		),
		col.New(4).Add(
			text.New("Date: "+inv.Date.Format("January 2, 2006"), props.Text{
				Size:  9,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(5,
		col.New(12).Add(
			text.New("Phone: "+issuer.Phone, props.Text{Size: 9}),
		),
	)

	if issuer.Website != "" {
		m.AddRow(5,
			col.New(12).Add(
				text.New("Web: "+issuer.Website, props.Text{Size: 9}),
			),
		)
	}

	m.AddRow(8)

	m.AddRow(8,
		col.New(12).Add(
			text.New("Client Information", props.Text{
				Size:  12,
				Style: fontstyle.Bold,
			}),
		),
	)

	for _, line := range []string{
		inv.Client.Name,
		inv.Client.Business,
		inv.Client.Address,
		"Phone: " + inv.Client.Phone,
		"Email: " + inv.Client.Email,
	} {
		m.AddRow(5,
			col.New(12).Add(text.New(line, props.Text{Size: 9})),
		)
	}

	if strings.TrimSpace(inv.Subtitle) != "" {
		m.AddRow(8)
		m.AddRow(6,
			col.New(12).Add(
				text.New(inv.Subtitle, props.Text{
					Size:  11,
					Style: fontstyle.Italic,
				}),
			),
		)
	}

	if len(inv.WorkLogs) > 0 {
		m.AddRow(8)
		m.AddRow(8,
			col.New(12).Add(
				text.New("Work Log", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
				}),
			),
		)

		for _, l := range inv.WorkLogs {
			m.AddRow(5,
				col.New(12).Add(
					text.New(fmt.Sprintf("%s - %gh", l.Description, l.Hours), props.Text{Size: 9}),
				),
			)
		}
	}

	if inv.Breakdown != nil {
		b := inv.Breakdown

		m.AddRow(8)
		m.AddRow(8,
			col.New(12).Add(
				text.New("Service Breakdown", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
				}),
			),
		)

		for _, line := range []string{
			"Setup Start: " + b.SetupStart,
			"Deposition Start: " + b.DepoStart,
			"Deposition End: " + b.DepoEnd,
			"Breakdown End: " + b.BreakdownEnd,
			fmt.Sprintf("Lunch Break: %g hours", b.LunchBreak),
			fmt.Sprintf("Total Deposition Duration: %g hours", b.TotalHours),
		} {
			m.AddRow(5,
				col.New(12).Add(text.New(line, props.Text{Size: 9})),
			)
		}
	}

	if len(inv.Expenses) > 0 {
		m.AddRow(8)
		m.AddRow(8,
			col.New(12).Add(
				text.New("Expenses", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
				}),
			),
		)

		for _, e := range inv.Expenses {
			m.AddRow(5,
				col.New(12).Add(
					text.New(fmt.Sprintf("%s - $%.2f", e.Description, e.Amount), props.Text{Size: 9}),
				),
			)
		}
	}

	if inv.Notes != "" {
		m.AddRow(8)
		m.AddRow(8,
			col.New(12).Add(
				text.New("Notes", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
				}),
			),
		)
		m.AddRow(5,
			col.New(12).Add(text.New(inv.Notes, props.Text{Size: 9})),
		)
	}

	m.AddRow(10)
	m.AddRow(8,
		col.New(12).Add(
			text.New(fmt.Sprintf("Total: $%.2f", inv.Total), props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	document, err := m.Generate()
	if err != nil {
		return "", fmt.Errorf("generating PDF: %w", err)
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating exports directory: %w", err)
	}

	path := filepath.Join(r.outDir, Filename(inv.Number))
	if err := document.Save(path); err != nil {
		return "", fmt.Errorf("saving PDF: %w", err)
	}

	return path, nil
}
