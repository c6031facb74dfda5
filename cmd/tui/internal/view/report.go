package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webitplay/depobill/internal/report"
)

type reportState int

const (
	reportStateInputYear reportState = iota
	reportStateLoading
	reportStateDashboard
)

type ReportModel struct {
	reportService *report.Service
	exportDir     string

	state     reportState
	yearInput textinput.Model
	rep       *report.Yearly
	status    string
}

func NewReportModel(reportSvc *report.Service, exportDir string) ReportModel {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(time.Now().Year())
	ti.CharLimit = 4
	ti.Width = 6
	ti.Prompt = "Year: "
	ti.Focus()

	return ReportModel{
		reportService: reportSvc,
		exportDir:     exportDir,
		yearInput:     ti,
	}
}

func (m ReportModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.state == reportStateDashboard {
				m.state = reportStateInputYear
				m.rep = nil
				m.status = ""
				m.yearInput.Focus()

				return m, textinput.Blink
			}

			return m, Back

		case "enter":
			if m.state == reportStateInputYear {
				year, err := strconv.Atoi(strings.TrimSpace(m.yearInput.Value()))
				if err != nil || year < 1900 || year > 9999 {
					m.status = "Enter a four-digit year"
					return m, nil
				}

				m.state = reportStateLoading
				m.status = ""

				return m, m.loadReportCmd(year)
			}

		case "j":
			if m.state == reportStateDashboard {
				return m, m.exportCmd(exportJSON)
			}

		case "c":
			if m.state == reportStateDashboard {
				return m, m.exportCmd(exportCSV)
			}

		case "b":
			if m.state == reportStateDashboard {
				return m, m.exportCmd(exportBoth)
			}
		}

	case loadReportMsg:
		if msg.err != nil {
			m.state = reportStateInputYear
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.state = reportStateDashboard
		m.rep = msg.rep
		m.yearInput.Blur()

		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.status = "Exported: " + strings.Join(msg.paths, ", ")
		}

		return m, nil
	}

	if m.state == reportStateInputYear {
		m.yearInput, cmd = m.yearInput.Update(msg)
	}

	return m, cmd
}

func (m ReportModel) View() string {
	switch m.state {
	case reportStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Building report...")

	case reportStateDashboard:
		r := m.rep

		var b strings.Builder

		fmt.Fprintf(&b, "Yearly Report - %d\n\n", r.Year)
		fmt.Fprintf(&b, "Invoices:    %d\n", r.Invoices)
		fmt.Fprintf(&b, "Total Hours: %g\n", r.TotalHours)
		fmt.Fprintf(&b, "Revenue:     %s\n", FormatMoney(r.TotalRevenue))
		fmt.Fprintf(&b, "Expenses:    %s\n", FormatMoney(r.TotalExpenses))
		fmt.Fprintf(&b, "Net Income:  %s\n", FormatMoney(r.NetIncome))

		if m.status != "" {
			b.WriteString("\n" + m.status + "\n")
		}

		b.WriteString("\n(j: export JSON | c: export CSV | b: both | Esc: back)")

		return lipgloss.NewStyle().Padding(2).Render(b.String())
	}

	content := "Yearly Report\n\n" + m.yearInput.View()
	if m.status != "" {
		content += "\n\n" + m.status
	}

	content += "\n\n(Enter to run, Esc to back)"

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type exportFormat int

const (
	exportJSON exportFormat = iota
	exportCSV
	exportBoth
)

// Messages

type loadReportMsg struct {
	rep *report.Yearly
	err error
}

func (m ReportModel) loadReportCmd(year int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rep, err := m.reportService.Yearly(ctx, year)

		return loadReportMsg{rep: rep, err: err}
	}
}

type exportedMsg struct {
	paths []string
	err   error
}

func (m ReportModel) exportCmd(format exportFormat) tea.Cmd {
	rep := m.rep

	return func() tea.Msg {
		name := fmt.Sprintf("report-%d", rep.Year)

		var paths []string

		if format == exportJSON || format == exportBoth {
			p, err := report.ExportJSON(rep, m.exportDir, name)
			if err != nil {
				return exportedMsg{err: err}
			}

			paths = append(paths, p)
		}

		if format == exportCSV || format == exportBoth {
			p, err := report.ExportCSV(rep, m.exportDir, name)
			if err != nil {
				return exportedMsg{err: err}
			}

			paths = append(paths, p)
		}

		return exportedMsg{paths: paths}
	}
}
