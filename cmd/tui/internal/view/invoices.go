package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/webitplay/depobill/internal/email"
	"github.com/webitplay/depobill/internal/invoice"
	"github.com/webitplay/depobill/internal/pdf"
	"github.com/webitplay/depobill/internal/settings"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateDetail
	invoicesStateEdit
	invoicesStateExpenseAsk
	invoicesStateExpenseInput
	invoicesStateConfirmDelete
)

type InvoicesModel struct {
	invoiceService  *invoice.Service
	settingsService *settings.Service
	renderer        *pdf.Renderer
	sender          *email.Sender

	state invoicesState
	table table.Model
	invs  []*invoice.Invoice
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formSubtitle      string
	formNotes         string
	formRate          string
	formConfirm       bool
	formEditExpenses  bool
	formAddExpense    bool
	formExpenseDesc   string
	formExpenseAmount string
	editExpenses      []invoice.Expense
}

func NewInvoicesModel(
	invoiceSvc *invoice.Service,
	settingsSvc *settings.Service,
	renderer *pdf.Renderer,
	sender *email.Sender,
) InvoicesModel {
	columns := []table.Column{
		{Title: "#", Width: 7},
		{Title: "Date", Width: 12},
		{Title: "Client", Width: 24},
		{Title: "Type", Width: 10},
		{Title: "Total", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InvoicesModel{
		invoiceService:  invoiceSvc,
		settingsService: settingsSvc,
		renderer:        renderer,
		sender:          sender,
		table:           t,
		loading:         true,
	}
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadInvoicesCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.invs = msg.invs
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadInvoicesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStateBrowse:
		return m.updateBrowse(msg)
	case invoicesStateDetail:
		return m.updateDetail(msg)
	case invoicesStateEdit, invoicesStateExpenseAsk, invoicesStateExpenseInput,
		invoicesStateConfirmDelete:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadInvoicesCmd()
		case "enter":
			if m.current() != nil {
				m.state = invoicesStateDetail
			}

			return m, nil
		case "e":
			return m.enterEditMode()
		case "d":
			return m.enterDeleteConfirm()
		case "m":
			if inv := m.current(); inv != nil {
				m.status = fmt.Sprintf("Sending invoice #%d...", inv.Number)
				return m, m.emailCmd(inv)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = invoicesStateBrowse
			return m, nil
		case "e":
			return m.enterEditMode()
		case "m":
			if inv := m.current(); inv != nil {
				m.state = invoicesStateBrowse
				m.status = fmt.Sprintf("Sending invoice #%d...", inv.Number)

				return m, m.emailCmd(inv)
			}
		}
	}

	return m, nil
}

func (m InvoicesModel) enterEditMode() (tea.Model, tea.Cmd) {
	inv := m.current()
	if inv == nil {
		return m, nil
	}

	m.formSubtitle = inv.Subtitle
	m.formNotes = inv.Notes
	m.formRate = strconv.FormatFloat(inv.HourlyRate, 'f', -1, 64)
	m.formEditExpenses = false
	m.editExpenses = nil

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subtitle").Value(&m.formSubtitle),
			huh.NewInput().Title("Notes").Value(&m.formNotes),
			huh.NewInput().
				Title("Hourly rate ($)").
				Value(&m.formRate).
				Validate(validateAmount),
			huh.NewConfirm().
				Title(fmt.Sprintf("Replace the %d expense lines?", len(inv.Expenses))).
				Value(&m.formEditExpenses),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) enterDeleteConfirm() (tea.Model, tea.Cmd) {
	inv := m.current()
	if inv == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete invoice #%d?", inv.Number)).
			Value(&m.formConfirm),
	)).WithShowHelp(false)

	m.state = invoicesStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case invoicesStateConfirmDelete:
		if !m.formConfirm {
			m.state = invoicesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.deleteCmd()

	case invoicesStateEdit:
		if !m.formEditExpenses {
			return m, m.saveEditCmd(false)
		}

		return m.askNextExpense("Add an expense?")

	case invoicesStateExpenseAsk:
		if !m.formAddExpense {
			return m, m.saveEditCmd(true)
		}

		m.state = invoicesStateExpenseInput
		m.formExpenseDesc = ""
		m.formExpenseAmount = ""
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Expense description").Value(&m.formExpenseDesc),
			huh.NewInput().
				Title("Amount ($)").
				Value(&m.formExpenseAmount).
				Validate(validateAmount),
		)).WithShowHelp(false)

		return m, m.form.Init()

	case invoicesStateExpenseInput:
		amount, _ := strconv.ParseFloat(strings.TrimSpace(m.formExpenseAmount), 64)
		m.editExpenses = append(m.editExpenses, invoice.Expense{
			Description: m.formExpenseDesc,
			Amount:      amount,
		})

		return m.askNextExpense("Add another expense?")
	}

	return m, cmd
}

func (m InvoicesModel) askNextExpense(title string) (tea.Model, tea.Cmd) {
	m.state = invoicesStateExpenseAsk
	m.formAddExpense = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&m.formAddExpense),
	)).WithShowHelp(false)

	return m, m.form.Init()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == invoicesStateDetail {
		return m.detailView()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	help := "Esc: back | Enter: detail | e: edit | d: delete | m: email | r: refresh"

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().Faint(true).Render(help),
	)

	if m.form != nil {
		title := "Edit Invoice"
		if m.state == invoicesStateConfirmDelete {
			title = "Delete Invoice"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m InvoicesModel) detailView() string {
	inv := m.current()
	if inv == nil {
		return lipgloss.NewStyle().Padding(2).Render("No invoice selected.\n\n(Esc to back)")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Invoice #%d - %s\n", inv.Number, FormatDate(inv.Date))
	fmt.Fprintf(&b, "Client: %s (%s)\n", inv.Client.Name, inv.Client.Email)
	fmt.Fprintf(&b, "Type: %s", inv.JobType)

	if inv.Canceled {
		b.WriteString(" (canceled)")
	}

	fmt.Fprintf(&b, "\nRate: %s/h\n", FormatMoney(inv.HourlyRate))

	if inv.Subtitle != "" {
		fmt.Fprintf(&b, "Subtitle: %s\n", inv.Subtitle)
	}

	b.WriteString("\nWork Log:\n")

	for _, l := range inv.WorkLogs {
		fmt.Fprintf(&b, "  %s - %s\n", l.Description, FormatHours(l.Hours))
	}

	if bd := inv.Breakdown; bd != nil {
		b.WriteString("\nService Breakdown:\n")
		fmt.Fprintf(&b, "  Setup Start: %s\n", bd.SetupStart)
		fmt.Fprintf(&b, "  Deposition Start: %s\n", bd.DepoStart)
		fmt.Fprintf(&b, "  Deposition End: %s\n", bd.DepoEnd)
		fmt.Fprintf(&b, "  Breakdown End: %s\n", bd.BreakdownEnd)
		fmt.Fprintf(&b, "  Lunch Break: %g hours\n", bd.LunchBreak)
		fmt.Fprintf(&b, "  Total: %g hours\n", bd.TotalHours)
	}

	if len(inv.Expenses) > 0 {
		b.WriteString("\nExpenses:\n")

		for _, e := range inv.Expenses {
			fmt.Fprintf(&b, "  %s - %s\n", e.Description, FormatMoney(e.Amount))
		}
	}

	if inv.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", inv.Notes)
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", FormatMoney(inv.Total))
	b.WriteString("\n(Esc: back | e: edit | m: email)")

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func (m InvoicesModel) current() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invs) {
		return nil
	}

	return m.invs[idx]
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invs))
	for _, inv := range m.invs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%05d", inv.Number),
			FormatDate(inv.Date),
			inv.Client.Name,
			string(inv.JobType),
			FormatMoney(inv.Total),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invs []*invoice.Invoice
	err  error
}

func (m InvoicesModel) loadInvoicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invs, err := m.invoiceService.List(ctx, invoice.ListFilter{})

		return loadInvoicesMsg{invs: invs, err: err}
	}
}

type invoiceActionMsg struct {
	status string
	err    error
}

func (m InvoicesModel) saveEditCmd(replaceExpenses bool) tea.Cmd {
	inv := m.current()
	if inv == nil {
		return nil
	}

	rate, _ := strconv.ParseFloat(strings.TrimSpace(m.formRate), 64)

	cmds := []invoice.EditCommand{
		invoice.SetSubtitle(m.formSubtitle),
		invoice.SetNotes(m.formNotes),
		invoice.SetHourlyRate(rate),
	}
	if replaceExpenses {
		cmds = append(cmds, invoice.SetExpenses(m.editExpenses))
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.invoiceService.Edit(ctx, inv.ID, cmds...)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		// The stored PDF has to track the edited invoice.
		cfg, err := m.settingsService.Load()
		if err != nil {
			return invoiceActionMsg{err: fmt.Errorf("saved, but PDF not regenerated: %w", err)}
		}

		if _, err := m.renderer.Render(updated, cfg.Freelancer); err != nil {
			return invoiceActionMsg{err: fmt.Errorf("saved, but PDF not regenerated: %w", err)}
		}

		return invoiceActionMsg{
			status: fmt.Sprintf("Saved invoice #%d (total %s), PDF regenerated. Press 'm' to resend.",
				updated.Number, FormatMoney(updated.Total)),
		}
	}
}

func (m InvoicesModel) deleteCmd() tea.Cmd {
	inv := m.current()
	if inv == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.invoiceService.Delete(ctx, inv.ID); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf("Deleted invoice #%d", inv.Number)}
	}
}

func (m InvoicesModel) emailCmd(inv *invoice.Invoice) tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.settingsService.Load()
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		path, err := m.renderer.Render(inv, cfg.Freelancer)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.sender.SendInvoice(ctx, inv, path); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{
			status: fmt.Sprintf("Emailed invoice #%d to %s", inv.Number, inv.Client.Email),
		}
	}
}
