package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/webitplay/depobill/internal/client"
	"github.com/webitplay/depobill/internal/email"
	"github.com/webitplay/depobill/internal/invoice"
	"github.com/webitplay/depobill/internal/pdf"
	"github.com/webitplay/depobill/internal/settings"
)

type createState int

const (
	createStateLoading createState = iota
	createStateNotConfigured
	createStateForm
	createStateExpenseAsk
	createStateExpenseInput
	createStateConfirm
	createStateSaving
	createStateEmailAsk
	createStateSending
	createStateDone
)

const newClientOption = "__new__"
const customServiceOption = "__custom__"

type CreateModel struct {
	invoiceService  *invoice.Service
	clientService   *client.Service
	settingsService *settings.Service
	renderer        *pdf.Renderer
	sender          *email.Sender

	state createState
	form  *huh.Form

	cfg     *settings.Settings
	clients []*client.Client

	// Form bindings
	formClientID    string
	formClientName  string
	formClientBiz   string
	formClientAddr  string
	formClientPhone string
	formClientEmail string
	formJobType     string
	formCanceled    bool
	formService     string
	formCustomDesc  string
	formSetupStart  string
	formDepoEnd     string
	formLunch       string
	formNotes       string
	formSubtitle    string

	formAddExpense    bool
	formExpenseDesc   string
	formExpenseAmount string
	expenses          []invoice.Expense

	formConfirm   bool
	formSendEmail bool

	created *invoice.Invoice
	pdfPath string
	status  string
}

func NewCreateModel(
	invoiceSvc *invoice.Service,
	clientSvc *client.Service,
	settingsSvc *settings.Service,
	renderer *pdf.Renderer,
	sender *email.Sender,
) CreateModel {
	return CreateModel{
		invoiceService:  invoiceSvc,
		clientService:   clientSvc,
		settingsService: settingsSvc,
		renderer:        renderer,
		sender:          sender,
		state:           createStateLoading,
		formJobType:     string(invoice.JobTypeInPerson),
	}
}

func (m CreateModel) Init() tea.Cmd {
	return m.setupCmd()
}

func (m CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case createSetupMsg:
		if msg.err != nil {
			if errors.Is(msg.err, settings.ErrNotConfigured) {
				m.state = createStateNotConfigured
				return m, nil
			}

			m.state = createStateDone
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.cfg = msg.cfg
		m.clients = msg.clients
		m.state = createStateForm
		m.form = m.buildMainForm()

		return m, m.form.Init()

	case createdMsg:
		if msg.err != nil {
			m.state = createStateDone
			m.status = fmt.Sprintf("Error creating invoice: %v", msg.err)

			return m, nil
		}

		m.created = msg.inv
		m.pdfPath = msg.pdfPath
		m.status = fmt.Sprintf("Created invoice #%d (total %s)", msg.inv.Number, FormatMoney(msg.inv.Total))

		if msg.pdfErr != nil {
			m.status += fmt.Sprintf("\nPDF failed: %v", msg.pdfErr)
			m.state = createStateDone

			return m, nil
		}

		m.status += "\nPDF saved to " + msg.pdfPath
		m.state = createStateEmailAsk
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Email invoice #%d to %s?", msg.inv.Number, msg.inv.Client.Email)).
				Value(&m.formSendEmail),
		)).WithShowHelp(false)

		return m, m.form.Init()

	case emailedMsg:
		m.state = createStateDone
		if msg.err != nil {
			m.status += fmt.Sprintf("\nEmail failed: %v", msg.err)
		} else {
			m.status += "\nEmailed to " + m.created.Client.Email
		}

		return m, nil
	}

	switch m.state {
	case createStateForm, createStateExpenseAsk, createStateExpenseInput,
		createStateConfirm, createStateEmailAsk:
		return m.updateForm(msg)
	}

	return m, nil
}

// updateForm drives whichever huh form is active and advances the wizard
// when it completes.
func (m CreateModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case createStateForm:
		m.state = createStateExpenseAsk
		m.formAddExpense = false
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Add an expense?").Value(&m.formAddExpense),
		)).WithShowHelp(false)

		return m, m.form.Init()

	case createStateExpenseAsk:
		if !m.formAddExpense {
			m.state = createStateConfirm
			m.form = m.buildConfirmForm()

			return m, m.form.Init()
		}

		m.state = createStateExpenseInput
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

	case createStateExpenseInput:
		amount, _ := strconv.ParseFloat(strings.TrimSpace(m.formExpenseAmount), 64)
		m.expenses = append(m.expenses, invoice.Expense{
			Description: m.formExpenseDesc,
			Amount:      amount,
		})

		m.state = createStateExpenseAsk
		m.formAddExpense = false
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Add another expense?").Value(&m.formAddExpense),
		)).WithShowHelp(false)

		return m, m.form.Init()

	case createStateConfirm:
		if !m.formConfirm {
			return m, Back
		}

		m.state = createStateSaving

		return m, m.createCmd()

	case createStateEmailAsk:
		if !m.formSendEmail {
			m.state = createStateDone
			return m, nil
		}

		m.state = createStateSending

		return m, m.emailCmd()
	}

	return m, cmd
}

func (m *CreateModel) buildMainForm() *huh.Form {
	clientOpts := make([]huh.Option[string], 0, len(m.clients)+1)
	for _, c := range m.clients {
		clientOpts = append(clientOpts, huh.NewOption(
			fmt.Sprintf("%s (%s)", c.Name, c.Email), c.ID.String(),
		))
	}

	clientOpts = append(clientOpts, huh.NewOption("New client...", newClientOption))

	serviceOpts := make([]huh.Option[string], 0, len(m.cfg.Services)+1)
	for _, svc := range m.cfg.Services {
		serviceOpts = append(serviceOpts, huh.NewOption(svc, svc))
	}

	serviceOpts = append(serviceOpts, huh.NewOption("Custom description...", customServiceOption))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Client").
				Options(clientOpts...).
				Value(&m.formClientID),
		),

		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.formClientName).Validate(validateRequired),
			huh.NewInput().Title("Business").Value(&m.formClientBiz),
			huh.NewInput().Title("Address").Value(&m.formClientAddr),
			huh.NewInput().Title("Phone").Value(&m.formClientPhone),
			huh.NewInput().Title("Email").Value(&m.formClientEmail).Validate(validateRequired),
		).WithHideFunc(func() bool { return m.formClientID != newClientOption }),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Job type").
				Options(
					huh.NewOption(string(invoice.JobTypeInPerson), string(invoice.JobTypeInPerson)),
					huh.NewOption(string(invoice.JobTypeRemote), string(invoice.JobTypeRemote)),
				).
				Value(&m.formJobType),

			huh.NewConfirm().
				Title("Was the job canceled?").
				Value(&m.formCanceled),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Service").
				Options(serviceOpts...).
				Value(&m.formService),
		).WithHideFunc(func() bool { return m.formCanceled }),

		huh.NewGroup(
			huh.NewInput().Title("Description").Value(&m.formCustomDesc),
		).WithHideFunc(func() bool {
			return m.formCanceled || m.formService != customServiceOption
		}),

		huh.NewGroup(
			huh.NewInput().
				Title("Setup start (HH:MM)").
				Placeholder("08:00").
				Value(&m.formSetupStart).
				Validate(validateClock),
			huh.NewInput().
				Title("Deposition end (HH:MM)").
				Placeholder("12:00").
				Value(&m.formDepoEnd).
				Validate(validateClock),
			huh.NewInput().
				Title("Lunch break (hours)").
				Placeholder("0.5").
				Value(&m.formLunch).
				Validate(validateAmount),
		).WithHideFunc(func() bool { return m.formCanceled }),

		huh.NewGroup(
			huh.NewInput().Title("Subtitle (optional)").Value(&m.formSubtitle),
			huh.NewInput().Title("Notes (optional)").Value(&m.formNotes),
		),
	).WithShowHelp(false)
}

func (m *CreateModel) buildConfirmForm() *huh.Form {
	m.formConfirm = true

	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Save this invoice?").Value(&m.formConfirm),
	)).WithShowHelp(false)
}

func (m CreateModel) View() string {
	switch m.state {
	case createStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading...")

	case createStateNotConfigured:
		return lipgloss.NewStyle().Padding(2).Render(
			"Settings are not configured yet.\n\n" +
				"Open Settings from the main menu and set your rates first.\n\n(Esc to back)",
		)

	case createStateSaving:
		return lipgloss.NewStyle().Padding(2).Render("Saving invoice...")

	case createStateSending:
		return lipgloss.NewStyle().Padding(2).Render("Sending email...")

	case createStateDone:
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	header := "New Invoice"
	if len(m.expenses) > 0 {
		lines := make([]string, 0, len(m.expenses))
		for _, e := range m.expenses {
			lines = append(lines, fmt.Sprintf("  %s - %s", e.Description, FormatMoney(e.Amount)))
		}

		header += "\n\nExpenses so far:\n" + strings.Join(lines, "\n")
	}

	if m.status != "" {
		header += "\n\n" + m.status
	}

	return lipgloss.NewStyle().Padding(2).Render(
		header + "\n\n" + m.form.View() + "\n(Esc to cancel)",
	)
}

func (m CreateModel) clientInfo() (invoice.ClientInfo, error) {
	if m.formClientID == newClientOption {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.clientService.Create(ctx, client.CreateParams{
			Name:     m.formClientName,
			Business: m.formClientBiz,
			Address:  m.formClientAddr,
			Phone:    m.formClientPhone,
			Email:    m.formClientEmail,
		})
		if err != nil {
			return invoice.ClientInfo{}, fmt.Errorf("saving client: %w", err)
		}

		return invoice.ClientInfo{
			Name:     c.Name,
			Business: c.Business,
			Address:  c.Address,
			Phone:    c.Phone,
			Email:    c.Email,
		}, nil
	}

	id, err := uuid.Parse(m.formClientID)
	if err != nil {
		return invoice.ClientInfo{}, fmt.Errorf("no client selected")
	}

	for _, c := range m.clients {
		if c.ID == id {
			return invoice.ClientInfo{
				Name:     c.Name,
				Business: c.Business,
				Address:  c.Address,
				Phone:    c.Phone,
				Email:    c.Email,
			}, nil
		}
	}

	return invoice.ClientInfo{}, fmt.Errorf("client %s not found", m.formClientID)
}

// Messages

type createSetupMsg struct {
	cfg     *settings.Settings
	clients []*client.Client
	err     error
}

func (m CreateModel) setupCmd() tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.settingsService.Load()
		if err != nil {
			return createSetupMsg{err: err}
		}

		if err := cfg.ValidateBilling(); err != nil {
			return createSetupMsg{err: settings.ErrNotConfigured}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.clientService.List(ctx, true)
		if err != nil {
			return createSetupMsg{err: err}
		}

		return createSetupMsg{cfg: cfg, clients: clients}
	}
}

type createdMsg struct {
	inv     *invoice.Invoice
	pdfPath string
	pdfErr  error
	err     error
}

func (m CreateModel) createCmd() tea.Cmd {
	return func() tea.Msg {
		info, err := m.clientInfo()
		if err != nil {
			return createdMsg{err: err}
		}

		description := m.formService
		if description == customServiceOption {
			description = m.formCustomDesc
		}

		lunch, _ := strconv.ParseFloat(strings.TrimSpace(m.formLunch), 64)

		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.invoiceService.Create(ctx, m.cfg, invoice.CreateParams{
			Client:      info,
			JobType:     invoice.JobType(m.formJobType),
			Canceled:    m.formCanceled,
			Description: description,
			SetupStart:  m.formSetupStart,
			DepoEnd:     m.formDepoEnd,
			LunchBreak:  lunch,
			Expenses:    m.expenses,
			Notes:       m.formNotes,
			Subtitle:    m.formSubtitle,
		})
		if err != nil {
			return createdMsg{err: err}
		}

		path, pdfErr := m.renderer.Render(inv, m.cfg.Freelancer)

		return createdMsg{inv: inv, pdfPath: path, pdfErr: pdfErr}
	}
}

type emailedMsg struct {
	err error
}

func (m CreateModel) emailCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return emailedMsg{err: m.sender.SendInvoice(ctx, m.created, m.pdfPath)}
	}
}

// Validators

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}

	return nil
}

func validateClock(s string) error {
	if _, err := invoice.ParseClock(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use HH:MM")
	}

	return nil
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}

	return nil
}
