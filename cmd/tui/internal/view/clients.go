package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/webitplay/depobill/internal/client"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateAdd
	clientsStateEdit
	clientsStateConfirmDelete
)

type ClientsModel struct {
	clientService *client.Service

	state   clientsState
	table   table.Model
	clients []*client.Client
	form    *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName    string
	formBiz     string
	formAddr    string
	formPhone   string
	formEmail   string
	formConfirm bool
}

func NewClientsModel(clientSvc *client.Service) ClientsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Business", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Phone", Width: 14},
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

	return ClientsModel{
		clientService: clientSvc,
		table:         t,
		loading:       true,
	}
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadClientsCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClientsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.clients = msg.clients
		m.refreshTable()

		return m, nil

	case clientActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadClientsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == clientsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadClientsCmd()
		case "a":
			return m.enterAddMode()
		case "e":
			return m.enterEditMode()
		case "d":
			return m.enterDeleteConfirm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formBiz = ""
	m.formAddr = ""
	m.formPhone = ""
	m.formEmail = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.formName).Validate(validateRequired),
			huh.NewInput().Title("Business").Value(&m.formBiz),
			huh.NewInput().Title("Address").Value(&m.formAddr),
			huh.NewInput().Title("Phone").Value(&m.formPhone),
			huh.NewInput().Title("Email").Value(&m.formEmail).Validate(validateRequired),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) enterEditMode() (tea.Model, tea.Cmd) {
	c := m.current()
	if c == nil {
		return m, nil
	}

	m.formName = c.Name
	m.formBiz = c.Business
	m.formAddr = c.Address
	m.formPhone = c.Phone
	m.formEmail = c.Email

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.formName).Validate(validateRequired),
			huh.NewInput().Title("Business").Value(&m.formBiz),
			huh.NewInput().Title("Address").Value(&m.formAddr),
			huh.NewInput().Title("Phone").Value(&m.formPhone),
			huh.NewInput().Title("Email").Value(&m.formEmail).Validate(validateRequired),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) enterDeleteConfirm() (tea.Model, tea.Cmd) {
	c := m.current()
	if c == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete client %q? Past invoices keep their copy.", c.Name)).
			Value(&m.formConfirm),
	)).WithShowHelp(false)

	m.state = clientsStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
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

	if m.state == clientsStateConfirmDelete {
		if !m.formConfirm {
			m.state = clientsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.deleteCmd()
	}

	if m.state == clientsStateEdit {
		return m, m.editCmd()
	}

	return m, m.addCmd()
}

func (m ClientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	help := "Esc: back | a: add | e: edit | d: delete | r: refresh"

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().Faint(true).Render(help),
	)

	if m.form != nil {
		title := "Add Client"

		switch m.state {
		case clientsStateEdit:
			title = "Edit Client"
		case clientsStateConfirmDelete:
			title = "Delete Client"
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

func (m ClientsModel) current() *client.Client {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return nil
	}

	return m.clients[idx]
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		rows = append(rows, table.Row{c.Name, c.Business, c.Email, c.Phone})
	}

	m.table.SetRows(rows)
}

// Messages

type loadClientsMsg struct {
	clients []*client.Client
	err     error
}

func (m ClientsModel) loadClientsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.clientService.List(ctx, true)

		return loadClientsMsg{clients: clients, err: err}
	}
}

type clientActionMsg struct {
	status string
	err    error
}

func (m ClientsModel) addCmd() tea.Cmd {
	params := client.CreateParams{
		Name:     m.formName,
		Business: m.formBiz,
		Address:  m.formAddr,
		Phone:    m.formPhone,
		Email:    m.formEmail,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.clientService.Create(ctx, params)
		if err != nil {
			return clientActionMsg{err: err}
		}

		return clientActionMsg{status: fmt.Sprintf("Added client %q", c.Name)}
	}
}

// editCmd updates the selected client record. Past invoices keep their
// embedded snapshot; only future ones pick up the change.
func (m ClientsModel) editCmd() tea.Cmd {
	c := m.current()
	if c == nil {
		return nil
	}

	updated := *c
	updated.Name = m.formName
	updated.Business = m.formBiz
	updated.Address = m.formAddr
	updated.Phone = m.formPhone
	updated.Email = m.formEmail

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.clientService.Update(ctx, &updated); err != nil {
			return clientActionMsg{err: err}
		}

		return clientActionMsg{status: fmt.Sprintf("Saved client %q", updated.Name)}
	}
}

func (m ClientsModel) deleteCmd() tea.Cmd {
	c := m.current()
	if c == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.clientService.Delete(ctx, c.ID); err != nil {
			return clientActionMsg{err: err}
		}

		return clientActionMsg{status: fmt.Sprintf("Deleted client %q", c.Name)}
	}
}
