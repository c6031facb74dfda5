package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/webitplay/depobill/internal/settings"
)

type settingsState int

const (
	settingsStateLoading settingsState = iota
	settingsStateView
	settingsStateEdit
	settingsStateCatalogAdd
	settingsStateCatalogRename
	settingsStateCatalogDelete
)

type SettingsModel struct {
	settingsService *settings.Service

	state settingsState
	cfg   *settings.Settings
	form  *huh.Form

	status string

	// Form bindings
	formName     string
	formBiz      string
	formEmail    string
	formPhone    string
	formAddr     string
	formWebsite  string
	formInPerson string
	formRemote   string
	formCancel   string

	formService    string
	formNewService string
	formConfirm    bool
}

func NewSettingsModel(settingsSvc *settings.Service) SettingsModel {
	return SettingsModel{
		settingsService: settingsSvc,
		state:           settingsStateLoading,
	}
}

func (m SettingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.cfg = &settings.Settings{}
		} else {
			m.cfg = msg.cfg
		}

		m.state = settingsStateView

		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = settingsStateView
		m.form = nil

		return m, nil

	case tea.KeyMsg:
		if m.state == settingsStateView {
			switch msg.String() {
			case "esc":
				return m, Back
			case "e":
				return m.enterEditMode()
			case "a":
				return m.enterCatalogAdd()
			case "n":
				return m.enterCatalogRename()
			case "d":
				return m.enterCatalogDelete()
			}

			return m, nil
		}

		if msg.Type == tea.KeyEsc && m.state != settingsStateLoading {
			m.state = settingsStateView
			m.form = nil

			return m, nil
		}
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	return m, nil
}

func (m SettingsModel) enterEditMode() (tea.Model, tea.Cmd) {
	m.formName = m.cfg.Freelancer.Name
	m.formBiz = m.cfg.Freelancer.Business
	m.formEmail = m.cfg.Freelancer.Email
	m.formPhone = m.cfg.Freelancer.Phone
	m.formAddr = m.cfg.Freelancer.Address
	m.formWebsite = m.cfg.Freelancer.Website
	m.formInPerson = formatRate(m.cfg.HourlyInPerson)
	m.formRemote = formatRate(m.cfg.HourlyRemote)
	m.formCancel = formatRate(m.cfg.CancelHours)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(&m.formName).Validate(validateRequired),
			huh.NewInput().Title("Business name").Value(&m.formBiz).Validate(validateRequired),
			huh.NewInput().Title("Email").Value(&m.formEmail).Validate(validateRequired),
			huh.NewInput().Title("Phone").Value(&m.formPhone),
			huh.NewInput().Title("Address").Value(&m.formAddr),
			huh.NewInput().Title("Website (optional)").Value(&m.formWebsite),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("In-person hourly rate ($)").
				Value(&m.formInPerson).
				Validate(validateAmount),
			huh.NewInput().
				Title("Remote hourly rate ($)").
				Value(&m.formRemote).
				Validate(validateAmount),
			huh.NewInput().
				Title("Cancellation fee (hours)").
				Value(&m.formCancel).
				Validate(validateAmount),
		),
	).WithShowHelp(false)

	m.state = settingsStateEdit

	return m, m.form.Init()
}

func (m SettingsModel) enterCatalogAdd() (tea.Model, tea.Cmd) {
	m.formNewService = ""
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Service name").Value(&m.formNewService).Validate(validateRequired),
	)).WithShowHelp(false)

	m.state = settingsStateCatalogAdd

	return m, m.form.Init()
}

func (m SettingsModel) enterCatalogRename() (tea.Model, tea.Cmd) {
	if len(m.cfg.Services) == 0 {
		m.status = "No services to rename"
		return m, nil
	}

	m.formService = ""
	m.formNewService = ""
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Service to rename").
			Options(serviceOptions(m.cfg.Services)...).
			Value(&m.formService),
		huh.NewInput().Title("New name").Value(&m.formNewService).Validate(validateRequired),
	)).WithShowHelp(false)

	m.state = settingsStateCatalogRename

	return m, m.form.Init()
}

func (m SettingsModel) enterCatalogDelete() (tea.Model, tea.Cmd) {
	if len(m.cfg.Services) == 0 {
		m.status = "No services to delete"
		return m, nil
	}

	m.formService = ""
	m.formConfirm = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Service to delete").
			Options(serviceOptions(m.cfg.Services)...).
			Value(&m.formService),
		huh.NewConfirm().
			Title("Delete every entry with this name?").
			Value(&m.formConfirm),
	)).WithShowHelp(false)

	m.state = settingsStateCatalogDelete

	return m, m.form.Init()
}

func (m SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case settingsStateEdit:
		m.cfg.Freelancer = settings.Freelancer{
			Name:     m.formName,
			Business: m.formBiz,
			Email:    m.formEmail,
			Phone:    m.formPhone,
			Address:  m.formAddr,
			Website:  m.formWebsite,
		}
		m.cfg.HourlyInPerson, _ = strconv.ParseFloat(strings.TrimSpace(m.formInPerson), 64)
		m.cfg.HourlyRemote, _ = strconv.ParseFloat(strings.TrimSpace(m.formRemote), 64)
		m.cfg.CancelHours, _ = strconv.ParseFloat(strings.TrimSpace(m.formCancel), 64)

		return m, m.saveCmd("Settings saved")

	case settingsStateCatalogAdd:
		m.settingsService.AddService(m.cfg, m.formNewService)
		return m, m.saveCmd(fmt.Sprintf("Added service %q", m.formNewService))

	case settingsStateCatalogRename:
		if !m.settingsService.RenameService(m.cfg, m.formService, m.formNewService) {
			m.state = settingsStateView
			m.form = nil
			m.status = fmt.Sprintf("Service %q not found", m.formService)

			return m, nil
		}

		return m, m.saveCmd(fmt.Sprintf("Renamed %q to %q", m.formService, m.formNewService))

	case settingsStateCatalogDelete:
		if !m.formConfirm {
			m.state = settingsStateView
			m.form = nil

			return m, nil
		}

		removed := m.settingsService.RemoveService(m.cfg, m.formService)

		return m, m.saveCmd(fmt.Sprintf("Removed %d entries of %q", removed, m.formService))
	}

	return m, cmd
}

func (m SettingsModel) View() string {
	if m.state == settingsStateLoading {
		return lipgloss.NewStyle().Padding(2).Render("Loading settings...")
	}

	if m.form != nil {
		return lipgloss.NewStyle().Padding(2).Render(m.form.View() + "\n(Esc to cancel)")
	}

	var b strings.Builder

	b.WriteString("Settings\n\n")

	f := m.cfg.Freelancer
	if f.Name == "" && f.Business == "" {
		b.WriteString("Not configured yet. Press 'e' to set up your business.\n")
	} else {
		fmt.Fprintf(&b, "%s - %s\n", f.Name, f.Business)
		fmt.Fprintf(&b, "%s | %s\n", f.Email, f.Phone)

		if f.Address != "" {
			b.WriteString(f.Address + "\n")
		}

		if f.Website != "" {
			b.WriteString(f.Website + "\n")
		}

		fmt.Fprintf(&b, "\nIn-person rate: %s/h\n", FormatMoney(m.cfg.HourlyInPerson))
		fmt.Fprintf(&b, "Remote rate:    %s/h\n", FormatMoney(m.cfg.HourlyRemote))
		fmt.Fprintf(&b, "Cancel fee:     %g hours\n", m.cfg.CancelHours)
	}

	b.WriteString("\nService Catalog:\n")

	if len(m.cfg.Services) == 0 {
		b.WriteString("  (empty)\n")
	} else {
		for _, svc := range m.cfg.Services {
			b.WriteString("  - " + svc + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n(e: edit | a: add service | n: rename service | d: delete service | Esc: back)")

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func serviceOptions(services []string) []huh.Option[string] {
	seen := make(map[string]bool, len(services))
	opts := make([]huh.Option[string], 0, len(services))

	for _, svc := range services {
		if seen[svc] {
			continue
		}

		seen[svc] = true
		opts = append(opts, huh.NewOption(svc, svc))
	}

	return opts
}

func formatRate(v float64) string {
	if v == 0 {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Messages

type settingsLoadedMsg struct {
	cfg *settings.Settings
	err error
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.settingsService.Load()
		if errors.Is(err, settings.ErrNotConfigured) {
			return settingsLoadedMsg{cfg: &settings.Settings{}}
		}

		return settingsLoadedMsg{cfg: cfg, err: err}
	}
}

type settingsSavedMsg struct {
	status string
	err    error
}

func (m SettingsModel) saveCmd(status string) tea.Cmd {
	cfg := m.cfg

	return func() tea.Msg {
		if err := m.settingsService.Save(cfg); err != nil {
			return settingsSavedMsg{err: err}
		}

		return settingsSavedMsg{status: status}
	}
}
