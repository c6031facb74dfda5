package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/webitplay/depobill/cmd/tui/internal/view"
	"github.com/webitplay/depobill/internal/client"
	clientStore "github.com/webitplay/depobill/internal/client/store"
	"github.com/webitplay/depobill/internal/config"
	"github.com/webitplay/depobill/internal/database"
	"github.com/webitplay/depobill/internal/email"
	"github.com/webitplay/depobill/internal/invoice"
	invoiceStore "github.com/webitplay/depobill/internal/invoice/store"
	"github.com/webitplay/depobill/internal/pdf"
	"github.com/webitplay/depobill/internal/report"
	"github.com/webitplay/depobill/internal/settings"
)

type model struct {
	invoiceService  *invoice.Service
	clientService   *client.Service
	reportService   *report.Service
	settingsService *settings.Service
	renderer        *pdf.Renderer
	sender          *email.Sender
	exportsDir      string

	currentView View
	hint        string

	createView   view.CreateModel
	invoicesView view.InvoicesModel
	reportView   view.ReportModel
	clientsView  view.ClientsModel
	settingsView view.SettingsModel
}

type setupHintMsg struct {
	hint string
}

// setupCheckCmd surfaces first-run gaps as a menu hint instead of blocking.
func setupCheckCmd(settingsSvc *settings.Service, clientSvc *client.Service) tea.Cmd {
	return func() tea.Msg {
		if _, err := settingsSvc.Load(); err != nil {
			return setupHintMsg{hint: "Settings are not configured yet. Start with option 5."}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		count, err := clientSvc.Count(ctx)
		if err == nil && count == 0 {
			return setupHintMsg{hint: "No clients on file yet. Add one with option 4."}
		}

		return setupHintMsg{}
	}
}

type View int

const (
	ViewMenu     View = 0
	ViewCreate   View = 1
	ViewInvoices View = 2
	ViewReport   View = 3
	ViewClients  View = 4
	ViewSettings View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	invoiceSvc := invoice.NewService(invoiceStore.New(db))
	clientSvc := client.NewService(clientStore.New(db))
	reportSvc := report.NewService(invoiceSvc)
	settingsSvc := settings.NewService(cfg.Paths.Settings)
	renderer := pdf.NewRenderer(cfg.Paths.Exports)
	sender := email.NewSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)

	return model{
		invoiceService:  invoiceSvc,
		clientService:   clientSvc,
		reportService:   reportSvc,
		settingsService: settingsSvc,
		renderer:        renderer,
		sender:          sender,
		exportsDir:      cfg.Paths.Exports,
		currentView:     ViewMenu,
		createView:      view.NewCreateModel(invoiceSvc, clientSvc, settingsSvc, renderer, sender),
		invoicesView:    view.NewInvoicesModel(invoiceSvc, settingsSvc, renderer, sender),
		reportView:      view.NewReportModel(reportSvc, cfg.Paths.Exports),
		clientsView:     view.NewClientsModel(clientSvc),
		settingsView:    view.NewSettingsModel(settingsSvc),
	}
}

func (m model) Init() tea.Cmd {
	return setupCheckCmd(m.settingsService, m.clientService)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCreate
				m.createView = view.NewCreateModel(
					m.invoiceService, m.clientService, m.settingsService, m.renderer, m.sender,
				)

				return m, m.createView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(
					m.invoiceService, m.settingsService, m.renderer, m.sender,
				)

				return m, m.invoicesView.Init()
			case "3":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.reportService, m.exportsDir)

				return m, m.reportView.Init()
			case "4":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.clientService)

				return m, m.clientsView.Init()
			case "5":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.settingsService)

				return m, m.settingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, setupCheckCmd(m.settingsService, m.clientService)
	case setupHintMsg:
		m.hint = msg.hint
		return m, nil
	}

	switch m.currentView {
	case ViewCreate:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.CreateModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		menu := "Depobill\n\n" +
			"1. Create Invoice\n" +
			"2. Browse Invoices\n" +
			"3. Yearly Report\n" +
			"4. Manage Clients\n" +
			"5. Settings\n\n" +
			"q. Quit"

		if m.hint != "" {
			menu += "\n\n" + lipgloss.NewStyle().Faint(true).Render(m.hint)
		}

		return lipgloss.NewStyle().Padding(2).Render(menu)
	case ViewCreate:
		return m.createView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewReport:
		return m.reportView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewSettings:
		return m.settingsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
