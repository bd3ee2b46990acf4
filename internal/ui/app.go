package ui

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockroom/internal/export"
	"stockroom/internal/forecast"
	"stockroom/internal/model"
)

// Config wires the root model to its collaborators.
type Config struct {
	DB *sql.DB

	// Source serves products, forecasts and sales. Nil means the local store.
	Source DataSource

	Terminal TerminalCapabilities

	// ExportDir and ExportFormat decide where x writes.
	ExportDir    string
	ExportFormat string

	// PageSize overrides the saved page size when it is valid.
	PageSize int

	// PrefsPath overrides ~/.stockroom/ui_prefs.json.
	PrefsPath string

	Logger *slog.Logger
	Now    func() time.Time
}

type tab struct {
	name   string
	screen model.Screen
}

var tabs = []tab{
	{"Dashboard", model.ScreenDashboard},
	{"Inventory", model.ScreenInventory},
	{"Sales", model.ScreenSales},
	{"Purchase Orders", model.ScreenPurchaseOrders},
	{"Vendors", model.ScreenVendors},
	{"Customers", model.ScreenCustomers},
	{"Account", model.ScreenAccount},
}

// Model is the root Bubble Tea model.
type Model struct {
	db               *sql.DB
	source           DataSource
	logger           *slog.Logger
	termCapabilities TerminalCapabilities
	exportDir        string
	exportFormat     string
	prefsPath        string
	now              func() time.Time

	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	toast       *toast
	toastSeq    int
	showingHelp bool
	columnJump  bool
	spinner     spinner.Model
	loading     map[model.Screen]bool

	// Screen models
	dashboard      *DashboardModel
	inventory      *InventoryModel
	sales          *SalesModel
	purchaseOrders *PurchaseOrdersModel
	vendors        *ContactsModel
	customers      *ContactsModel
	account        *AccountModel
	poDetail       *PurchaseOrderDetailModel
	salesForm      *SalesFormModel
	poForm         *PurchaseOrderFormModel
	contactForm    *ContactFormModel
	accountForm    *AccountFormModel
	profileForm    *ProfileFormModel

	products []model.Product
	settings model.SettingsLoadedMsg

	keys      KeyMap
	prefs     UIPreferences
	pageSize  int
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model.
func New(cfg Config) Model {
	src := cfg.Source
	if src == nil {
		src = NewLocalSource(cfg.DB)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	format := cfg.ExportFormat
	if format == "" {
		format = "csv"
	}
	prefsFile := cfg.PrefsPath
	if prefsFile == "" {
		prefsFile, _ = prefsPath()
	}
	prefs := defaultUIPreferences()
	if prefsFile != "" {
		prefs = loadUIPreferencesFrom(prefsFile)
	}
	pageSize := prefs.PageSize
	if cfg.PageSize != 0 {
		pageSize = cfg.PageSize
	}
	screen, _ := screenForTab(prefs.InitialTab)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		db:               cfg.DB,
		source:           src,
		logger:           logger,
		termCapabilities: cfg.Terminal,
		exportDir:        cfg.ExportDir,
		exportFormat:     format,
		prefsPath:        prefsFile,
		now:              now,
		screen:           screen,
		mode:             model.ModeNav,
		gState:           GStateIdle,
		spinner:          sp,
		loading:          map[model.Screen]bool{screen: true},
		keys:             DefaultKeyMap(),
		prefs:            prefs,
		pageSize:         pageSize,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadScreenCmd(m.screen))
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := saveUIPreferencesTo(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("saving preferences", "err", err)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.mode == model.ModeFilter {
			return m.handleFilterMode(msg)
		}

		if m.mode == model.ModeNav && m.columnJump {
			if msg.String() == "esc" {
				m.columnJump = false
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				if t := m.currentTable(); t != nil && t.JumpToColumn(n) {
					m.columnJump = false
					return m, m.notify(fmt.Sprintf("Jumped to column %d", n))
				}
				return m, m.notify(fmt.Sprintf("Column %d unavailable", n))
			}
			m.columnJump = false
		}

		if m.mode == model.ModeNav && key.Matches(msg, m.keys.Help) {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case model.ErrorMsg:
		m.loading = map[model.Screen]bool{}
		m.logger.Error("operation failed", "screen", m.screen, "err", msg.Err)
		if m.salesForm != nil {
			m.salesForm.Update(msg)
		}
		return m, m.fail(msg.Err.Error())

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.anyLoading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.salesForm != nil {
			cmds = append(cmds, m.salesForm.Update(msg))
		}
		return m, tea.Batch(cmds...)

	case toastExpiredMsg:
		m.expireToast(msg)
		return m, nil

	case model.DashboardLoadedMsg:
		delete(m.loading, model.ScreenDashboard)
		m.dashboard = NewDashboardModel(msg, m.now())
		return m, nil

	case model.ProductsLoadedMsg:
		delete(m.loading, model.ScreenInventory)
		m.products = msg.Products
		if m.inventory == nil {
			inv, err := NewInventoryModel(m.prefs.ForecastDays, m.pageSize)
			if err != nil {
				return m, m.fail(err.Error())
			}
			m.inventory = inv
		}
		fetch := m.inventory.SetProducts(msg.Products)
		m.warnSchema(m.inventory.table)
		if fetch {
			return m, loadForecastsCmd(m.source, m.inventory.Days())
		}
		return m, nil

	case model.ForecastsLoadedMsg:
		if m.inventory == nil {
			return m, nil
		}
		if !m.inventory.ApplyForecasts(msg) {
			m.logger.Debug("dropping stale forecast", "days", msg.Days, "selected", m.inventory.Days())
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Error("forecast fetch failed", "days", msg.Days, "err", msg.Err)
			return m, m.fail(fmt.Sprintf("failed to load %s forecast: %v", forecast.WindowLabel(msg.Days), msg.Err))
		}
		return m, nil

	case model.SalesLoadedMsg:
		delete(m.loading, model.ScreenSales)
		if m.sales != nil {
			m.sales.SetRecords(msg.Records)
		} else {
			s, err := NewSalesModel(msg.Records, m.pageSize)
			if err != nil {
				return m, m.fail(err.Error())
			}
			m.sales = s
		}
		m.warnSchema(m.sales.table)
		return m, nil

	case model.PurchaseOrdersLoadedMsg:
		delete(m.loading, model.ScreenPurchaseOrders)
		if m.purchaseOrders != nil {
			m.purchaseOrders.SetOrders(msg.Orders)
		} else {
			po, err := NewPurchaseOrdersModel(msg.Orders, m.pageSize)
			if err != nil {
				return m, m.fail(err.Error())
			}
			m.purchaseOrders = po
		}
		m.warnSchema(m.purchaseOrders.table)
		return m, nil

	case model.PurchaseOrderDetailLoadedMsg:
		m.poDetail = NewPurchaseOrderDetailModel(msg.Order)
		m.screen = model.ScreenPurchaseOrderDetail
		return m, nil

	case model.ContactsLoadedMsg:
		return m.applyContacts(msg)

	case model.SettingsLoadedMsg:
		delete(m.loading, model.ScreenAccount)
		m.settings = msg
		m.account = NewAccountModel(msg.Account, msg.Profile, m.termCapabilities, m.now())
		return m, nil

	case model.SalesRecordSavedMsg:
		if action := m.buildSalesRecordSaveAction(msg); action != nil {
			m.pushUndoAction(*action)
		}
		m.mode = model.ModeNav
		m.screen = model.ScreenSales
		m.salesForm = nil
		m.dashboard = nil
		m.logger.Info("sale recorded", "id", msg.Record.ID, "source", sourceLabel(m.source))
		return m, tea.Batch(m.notify("Recorded "+msg.Record.ID), loadSalesCmd(m.source))

	case model.PurchaseOrderSavedMsg:
		if action := m.buildPurchaseOrderSaveAction(msg); action != nil {
			m.pushUndoAction(*action)
		}
		m.mode = model.ModeNav
		m.screen = model.ScreenPurchaseOrders
		m.poForm = nil
		m.poDetail = nil
		m.dashboard = nil
		return m, tea.Batch(m.notify("Saved "+msg.ID), loadPurchaseOrdersCmd(m.db))

	case model.PurchaseOrderStatusMsg:
		m.pushUndoAction(m.buildPurchaseOrderStatusAction(msg))
		m.dashboard = nil
		cmds := []tea.Cmd{
			m.notify(fmt.Sprintf("%s marked %s (u to undo)", msg.ID, msg.After)),
			loadPurchaseOrdersCmd(m.db),
		}
		if m.screen == model.ScreenPurchaseOrderDetail {
			cmds = append(cmds, loadPurchaseOrderDetailCmd(m.db, msg.ID))
		}
		return m, tea.Batch(cmds...)

	case model.ContactSavedMsg:
		if action := m.buildContactSaveAction(msg); action != nil {
			m.pushUndoAction(*action)
		}
		m.mode = model.ModeNav
		m.screen = contactScreen(msg.After.Kind)
		m.contactForm = nil
		return m, tea.Batch(
			m.notify("Saved "+kindNoun(msg.After.Kind)+" "+msg.After.Company),
			loadContactsCmd(m.db, msg.After.Kind),
		)

	case model.AccountSavedMsg:
		m.pushUndoAction(m.buildAccountAction(msg))
		m.mode = model.ModeNav
		m.screen = model.ScreenAccount
		m.accountForm = nil
		return m, tea.Batch(m.notify("Account saved"), loadSettingsCmd(m.db))

	case model.ProfileSavedMsg:
		m.pushUndoAction(m.buildProfileAction(msg))
		m.mode = model.ModeNav
		m.screen = model.ScreenAccount
		m.profileForm = nil
		return m, tea.Batch(m.notify("Profile saved"), loadSettingsCmd(m.db))

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		switch m.screen {
		case model.ScreenSalesForm:
			m.screen = model.ScreenSales
		case model.ScreenPurchaseOrderForm:
			m.screen = model.ScreenPurchaseOrders
			if m.poDetail != nil {
				m.screen = model.ScreenPurchaseOrderDetail
			}
		case model.ScreenContactForm:
			if m.contactForm != nil {
				m.screen = contactScreen(m.contactForm.kind)
			}
		case model.ScreenAccountForm, model.ScreenProfileForm:
			m.screen = model.ScreenAccount
		}
		m.salesForm = nil
		m.poForm = nil
		m.contactForm = nil
		m.accountForm = nil
		m.profileForm = nil
		return m, nil

	case model.DeletePurchaseOrderMsg:
		m.pushUndoAction(m.buildDeletePurchaseOrderAction(msg))
		m.screen = model.ScreenPurchaseOrders
		m.poDetail = nil
		m.dashboard = nil
		return m, tea.Batch(m.notify(msg.ID+" deleted (u to undo)"), loadPurchaseOrdersCmd(m.db))

	case model.DeleteContactMsg:
		m.pushUndoAction(m.buildDeleteContactAction(msg))
		return m, tea.Batch(
			m.notify(msg.Deleted.Company+" deleted (u to undo)"),
			loadContactsCmd(m.db, msg.Deleted.Kind),
		)

	case model.DeleteSalesRecordMsg:
		m.pushUndoAction(m.buildDeleteSalesRecordAction(msg))
		m.dashboard = nil
		return m, tea.Batch(m.notify(msg.ID+" deleted (u to undo)"), loadSalesCmd(m.source))

	case model.ExportedMsg:
		m.logger.Info("exported table", "path", msg.Path, "rows", msg.Rows)
		return m, m.notify(fmt.Sprintf("Exported %d rows to %s", msg.Rows, msg.Path))

	case yankedMsg:
		return m, m.notify(fmt.Sprintf("Copied %d rows to the clipboard", msg.rows))

	case undoAppliedMsg:
		return m, m.applyUndoResult(msg)

	default:
		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}
	}

	return m, nil
}

func contactScreen(kind string) model.Screen {
	if kind == model.KindCustomer {
		return model.ScreenCustomers
	}
	return model.ScreenVendors
}

func (m Model) applyContacts(msg model.ContactsLoadedMsg) (tea.Model, tea.Cmd) {
	screen := contactScreen(msg.Kind)
	delete(m.loading, screen)

	target := &m.vendors
	if screen == model.ScreenCustomers {
		target = &m.customers
	}
	if *target != nil {
		(*target).SetContacts(msg.Contacts)
	} else {
		cm, err := NewContactsModel(msg.Kind, msg.Contacts, m.pageSize)
		if err != nil {
			return m, m.fail(err.Error())
		}
		*target = cm
	}
	m.warnSchema((*target).table)

	if msg.Kind == model.KindVendor && m.poForm != nil {
		m.poForm.suggest.setOptions(companies(msg.Contacts))
	}
	return m, nil
}

// warnSchema logs column keys a screen declares but its rows never carry.
func (m Model) warnSchema(t *TableView) {
	if err := t.SchemaErr(); err != nil {
		m.logger.Warn("column model does not match loaded rows", "table", t.Name(), "err", err)
	}
}

func companies(contacts []model.Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Company)
	}
	return out
}

func (m Model) anyLoading() bool {
	for _, v := range m.loading {
		if v {
			return true
		}
	}
	return false
}

// loadScreenCmd fetches the data a top-level screen shows.
func (m Model) loadScreenCmd(screen model.Screen) tea.Cmd {
	switch screen {
	case model.ScreenInventory:
		return m.loadInventoryCmds()
	case model.ScreenSales:
		return loadSalesCmd(m.source)
	case model.ScreenPurchaseOrders:
		return loadPurchaseOrdersCmd(m.db)
	case model.ScreenVendors:
		return loadContactsCmd(m.db, model.KindVendor)
	case model.ScreenCustomers:
		return loadContactsCmd(m.db, model.KindCustomer)
	case model.ScreenAccount:
		return loadSettingsCmd(m.db)
	default:
		return loadDashboardCmd(m.db, m.source)
	}
}

// loadInventoryCmds fetches the catalogue; the forecast follows once it
// arrives.
func (m Model) loadInventoryCmds() tea.Cmd {
	return loadProductsCmd(m.source)
}

func (m Model) loaded(screen model.Screen) bool {
	switch screen {
	case model.ScreenDashboard:
		return m.dashboard != nil
	case model.ScreenInventory:
		return m.inventory != nil
	case model.ScreenSales:
		return m.sales != nil
	case model.ScreenPurchaseOrders:
		return m.purchaseOrders != nil
	case model.ScreenVendors:
		return m.vendors != nil
	case model.ScreenCustomers:
		return m.customers != nil
	case model.ScreenAccount:
		return m.account != nil
	}
	return true
}

// switchTab shows a top-level screen, loading it on first visit.
func (m Model) switchTab(screen model.Screen) (tea.Model, tea.Cmd) {
	m.screen = screen
	m.columnJump = false
	m.prefs.InitialTab = tabNames[screen]
	m.savePrefs()
	if m.loaded(screen) {
		return m, nil
	}
	return m.reload()
}

// reload refetches the current top-level screen.
func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading[m.screen] = true
	return m, tea.Batch(m.spinner.Tick, m.loadScreenCmd(m.screen))
}

func tabIndex(screen model.Screen) int {
	for i, t := range tabs {
		if t.screen == screen {
			return i
		}
	}
	return -1
}

func isTopLevel(screen model.Screen) bool {
	return tabIndex(screen) >= 0
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	showTabs := isTopLevel(m.screen)

	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}
	contentHeight -= m.toastHeight()

	var content string
	var breadcrumbParts []string

	switch m.screen {
	case model.ScreenDashboard:
		breadcrumbParts = []string{"Dashboard"}
		if m.dashboard != nil {
			content = m.dashboard.View(m.width, contentHeight)
		}
	case model.ScreenInventory:
		breadcrumbParts = []string{"Inventory"}
		if m.inventory != nil {
			content = m.inventory.View(m.width, contentHeight)
		}
	case model.ScreenSales:
		breadcrumbParts = []string{"Sales"}
		if m.sales != nil {
			content = m.sales.View(m.width, contentHeight)
		}
	case model.ScreenPurchaseOrders:
		breadcrumbParts = []string{"Purchase Orders"}
		if m.purchaseOrders != nil {
			content = m.purchaseOrders.View(m.width, contentHeight)
		}
	case model.ScreenVendors:
		breadcrumbParts = []string{"Vendors"}
		if m.vendors != nil {
			content = m.vendors.View(m.width, contentHeight)
		}
	case model.ScreenCustomers:
		breadcrumbParts = []string{"Customers"}
		if m.customers != nil {
			content = m.customers.View(m.width, contentHeight)
		}
	case model.ScreenAccount:
		breadcrumbParts = []string{"Account"}
		if m.account != nil {
			content = m.account.View(m.width, contentHeight)
		}
	case model.ScreenPurchaseOrderDetail:
		breadcrumbParts = []string{"Purchase Orders", "Detail"}
		if m.poDetail != nil {
			breadcrumbParts = []string{"Purchase Orders", m.poDetail.order.ID}
			content = m.poDetail.View(m.width, contentHeight)
		}
	case model.ScreenSalesForm:
		breadcrumbParts = []string{"Sales", "New"}
		if m.salesForm != nil {
			content = m.salesForm.View(m.width, contentHeight)
		}
	case model.ScreenPurchaseOrderForm:
		breadcrumbParts = []string{"Purchase Orders", "Form"}
		if m.poForm != nil {
			content = m.poForm.View(m.width, contentHeight)
		}
	case model.ScreenContactForm:
		breadcrumbParts = []string{"Contacts", "Form"}
		if m.contactForm != nil {
			breadcrumbParts = []string{kindTitle(m.contactForm.kind), "Form"}
			content = m.contactForm.View(m.width, contentHeight)
		}
	case model.ScreenAccountForm:
		breadcrumbParts = []string{"Account", "Edit"}
		if m.accountForm != nil {
			content = m.accountForm.View(m.width, contentHeight)
		}
	case model.ScreenProfileForm:
		breadcrumbParts = []string{"Account", "Profile"}
		if m.profileForm != nil {
			content = m.profileForm.View(m.width, contentHeight)
		}
	}

	if m.loading[m.screen] && content == "" {
		content = EmptyStateStyle.Render(m.spinner.View() + " Loading " + strings.ToLower(breadcrumbParts[0]) + "...")
	}

	header := renderHeader(breadcrumbParts, sourceLabel(m.source), m.now(), m.width)
	footer := RenderHelp(m.screen, m.mode, m.width)
	if m.columnJump {
		footer = FooterStyle.Width(m.width).Render(HelpDescStyle.Render("Jump to column: press 1-9 (esc to cancel)"))
	}

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.width))
	}
	if m.toast != nil {
		parts = append(parts, m.renderToast())
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTabs(screen model.Screen, width int) string {
	var tabStrings []string
	for i, t := range tabs {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

		if screen == t.screen {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(fmt.Sprintf("%d %s", i+1, t.name)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, source string, now time.Time, width int) string {
	title := HeaderStyle.Render("stockroom")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := BreadcrumbStyle.Render(source+"  ·  "+now.Format("Mon 02 Jan")) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m *Model) currentTable() tableController {
	switch m.screen {
	case model.ScreenInventory:
		if m.inventory != nil {
			return m.inventory.table
		}
	case model.ScreenSales:
		if m.sales != nil {
			return m.sales.table
		}
	case model.ScreenPurchaseOrders:
		if m.purchaseOrders != nil {
			return m.purchaseOrders.table
		}
	case model.ScreenVendors:
		if m.vendors != nil {
			return m.vendors.table
		}
	case model.ScreenCustomers:
		if m.customers != nil {
			return m.customers.table
		}
	}
	return nil
}

func (m Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.currentTable()
	if t == nil {
		m.mode = model.ModeNav
		return m, nil
	}
	cmd, done := t.UpdateFilter(msg)
	if done {
		m.mode = model.ModeNav
	}
	return m, cmd
}

// exportName is the file name stem for the current screen.
func (m Model) exportName() string {
	return strings.ReplaceAll(tabNames[m.screen], "_", "-")
}

// handleTableKey applies the shared table bindings. handled is false for
// keys the table does not use.
func (m Model) handleTableKey(t tableController, msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.NextColumn):
		t.NextColumn()
	case key.Matches(msg, m.keys.PrevColumn):
		t.PrevColumn()
	case key.Matches(msg, m.keys.ColumnJump):
		m.columnJump = true
	case key.Matches(msg, m.keys.SortAsc):
		if !t.SortActiveColumn(false) {
			return m, m.notify("Column cannot be sorted"), true
		}
		return m, m.notify("Sorted ascending"), true
	case key.Matches(msg, m.keys.SortDesc):
		if !t.SortActiveColumn(true) {
			return m, m.notify("Column cannot be sorted"), true
		}
		return m, m.notify("Sorted descending"), true
	case key.Matches(msg, m.keys.SortCycle):
		return m, m.notify(t.CycleSortActiveColumn()), true
	case key.Matches(msg, m.keys.HideColumn):
		if t.HideActiveColumn() {
			return m, m.notify("Column hidden"), true
		}
		return m, m.notify("Cannot hide this column"), true
	case key.Matches(msg, m.keys.ShowColumns):
		t.ShowAllColumns()
		return m, m.notify("All columns shown"), true
	case key.Matches(msg, m.keys.Filter):
		t.StartFilter()
		m.mode = model.ModeFilter
	case key.Matches(msg, m.keys.ClearFilter):
		if t.ClearFilter() {
			return m, m.notify("Filter cleared"), true
		}
	case key.Matches(msg, m.keys.NextPage):
		t.NextPage()
	case key.Matches(msg, m.keys.PrevPage):
		t.PrevPage()
	case key.Matches(msg, m.keys.PageSize):
		n := t.CyclePageSize()
		m.pageSize = n
		m.prefs.PageSize = n
		m.savePrefs()
		return m, m.notify(fmt.Sprintf("%d rows per page", n)), true
	case key.Matches(msg, m.keys.Down):
		t.MoveDown()
	case key.Matches(msg, m.keys.Up):
		t.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		t.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		t.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		t.HalfPageUp()
	case key.Matches(msg, m.keys.Export):
		path := export.Filename(m.exportDir, m.exportName(), m.exportFormat, m.now())
		return m, exportCmd(t.Export(), path), true
	case key.Matches(msg, m.keys.YankRow):
		row, ok := t.SelectedExport()
		if !ok {
			return m, m.notify("No row selected"), true
		}
		return m, yankCmd(row), true
	case key.Matches(msg, m.keys.YankPage):
		return m, yankCmd(t.PageExport()), true
	default:
		return m, nil, false
	}
	return m, nil, true
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle "gg" state machine
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		if t := m.currentTable(); t != nil {
			t.JumpToTop()
		} else if m.poDetail != nil && m.screen == model.ScreenPurchaseOrderDetail {
			m.poDetail.viewport.GotoTop()
		}
		return m, nil
	}
	m.gState = GStateIdle

	if t := m.currentTable(); t != nil {
		if next, cmd, handled := m.handleTableKey(t, msg); handled {
			return next, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Undo):
		if len(m.undoStack) == 0 {
			return m, m.notify("Nothing to undo")
		}
		return m, m.undoCmd()
	case key.Matches(msg, m.keys.Redo):
		if len(m.redoStack) == 0 {
			return m, m.notify("Nothing to redo")
		}
		return m, m.redoCmd()
	}

	if isTopLevel(m.screen) {
		i := tabIndex(m.screen)
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m.reload()
		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTab(tabs[(i+len(tabs)-1)%len(tabs)].screen)
		case key.Matches(msg, m.keys.NextTab):
			return m.switchTab(tabs[(i+1)%len(tabs)].screen)
		}
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(tabs) {
			return m.switchTab(tabs[n-1].screen)
		}
	}

	switch m.screen {
	case model.ScreenInventory:
		return m.handleInventoryNav(msg)
	case model.ScreenSales:
		return m.handleSalesNav(msg)
	case model.ScreenPurchaseOrders:
		return m.handlePurchaseOrdersNav(msg)
	case model.ScreenVendors, model.ScreenCustomers:
		return m.handleContactsNav(msg)
	case model.ScreenAccount:
		return m.handleAccountNav(msg)
	case model.ScreenPurchaseOrderDetail:
		return m.handlePurchaseOrderDetailNav(msg)
	}

	return m, nil
}

func (m Model) handleInventoryNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inventory == nil || !key.Matches(msg, m.keys.Forecast) {
		return m, nil
	}
	fetch := m.inventory.CycleWindow()
	m.prefs.ForecastDays = m.inventory.Days()
	m.savePrefs()
	notice := m.notify("Forecast: " + forecast.WindowLabel(m.inventory.Days()))
	if fetch {
		return m, tea.Batch(notice, loadForecastsCmd(m.source, m.inventory.Days()))
	}
	return m, notice
}

func (m Model) handleSalesNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.mode = model.ModeInsert
		m.screen = model.ScreenSalesForm
		m.salesForm = NewSalesFormModel(m.source, m.products, m.now())
		return m, m.salesForm.Init()
	case key.Matches(msg, m.keys.Delete):
		if m.sales == nil {
			return m, nil
		}
		rec, ok := m.sales.Selected()
		if !ok {
			return m, nil
		}
		if !isLocal(m.source) {
			return m, m.fail("Sales records on " + sourceLabel(m.source) + " cannot be deleted")
		}
		return m, deleteSalesRecordCmd(m.db, rec.ID)
	}
	return m, nil
}

func (m Model) openPurchaseOrderForm(order *model.PurchaseOrder) (tea.Model, tea.Cmd) {
	var suppliers []string
	var cmd tea.Cmd
	if m.vendors != nil {
		suppliers = companies(m.vendors.contacts)
	} else {
		cmd = loadContactsCmd(m.db, model.KindVendor)
	}
	m.poForm = NewPurchaseOrderFormModel(m.db, suppliers, m.now())
	if order != nil {
		m.poForm.LoadOrder(*order)
	}
	m.mode = model.ModeInsert
	m.screen = model.ScreenPurchaseOrderForm
	return m, cmd
}

func (m Model) handlePurchaseOrdersNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.purchaseOrders == nil {
		return m, nil
	}
	if key.Matches(msg, m.keys.Add) {
		m.poDetail = nil
		return m.openPurchaseOrderForm(nil)
	}

	order, ok := m.purchaseOrders.Selected()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Select):
		return m, loadPurchaseOrderDetailCmd(m.db, order.ID)
	case key.Matches(msg, m.keys.Edit):
		m.poDetail = nil
		return m.openPurchaseOrderForm(&order)
	case key.Matches(msg, m.keys.Receive):
		return m, togglePurchaseOrderStatusCmd(m.db, order.ID, order.Status)
	case key.Matches(msg, m.keys.Delete):
		return m, deletePurchaseOrderCmd(m.db, order.ID)
	}
	return m, nil
}

func (m Model) handlePurchaseOrderDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.poDetail == nil {
		return m, nil
	}
	order := m.poDetail.order
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = model.ScreenPurchaseOrders
		m.poDetail = nil
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Edit):
		return m.openPurchaseOrderForm(&order)
	case key.Matches(msg, m.keys.Receive):
		return m, togglePurchaseOrderStatusCmd(m.db, order.ID, order.Status)
	case key.Matches(msg, m.keys.Delete):
		return m, deletePurchaseOrderCmd(m.db, order.ID)
	case key.Matches(msg, m.keys.Bottom):
		m.poDetail.viewport.GotoBottom()
		return m, nil
	}
	return m, m.poDetail.Update(msg)
}

func (m Model) handleContactsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list, kind := m.vendors, model.KindVendor
	if m.screen == model.ScreenCustomers {
		list, kind = m.customers, model.KindCustomer
	}
	if list == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		m.mode = model.ModeInsert
		m.screen = model.ScreenContactForm
		m.contactForm = NewContactFormModel(m.db, kind)
		return m, nil
	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		c, ok := list.Selected()
		if !ok {
			return m, nil
		}
		m.mode = model.ModeInsert
		m.screen = model.ScreenContactForm
		m.contactForm = NewContactFormModel(m.db, kind)
		m.contactForm.LoadContact(c)
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		c, ok := list.Selected()
		if !ok {
			return m, nil
		}
		return m, deleteContactCmd(m.db, c.ID)
	}
	return m, nil
}

func (m Model) handleAccountNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.account == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.mode = model.ModeInsert
		m.screen = model.ScreenAccountForm
		m.accountForm = NewAccountFormModel(m.db, m.settings.Account, m.now())
	case key.Matches(msg, m.keys.Profile):
		m.mode = model.ModeInsert
		m.screen = model.ScreenProfileForm
		m.profileForm = NewProfileFormModel(m.db, m.settings.Profile)
	}
	return m, nil
}

// handleInsertMode handles insert/edit mode input.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenSalesForm:
		if m.salesForm != nil {
			return m, m.salesForm.Update(msg)
		}
	case model.ScreenPurchaseOrderForm:
		if m.poForm != nil {
			return m, m.poForm.Update(msg)
		}
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.screen {
	case model.ScreenContactForm:
		if m.contactForm != nil {
			return m, m.contactForm.Update(keyMsg)
		}
	case model.ScreenAccountForm:
		if m.accountForm != nil {
			return m, m.accountForm.Update(keyMsg)
		}
	case model.ScreenProfileForm:
		if m.profileForm != nil {
			return m, m.profileForm.Update(keyMsg)
		}
	}
	return m, nil
}
