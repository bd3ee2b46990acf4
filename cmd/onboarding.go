package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"stockroom/internal/ui"
)

// OnboardingSettings is the first-run choice of data source.
type OnboardingSettings struct {
	Completed bool   `json:"completed"`
	APIURL    string `json:"api_url,omitempty"`
	SkipSeed  bool   `json:"skip_seed,omitempty"`
}

func onboardingPath(configDir string) string {
	return filepath.Join(configDir, "onboarding.json")
}

func loadOnboardingSettings(configDir string) (OnboardingSettings, error) {
	path := onboardingPath(configDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OnboardingSettings{}, nil
		}
		return OnboardingSettings{}, err
	}

	var settings OnboardingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return OnboardingSettings{}, err
	}
	return settings, nil
}

func saveOnboardingSettings(configDir string, settings OnboardingSettings) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(onboardingPath(configDir), data, 0644)
}

func shouldRunOnboarding(settings OnboardingSettings) bool {
	if settings.Completed {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// validateAPIURL accepts absolute http and https URLs.
func validateAPIURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("URL must start with http:// or https://")
	}
	return strings.TrimRight(raw, "/"), nil
}

type onboardingStep int

const (
	stepSource onboardingStep = iota
	stepURL
	stepSeed
	stepDone
)

type onboardingModel struct {
	step     onboardingStep
	useAPI   bool
	seed     bool
	urlInput textinput.Model
	settings OnboardingSettings
	status   string
	err      string
	width    int
	height   int
}

var (
	obTabInactive = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(0, 2)

	obTabActive = obTabInactive.
			Foreground(ui.ColorText).
			Bold(true).
			Underline(true)

	obTabsStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ui.ColorMuted)
)

func newOnboardingModel(existingURL string) onboardingModel {
	in := textinput.New()
	in.Placeholder = "https://inventory.example.com"
	in.CharLimit = 300
	in.Prompt = "url> "
	in.TextStyle = lipgloss.NewStyle().Foreground(ui.ColorText)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(ui.ColorText).Background(ui.ColorAccent)
	in.SetValue(strings.TrimSpace(existingURL))
	in.Focus()

	return onboardingModel{
		step:     stepSource,
		useAPI:   existingURL != "",
		seed:     true,
		urlInput: in,
		settings: OnboardingSettings{Completed: true},
	}
}

func (m onboardingModel) Init() tea.Cmd { return nil }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.status = "Setup canceled. Using the local database."
			m.step = stepDone
			return m, tea.Quit
		}
		switch m.step {
		case stepSource:
			switch msg.String() {
			case "up", "k", "left", "h", "l":
				m.useAPI = false
			case "down", "j", "right", "r":
				m.useAPI = true
			case "enter":
				if m.useAPI {
					m.step = stepURL
				} else {
					m.step = stepSeed
				}
			case "q":
				m.status = "Setup canceled. Using the local database."
				m.step = stepDone
				return m, tea.Quit
			}
			return m, nil
		case stepURL:
			switch msg.String() {
			case "enter":
				u, err := validateAPIURL(m.urlInput.Value())
				if err != nil {
					m.err = err.Error()
					return m, nil
				}
				m.settings.APIURL = u
				m.err = ""
				m.step = stepSeed
				return m, nil
			case "esc":
				m.useAPI = false
				m.err = ""
				m.step = stepSource
				return m, nil
			}
			var cmd tea.Cmd
			m.urlInput, cmd = m.urlInput.Update(msg)
			return m, cmd
		case stepSeed:
			switch msg.String() {
			case "y", "Y":
				m.seed = true
			case "n", "N":
				m.seed = false
			case "up", "k", "down", "j":
				m.seed = !m.seed
				return m, nil
			case "enter":
			default:
				return m, nil
			}
			m.settings.SkipSeed = !m.seed
			m.status = "Using the local database."
			if m.settings.APIURL != "" {
				m.status = "Products and sales will come from " + m.settings.APIURL + "."
			}
			m.step = stepDone
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := m.renderHeader(width)
	tabs := m.renderTabs(width)
	footer := m.renderFooter(width)

	contentHeight := max(8, height-6)
	content := m.renderContent(width, contentHeight)
	screen := lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, footer)

	return lipgloss.NewStyle().
		Foreground(ui.ColorText).
		Width(width).
		Height(height).
		Render(screen)
}

func (m onboardingModel) renderHeader(width int) string {
	left := "  " + ui.LabelStyle.Render("stockroom") + " " + ui.HelpDescStyle.Render("› Setup")
	right := ui.HelpDescStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return ui.TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m onboardingModel) renderTabs(width int) string {
	names := []string{"Data source", "Service URL", "Demo data"}
	var rendered []string
	for i, name := range names {
		if onboardingStep(i) == m.step {
			rendered = append(rendered, obTabActive.Render(name))
		} else {
			rendered = append(rendered, obTabInactive.Render(name))
		}
	}
	return obTabsStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, append([]string{"  "}, rendered...)...))
}

func (m onboardingModel) renderFooter(width int) string {
	switch m.step {
	case stepSource:
		return ui.FooterStyle.Width(width).Render("↑↓/jk to choose  enter to confirm  q cancel")
	case stepURL:
		return ui.FooterStyle.Width(width).Render("enter save  esc back")
	case stepSeed:
		return ui.FooterStyle.Width(width).Render("y/n or enter to confirm")
	default:
		return ui.FooterStyle.Width(width).Render("Setup complete")
	}
}

func option(selected bool, text string) string {
	if selected {
		return "  " + ui.LabelStyle.Render("→ "+text)
	}
	return "    " + ui.NormalRowStyle.Render(text)
}

func (m onboardingModel) renderContent(width, height int) string {
	cardWidth := min(92, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}

	var body string
	switch m.step {
	case stepSource:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			ui.LabelStyle.Render("Where do products and sales live?"),
			"",
			option(!m.useAPI, "Local database only"),
			option(m.useAPI, "Inventory REST service"),
			"",
			ui.HelpDescStyle.Render("Purchase orders, vendors and customers are always kept locally."),
			ui.HelpDescStyle.Render("You can change this later in ~/.stockroom/onboarding.json or with -api"),
		)
	case stepURL:
		input := ui.ActiveBorderStyle.Width(max(30, cardWidth-14)).Render(m.urlInput.View())
		lines := []string{
			ui.LabelStyle.Render("Service base URL"),
			"",
			ui.HelpDescStyle.Render("The service must expose /api/products/ and /api/sales-records/."),
			"",
			input,
		}
		if m.err != "" {
			lines = append(lines, ui.FieldErrorStyle.Render(m.err))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	case stepSeed:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			ui.LabelStyle.Render("Load demo data into an empty database?"),
			"",
			option(m.seed, "Yes, add sample products, orders and contacts"),
			option(!m.seed, "No, start empty"),
		)
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, ui.LabelStyle.Render("Onboarding Complete"), "", ui.HelpDescStyle.Render(m.status))
	}

	card := ui.PanelStyle.Width(cardWidth).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

func runOnboarding(configDir, existingURL string) (OnboardingSettings, error) {
	model := newOnboardingModel(existingURL)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return OnboardingSettings{}, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return OnboardingSettings{}, fmt.Errorf("unexpected onboarding model type")
	}
	if err := saveOnboardingSettings(configDir, m.settings); err != nil {
		return OnboardingSettings{}, err
	}
	return m.settings, nil
}
