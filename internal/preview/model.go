package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/kform/internal/form"
	"github.com/renato0307/kform/internal/schema"
)

const (
	// reservedLines is the number of lines taken by the header, separator
	// and status bar.
	reservedLines = 3

	defaultWidth  = 80
	defaultHeight = 24
)

// Model is an interactive, scrollable preview of a projected form.
type Model struct {
	title    string
	result   *form.Result
	theme    *Theme
	keys     *Keys
	opts     Options
	viewport viewport.Model
	width    int
}

// NewModel creates a preview of result. Descriptions and diagnostics are
// shown initially.
func NewModel(title string, result *form.Result, theme *Theme) *Model {
	m := &Model{
		title:    title,
		result:   result,
		theme:    theme,
		keys:     DefaultKeys(),
		opts:     Options{Descriptions: true, Diagnostics: true},
		viewport: viewport.New(defaultWidth, defaultHeight-reservedLines),
		width:    defaultWidth,
	}
	m.refresh()
	return m
}

// Run shows the preview in the alternate screen until the user quits.
func Run(title string, result *form.Result, theme *Theme) error {
	_, err := tea.NewProgram(NewModel(title, result, theme), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	return nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-reservedLines)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case m.keys.Quit, m.keys.Back, "esc":
			return m, tea.Quit
		case m.keys.Descriptions:
			m.opts.Descriptions = !m.opts.Descriptions
			m.refresh()
			return m, nil
		case m.keys.Diagnostics:
			m.opts.Diagnostics = !m.opts.Diagnostics
			m.refresh()
			return m, nil
		case m.keys.Up, "up":
			m.viewport.ScrollUp(1)
			return m, nil
		case m.keys.Down, "down":
			m.viewport.ScrollDown(1)
			return m, nil
		case m.keys.PageUp, "pgup":
			m.viewport.PageUp()
			return m, nil
		case m.keys.PageDown, "pgdown":
			m.viewport.PageDown()
			return m, nil
		case m.keys.JumpTop, "home":
			m.viewport.GotoTop()
			return m, nil
		case m.keys.JumpBottom, "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	title := m.theme.Header.Render("Form: " + m.title)
	hint := m.theme.StatusBar.Render("[q] Quit  [↑↓/jk] Scroll  [d] Descriptions  [w] Warnings")
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", max(0, m.width-lipgloss.Width(title)-lipgloss.Width(hint))),
		hint,
	)
	separator := lipgloss.NewStyle().Foreground(m.theme.Border).Render(strings.Repeat("─", max(0, m.width)))

	status := fmt.Sprintf("%d fields", countFields(m.result))
	if n := len(m.result.Diagnostics); n > 0 {
		status += fmt.Sprintf(", %d skipped paths", n)
	}
	if m.viewport.TotalLineCount() > m.viewport.Height {
		status += fmt.Sprintf("  %3.f%%", m.viewport.ScrollPercent()*100)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		separator,
		m.viewport.View(),
		m.theme.StatusBar.Render(status),
	)
}

func (m *Model) refresh() {
	m.viewport.SetContent(Render(m.result, m.theme, m.opts))
}

// countFields counts the inputs of the form. Sections and item lists are
// containers, not inputs.
func countFields(result *form.Result) int {
	return countInputs(result.Schema)
}

func countInputs(s *schema.Schema) int {
	switch {
	case s == nil:
		return 0
	case s.Kind() == schema.KindObject || s.Kind() == schema.KindMap:
		n := 0
		for _, child := range s.Properties {
			n += countInputs(child)
		}
		return n
	case s.Kind() == schema.KindArray && s.Items.Kind() == schema.KindObject && !isKeyValue(s.Items):
		return countInputs(s.Items)
	default:
		return 1
	}
}
