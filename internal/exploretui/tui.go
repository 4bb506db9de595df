// Package exploretui implements the interactive topic-exploration surface.
//
// The model forwards user intents into an explore.Controller and re-renders
// from the View snapshot the controller returns after each round trip. While
// an operation is in flight, intent keys are ignored so the controller never
// sees overlapping operations.
package exploretui

import (
	"context"
	"fmt"
	"strings"

	"github.com/amonks/ramble/explore"
	"github.com/amonks/ramble/internal/markdown"
	"github.com/amonks/ramble/internal/ui"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type focusPane int

const (
	focusMenu focusPane = iota
	focusContent
)

// Options configures the exploration surface.
type Options struct {
	// RenderStyle selects the glamour style for generated content.
	RenderStyle string
}

type model struct {
	ctx         context.Context
	controller  *explore.Controller
	renderStyle string

	width  int
	height int
	focus  focusPane

	menu    list.Model
	content viewport.Model
	topic   textinput.Model
	spin    spinner.Model

	view        explore.View
	pending     bool
	status      string
	statusLevel statusLevel
}

type opDoneMsg struct {
	view explore.View
}

// Run starts the interactive surface and blocks until the user quits.
func Run(ctx context.Context, controller *explore.Controller, opts Options) error {
	if controller == nil {
		return fmt.Errorf("controller is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, controller, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, controller *explore.Controller, opts Options) model {
	menu := list.New(nil, menuItemDelegate{}, 0, 0)
	menu.Title = "Menu"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)
	menu.SetShowPagination(false)

	topic := textinput.New()
	topic.Placeholder = "Enter a topic to explore"
	topic.CharLimit = 200
	topic.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return model{
		ctx:         ctx,
		controller:  controller,
		renderStyle: opts.RenderStyle,
		focus:       focusMenu,
		menu:        menu,
		content:     viewport.New(0, 0),
		topic:       topic,
		spin:        spin,
		view:        controller.View(),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case opDoneMsg:
		return m.handleOpDone(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.pending {
		// A round trip is in flight; new intents wait until it settles.
		return m, nil
	}
	if m.view.State == explore.StateIdle {
		return m.handleIdleKey(msg)
	}
	return m.handleSessionKey(msg)
}

func (m model) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		topic := strings.TrimSpace(m.topic.Value())
		if topic == "" {
			m.setStatus("enter a topic first", statusError)
			return m, nil
		}
		return m.dispatch(m.startCmd(topic))
	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.topic, cmd = m.topic.Update(msg)
	return m, cmd
}

func (m model) handleSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		if m.focus != focusMenu {
			return m, nil
		}
		item, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			m.setStatus("nothing to select here", statusError)
			return m, nil
		}
		return m.dispatch(m.selectCmd(string(item)))
	case "backspace", "b", "left":
		if m.view.Session.AtRoot() {
			m.setStatus("already at the top-level menu", statusError)
			return m, nil
		}
		return m.dispatch(m.backCmd())
	case "g", "home":
		if m.view.Session.AtRoot() {
			m.setStatus("already at the top-level menu", statusInfo)
			return m, nil
		}
		return m.dispatch(m.rootCmd())
	case "n":
		m.controller.Reset()
		m.view = m.controller.View()
		m.topic.SetValue("")
		m.topic.Focus()
		m.setStatus("session discarded", statusInfo)
		return m, textinput.Blink
	case "tab":
		if m.view.State == explore.StateViewing && len(m.view.Session.MenuItems) > 0 {
			if m.focus == focusMenu {
				m.focus = focusContent
			} else {
				m.focus = focusMenu
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusContent {
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) dispatch(op tea.Cmd) (tea.Model, tea.Cmd) {
	m.pending = true
	m.status = ""
	m.statusLevel = statusNone
	return m, tea.Batch(m.spin.Tick, op)
}

func (m model) startCmd(topic string) tea.Cmd {
	controller, ctx := m.controller, m.ctx
	return func() tea.Msg {
		_ = controller.Start(ctx, topic)
		return opDoneMsg{view: controller.View()}
	}
}

func (m model) selectCmd(item string) tea.Cmd {
	controller, ctx := m.controller, m.ctx
	return func() tea.Msg {
		_ = controller.Select(ctx, item)
		return opDoneMsg{view: controller.View()}
	}
}

func (m model) backCmd() tea.Cmd {
	controller, ctx := m.controller, m.ctx
	return func() tea.Msg {
		_ = controller.Back(ctx)
		return opDoneMsg{view: controller.View()}
	}
}

func (m model) rootCmd() tea.Cmd {
	controller, ctx := m.controller, m.ctx
	return func() tea.Msg {
		_ = controller.Root(ctx)
		return opDoneMsg{view: controller.View()}
	}
}

func (m model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.pending = false
	m.view = msg.view
	if msg.view.Err != nil {
		m.setStatus(msg.view.Err.Message, statusError)
	}

	if msg.view.State == explore.StateIdle {
		// Failed start or implicit reset after a not-found: back to the prompt.
		m.topic.Focus()
		return m, textinput.Blink
	}

	m.menu.SetItems(menuItems(msg.view.Session.MenuItems))
	m.menu.Select(0)
	if msg.view.State == explore.StateViewing {
		m.menu.Title = "Explore further"
		rendered := markdown.SafeRender(m.contentWidth(), 0, m.renderStyle, []byte(msg.view.Session.Content))
		m.content.SetContent(string(rendered))
		m.content.GotoTop()
		m.focus = focusContent
	} else {
		m.menu.Title = "Menu"
		m.focus = focusMenu
	}
	return m, nil
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m *model) resize() {
	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.menu.SetSize(m.paneWidth(), contentHeight)
	m.content.Width = m.contentWidth()
	m.content.Height = contentHeight
}

func (m model) paneWidth() int {
	width := m.width - 4
	if width < 10 {
		width = 10
	}
	return width
}

func (m model) contentWidth() int {
	return m.paneWidth()
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.view.State == explore.StateIdle {
		return m.viewPrompt()
	}
	return m.viewSession()
}

func (m model) viewPrompt() string {
	lines := []string{
		titleStyle.Render("ramble"),
		"",
		promptLabelStyle.Render("What would you like to explore?"),
		m.topic.View(),
		"",
		helpStyle.Render("enter: start  esc: quit"),
		m.renderStatusLine(),
	}
	return strings.Join(lines, "\n")
}

func (m model) viewSession() string {
	session := m.view.Session
	breadcrumbWidth := m.width - 2
	if breadcrumbWidth < 1 {
		breadcrumbWidth = 1
	}
	header := breadcrumbStyle.Render(ui.Breadcrumb(session.Breadcrumb, breadcrumbWidth))

	var body string
	if m.view.State == explore.StateViewing {
		contentPane := m.renderPane(m.content.View(), m.focus == focusContent)
		if len(session.MenuItems) == 0 {
			body = contentPane
		} else {
			menuPane := m.renderPane(m.menu.View(), m.focus == focusMenu)
			body = lipgloss.JoinVertical(lipgloss.Left, contentPane, menuPane)
		}
	} else {
		body = m.renderPane(m.menu.View(), m.focus == focusMenu)
	}

	return strings.Join([]string{header, body, m.renderHelpLine(), m.renderStatusLine()}, "\n")
}

func (m model) renderPane(content string, active bool) string {
	style := paneStyle
	if active {
		style = paneActiveStyle
	}
	return style.Width(m.paneWidth()).Render(content)
}

func (m model) renderHelpLine() string {
	var parts []string
	if m.view.Session.CanGoDeeper() || (m.view.State == explore.StateViewing && len(m.view.Session.MenuItems) > 0) {
		parts = append(parts, "enter: select")
	}
	if !m.view.Session.AtRoot() {
		parts = append(parts, "b: back", "g: top menu")
	}
	if m.view.State == explore.StateViewing && len(m.view.Session.MenuItems) > 0 {
		parts = append(parts, "tab: switch pane")
	}
	parts = append(parts, "n: new topic", "q: quit")
	return helpStyle.Render(strings.Join(parts, "  "))
}

func (m model) renderStatusLine() string {
	if m.pending {
		return m.spin.View() + " contacting server..."
	}
	switch m.statusLevel {
	case statusError:
		return statusErrorStyle.Render(m.status)
	case statusInfo:
		return statusInfoStyle.Render(m.status)
	}
	return ""
}
