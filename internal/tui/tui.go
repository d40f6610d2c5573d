package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/config"
	"tasklist/internal/task"
)

type Focus int

const (
	FocusInput Focus = iota
	FocusSearch
	FocusList
)

type Model struct {
	store     *task.Store
	title     string
	input     textinput.Model
	search    textinput.Model
	focus     Focus
	cursor    int
	status    string
	statusErr bool
	width     int
}

func New(store *task.Store, ui config.UIConfig) Model {
	ui.ApplyDefaults()

	in := textinput.New()
	in.Placeholder = ui.Placeholder
	in.CharLimit = ui.CharLimit
	in.Width = 40
	in.SetValue(store.PendingText())
	in.Focus()

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = ui.CharLimit
	search.Width = 40

	return Model{
		store:  store,
		title:  ui.Title,
		input:  in,
		search: search,
		focus:  FocusInput,
		status: "enter: save  tab: switch focus  ctrl+c: quit",
	}
}

// Run blocks until the user quits.
func Run(store *task.Store, ui config.UIConfig) error {
	_, err := tea.NewProgram(New(store, ui)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Focus() Focus {
	return m.focus
}

func (m Model) Cursor() int {
	return m.cursor
}

// Visible is the filtered list currently on screen.
func (m Model) Visible() []task.Task {
	return task.Filter(m.store.List(), m.search.Value())
}

func (m Model) selected() (task.Task, bool) {
	vis := m.Visible()
	if m.cursor < 0 || m.cursor >= len(vis) {
		return task.Task{}, false
	}
	return vis[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.input.Blur()
	m.search.Blur()
	switch f {
	case FocusInput:
		return m.input.Focus()
	case FocusSearch:
		return m.search.Focus()
	}
	return nil
}

// syncInput copies the store's pending text into the input widget.
func (m *Model) syncInput() {
	m.input.SetValue(m.store.PendingText())
	m.input.CursorEnd()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m, m.setFocus((m.focus + 1) % 3)
		case "shift+tab":
			return m, m.setFocus((m.focus + 2) % 3)
		}

		switch m.focus {
		case FocusInput:
			return m.handleInputKey(msg)
		case FocusSearch:
			return m.handleSearchKey(msg)
		case FocusList:
			return m.handleListKey(msg)
		}
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.store.SetPendingText(m.input.Value())
		_, editing := m.store.Mode().EditingID()
		t, err := m.store.Commit()
		if errors.Is(err, task.ErrEmptyText) {
			m.setStatus("Task cannot be empty", true)
			return m, nil
		}
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.syncInput()
		if editing {
			m.setStatus(fmt.Sprintf("Updated %q", t.Text), false)
		} else {
			m.setStatus(fmt.Sprintf("Added %q", t.Text), false)
		}
		m.clampCursor()
		return m, nil

	case "esc":
		m.store.CancelEdit()
		m.syncInput()
		m.setStatus("", false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.store.PendingText() {
		m.store.SetPendingText(m.input.Value())
	}
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.clampCursor()
		return m, nil
	case "enter", "down":
		return m, m.setFocus(FocusList)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.Visible())-1 {
			m.cursor++
		}

	case "/":
		return m, m.setFocus(FocusSearch)

	case "a", "i":
		return m, m.setFocus(FocusInput)

	case "e", "enter":
		t, ok := m.selected()
		if !ok || !m.store.BeginEdit(t.ID) {
			return m, nil
		}
		m.syncInput()
		m.setStatus("Editing: enter to update, esc to cancel", false)
		return m, m.setFocus(FocusInput)

	case "d", "delete":
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.DeleteTask(t.ID)
		m.syncInput()
		m.clampCursor()
		m.setStatus(fmt.Sprintf("Deleted %q", t.Text), false)

	case " ", "x":
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.ToggleCompletion(t.ID)
	}
	return m, nil
}

func (m Model) label(text string, f Focus) string {
	if m.focus == f {
		return FocusedLabelStyle.Render(text)
	}
	return LabelStyle.Render(text)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")

	b.WriteString(m.label("Task   ", FocusInput))
	b.WriteString(m.input.View())
	b.WriteString(" ")
	b.WriteString(ButtonStyle.Render(task.SubmitLabel(m.store.Mode())))
	b.WriteString("\n")

	b.WriteString(m.label("Search ", FocusSearch))
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	vis := m.Visible()
	if len(vis) == 0 {
		if m.search.Value() != "" {
			b.WriteString(LabelStyle.Render("  No tasks match your search."))
		} else {
			b.WriteString(LabelStyle.Render("  No tasks yet."))
		}
		b.WriteString("\n")
	}
	for i, t := range vis {
		b.WriteString(m.renderRow(i, t))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(ErrorStyle.Render(m.status))
		} else {
			b.WriteString(SuccessStyle.Render(m.status))
		}
	}

	b.WriteString(HelpStyle.Render("\n" + m.help()))
	return b.String()
}

func (m Model) renderRow(i int, t task.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	cursor := "  "
	if m.focus == FocusList && i == m.cursor {
		cursor = "> "
	}

	text := ItemStyle.Render(t.Text)
	if t.Completed {
		text = CompletedStyle.Render(t.Text)
	} else if m.focus == FocusList && i == m.cursor {
		text = SelectedStyle.Render(t.Text)
	}
	return cursor + check + " " + text
}

func (m Model) help() string {
	switch m.focus {
	case FocusList:
		return "↑/↓ move • e edit • d delete • space done/undo • / search • a add • q quit"
	case FocusSearch:
		return "type to filter • enter list • esc clear • tab next"
	default:
		if m.store.Mode().IsIdle() {
			return "enter add • tab next • ctrl+c quit"
		}
		return "enter update • esc cancel • tab next • ctrl+c quit"
	}
}
