// Package tui implements the interactive workspace browser: a saved-
// workspace list with a live preview pane, save/restore/switch/delete
// actions, built as a single bubbletea root model.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marvintrvl/windowanchor/internal/model"
)

// Ops is the set of engine operations the TUI drives. It mirrors
// mcpserver.Operations so a single *app.App satisfies both.
type Ops interface {
	Save(ctx context.Context, name string, saveFiles bool) (model.WorkspaceSnapshot, error)
	List(ctx context.Context) ([]string, error)
	Restore(ctx context.Context, name string) (matched, total int, err error)
	Switch(ctx context.Context, name string) (status string, err error)
	Delete(ctx context.Context, name string) error
	Load(name string) (model.WorkspaceSnapshot, error)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	previewBox  = lipgloss.NewStyle().Padding(0, 1)
)

type workspaceItem struct {
	name string
}

func (i workspaceItem) Title() string       { return i.name }
func (i workspaceItem) Description() string { return "" }
func (i workspaceItem) FilterValue() string { return i.name }

type promptKind int

const (
	promptNone promptKind = iota
	promptSaveName
	promptConfirmDelete
)

// Model is the root bubbletea model.
type Model struct {
	ops Ops

	list   list.Model
	input  textinput.Model
	prompt promptKind

	status     string
	err        string
	preview    model.WorkspaceSnapshot
	hasPreview bool

	width  int
	height int
}

// New constructs the TUI model. Callers run it with tea.NewProgram.
func New(ops Ops) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Workspaces"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Placeholder = "workspace name"
	ti.CharLimit = 64

	return Model{ops: ops, list: l, input: ti}
}

func (m Model) Init() tea.Cmd {
	return m.reload()
}

type reloadedMsg struct {
	names []string
	err   error
}

type previewMsg struct {
	snap model.WorkspaceSnapshot
	err  error
}

type actionDoneMsg struct {
	status string
	err    error
}

func (m Model) reload() tea.Cmd {
	return func() tea.Msg {
		names, err := m.ops.List(context.Background())
		return reloadedMsg{names: names, err: err}
	}
}

func (m Model) loadPreview(name string) tea.Cmd {
	return func() tea.Msg {
		snap, err := m.ops.Load(name)
		return previewMsg{snap: snap, err: err}
	}
}

func (m Model) selectedName() string {
	if i, ok := m.list.SelectedItem().(workspaceItem); ok {
		return i.name
	}
	return ""
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.updatePrompt(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listWidth := m.width / 3
		if listWidth < 20 {
			listWidth = 20
		}
		m.list.SetSize(listWidth, m.height-4)
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.names))
		for i, n := range msg.names {
			items[i] = workspaceItem{name: n}
		}
		m.list.SetItems(items)
		m.err = ""
		if name := m.selectedName(); name != "" {
			return m, m.loadPreview(name)
		}
		return m, nil

	case previewMsg:
		if msg.err != nil {
			m.hasPreview = false
			return m, nil
		}
		m.preview = msg.snap
		m.hasPreview = true
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.status = msg.status
			m.err = ""
		}
		return m, m.reload()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter", "r":
			if name := m.selectedName(); name != "" {
				return m, m.runRestore(name)
			}
		case "w":
			if name := m.selectedName(); name != "" {
				return m, m.runSwitch(name)
			}
		case "n":
			m.prompt = promptSaveName
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case "d":
			if m.selectedName() != "" {
				m.prompt = promptConfirmDelete
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "up" || km.String() == "down" || km.String() == "j" || km.String() == "k") {
		if name := m.selectedName(); name != "" {
			return m, tea.Batch(cmd, m.loadPreview(name))
		}
	}
	return m, cmd
}

func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.prompt {
	case promptSaveName:
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "esc":
				m.prompt = promptNone
				return m, nil
			case "enter":
				name := m.input.Value()
				m.prompt = promptNone
				if name == "" {
					return m, nil
				}
				return m, m.runSave(name)
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case promptConfirmDelete:
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "y", "enter":
				name := m.selectedName()
				m.prompt = promptNone
				return m, m.runDelete(name)
			case "n", "esc":
				m.prompt = promptNone
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) runSave(name string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.ops.Save(context.Background(), name, true)
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("save: %w", err)}
		}
		return actionDoneMsg{status: fmt.Sprintf("saved %q", name)}
	}
}

func (m Model) runRestore(name string) tea.Cmd {
	return func() tea.Msg {
		matched, total, err := m.ops.Restore(context.Background(), name)
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("restore: %w", err)}
		}
		return actionDoneMsg{status: fmt.Sprintf("restored %q: %d/%d matched", name, matched, total)}
	}
}

func (m Model) runSwitch(name string) tea.Cmd {
	return func() tea.Msg {
		status, err := m.ops.Switch(context.Background(), name)
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("switch: %w", err)}
		}
		return actionDoneMsg{status: status}
	}
}

func (m Model) runDelete(name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.ops.Delete(context.Background(), name); err != nil {
			return actionDoneMsg{err: fmt.Errorf("delete: %w", err)}
		}
		return actionDoneMsg{status: fmt.Sprintf("deleted %q", name)}
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	if m.prompt == promptSaveName {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			previewBox.Render(fmt.Sprintf("Save current desktop as:\n\n%s\n\n(enter to confirm, esc to cancel)", m.input.View())))
	}
	if m.prompt == promptConfirmDelete {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			previewBox.Render(fmt.Sprintf("Delete workspace %q? (y/n)", m.selectedName())))
	}

	header := titleStyle.Render("WindowAnchor")
	listView := m.list.View()
	preview := previewBox.Render(m.renderPreview())

	content := lipgloss.JoinHorizontal(lipgloss.Top, listView, preview)

	status := ""
	if m.err != "" {
		status = errorStyle.Render("error: " + m.err)
	} else if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	help := helpStyle.Render("enter/r restore  w switch  n new  d delete  q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status, help)
}

func (m Model) renderPreview() string {
	if !m.hasPreview {
		return "(no workspace selected)"
	}
	s := m.preview
	out := fmt.Sprintf("%s\nsaved %s\nmonitors: %d  windows: %d\n\n", s.Name, s.SavedAt.Format("2006-01-02 15:04"), len(s.Monitors), len(s.Entries))
	for _, e := range s.Entries {
		out += fmt.Sprintf("  %-20s %s\n", e.Position.ProcessName, e.Position.TitleSnippet)
	}
	return out
}

// Run starts the TUI program against ops, blocking until the user quits.
func Run(ops Ops) error {
	p := tea.NewProgram(New(ops), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
