package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo/internal/config"
	"todo/internal/task"
)

// User-facing prompt text shared with the CLI.
const (
	DuplicateTitle   = "Task already registered"
	DuplicateMessage = "You can't register a task with the same name."
	RemoveTitle      = "Remove item"
	RemoveMessage    = "Are you sure you want to remove this item?"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

// Persister receives every successful mutation so the list survives a restart.
type Persister interface {
	InsertTask(t task.Task) error
	SetDone(id int64, done bool) error
	UpdateTitle(id int64, title string) error
	DeleteTask(id int64) error
}

type keyMap struct {
	Quit    key.Binding
	Add     key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Edit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(keyLabel(k.Quit), "quit")),
		Add:     key.NewBinding(key.WithKeys(k.Add), key.WithHelp(keyLabel(k.Add), "add")),
		Up:      key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(keyLabel(k.Up), "up")),
		Down:    key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(keyLabel(k.Down), "down")),
		Toggle:  key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(keyLabel(k.Toggle), "toggle")),
		Delete:  key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(keyLabel(k.Delete), "remove")),
		Edit:    key.NewBinding(key.WithKeys(k.Edit), key.WithHelp(keyLabel(k.Edit), "edit")),
		Confirm: key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(keyLabel(k.Confirm), "save")),
		Cancel:  key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(keyLabel(k.Cancel), "cancel")),
		Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	}
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

type Model struct {
	tasks      *task.Store
	editor     *task.Editor
	db         Persister
	log        *log.Logger
	keys       keyMap
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	warning    string
	editID     int64
	pendingDel int64
}

func New(store *task.Store, db Persister, cfg config.Config, logger *log.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		tasks:  store,
		editor: task.NewEditor(store),
		db:     db,
		log:    logger,
		keys:   newKeyMap(cfg.Keys),
		cursor: clampCursor(0, store.Count()),
		mode:   modeList,
		input:  ti,
		status: fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to edit, '%s' to remove.",
			cfg.Keys.Add, keyLabel(cfg.Keys.Toggle), cfg.Keys.Edit, cfg.Keys.Delete),
	}
}

func Run(m Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeEdit:
			return m.updateEditMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg)
		}
		return m.updateListMode(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.tasks.Tasks()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if len(tasks) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(tasks))
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(tasks))
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.warning = ""
		m.input.SetValue("")
		m.input.Placeholder = "Add a new task..."
		m.input.Focus()
		m.status = "Type a title and press Enter"
	case key.Matches(msg, m.keys.Toggle):
		if len(tasks) == 0 {
			return m, nil
		}
		t, ok := m.tasks.ToggleDone(tasks[m.cursor].ID)
		if !ok {
			return m, nil
		}
		m.log.Info("task toggled", "id", t.ID, "done", t.Done)
		m.status = "Toggled task"
		m.persist("toggle", m.db.SetDone(t.ID, t.Done))
	case key.Matches(msg, m.keys.Edit):
		if len(tasks) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startEdit(tasks[m.cursor])
	case key.Matches(msg, m.keys.Delete):
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.cursor]
		if !m.editor.CanRemove(t.ID) {
			m.status = "Finish editing before removing"
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.pendingDel = t.ID
		m.status = fmt.Sprintf("%s: %s (\"%s\") y/n", RemoveTitle, RemoveMessage, t.Title)
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.warning = ""
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		t, err := m.tasks.Add(strings.TrimSpace(m.input.Value()))
		switch {
		case errors.Is(err, task.ErrEmptyTitle):
			return m, nil
		case errors.Is(err, task.ErrDuplicateTitle):
			m.log.Info("duplicate task rejected", "title", m.input.Value())
			m.warning = DuplicateTitle + ": " + DuplicateMessage
			return m, nil
		case err != nil:
			m.status = fmt.Sprintf("add failed: %v", err)
			return m, nil
		}
		m.log.Info("task added", "id", t.ID, "title", t.Title)
		m.warning = ""
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.status = "Added task"
		m.cursor = clampCursor(m.tasks.Count()-1, m.tasks.Count())
		m.persist("add", m.db.InsertTask(t))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) startEdit(t task.Task) (tea.Model, tea.Cmd) {
	draft, ok := m.editor.StartEdit(t.ID)
	if !ok {
		return m, nil
	}
	m.mode = modeEdit
	m.editID = t.ID
	m.input.SetValue(draft)
	m.input.CursorEnd()
	m.input.Placeholder = "Edit task title..."
	m.input.Focus()
	m.status = "Editing: enter to save, esc to cancel"
	return m, nil
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		id := m.editID
		m.finishEdit("Edit cancelled")
		t, ok := m.editor.CancelEdit(id)
		if ok {
			m.log.Info("edit cancelled", "id", id)
			m.persist("edit", m.db.UpdateTitle(t.ID, t.Title))
		}
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		id := m.editID
		m.finishEdit("Saved title")
		t, ok := m.editor.CommitEdit(id)
		if ok {
			m.log.Info("edit committed", "id", t.ID, "title", t.Title)
			m.persist("edit", m.db.UpdateTitle(t.ID, t.Title))
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.editor.UpdateDraft(m.editID, m.input.Value())
		return m, cmd
	}
}

func (m *Model) finishEdit(status string) {
	m.mode = modeList
	m.editID = 0
	m.input.SetValue("")
	m.input.Blur()
	m.status = status
}

func (m Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer task.Answer
	switch {
	case key.Matches(msg, m.keys.Yes):
		answer = true
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Cancel):
		answer = false
	default:
		return m, nil
	}
	id := m.pendingDel
	m.mode = modeList
	m.pendingDel = 0

	t, removed := m.tasks.Remove(id, answer)
	if !removed {
		if t.ID != 0 {
			m.log.Info("removal declined", "id", t.ID)
		}
		m.status = "Remove cancelled"
		return m, nil
	}
	m.editor.Forget(t.ID)
	m.log.Info("task removed", "id", t.ID, "title", t.Title)
	m.status = "Removed task"
	m.cursor = clampCursor(m.cursor, m.tasks.Count())
	m.persist("remove", m.db.DeleteTask(t.ID))
	return m, nil
}

// persist reports a failed write without undoing the in-memory change.
func (m *Model) persist(op string, err error) {
	if err == nil {
		return
	}
	m.log.Error("write failed", "op", op, "err", err)
	m.status = fmt.Sprintf("%s failed: %v", op, err)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("to.do"))
	b.WriteString(" ")
	b.WriteString(counterStyle.Render(CountLabel(m.tasks.Count())))
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.warning != "" {
			b.WriteString(errorStyle.Render(m.warning))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.tasks.Count() == 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.keys.Add.Help().Key)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.renderHelp()))
	return b.String()
}

// CountLabel is the header line above the list.
func CountLabel(n int) string {
	if n == 1 {
		return "You have 1 task"
	}
	return fmt.Sprintf("You have %d tasks", n)
}

func (m Model) renderHelp() string {
	var bindings []key.Binding
	switch m.mode {
	case modeAdd, modeEdit:
		bindings = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case modeConfirmDelete:
		bindings = []key.Binding{m.keys.Yes, m.keys.No}
	default:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Add, m.keys.Toggle, m.keys.Edit, m.keys.Delete, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, t := range m.tasks.Tasks() {
		cursor := "  "
		if m.cursor == i && m.mode != modeAdd {
			cursor = selectedStyle.Render("> ")
		}

		box := mutedStyle.Render(boxUnchecked)
		title := t.Title
		if t.Done {
			box = successStyle.Render(boxChecked)
			title = doneStyle.Render(t.Title)
		}
		if m.mode == modeEdit && t.ID == m.editID {
			title = m.input.View()
		}

		action := mutedStyle.Render("✎")
		trash := mutedStyle.Render("🗑")
		if m.editor.IsEditing(t.ID) {
			action = mutedStyle.Render("✕")
			trash = disabledStyle.Render("🗑")
		}

		b.WriteString(fmt.Sprintf("%s%s %s  %s %s\n", cursor, box, title, action, trash))
	}
	return b.String()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
