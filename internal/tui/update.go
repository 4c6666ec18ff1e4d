package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.InputBuffer.Width = msg.Width - 12
		m.HelpViewport.Width = msg.Width * 80 / 100
		m.HelpViewport.Height = msg.Height - 8
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.applyInput()
				return m, nil
			case tea.KeyEsc:
				m.stopInput()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		if m.ShowHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.ShowHelp = false
				return m, nil
			}
			m.HelpViewport, cmd = m.HelpViewport.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			m.Grabbed = nil
			m.Err = nil
			m.Status = ""
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < m.Editor.Len()-1 {
				m.SelectedIdx++
			}
		case "enter", "e":
			entry := m.Editor.At(m.SelectedIdx)
			if entry == nil {
				return m, nil
			}
			return m, m.startInput(entry.Value(), false)
		case "a":
			return m, m.startInput("", true)
		case "x", "delete":
			entry := m.Editor.At(m.SelectedIdx)
			if entry == nil {
				return m, nil
			}
			if m.Grabbed == entry {
				m.Grabbed = nil
			}
			value := entry.Value()
			_, err := m.Editor.Remove(entry)
			m.report(err, "Removed %s", value)
		case "m":
			m.grabOrDrop()
		case "t":
			if m.Grabbed != nil {
				entry := m.Grabbed
				m.Grabbed = nil
				moved, err := m.Editor.Drop(entry, nil)
				if moved {
					m.SelectedIdx = 0
				}
				m.report(err, "Moved %s to the top", entry.Value())
			}
		case "p":
			m.Grabbed = nil
			removed, err := m.Editor.Purge()
			m.report(err, "Purged %d invalid entries", removed)
		case "u":
			m.Grabbed = nil
			ok, err := m.Editor.Undo()
			if ok || err != nil {
				m.report(err, "Undone")
			} else {
				m.Status = "Nothing to undo"
			}
		case "r", "ctrl+r":
			m.Grabbed = nil
			ok, err := m.Editor.Redo()
			if ok || err != nil {
				m.report(err, "Redone")
			} else {
				m.Status = "Nothing to redo"
			}
		case "?":
			m.ShowHelp = true
			m.HelpViewport.GotoTop()
		}
		m.clampSelection()
	}

	return m, cmd
}

func (m *AppModel) startInput(value string, appending bool) tea.Cmd {
	m.InputMode = true
	m.Appending = appending
	m.InputBuffer.SetValue(value)
	m.InputBuffer.CursorEnd()
	m.InputBuffer.Focus()
	return textinput.Blink
}

func (m *AppModel) stopInput() {
	m.InputMode = false
	m.Appending = false
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
}

func (m *AppModel) applyInput() {
	value := m.InputBuffer.Value()
	appending := m.Appending
	m.stopInput()

	if appending {
		if value == "" {
			return
		}
		before := m.Editor.Len()
		err := m.Editor.Append(value)
		if m.Editor.Len() > before {
			m.SelectedIdx = before
		}
		m.report(err, "Added %s", value)
		m.clampSelection()
		return
	}

	entry := m.Editor.At(m.SelectedIdx)
	if entry == nil || entry.Value() == value {
		return
	}
	err := m.Editor.OnEntryValueChanged(entry, value)
	if value == "" {
		m.report(err, "Removed entry %d", m.SelectedIdx+1)
	} else {
		m.report(err, "Updated entry %d", m.SelectedIdx+1)
	}
	m.clampSelection()
}

// grabOrDrop picks up the selected entry, or drops the one already held
// right after the selected entry.
func (m *AppModel) grabOrDrop() {
	target := m.Editor.At(m.SelectedIdx)
	if m.Grabbed == nil {
		if target != nil && m.Editor.CanDrag(target) {
			m.Grabbed = target
			m.Status = fmt.Sprintf("Moving %s: select a row and press m to drop after it (t: top, esc: cancel)", target.Value())
			m.Err = nil
		}
		return
	}

	entry := m.Grabbed
	m.Grabbed = nil
	moved, err := m.Editor.Drop(entry, target)
	if !moved && err == nil {
		m.Status = ""
		return
	}
	if idx := m.Editor.IndexOf(entry); idx >= 0 {
		m.SelectedIdx = idx
	}
	m.report(err, "Moved %s", entry.Value())
}

func (m *AppModel) report(err error, format string, args ...interface{}) {
	if err != nil {
		m.Err = err
		m.Status = ""
		return
	}
	m.Err = nil
	m.Status = fmt.Sprintf(format, args...)
}

func (m *AppModel) clampSelection() {
	if m.SelectedIdx >= m.Editor.Len() {
		m.SelectedIdx = m.Editor.Len() - 1
	}
	if m.SelectedIdx < 0 {
		m.SelectedIdx = 0
	}
}
