package tui

import (
	"pathedit/internal/editor"
	"pathedit/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Editor    *editor.Editor
	StoreName string // Shown in the title, e.g. "env:PATH"
	Notice    string // Shown under the title when edits are not persisted
	Err       error  // Last failed operation, shown in the status line
	Status    string // Last successful operation

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// Edit State
	InputMode   bool
	Appending   bool // Input goes to a new entry instead of the selected one
	InputBuffer textinput.Model

	// Move State
	Grabbed *model.PathEntry

	// Help
	ShowHelp     bool
	HelpViewport viewport.Model
}

// InitialModel returns the initial state around an editor. notice may be
// empty.
func InitialModel(ed *editor.Editor, storeName, notice string) AppModel {
	ti := textinput.New()
	ti.Placeholder = "/path/to/dir"
	ti.CharLimit = 4096
	ti.Width = 60

	vp := viewport.New(80, 20)
	vp.SetContent(model.HelpText())

	return AppModel{
		Editor:       ed,
		StoreName:    storeName,
		Notice:       notice,
		InputBuffer:  ti,
		HelpViewport: vp,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}
