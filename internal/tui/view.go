package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pathedit/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	grabbedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("130"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

func (m AppModel) View() string {
	if m.ShowHelp {
		return m.renderHelpDialog()
	}

	// Subtracting 6 for horizontal margin (borders x2 + buffer)
	// Subtracting 8 for vertical margin (title, footer, borders + buffer)
	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 40 {
		netWidth = 40
	}
	leftWidth := netWidth * 3 / 5
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2

	statuses := model.Annotate(m.Editor.Entries())

	// LEFT PANEL: entries
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d entries)", m.StoreName, len(statuses))))
	if m.Notice != "" {
		leftView.WriteString("\n" + adviceStyle.Render("⚠ "+m.Notice))
	}
	leftView.WriteString("\n\n")

	// Windowing: keep the cursor in the middle of the visible rows.
	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(statuses)
	if len(statuses) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - (visibleItems / 2)
		}
		if startIdx+visibleItems > len(statuses) {
			startIdx = len(statuses) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	grabbedIdx := -1
	if m.Grabbed != nil {
		grabbedIdx = m.Editor.IndexOf(m.Grabbed)
	}

	for i := startIdx; i < endIdx; i++ {
		st := statuses[i]
		icon := st.Icon()
		if i == grabbedIdx {
			icon = model.IconGrabbed
		}

		value := st.Value
		if st.Empty {
			value = "(empty)"
		}
		line := fmt.Sprintf("%3d. %s %s", i+1, icon, value)
		if len(statuses) > 1 {
			if i == 0 {
				line += " " + model.IconFirst
			} else if i == len(statuses)-1 {
				line += " " + model.IconLast
			}
		}

		// Truncate
		if len(line) > leftWidth-2 && leftWidth > 5 {
			line = line[:leftWidth-5] + "..."
		}

		var style lipgloss.Style
		switch {
		case i == grabbedIdx:
			style = grabbedStyle
		case i == m.SelectedIdx:
			style = selectedStyle
		case st.Empty:
			style = dimStyle
		case !st.Valid:
			style = missingStyle
		default:
			style = normalStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}
	if len(statuses) == 0 {
		leftView.WriteString(dimStyle.Render("  (no entries, press a to add one)"))
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(activeColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: details
	var rightView strings.Builder
	rightView.WriteString(titleStyle.Render("Details"))
	rightView.WriteString("\n")
	if m.SelectedIdx < len(statuses) {
		st := statuses[m.SelectedIdx]
		rightView.WriteString(fmt.Sprintf("\nDirectory:  %s", st.Value))
		rightView.WriteString(fmt.Sprintf("\nPosition:   %d of %d", st.Index+1, len(statuses)))
		switch {
		case st.Empty:
			rightView.WriteString("\nStatus:     empty")
		case !st.Valid:
			rightView.WriteString("\nStatus:     " + model.IconMissing + " missing")
		case st.IsDuplicate:
			rightView.WriteString(fmt.Sprintf("\nStatus:     %s duplicate of %d", model.IconDuplicate, st.DuplicateOf+1))
		default:
			rightView.WriteString("\nStatus:     OK")
		}
		if st.Value != "" {
			if expanded := model.ExpandPath(st.Value); expanded != st.Value {
				rightView.WriteString(fmt.Sprintf("\nExpands to: %s", expanded))
			}
		}
		if st.Remediation != "" {
			rightView.WriteString(adviceStyle.Render("\n\n" + st.Remediation))
		}
	} else {
		rightView.WriteString("\nNo entries found.")
	}

	invalid := 0
	for _, st := range statuses {
		if !st.Valid {
			invalid++
		}
	}
	rightView.WriteString(fmt.Sprintf("\n\nInvalid entries: %d", invalid))
	rightView.WriteString(fmt.Sprintf("\nUndo: %s  Redo: %s", yesNo(m.Editor.CanUndo()), yesNo(m.Editor.CanRedo())))

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(rightView.String())

	// Footer
	help := "↑/↓: Navigate • enter: Edit • a: Add • x: Remove • m: Move • p: Purge • u/r: Undo/Redo • ?: Help • q: Quit"
	if m.Grabbed != nil {
		help = "Move: ↑/↓: Choose position • m: Drop after cursor • t: Drop at top • esc: Cancel"
	}
	footer := "\n" + dimStyle.Render(help)
	if m.InputMode {
		label := "Edit"
		if m.Appending {
			label = "Add"
		}
		footer = fmt.Sprintf("\n%s: %s", label, m.InputBuffer.View())
	}

	status := ""
	if m.Err != nil {
		status = "\n" + errorStyle.Render("Error: "+m.Err.Error())
	} else if m.Status != "" {
		status = "\n" + m.Status
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + status + footer
}

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return m.HelpViewport.View()
	}

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(m.HelpViewport.View())

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
