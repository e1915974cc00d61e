package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const fmtField = " %s\n %s\n\n"

var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b5838d"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()
	helpStyle    = blurredStyle
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

func button(label string, focused bool) string {
	if focused {
		return focusedStyle.Render(fmt.Sprintf("[ %s ]", label))
	}

	return fmt.Sprintf("[ %s ]", blurredStyle.Render(label))
}
