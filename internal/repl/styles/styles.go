package styles

import "github.com/charmbracelet/lipgloss"

var (
	// 색상 정의
	Primary = lipgloss.Color("#04B575")
	Warning = lipgloss.Color("#FFCC00")
	Error   = lipgloss.Color("#FF5F56")
	Muted   = lipgloss.Color("#626262")
	White   = lipgloss.Color("#FFFFFF")
	Cyan    = lipgloss.Color("#00CED1")

	// 지갑 상태별 색상
	StateColors = map[string]lipgloss.Color{
		"uninitialized": Muted,
		"resolved":      Warning,
		"loaded":        Cyan,
		"created":       Primary,
	}

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(Primary).
			Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	OutputStyle = lipgloss.NewStyle().
			Foreground(White)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error)

	// 도움말 스타일
	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// StateStyle returns the badge style for a wallet state.
func StateStyle(state string) lipgloss.Style {
	color, ok := StateColors[state]
	if !ok {
		color = Muted
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}
