package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/freewebmovement/zz-account/common/logger"
	"github.com/freewebmovement/zz-account/internal/repl/styles"
	"github.com/freewebmovement/zz-account/wallet"
)

// maxScrollback bounds the lines kept above the prompt.
const maxScrollback = 200

// Model is the bubbletea model of the interactive wallet shell.
type Model struct {
	wallet   *wallet.Wallet
	input    textinput.Model
	lines    []string
	history  []string
	histPos  int
	width    int
	quitting bool
}

// Run starts the shell on w and blocks until the user exits.
func Run(w *wallet.Wallet) error {
	p := tea.NewProgram(NewModel(w))
	_, err := p.Run()
	return err
}

func NewModel(w *wallet.Wallet) Model {
	ti := textinput.New()
	ti.Prompt = styles.PromptStyle.Render("wallet> ")
	ti.Placeholder = "help"
	ti.CharLimit = 1024
	ti.Focus()

	return Model{
		wallet: w,
		input:  ti,
		lines:  []string{
			styles.TitleStyle.Render(" zz-wallet ") + " " +
				styles.StateStyle(w.State().String()).Render(w.State().String()) + " " +
				styles.MutedStyle.Render(w.Path()),
			w.Show(),
		},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			if strings.TrimSpace(line) != "" {
				m.history = append(m.history, line)
			}
			m.histPos = len(m.history)

			m.appendLines(styles.PromptStyle.Render("wallet> ") + line)
			res, err := Execute(m.wallet, line)
			if err != nil {
				logger.Warn("repl command failed: ", err)
				m.appendLines(styles.ErrorStyle.Render("error: " + err.Error()))
			} else if res.Output != "" {
				m.appendLines(styles.OutputStyle.Render(res.Output))
			}
			if res.Quit {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case tea.KeyUp:
			if m.histPos > 0 {
				m.histPos--
				m.input.SetValue(m.history[m.histPos])
				m.input.CursorEnd()
			}
			return m, nil

		case tea.KeyDown:
			if m.histPos < len(m.history)-1 {
				m.histPos++
				m.input.SetValue(m.history[m.histPos])
				m.input.CursorEnd()
			} else {
				m.histPos = len(m.history)
				m.input.SetValue("")
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) appendLines(s string) {
	m.lines = append(m.lines, strings.Split(s, "\n")...)
	if over := len(m.lines) - maxScrollback; over > 0 {
		m.lines = m.lines[over:]
	}
}

func (m Model) View() string {
	if m.quitting {
		return strings.Join(m.lines, "\n") + "\n"
	}

	help := fmt.Sprintf("%s %s  %s %s",
		styles.HelpKeyStyle.Render("help"), styles.HelpDescStyle.Render("commands"),
		styles.HelpKeyStyle.Render("ctrl+c"), styles.HelpDescStyle.Render("quit"))

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(m.lines, "\n"),
		m.input.View(),
		help,
	)
}
