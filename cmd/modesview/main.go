// Command modesview is a terminal UI that tails hex-encoded Mode S frames
// from stdin and renders a scrolling, color-coded table of decoded
// sightings, built on the teacher's bubbletea/bubbles/lipgloss stack.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adsb1090/decoder/internal/modes"
)

const maxRows = 200

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	emergencyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	rowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type frameMsg struct {
	line  string
	frame modes.Frame
	err   error
}

type model struct {
	rows []frameMsg
	errs int
	in   *bufio.Scanner
}

func (m model) Init() tea.Cmd {
	return readLine(m.in)
}

func readLine(scanner *bufio.Scanner) tea.Cmd {
	return func() tea.Msg {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			buf, err := hex.DecodeString(line)
			if err != nil {
				return frameMsg{line: line, err: err}
			}
			frame, err := modes.Decode(buf)
			return frameMsg{line: line, frame: frame, err: err}
		}
		return tea.Quit()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		if v.String() == "q" || v.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case frameMsg:
		if v.err != nil {
			m.errs++
		} else {
			m.rows = append(m.rows, v)
			if len(m.rows) > maxRows {
				m.rows = m.rows[len(m.rows)-maxRows:]
			}
		}
		return m, readLine(m.in)
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("modesview - %d frames, %d errors (q to quit)", len(m.rows), m.errs)))
	b.WriteString("\n\n")
	start := 0
	if len(m.rows) > 40 {
		start = len(m.rows) - 40
	}
	for _, fm := range m.rows[start:] {
		line := fmt.Sprintf("%-6s %s", fm.frame.DownlinkFormat(), summarize(fm.frame))
		if isEmergency(fm.frame) {
			b.WriteString(emergencyStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func summarize(f modes.Frame) string {
	switch v := f.(type) {
	case modes.AllCallReply:
		return v.Address.String()
	case modes.ExtendedSquitter:
		return fmt.Sprintf("%s %v", v.Address, v.Message)
	case modes.SurveillanceIdentityReply:
		return fmt.Sprintf("squawk=%s", v.Identity)
	default:
		return fmt.Sprintf("%+v", f)
	}
}

func isEmergency(f modes.Frame) bool {
	var squawk modes.Squawk
	switch v := f.(type) {
	case modes.SurveillanceIdentityReply:
		squawk = v.Identity
	case modes.CommBIdentityReply:
		squawk = v.Identity
	default:
		return false
	}
	return modes.EmergencyPriorityStatusFromSquawk(squawk) != modes.EmergencyNone
}

func main() {
	m := model{in: bufio.NewScanner(os.Stdin)}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "modesview:", err)
		os.Exit(1)
	}
}
