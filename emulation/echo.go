package emulation

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// echo styles each line written to it. the logger writes whole entries so a
// write is never part of a line
type echo struct {
	out   io.Writer
	style lipgloss.Style
}

func (e echo) Write(p []byte) (int, error) {
	s := strings.TrimRight(string(p), "\n")
	_, err := io.WriteString(e.out, e.style.Render(s)+"\n")
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// isTerminal returns true if the file is an interactive terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newEcho returns a writer for the log echo. output to a terminal is styled
func newEcho(f *os.File, style lipgloss.Style) io.Writer {
	if isTerminal(f) {
		return echo{out: f, style: style}
	}
	return f
}
