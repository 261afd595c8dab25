package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorValue  = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by the status lines and the watch view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = StyleHighlight
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorValue)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = StyleHighlight
	styleCommand     = lipgloss.NewStyle().Foreground(colorCmd)
)

const (
	iconArrow  = "→"
	iconCached = "cached"
	iconFresh  = "fresh"
)

// statusKind selects the icon and colors of a status line.
type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
	statusWarning
	statusInfo
)

var statusIcons = [...]struct {
	icon  string
	style lipgloss.Style
	tint  bool // color the message too, not just the icon
}{
	statusSuccess: {"✓", StyleSuccess, false},
	statusError:   {"✗", lipgloss.NewStyle().Foreground(colorFail), false},
	statusWarning: {"!", StyleWarning, true},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorMuted), false},
}

// stdout is where status lines go; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

func statusLine(kind statusKind, msg string) string {
	s := statusIcons[kind]
	if s.tint {
		msg = s.style.Render(msg)
	}
	return s.style.Render(s.icon) + " " + msg
}

func printStatus(kind statusKind, format string, args ...any) {
	fmt.Fprintln(stdout, statusLine(kind, fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(statusError, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints a dim, indented line under the last status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printStats(nodes, edges, ticks int, cached bool) {
	fmt.Fprintln(stdout, statsLine(nodes, edges, ticks, cached))
}

// statsLine joins the non-zero counts and the cache status with dim dots,
// e.g. "12 nodes · 15 edges · 301 ticks · fresh".
func statsLine(nodes, edges, ticks int, cached bool) string {
	var parts []string
	for _, c := range []struct {
		n    int
		unit string
	}{
		{nodes, "nodes"},
		{edges, "edges"},
		{ticks, "ticks"},
	} {
		if c.n > 0 {
			parts = append(parts, StyleDim.Render(fmt.Sprintf("%d %s", c.n, c.unit)))
		}
	}

	origin := lipgloss.NewStyle().Foreground(colorMuted).Render(iconFresh)
	if cached {
		origin = StyleSuccess.Render(iconCached)
	}
	parts = append(parts, origin)
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
