package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridboard/pkg/grid"
)

// stdout receives all status lines. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Styles
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = StyleHighlight
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleKey         = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
)

// status line markers
var (
	markOK   = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	markWarn = lipgloss.NewStyle().Foreground(colorWarn).Render("!")
	markInfo = lipgloss.NewStyle().Foreground(colorMuted).Render("›")
	markFile = StyleDim.Render("→")
)

// =============================================================================
// Output helpers
// =============================================================================

func printLine(parts ...string) {
	fmt.Fprintln(stdout, strings.Join(parts, " "))
}

func printSuccess(format string, args ...any) {
	printLine(markOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(markWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	printLine(" ", StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	printLine(" ", markFile, StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	printLine(styleKey.Render(key), StyleValue.Render(value))
}

// printBoardSummary prints grid size, widget count and free cells on one
// line, e.g. "12x8 grid · 8 widgets · 61 free cells".
func printBoardSummary(g grid.Grid, layout grid.Layout) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(boardSummary(g, layout)))
}

func boardSummary(g grid.Grid, layout grid.Layout) string {
	return fmt.Sprintf("%dx%d grid · %d widgets · %d free cells",
		g.Columns, g.Rows, len(layout), g.FreeCells(layout))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	printLine(StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
