package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tilegrid/pkg/grid"
	"github.com/matzehuels/tilegrid/pkg/layout"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// roleColors tints tiles by their slot in the six-item block.
var roleColors = [grid.BlockSize]lipgloss.Color{
	lipgloss.Color("69"),  // big-upper
	lipgloss.Color("214"), // small-right-upper
	lipgloss.Color("203"), // small-right-lower
	lipgloss.Color("79"),  // small-left-upper
	lipgloss.Color("113"), // small-left-lower
	lipgloss.Color("176"), // big-lower
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Tables
// =============================================================================

// printViewSummary prints the viewport and geometry of v.
func printViewSummary(w io.Writer, v layout.View) {
	printKeyValue(w, "viewport", fmt.Sprintf("%d×%d", v.Width, v.Height))
	printKeyValue(w, "aspect", strconv.FormatFloat(v.Aspect, 'g', -1, 64))
	printKeyValue(w, "items", strconv.Itoa(v.ItemCount))
	printKeyValue(w, "big edge", strconv.Itoa(v.BigEdge))
	if len(v.Tiles) > 0 {
		printKeyValue(w, "window", fmt.Sprintf("%d..%d", v.Lo, v.Hi))
	}
}

// tileTable renders the attached tiles of v, one row per tile.
func tileTable(v layout.View) string {
	rows := make([][]string, 0, len(v.Tiles))
	for _, t := range v.Tiles {
		rows = append(rows, []string{
			strconv.Itoa(t.Index),
			t.Role,
			strconv.Itoa(t.Left),
			strconv.Itoa(t.Top),
			strconv.Itoa(t.Right - t.Left),
			strconv.Itoa(t.Bottom - t.Top),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Index", "Role", "Left", "Top", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 && row < len(v.Tiles) {
				return base.Foreground(roleColors[grid.SlotOf(v.Tiles[row].Index)])
			}
			if col == 0 {
				return base.Foreground(colorCyan)
			}
			return base
		}).
		Render()
}
