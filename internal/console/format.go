// File: format.go
// Title: Message Formatting
// Description: Tagged and coloured console messages, column alignment
//              and line joining. A plain formatter emits no escapes.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Message colours
var (
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorLog       = lipgloss.Color("#06B6D4") // Cyan
	ColorGreen     = lipgloss.Color("#10B981") // Emerald
	ColorLightBlue = lipgloss.Color("#7DD3FC") // Sky 300
	ColorMuted     = lipgloss.Color("#94A3B8") // Slate 400
)

// Formatter styles console messages. A plain formatter emits no escape
// sequences, which is what remote clients and tests want.
type Formatter struct {
	plain bool
}

// NewFormatter creates a formatter
func NewFormatter(plain bool) *Formatter {
	return &Formatter{plain: plain}
}

// Plain reports whether the formatter emits unstyled text
func (f *Formatter) Plain() bool {
	return f.plain
}

// Color renders text in the given colour
func (f *Formatter) Color(text string, color lipgloss.Color) string {
	if f.plain || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func (f *Formatter) tagged(tag string, color lipgloss.Color, msg string) string {
	if f.plain {
		return tag + " " + msg
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(tag) + " " + msg
}

// Error formats msg as "[Error] msg"
func (f *Formatter) Error(msg string) string {
	return f.tagged("[Error]", ColorError, msg)
}

// Warning formats msg as "[Warning] msg"
func (f *Formatter) Warning(msg string) string {
	return f.tagged("[Warning]", ColorWarning, msg)
}

// Log formats msg as "[Log] msg"
func (f *Formatter) Log(msg string) string {
	return f.tagged("[Log]", ColorLog, msg)
}

// Align splits every line into whitespace separated columns and pads the
// first column to the widest first column. colors[i], if present, colours
// column i.
func (f *Formatter) Align(lines []string, colors ...lipgloss.Color) []string {
	rows := make([][]string, len(lines))
	width := 0
	for i, line := range lines {
		rows[i] = strings.Fields(line)
		if len(rows[i]) > 0 {
			if w := lipgloss.Width(rows[i][0]); w > width {
				width = w
			}
		}
	}

	out := make([]string, len(lines))
	for i, cols := range rows {
		if len(cols) == 0 {
			out[i] = lines[i]
			continue
		}

		styled := make([]string, len(cols))
		for j, col := range cols {
			if j < len(colors) {
				styled[j] = f.Color(col, colors[j])
			} else {
				styled[j] = col
			}
		}
		styled[0] += strings.Repeat(" ", width-lipgloss.Width(cols[0]))
		out[i] = strings.Join(styled, " ")
	}
	return out
}

// FromLines joins lines, each terminated by a newline, after prepend.
// trailingNewline adds one more empty line.
func FromLines(lines []string, prepend string, trailingNewline bool) string {
	var b strings.Builder
	b.WriteString(prepend)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if trailingNewline {
		b.WriteByte('\n')
	}
	return b.String()
}
