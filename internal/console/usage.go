// File: usage.go
// Title: Usage Descriptors
// Description: Argument forms and help text of a command. The dispatch
//              loop checks the argument count against the usages before
//              a command runs.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package console

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Variadic is the parameter marker for "any number of further arguments"
const Variadic = "..."

// Usage describes one accepted argument form of a command
type Usage struct {
	Subcommand  string
	Parameters  []string
	Description string
}

// IsVariadic reports whether the usage accepts a variable argument count
func (u Usage) IsVariadic() bool {
	for _, p := range u.Parameters {
		if trimBrackets(p) == Variadic {
			return true
		}
	}
	return false
}

// Arity is the fixed argument count of a non-variadic usage
func (u Usage) Arity() int {
	n := len(u.Parameters)
	if u.Subcommand != "" {
		n++
	}
	return n
}

// Line renders the usage for the given command name, e.g. "history max <max>"
func (u Usage) Line(name string) string {
	parts := []string{strings.ToLower(name)}
	if u.Subcommand != "" {
		parts = append(parts, u.Subcommand)
	}
	for _, p := range u.Parameters {
		p = trimBrackets(p)
		if p == Variadic {
			parts = append(parts, Variadic)
			continue
		}
		parts = append(parts, "<"+p+">")
	}
	return strings.Join(parts, " ")
}

func trimBrackets(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "<")
	return strings.TrimSuffix(p, ">")
}

// Help is the descriptor of a command: display name, description and usages
type Help struct {
	Name        string
	Description string
	Usages      []Usage
}

var errEmptyHelp = errors.New("help block is incomplete")

// Valid returns an error if the name or description is empty or no usage is declared
func (h Help) Valid() error {
	switch {
	case strings.TrimSpace(h.Name) == "":
		return errors.Join(errEmptyHelp, errors.New("missing name"))
	case strings.TrimSpace(h.Description) == "":
		return errors.Join(errEmptyHelp, errors.New("missing description"))
	case len(h.Usages) == 0:
		return errors.Join(errEmptyHelp, errors.New("no usages"))
	}
	return nil
}

// UsageLines renders all usages right-padded to a common visible width,
// followed by " : " and the usage description.
func (h Help) UsageLines() []string {
	left := make([]string, len(h.Usages))
	width := 0
	for i, u := range h.Usages {
		left[i] = u.Line(h.Name)
		if w := lipgloss.Width(left[i]); w > width {
			width = w
		}
	}

	lines := make([]string, len(h.Usages))
	for i, u := range h.Usages {
		pad := width - lipgloss.Width(left[i])
		lines[i] = left[i] + strings.Repeat(" ", pad) + " : " + Sentence(u.Description)
	}
	return lines
}

// Render produces the full help block. words are the invoking words shown
// next to the name.
func (h Help) Render(words []string) string {
	var b strings.Builder

	b.WriteString(strings.ToLower(h.Name))
	if len(words) > 0 {
		b.WriteString(" (" + strings.Join(words, ", ") + ")")
	}
	b.WriteString("\n======================\n")
	b.WriteString(Sentence(h.Description))
	b.WriteString("\n\nUsages:\n")
	b.WriteString(strings.Join(h.UsageLines(), "\n"))

	return b.String()
}

// Sentence upper-cases the first letter of s and terminates it with a period
func Sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]

	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}

// ValidateArgs checks n arguments against the declared usages. It succeeds
// when n equals the arity of a fixed usage, or when a variadic usage exists
// and n is at least one.
func ValidateArgs(n int, usages []Usage) error {
	variadic := false
	for _, u := range usages {
		if u.IsVariadic() {
			variadic = true
			continue
		}
		if u.Arity() == n {
			return nil
		}
	}
	if variadic && n >= 1 {
		return nil
	}
	return &Error{Kind: KindArity, Message: "Incorrect number of arguments."}
}
