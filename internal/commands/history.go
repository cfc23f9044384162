// File: history.go
// Title: History Command
// Description: Shows, clears, resizes and recalls the line history.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2026-10-17

package commands

import (
	"fmt"

	"github.com/msto63/devconsole/internal/console"
)

// historyCommand shows and edits the command history
type historyCommand struct{ base }

func newHistory() *historyCommand {
	return &historyCommand{base{
		words: []string{"history", "hist"},
		help: console.Help{
			Name:        "History",
			Description: "Allows for seeing and modifying command history.",
			Usages: []console.Usage{
				{Description: "Shows the command history."},
				{Parameters: []string{"index"}, Description: "Sets the command line to the command at <index> in history."},
				{Subcommand: "clear", Description: "Clears the command history."},
				{Subcommand: "max", Parameters: []string{"max"}, Description: "Sets the max history to <max>."},
			},
		},
	}}
}

func (c *historyCommand) Execute(inv *console.Invocation) error {
	switch {
	case len(inv.Args) == 0:
		return c.show(inv)
	case console.Equal(inv.Args[0], "clear"):
		inv.Console.History().Clear()
		return nil
	case len(inv.Args) == 2:
		return c.setMax(inv, inv.Args[0], inv.Args[1])
	default:
		return c.recall(inv, inv.Args[0])
	}
}

// show lists the history oldest first. Index 0 is the newest line before
// the history command itself, matching what recall expects.
func (c *historyCommand) show(inv *console.Invocation) error {
	var lines []string
	for i := 0; ; i++ {
		line, ok := inv.Recall(i)
		if !ok {
			break
		}
		lines = append(lines, fmt.Sprintf("[%d] : %s", i, line))
	}

	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	inv.Print(console.FromLines(inv.Formatter().Align(lines, console.ColorMuted), "", false))
	return nil
}

func (c *historyCommand) setMax(inv *console.Invocation, sub, value string) error {
	if !console.Equal(sub, "max") {
		return inv.Unrecognized(sub)
	}
	max, err := console.ParseInt(value)
	if err != nil {
		return err
	}
	if !inv.Console.History().SetMax(max) {
		return inv.Fail("The new max must be 0 or higher.")
	}
	return nil
}

func (c *historyCommand) recall(inv *console.Invocation, index string) error {
	i, err := console.ParseInt(index)
	if err != nil {
		return err
	}
	line, ok := inv.Recall(i)
	if !ok {
		return inv.Failf("Index %d was out of range.", i)
	}
	inv.Console.SetBufferedLine(line)
	return nil
}
