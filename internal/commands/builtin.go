// File: builtin.go
// Title: Core Commands
// Description: Help, registry listing, print, clear, exit and script
//              execution.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package commands

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/msto63/devconsole/internal/console"
)

// helpCommand prints the help block of a command
type helpCommand struct{ base }

func newHelp() *helpCommand {
	return &helpCommand{base{
		words: []string{"help", "man", "manual"},
		help: console.Help{
			Name:        "Help",
			Description: "Provides a formatted help message to tell how a command works.",
			Usages: []console.Usage{
				{Description: "Prints help for this command."},
				{Parameters: []string{"command"}, Description: "Prints help for command."},
			},
		},
	}}
}

func (c *helpCommand) Execute(inv *console.Invocation) error {
	var target console.Command = c
	if len(inv.Args) == 1 {
		target = inv.Console.Registry().Find(inv.Args[0])
		if target == nil {
			return inv.Failf("No command found with name %s.", inv.Args[0])
		}
	}

	inv.Print(target.Help().Render(inv.Console.Registry().Words(target)))
	return nil
}

// registryCommand lists the registered commands
type registryCommand struct{ base }

func newRegistry() *registryCommand {
	return &registryCommand{base{
		words: []string{"registry", "reg"},
		help: console.Help{
			Name:        "Registry",
			Description: "Gives a list of all commands recognized by the console.",
			Usages: []console.Usage{
				{Description: "Prints a list of all commands to the console."},
				{Parameters: []string{"pattern"}, Description: "Lists commands with an invoking word matching the glob <pattern>."},
			},
		},
	}}
}

func (c *registryCommand) Execute(inv *console.Invocation) error {
	pattern := ""
	if len(inv.Args) == 1 {
		pattern = strings.ToLower(inv.Args[0])
		if !doublestar.ValidatePattern(pattern) {
			return inv.Failf("Invalid pattern %s.", inv.Args[0])
		}
	}

	registry := inv.Console.Registry()
	var lines []string
	for _, cmd := range registry.Commands() {
		words := registry.Words(cmd)
		if len(words) == 0 {
			continue
		}
		if pattern != "" && !anyMatch(pattern, words) {
			continue
		}
		help := cmd.Help()
		lines = append(lines, strings.ToLower(help.Name)+" : "+console.Sentence(help.Description))
	}

	if len(lines) == 0 && pattern != "" {
		return inv.Failf("No command matches pattern %s.", inv.Args[0])
	}

	f := inv.Formatter()
	header := "=====" + f.Color(" Command Registry ", console.ColorLightBlue) + "=====\n"
	inv.Print(console.FromLines(f.Align(lines, console.ColorGreen), header, true))
	return nil
}

func anyMatch(pattern string, words []string) bool {
	for _, w := range words {
		if ok, err := doublestar.Match(pattern, w); err == nil && ok {
			return true
		}
	}
	return false
}

// printCommand echoes its arguments
type printCommand struct{ base }

func newPrint() *printCommand {
	return &printCommand{base{
		words: []string{"print", "log", "echo", "say"},
		help: console.Help{
			Name:        "Print",
			Description: "Prints something to the console.",
			Usages: []console.Usage{
				{Parameters: []string{"value1", "value2", console.Variadic}, Description: "prints the given values to the screen as inputted"},
			},
		},
	}}
}

func (c *printCommand) Execute(inv *console.Invocation) error {
	inv.Print(strings.Join(inv.Args, " "))
	return nil
}

// clearCommand asks the host to clear its output
type clearCommand struct{ base }

func newClear() *clearCommand {
	return &clearCommand{base{
		words: []string{"clear", "cls"},
		help: console.Help{
			Name:        "Clear",
			Description: "Clears the console log.",
			Usages:      []console.Usage{{Description: "Clears the screen."}},
		},
	}}
}

func (c *clearCommand) Execute(inv *console.Invocation) error {
	inv.Console.RequestClear()
	return nil
}

// exitCommand asks the host to close the console
type exitCommand struct{ base }

func newExit() *exitCommand {
	return &exitCommand{base{
		words: []string{"exit", "quit", "end", "leave", "close"},
		help: console.Help{
			Name:        "Exit",
			Description: "Closes the console and the program hosting it",
			Usages:      []console.Usage{{Description: "Exits the console"}},
		},
	}}
}

func (c *exitCommand) Execute(inv *console.Invocation) error {
	inv.Logger.Info("Exit requested")
	inv.Console.RequestExit()
	return nil
}

// execCommand runs a script file
type execCommand struct{ base }

func newExec() *execCommand {
	return &execCommand{base{
		words: []string{"exec", "run"},
		help: console.Help{
			Name:        "Exec",
			Description: "Runs every line of a script file as a command.",
			Usages: []console.Usage{
				{Parameters: []string{"file"}, Description: "Runs <file>. Lines starting with // are ignored."},
			},
		},
	}}
}

func (c *execCommand) Execute(inv *console.Invocation) error {
	if err := inv.Context().Err(); err != nil {
		return inv.Fail(err.Error())
	}

	outputs, err := inv.Console.RunScriptFile(inv.Args[0])
	if err != nil {
		inv.Logger.WarnWithErr("Script failed", err)
		return inv.Fail(err.Error())
	}
	inv.Print(strings.Join(outputs, "\n"))
	return nil
}
