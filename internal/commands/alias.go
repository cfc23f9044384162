// File: alias.go
// Title: Alias Commands
// Description: Defines, lists and removes aliases. Arguments reach these
//              commands without alias substitution.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package commands

import (
	"github.com/msto63/devconsole/internal/console"
)

// aliasCommand defines session aliases. Its arguments are never alias
// substituted, so an existing alias can be redefined.
type aliasCommand struct{ base }

func newAlias() *aliasCommand {
	return &aliasCommand{base{
		words: []string{"alias"},
		help: console.Help{
			Name:        "Alias",
			Description: "Creates a session long alias for command arguments",
			Usages: []console.Usage{
				{Description: "Lists all aliases."},
				{Parameters: []string{"alias", "arg1", "arg2", console.Variadic}, Description: "Reads all args as shown when alias is seen."},
			},
		},
	}}
}

func (c *aliasCommand) RawArgs() bool { return true }

func (c *aliasCommand) Execute(inv *console.Invocation) error {
	aliases := inv.Console.Aliases()

	switch len(inv.Args) {
	case 0:
		list := aliases.List()
		if len(list) == 0 {
			inv.Print("No aliases defined.")
			return nil
		}
		lines := make([]string, len(list))
		for i, a := range list {
			lines[i] = a.Key + " : " + a.Value
		}
		inv.Print(console.FromLines(inv.Formatter().Align(lines, console.ColorLightBlue), "", false))
		return nil

	case 1:
		words, ok := aliases.Lookup(inv.Args[0])
		if !ok {
			return inv.Failf("No alias named %s was found.", inv.Args[0])
		}
		inv.Print(quoteWords(words))
		return nil
	}

	aliases.Add(inv.Args[0], quoteWords(inv.Args[1:]))
	inv.Logger.Debug("Alias defined")
	return nil
}

// unaliasCommand removes an alias
type unaliasCommand struct{ base }

func newUnalias() *unaliasCommand {
	return &unaliasCommand{base{
		words: []string{"unalias"},
		help: console.Help{
			Name:        "Unalias",
			Description: "Removes a session alias.",
			Usages: []console.Usage{
				{Parameters: []string{"alias"}, Description: "Removes <alias>."},
			},
		},
	}}
}

func (c *unaliasCommand) RawArgs() bool { return true }

func (c *unaliasCommand) Execute(inv *console.Invocation) error {
	if !inv.Console.Aliases().Remove(inv.Args[0]) {
		return inv.Failf("No alias named %s was found.", inv.Args[0])
	}
	return nil
}
