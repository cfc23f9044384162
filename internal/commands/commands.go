// File: commands.go
// Title: Built-in Console Commands
// Description: The command set every console starts with. Commands reach
//              the console and the live objects through the invocation and
//              never through globals.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package commands

import (
	"strings"

	"github.com/msto63/devconsole/internal/console"
)

// NoInstance is the instance argument meaning "the only instance"
const NoInstance = "_"

// All returns one instance of every built-in command
func All() []console.Command {
	return []console.Command{
		newHelp(),
		newRegistry(),
		newAlias(),
		newUnalias(),
		newHistory(),
		newPrint(),
		newClear(),
		newExit(),
		newConfig(),
		newTime(),
		newDebug(),
		newGet(),
		newSet(),
		newCall(),
		newObjects(),
		newExec(),
	}
}

// base carries the invoking words and help block shared by all commands
type base struct {
	words []string
	help  console.Help
}

func (b *base) Words() []string    { return b.words }
func (b *base) Help() console.Help { return b.help }

// instanceName maps the "_" placeholder to an unnamed lookup
func instanceName(arg string) string {
	if arg == NoInstance {
		return ""
	}
	return arg
}

// quoteWords joins words so that Tokenize yields them again
func quoteWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		switch {
		case w == "":
			quoted[i] = w
		case !strings.ContainsAny(w, " \t\"'"):
			quoted[i] = w
		case !strings.Contains(w, `"`):
			quoted[i] = `"` + w + `"`
		default:
			quoted[i] = "'" + w + "'"
		}
	}
	return strings.Join(quoted, " ")
}
