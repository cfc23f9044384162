// File: host.go
// Title: Host Commands
// Description: Commands for objects the host registers: the console
//              settings and the clock.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package commands

import (
	"fmt"
	"strings"

	"github.com/msto63/devconsole/internal/clock"
	"github.com/msto63/devconsole/internal/console"
	"github.com/msto63/devconsole/internal/console/access"
)

// ConfigType is the object type the host registers its console settings under
const ConfigType = "config"

// configCommand shows and edits the console settings object
type configCommand struct{ base }

func newConfig() *configCommand {
	return &configCommand{base{
		words: []string{"config", "configuration"},
		help: console.Help{
			Name:        "Config",
			Description: "Holds actions to modify or see the console config.",
			Usages: []console.Usage{
				{Description: "Prints all config values to the screen."},
				{Subcommand: "get", Parameters: []string{"field"}, Description: "Gets the value of the field."},
				{Subcommand: "set", Parameters: []string{"field", "value"}, Description: "Sets field in config to value."},
				{Subcommand: "load", Parameters: []string{"file"}, Description: "Replaces the config with the console section of <file>."},
			},
		},
	}}
}

// configField accepts config file keys such as max_history
func configField(name string) string {
	return strings.ReplaceAll(name, "_", "")
}

func (c *configCommand) Execute(inv *console.Invocation) error {
	args := inv.Args
	if len(args) == 0 {
		return c.show(inv)
	}

	acc := inv.Accessor()
	switch {
	case console.Equal(args[0], "get") && len(args) == 2:
		r := acc.GetField(ConfigType, configField(args[1]), "")
		if err := r.Err(); err != nil {
			return err
		}
		inv.Print(fmt.Sprint(r.Value))
		return nil

	case console.Equal(args[0], "set") && len(args) == 3:
		r := acc.SetField(ConfigType, configField(args[1]), args[2], "", true)
		if err := r.Err(); err != nil {
			return err
		}
		inv.Logger.Info("Config changed")
		return nil

	case console.Equal(args[0], "load") && len(args) == 2:
		r := acc.InvokeText(ConfigType, "LoadFile", []string{args[1]}, "")
		if err := r.Err(); err != nil {
			return err
		}
		inv.Logger.Info("Config loaded")
		return nil
	}

	return inv.Unrecognized(args[0])
}

func (c *configCommand) show(inv *console.Invocation) error {
	acc := inv.Accessor()

	instances := inv.Console.Store().Instances(ConfigType)
	if len(instances) == 0 {
		return acc.GetField(ConfigType, "", "").Err()
	}

	var lines []string
	for _, m := range access.Members(instances[0].Value) {
		if m.Kind != access.MemberField {
			continue
		}
		r := acc.GetField(ConfigType, m.Name, "")
		if err := r.Err(); err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("%s : %v", strings.ToLower(m.Name), r.Value))
	}

	header := "Current config settings\n=======================\n"
	inv.Print(console.FromLines(inv.Formatter().Align(lines, console.ColorLightBlue), header, false))
	return nil
}

// timeCommand reads and changes the host clock
type timeCommand struct{ base }

func newTime() *timeCommand {
	return &timeCommand{base{
		words: []string{"time"},
		help: console.Help{
			Name:        "Time",
			Description: "Gets and sets values of the host clock like <time> and <scale>.",
			Usages: []console.Usage{
				{Subcommand: "get", Parameters: []string{"value"}, Description: "Gets the value of the given parameter."},
				{Subcommand: "set", Parameters: []string{"field", "value"}, Description: "Sets field to value."},
				{Subcommand: "pause", Description: "Stops the clock."},
				{Subcommand: "resume", Description: "Restarts a paused clock."},
			},
		},
	}}
}

var timeArity = map[string]int{"get": 2, "set": 3, "pause": 1, "resume": 1}

func (c *timeCommand) Execute(inv *console.Invocation) error {
	args := inv.Args
	sub := strings.ToLower(args[0])

	n, ok := timeArity[sub]
	if !ok {
		return inv.Unrecognized(args[0])
	}
	if n != len(args) {
		return inv.Failf("Incorrect number of arguments for command %s %s.", inv.Word, sub)
	}

	acc := inv.Accessor()
	switch sub {
	case "get":
		r := acc.Invoke(clock.TypeName, args[1], nil, "")
		if r.Failure() == access.FailureMemberNotFound || r.Failure() == access.FailureIncompatible {
			return inv.Failf("Unrecognized field %s.", args[1])
		}
		if err := r.Err(); err != nil {
			return err
		}
		inv.Print(fmt.Sprint(r.ReturnValue))

	case "set":
		if console.Equal(args[1], "time") {
			return inv.Fail("Cannot set the clock time.")
		}
		r := acc.InvokeText(clock.TypeName, "set"+args[1], []string{args[2]}, "")
		if r.Failure() == access.FailureMemberNotFound {
			return inv.Failf("Unrecognized field %s.", args[1])
		}
		return r.Err()

	case "pause", "resume":
		r := acc.Invoke(clock.TypeName, sub, nil, "")
		if err := r.Err(); err != nil {
			return err
		}
		if changed, _ := r.ReturnValue.(bool); !changed {
			state := "running"
			if sub == "pause" {
				state = "paused"
			}
			inv.Printf("The clock is already %s.", state)
		}
	}
	return nil
}
