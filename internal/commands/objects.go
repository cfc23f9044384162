// File: objects.go
// Title: Live Object Commands
// Description: Commands that read, write and call members of the live
//              objects the host registered, list those objects and watch
//              their values in the debug slots.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package commands

import (
	"fmt"
	"strings"

	"github.com/msto63/devconsole/internal/console"
	"github.com/msto63/devconsole/internal/console/access"
	"github.com/msto63/devconsole/internal/objects"
)

// getCommand prints a field of a live object
type getCommand struct{ base }

func newGet() *getCommand {
	return &getCommand{base{
		words: []string{"get"},
		help: console.Help{
			Name:        "Get",
			Description: "Prints the value of a field of a live object.",
			Usages: []console.Usage{
				{Parameters: []string{"type", "field"}, Description: "Prints <field> of the only instance of <type>."},
				{Parameters: []string{"type", "instance", "field"}, Description: "Prints <field> of <instance>. Use _ for the only instance."},
			},
		},
	}}
}

func (c *getCommand) Execute(inv *console.Invocation) error {
	typ, instance, field := inv.Args[0], "", inv.Args[len(inv.Args)-1]
	if len(inv.Args) == 3 {
		instance = instanceName(inv.Args[1])
	}

	r := inv.Accessor().GetField(typ, field, instance)
	if err := r.Err(); err != nil {
		return err
	}
	inv.Print(fmt.Sprint(r.Value))
	return nil
}

// setCommand writes a field of a live object
type setCommand struct{ base }

func newSet() *setCommand {
	return &setCommand{base{
		words: []string{"set"},
		help: console.Help{
			Name:        "Set",
			Description: "Sets a field of a live object.",
			Usages: []console.Usage{
				{Parameters: []string{"type", "field", "value"}, Description: "Sets <field> of the only instance of <type> to <value>."},
				{Parameters: []string{"type", "instance", "field", "value"}, Description: "Sets <field> of <instance> to <value>. Use _ for the only instance."},
			},
		},
	}}
}

func (c *setCommand) Execute(inv *console.Invocation) error {
	args := inv.Args
	typ, instance := args[0], ""
	if len(args) == 4 {
		instance = instanceName(args[1])
	}
	field, value := args[len(args)-2], args[len(args)-1]

	r := inv.Accessor().SetField(typ, field, value, instance, true)
	return r.Err()
}

// callCommand invokes a method of a live object
type callCommand struct{ base }

func newCall() *callCommand {
	return &callCommand{base{
		words: []string{"call"},
		help: console.Help{
			Name:        "Call",
			Description: "Calls a method of a live object and prints its result.",
			Usages: []console.Usage{
				{Parameters: []string{"type", "function"}, Description: "Calls <function> without arguments on the only instance of <type>."},
				{Parameters: []string{"type", "instance", "function", console.Variadic}, Description: "Calls <function> of <instance> with the remaining arguments. Use _ for the only instance."},
			},
		},
	}}
}

func (c *callCommand) Execute(inv *console.Invocation) error {
	args := inv.Args
	if len(args) < 2 {
		return inv.Failf("Incorrect number of arguments for command %s.", "call")
	}

	typ, instance, function, params := args[0], "", args[1], []string(nil)
	if len(args) >= 3 {
		instance = instanceName(args[1])
		function = args[2]
		params = args[3:]
	}

	r := inv.Accessor().InvokeText(typ, function, params, instance)
	if err := r.Err(); err != nil {
		return err
	}
	if r.ReturnValue != nil {
		inv.Print(fmt.Sprint(r.ReturnValue))
	}
	return nil
}

// objectsCommand lists object types and their members
type objectsCommand struct{ base }

func newObjects() *objectsCommand {
	return &objectsCommand{base{
		words: []string{"objects", "obj"},
		help: console.Help{
			Name:        "Objects",
			Description: "Lists the live objects the console can reach.",
			Usages: []console.Usage{
				{Description: "Lists all object types and their instance counts."},
				{Parameters: []string{"type"}, Description: "Lists the instances and members of <type>."},
			},
		},
	}}
}

// typeLister is implemented by stores that can enumerate their types
type typeLister interface {
	Types() []objects.TypeInfo
}

func (c *objectsCommand) Execute(inv *console.Invocation) error {
	store := inv.Console.Store()
	f := inv.Formatter()

	if len(inv.Args) == 0 {
		lister, ok := store.(typeLister)
		if !ok {
			return inv.Fail("The object store cannot list its types.")
		}
		types := lister.Types()
		if len(types) == 0 {
			inv.Print("No object types are registered.")
			return nil
		}
		lines := make([]string, len(types))
		for i, t := range types {
			lines[i] = fmt.Sprintf("%s : %d", t.Name, t.Instances)
		}
		inv.Print(console.FromLines(f.Align(lines, console.ColorLightBlue), "", false))
		return nil
	}

	typ := inv.Args[0]
	if !store.Reflectable(typ) {
		return &access.Error{Failure: access.FailureInvalidType, Message: fmt.Sprintf("Type %s is not a valid object type.", typ)}
	}

	instances := store.Instances(typ)
	if len(instances) == 0 {
		inv.Printf("No instance of type %s was found.", typ)
		return nil
	}

	var b strings.Builder
	b.WriteString("Instances:\n")
	for _, inst := range instances {
		name := inst.Name
		if name == "" {
			name = NoInstance
		}
		b.WriteString("  " + f.Color(name, console.ColorLightBlue) + "\n")
	}

	b.WriteString("Members:\n")
	var lines []string
	for _, m := range access.Members(instances[0].Value) {
		lines = append(lines, fmt.Sprintf("%s %s %s", m.Kind, m.Name, m.Type))
	}
	for _, line := range f.Align(lines, console.ColorMuted, console.ColorGreen) {
		b.WriteString("  " + line + "\n")
	}

	inv.Print(b.String())
	return nil
}

// debugCommand watches a field or method result in a watch slot
type debugCommand struct{ base }

func newDebug() *debugCommand {
	return &debugCommand{base{
		words: []string{"debug"},
		help: console.Help{
			Name:        "Debug",
			Description: "Debugs a live value to the screen.",
			Usages: []console.Usage{
				{Subcommand: "clear", Parameters: []string{"slot"}, Description: "clears <slot>."},
				{Parameters: []string{"type", "instance", "field/func", "title"}, Description: "Shows <field> or calls <func> in <instance> (type <type>) with <title> in slot 0. Use _ for the only instance."},
				{Parameters: []string{"type", "instance", "field/func", "title", "x"}, Description: "Shows <field> or calls <func> in <instance> (type <type>) with <title> in slot <x>. Use _ for the only instance."},
			},
		},
	}}
}

func (c *debugCommand) Execute(inv *console.Invocation) error {
	args := inv.Args
	watches := inv.Console.Watches()

	if len(args) == 2 {
		if !console.Equal(args[0], "clear") {
			return inv.Unrecognized(args[0])
		}
		slot, err := console.ParseInt(args[1])
		if err != nil {
			return err
		}
		if err := watches.Clear(slot); err != nil {
			return inv.Fail(err.Error())
		}
		return nil
	}

	typ, instance, member, title := args[0], instanceName(args[1]), args[2], args[3]

	slot := 0
	if len(args) == 5 {
		n, err := console.ParseInt(args[4])
		if err != nil {
			return err
		}
		slot = n
	}

	eval, err := c.evaluation(inv.Accessor(), typ, instance, member)
	if err != nil {
		return err
	}
	if err := watches.Set(slot, title, eval); err != nil {
		return inv.Fail(err.Error())
	}
	return nil
}

// evaluation builds the watch for member, preferring a field over a method
func (c *debugCommand) evaluation(acc *access.Accessor, typ, instance, member string) (console.Eval, error) {
	field := acc.GetField(typ, member, instance)
	if field.Success {
		return func() (string, error) {
			r := acc.GetField(typ, member, instance)
			if err := r.Err(); err != nil {
				return "", err
			}
			return fmt.Sprint(r.Value), nil
		}, nil
	}
	if field.Failure() != access.FailureMemberNotFound {
		return nil, field.Err()
	}

	fn := acc.Invoke(typ, member, nil, instance)
	if fn.Failure() == access.FailureMemberNotFound {
		where := instance
		if where == "" {
			where = NoInstance
		}
		return nil, fmt.Errorf("No field or function with name %s found in %s of type %s.", member, where, typ)
	}
	if fn.Failure() == access.FailureIncompatible {
		return nil, fn.Err()
	}

	return func() (string, error) {
		r := acc.Invoke(typ, member, nil, instance)
		if err := r.Err(); err != nil {
			return "", err
		}
		return fmt.Sprint(r.ReturnValue), nil
	}, nil
}
