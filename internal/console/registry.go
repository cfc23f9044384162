// File: registry.go
// Title: Console Command Registry
// Description: Indexes commands by their invoking words. Lookups are exact
//              and case-insensitive; word collisions are recorded and the
//              later command wins.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package console

import (
	"fmt"
	"strings"

	"github.com/msto63/devconsole/pkg/core/logging"
)

// Collision records two commands claiming the same invoking word
type Collision struct {
	Word     string
	Previous string
	Current  string
}

// String renders the collision as a diagnostic message
func (c Collision) String() string {
	return fmt.Sprintf("Commands %s and %s both use '%s' as an invoking command word.", c.Previous, c.Current, c.Word)
}

// Registry maps invoking words to commands
type Registry struct {
	words      map[string]Command
	order      []Command
	collisions []Collision
	logger     *logging.Logger
}

// NewRegistry creates a registry holding cmds
func NewRegistry(logger *logging.Logger, cmds ...Command) *Registry {
	if logger == nil {
		logger = logging.Discard()
	}

	r := &Registry{
		words:  make(map[string]Command),
		logger: logger.WithField("component", "command-registry"),
	}
	for _, cmd := range cmds {
		r.Register(cmd)
	}

	r.logger.Debug("Command registry initialized", logging.Fields{
		"commandCount": len(r.order),
		"wordCount":    len(r.words),
		"collisions":   len(r.collisions),
	})
	return r
}

// Register indexes every invoking word of cmd
func (r *Registry) Register(cmd Command) {
	if cmd == nil {
		return
	}

	known := false
	for _, c := range r.order {
		if c == cmd {
			known = true
			break
		}
	}
	if !known {
		r.order = append(r.order, cmd)
	}

	for _, word := range cmd.Words() {
		key := strings.ToLower(word)
		if key == "" {
			continue
		}

		if prev, ok := r.words[key]; ok && prev != cmd {
			c := Collision{Word: key, Previous: commandName(prev), Current: commandName(cmd)}
			r.collisions = append(r.collisions, c)
			r.logger.Error(c.String(), logging.Fields{"word": key})
		}
		r.words[key] = cmd
	}
}

// Find returns the command invoked by word, or nil
func (r *Registry) Find(word string) Command {
	return r.words[strings.ToLower(word)]
}

// Commands returns the registered commands in registration order
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.order...)
}

// Words returns all invoking words mapped to cmd
func (r *Registry) Words(cmd Command) []string {
	var words []string
	for _, w := range cmd.Words() {
		if r.words[strings.ToLower(w)] == cmd {
			words = append(words, strings.ToLower(w))
		}
	}
	return words
}

// Diagnostics returns the recorded collisions
func (r *Registry) Diagnostics() []Collision {
	return append([]Collision(nil), r.collisions...)
}

// commandName is the help name of cmd, or its first word if the help block is empty
func commandName(cmd Command) string {
	if name := strings.TrimSpace(cmd.Help().Name); name != "" {
		return strings.ToLower(name)
	}
	if words := cmd.Words(); len(words) > 0 {
		return strings.ToLower(words[0])
	}
	return fmt.Sprintf("%T", cmd)
}
