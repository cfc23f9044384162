// File: alias.go
// Title: Alias Table
// Description: Named word sequences substituted into the arguments of a
//              line before dispatch.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2026-10-17

package console

import (
	"sort"
	"strings"
)

// Alias is one entry of the alias table
type Alias struct {
	Key   string
	Value string
	Words []string
}

// AliasTable maps lower-cased alias keys to replacement word sequences
type AliasTable struct {
	entries map[string]Alias
}

// NewAliasTable creates an empty alias table
func NewAliasTable() *AliasTable {
	return &AliasTable{entries: make(map[string]Alias)}
}

// Add defines or replaces an alias. Key and value are lower-cased and the
// value is tokenized into the replacement words.
func (a *AliasTable) Add(key, value string) {
	key = strings.ToLower(key)
	value = strings.ToLower(value)
	a.entries[key] = Alias{Key: key, Value: value, Words: Tokenize(value)}
}

// Remove deletes an alias and reports whether it existed
func (a *AliasTable) Remove(key string) bool {
	key = strings.ToLower(key)
	if _, ok := a.entries[key]; !ok {
		return false
	}
	delete(a.entries, key)
	return true
}

// Lookup returns the replacement words of an alias
func (a *AliasTable) Lookup(key string) ([]string, bool) {
	entry, ok := a.entries[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), entry.Words...), true
}

// List returns all aliases sorted by key
func (a *AliasTable) List() []Alias {
	list := make([]Alias, 0, len(a.entries))
	for _, entry := range a.entries {
		list = append(list, entry)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}

// Len returns the number of aliases
func (a *AliasTable) Len() int {
	return len(a.entries)
}

// Resolve replaces every word after the command word that equals an alias
// key, ignoring case, with the alias words. Substitution happens once and is
// not recursive.
// The input slice is not modified.
func (a *AliasTable) Resolve(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{}
	}

	out := make([]string, 0, len(tokens))
	out = append(out, tokens[0])

	for _, tok := range tokens[1:] {
		if entry, ok := a.entries[strings.ToLower(tok)]; ok {
			out = append(out, entry.Words...)
			continue
		}
		out = append(out, tok)
	}
	return out
}
