// File: history.go
// Title: Line History
// Description: Bounded list of entered lines, newest first.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2026-10-17

package console

import "strings"

// History keeps previously entered lines, most recent first
type History struct {
	entries []string
	max     int
}

// NewHistory creates a history holding at most max entries
func NewHistory(max int) *History {
	if max < 0 {
		max = 0
	}
	return &History{max: max}
}

// Add inserts line at the front. Empty lines and repeats of the most recent
// entry are ignored. The oldest entry is evicted when the history is full.
func (h *History) Add(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if len(h.entries) > 0 && h.entries[0] == line {
		return false
	}

	h.entries = append(h.entries, "")
	copy(h.entries[1:], h.entries)
	h.entries[0] = line

	h.trim()
	return true
}

func (h *History) trim() {
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
}

// Entries returns a copy of the history, most recent first
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Clear removes all entries
func (h *History) Clear() {
	h.entries = nil
}

// Max returns the capacity
func (h *History) Max() int {
	return h.max
}

// SetMax changes the capacity and evicts entries beyond it.
// It returns false for a negative capacity.
func (h *History) SetMax(n int) bool {
	if n < 0 {
		return false
	}
	h.max = n
	h.trim()
	return true
}

// At returns entry i, where 0 is the most recent
func (h *History) At(i int) (string, bool) {
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}
