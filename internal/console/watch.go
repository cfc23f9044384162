// File: watch.go
// Title: Watch Slots
// Description: Live values re-evaluated on every render of the console.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package console

import (
	"fmt"
	"sync"
)

// WatchSlots is the number of live value slots
const WatchSlots = 8

// Eval produces the current value of a watched expression
type Eval func() (string, error)

type watch struct {
	title string
	eval  Eval
}

// Watches holds the live value slots shown next to the console.
// Rendering may happen on another goroutine than dispatch, so access is locked.
type Watches struct {
	slots [WatchSlots]*watch
	mutex sync.Mutex
}

// NewWatches creates empty slots
func NewWatches() *Watches {
	return &Watches{}
}

func checkSlot(i int) error {
	if i < 0 || i >= WatchSlots {
		return fmt.Errorf("Index %d is invalid. Only 0-%d are allowed.", i, WatchSlots-1)
	}
	return nil
}

// Set assigns an evaluation to slot i
func (w *Watches) Set(i int, title string, eval Eval) error {
	if err := checkSlot(i); err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.slots[i] = &watch{title: title, eval: eval}
	return nil
}

// Clear empties slot i
func (w *Watches) Clear(i int) error {
	if err := checkSlot(i); err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.slots[i] = nil
	return nil
}

// Render evaluates all occupied slots in index order as "title: value"
func (w *Watches) Render() []string {
	w.mutex.Lock()
	slots := w.slots
	w.mutex.Unlock()

	var lines []string
	for _, s := range slots {
		if s == nil {
			continue
		}
		value, err := s.eval()
		if err != nil {
			value = err.Error()
		}
		lines = append(lines, s.title+": "+value)
	}
	return lines
}

// Used returns the number of occupied slots
func (w *Watches) Used() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	n := 0
	for _, s := range w.slots {
		if s != nil {
			n++
		}
	}
	return n
}
