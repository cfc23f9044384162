// ============================================================================
// meinDENKWERK (mDW) - Developer Console
// ============================================================================
//
// Package:     logging
// Description: Tap forwards log entries to an in-process consumer (the console view)
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"sync"
	"sync/atomic"
)

// Tap buffers log entries for a consumer such as the console view.
// Entries are dropped instead of blocking the logging goroutine when the
// buffer is full.
type Tap struct {
	minLevel Level
	entries  chan *Entry
	dropped  atomic.Int64

	closeOnce sync.Once
	closed    atomic.Bool
}

// TapConfig holds configuration for a Tap
type TapConfig struct {
	MinLevel   Level // Entries below this level are ignored (default: info)
	BufferSize int   // Channel capacity (default: 256)
}

// NewTap creates a new Tap
func NewTap(cfg TapConfig) *Tap {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	return &Tap{
		minLevel: cfg.MinLevel,
		entries:  make(chan *Entry, cfg.BufferSize),
	}
}

// Hook returns the hook to register with Logger.AddHook
func (t *Tap) Hook() Hook {
	return t.push
}

func (t *Tap) push(entry *Entry) {
	if t.closed.Load() || !entry.Level.ShouldLog(t.minLevel) {
		return
	}
	select {
	case t.entries <- entry:
	default:
		t.dropped.Add(1)
	}
}

// Entries returns the channel entries are delivered on
func (t *Tap) Entries() <-chan *Entry {
	return t.entries
}

// Drain returns every entry currently buffered without blocking
func (t *Tap) Drain() []*Entry {
	var out []*Entry
	for {
		select {
		case e := <-t.entries:
			out = append(out, e)
		default:
			return out
		}
	}
}

// Dropped returns the number of entries discarded because the buffer was full
func (t *Tap) Dropped() int64 {
	return t.dropped.Load()
}

// Close stops accepting entries
func (t *Tap) Close() {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
	})
}
