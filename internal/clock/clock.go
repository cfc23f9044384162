// ============================================================================
// meinDENKWERK (mDW) - Developer Console
// ============================================================================
//
// Package:     clock
// Description: Scaled, pausable host clock exposed to the console as "time"
// Author:      Mike Stoffels
// Created:     2025-12-08
// License:     MIT
// ============================================================================

package clock

import (
	"errors"
	"sync"
	"time"

	"github.com/msto63/devconsole/pkg/core/logging"
)

// TypeName is the object type the clock is registered under
const TypeName = "time"

// ErrNegativeScale is returned by SetScale for scales below zero
var ErrNegativeScale = errors.New("The time scale must be 0 or higher.")

// Clock measures host time that runs at an adjustable scale and can be
// paused while the console is open. Methods are safe for concurrent use.
type Clock struct {
	mutex sync.Mutex
	now   func() time.Time

	scale   float64
	paused  bool
	elapsed time.Duration // scaled time accumulated before mark
	mark    time.Time

	logger *logging.Logger
}

// Option configures a Clock
type Option func(*Clock)

// WithNow replaces the wall clock source
func WithNow(now func() time.Time) Option {
	return func(c *Clock) { c.now = now }
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *Clock) { c.logger = logger }
}

// New creates a running clock with scale 1
func New(opts ...Option) *Clock {
	c := &Clock{now: time.Now, scale: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	c.logger = c.logger.WithField("component", "clock")
	c.mark = c.now()
	return c
}

// advance folds the time since mark into elapsed. Caller holds the mutex.
func (c *Clock) advance() {
	now := c.now()
	if !c.paused {
		c.elapsed += time.Duration(float64(now.Sub(c.mark)) * c.scale)
	}
	c.mark = now
}

// Time returns the scaled time elapsed since the clock was created
func (c *Clock) Time() time.Duration {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.advance()
	return c.elapsed
}

// Seconds returns Time in seconds
func (c *Clock) Seconds() float64 {
	return c.Time().Seconds()
}

// Scale returns the current time scale
func (c *Clock) Scale() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.scale
}

// SetScale changes the time scale. While paused the new scale applies on resume.
func (c *Clock) SetScale(scale float64) error {
	if scale < 0 {
		return ErrNegativeScale
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.advance()
	c.scale = scale
	c.logger.Debug("Time scale changed", logging.Fields{"scale": scale, "paused": c.paused})
	return nil
}

// Paused reports whether the clock is paused
func (c *Clock) Paused() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.paused
}

// Pause stops the clock and reports whether it was running
func (c *Clock) Pause() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.paused {
		return false
	}
	c.advance()
	c.paused = true
	c.logger.Debug("Clock paused")
	return true
}

// Resume restarts a paused clock and reports whether it was paused
func (c *Clock) Resume() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.paused {
		return false
	}
	c.advance()
	c.paused = false
	c.logger.Debug("Clock resumed")
	return true
}

// Reset sets the elapsed time back to zero
func (c *Clock) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.elapsed = 0
	c.mark = c.now()
}
