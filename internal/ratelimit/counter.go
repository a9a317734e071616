// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit stores per-client request counts for httprate and drops
// the counts of windows that are over.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/go-chi/httprate"
)

var _ httprate.LimitCounter = (*Counter)(nil)

type window struct {
	start time.Time
	count int
}

// Counter is an in-memory httprate.LimitCounter counting requests per fixed
// window. It never reports a previous window, so a client gets at most the
// configured limit per window and a fresh allowance when the next one starts.
type Counter struct {
	mu      sync.Mutex
	windows map[string]window

	windowLength    time.Duration
	cleanupInterval time.Duration
	logger          *logger.Logger
}

// NewCounter creates an empty counter. The window length is set by httprate
// through [Counter.Config]; cleanupInterval controls how often [Counter.Run]
// drops finished windows.
func NewCounter(cleanupInterval time.Duration, log *logger.Logger) *Counter {
	return &Counter{
		windows:         make(map[string]window),
		cleanupInterval: cleanupInterval,
		logger:          log,
	}
}

func (c *Counter) Config(_ int, windowLength time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windowLength = windowLength
}

func (c *Counter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

// IncrementBy adds amount to the count of key, starting over when
// currentWindow differs from the stored one.
func (c *Counter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.windows[key]
	if !ok || !w.start.Equal(currentWindow) {
		w = window{start: currentWindow}
	}
	w.count += amount
	c.windows[key] = w

	return nil
}

// Get returns the count of key in currentWindow. The previous window count
// is always zero.
func (c *Counter) Get(key string, currentWindow, _ time.Time) (int, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.windows[key]
	if !ok || !w.start.Equal(currentWindow) {
		return 0, 0, nil
	}
	return w.count, 0, nil
}

// Evict drops the counts of windows that ended at or before now.
func (c *Counter) Evict(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, w := range c.windows {
		if !now.Before(w.start.Add(c.windowLength)) {
			delete(c.windows, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked clients.
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.windows)
}

// Run evicts finished windows every cleanup interval until ctx is done.
func (c *Counter) Run(ctx context.Context) {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Str("func", "Counter.Run").Msg("rate limit janitor stopped")
			return
		case now := <-ticker.C:
			if n := c.Evict(now); n > 0 {
				c.logger.Debug().Str("func", "Counter.Run").Int("evicted", n).Msg("finished rate limit windows evicted")
			}
		}
	}
}
