// Package ratelimit implements an in-memory sliding-window limiter applied
// to the API group.
package ratelimit

import (
	"sync"
	"time"
)

type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

// Allow records a request for key and reports whether it fits the window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	valid := l.requests[key][:0]
	for _, t := range l.requests[key] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.limit {
		l.requests[key] = valid
		return false
	}

	l.requests[key] = append(valid, now)
	return true
}

// Remaining returns how many requests key can still make in this window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	used := 0
	for _, t := range l.requests[key] {
		if t.After(cutoff) {
			used++
		}
	}
	if used >= l.limit {
		return 0
	}
	return l.limit - used
}
