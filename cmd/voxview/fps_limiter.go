package main

import (
	"time"
)

// FPSLimiter paces the render loop to a fixed frame rate
type FPSLimiter struct {
	limit int
	next  time.Time
}

func NewFPSLimiter(limit int) *FPSLimiter {
	return &FPSLimiter{limit: limit}
}

// Wait blocks until the next frame is due. A limit of zero or less disables
// pacing.
func (f *FPSLimiter) Wait() {
	if f.limit <= 0 {
		f.next = time.Time{}
		return
	}
	target := time.Second / time.Duration(f.limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	if remaining := time.Until(f.next); remaining > 0 {
		time.Sleep(remaining)
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
