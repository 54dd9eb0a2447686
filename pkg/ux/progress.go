// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progressFrames step like a rotor window.
var progressFrames = []string{"◐", "◓", "◑", "◒"}

const progressInterval = 80 * time.Millisecond

// Progress is an animated "label [done/total]" line for long batches.
// In machine personality it writes nothing, so piped output stays clean.
//
// Increment is safe to call from multiple goroutines.
type Progress struct {
	w     io.Writer
	label string
	total int

	mu         sync.Mutex
	current    int
	frameIndex int
	running    bool
	stop       chan struct{}
	done       chan struct{}
}

// NewProgress creates a progress line for total items.
func NewProgress(w io.Writer, label string, total int) *Progress {
	return &Progress{
		w:     w,
		label: label,
		total: total,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start begins the animation.
func (p *Progress) Start() {
	p.mu.Lock()
	if p.running || GetPersonality() == PersonalityMachine {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		defer close(p.done)

		for {
			select {
			case <-p.stop:
				fmt.Fprint(p.w, "\r\033[K")
				return
			case <-ticker.C:
				p.render()
			}
		}
	}()
}

func (p *Progress) render() {
	p.mu.Lock()
	defer p.mu.Unlock()
	frame := Styles.Title.Render(progressFrames[p.frameIndex])
	fmt.Fprintf(p.w, "\r%s %s [%d/%d]", frame, p.label, p.current, p.total)
	p.frameIndex = (p.frameIndex + 1) % len(progressFrames)
}

// Increment advances the counter by one.
func (p *Progress) Increment() {
	p.mu.Lock()
	p.current++
	p.mu.Unlock()
}

// Current returns how many items are done.
func (p *Progress) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Stop halts the animation and clears the line.
func (p *Progress) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stop)
	<-p.done
}
