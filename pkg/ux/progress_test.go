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
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer written by the animation goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProgress_Machine(t *testing.T) {
	withPersonality(t, PersonalityMachine)

	var buf syncBuffer
	p := NewProgress(&buf, "Enciphering", 3)
	p.Start()
	p.Increment()
	p.Stop()

	assert.Empty(t, buf.String())
	assert.Equal(t, 1, p.Current())
}

func TestProgress_Standard(t *testing.T) {
	withPersonality(t, PersonalityStandard)

	var buf syncBuffer
	p := NewProgress(&buf, "Enciphering", 4)
	p.Start()
	p.Increment()
	p.Increment()
	time.Sleep(3 * progressInterval)
	p.Stop()

	out := buf.String()
	assert.Contains(t, out, "Enciphering [2/4]")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"), "line should be cleared on stop")
}

func TestProgress_ConcurrentIncrement(t *testing.T) {
	withPersonality(t, PersonalityMachine)

	p := NewProgress(&syncBuffer{}, "x", 100)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Increment()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, p.Current())
}

func TestProgress_StopWithoutStart(t *testing.T) {
	p := NewProgress(&syncBuffer{}, "x", 1)
	p.Stop()
	p.Stop()
}
