// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package contact

import "sync"

// DefaultHistorySize is the number of contacts kept when no size is configured.
const DefaultHistorySize = 10

// History is a bounded in-memory list of processed contacts. When the list is
// full the oldest entry is evicted.
type History struct {
	mu       sync.RWMutex
	capacity int
	items    []*Contact
}

// NewHistory creates a history holding at most capacity contacts.
// A non-positive capacity falls back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		capacity: capacity,
		items:    make([]*Contact, 0, capacity),
	}
}

// Add stores a copy of c and returns the resulting size.
func (h *History) Add(c *Contact) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, c.Clone())
	if over := len(h.items) - h.capacity; over > 0 {
		h.items = append(h.items[:0], h.items[over:]...)
	}
	return len(h.items)
}

// List returns copies of the stored contacts, oldest first.
func (h *History) List() []*Contact {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Contact, len(h.items))
	for i, c := range h.items {
		out[i] = c.Clone()
	}
	return out
}

// Len returns the number of stored contacts.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

// Capacity returns the maximum number of stored contacts.
func (h *History) Capacity() int {
	return h.capacity
}
