// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"sync"
	"weak"
)

// defaultArenaSize is the buffer size of arenas for keys without history.
const defaultArenaSize = 1024 * 1024

// sizeWindow is the number of releases a key's average peak is taken over.
const sizeWindow = 50

// ArenaPool is a thread-safe pool of ArenaAllocators for workloads that build
// and discard vectors repeatedly, such as one batch per request.
//
// Idle arenas are held through weak pointers, so the garbage collector may
// reclaim them at any time; the pool size follows memory pressure. The pool
// also remembers the average peak usage per key and sizes new arenas for it.
type ArenaPool struct {
	pool  []weak.Pointer[PooledArena]
	sizes map[uint64]*arenaUsage
	mu    sync.Mutex
}

// arenaUsage tracks the peak bytes across the last sizeWindow releases of a key.
type arenaUsage struct {
	count      int
	totalBytes int
}

// PooledArena is an ArenaAllocator on loan from an ArenaPool.
type PooledArena struct {
	Arena *ArenaAllocator
	Key   uint64
}

// NewArenaPool creates an empty ArenaPool.
func NewArenaPool() *ArenaPool {
	return &ArenaPool{
		sizes: make(map[uint64]*arenaUsage),
	}
}

// Acquire takes an idle arena from the pool or creates one sized for key.
func (p *ArenaPool) Acquire(key uint64) *PooledArena {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.pool) > 0 {
		last := len(p.pool) - 1
		wp := p.pool[last]
		p.pool = p.pool[:last]

		if item := wp.Value(); item != nil {
			item.Key = key
			return item
		}
		// collected by the GC, try the next one
	}

	return &PooledArena{
		Arena: NewArenaAllocator(WithMinBufferSize(p.arenaSize(key))),
		Key:   key,
	}
}

// Release resets the arena and returns it to the pool, recording its peak
// usage for the item's key. Every vector allocated from the arena must have
// been released or forgotten.
func (p *ArenaPool) Release(item *PooledArena) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release(item)
}

// ReleaseMany is Release for a batch of items, taking the lock once.
func (p *ArenaPool) ReleaseMany(items []*PooledArena) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range items {
		p.release(item)
	}
}

func (p *ArenaPool) release(item *PooledArena) {
	peak := item.Arena.Peak()
	item.Arena.Reset()

	if usage, ok := p.sizes[item.Key]; ok {
		if usage.count == sizeWindow {
			usage.count = 1
			usage.totalBytes /= sizeWindow
		}
		usage.count++
		usage.totalBytes += peak
	} else {
		p.sizes[item.Key] = &arenaUsage{count: 1, totalBytes: peak}
	}

	item.Key = 0
	p.pool = append(p.pool, weak.Make(item))
}

// arenaSize returns the buffer size new arenas for key start with.
func (p *ArenaPool) arenaSize(key uint64) int {
	if usage, ok := p.sizes[key]; ok && usage.totalBytes > 0 {
		return usage.totalBytes / usage.count
	}
	return defaultArenaSize
}
