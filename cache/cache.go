// Package cache is the transposition cache the solver uses to recognise
// positions it has already searched.
package cache

import (
	"bytes"
)

// Keyer is anything that can produce a canonical key for itself. Two values
// with equal keys are treated as the same position; Hash must agree with the
// key.
type Keyer interface {
	AppendKey(dst []byte) []byte
	Hash() uint64
}

// Entry is a single cached position. Entries on the current search path are
// live and are only evicted as a last resort.
type Entry struct {
	key  []byte
	hash uint64
	live bool

	prev, next *Entry
	owner      *list
}

// Live reports whether the entry is on the solver's current path.
func (e *Entry) Live() bool {
	return e.live
}

// list is an intrusive doubly linked recency list; head is most recent.
type list struct {
	head, tail *Entry
	n          int
}

func (l *list) pushFront(e *Entry) {
	e.owner = l
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
	l.n++
}

func (l *list) remove(e *Entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next, e.owner = nil, nil, nil
	l.n--
}

// Cache is an LRU set of positions with a fixed capacity. It is not safe for
// concurrent use; every solver owns its own cache.
type Cache struct {
	capacity int
	buckets  map[uint64][]*Entry

	// idle holds entries off the search path, live the ones on it.
	idle list
	live list

	evictions     uint64
	liveEvictions uint64

	scratch []byte
}

// New creates a cache holding at most capacity positions. A capacity below
// one is treated as one.
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		buckets:  make(map[uint64][]*Entry),
	}
}

func (c *Cache) find(k Keyer) (*Entry, uint64) {
	c.scratch = k.AppendKey(c.scratch[:0])
	h := k.Hash()
	for _, e := range c.buckets[h] {
		if bytes.Equal(e.key, c.scratch) {
			return e, h
		}
	}
	return nil, h
}

// Insert adds the position as a live entry. If it was already present the
// existing entry is refreshed and returned with false.
func (c *Cache) Insert(k Keyer) (*Entry, bool) {
	e, h := c.find(k)
	if e != nil {
		l := e.owner
		l.remove(e)
		l.pushFront(e)
		return e, false
	}
	if c.Len() >= c.capacity {
		c.evict()
	}
	e = &Entry{
		key:  bytes.Clone(c.scratch),
		hash: h,
		live: true,
	}
	c.buckets[h] = append(c.buckets[h], e)
	c.live.pushFront(e)
	return e, true
}

// Contains reports whether the position is cached without touching its
// recency.
func (c *Cache) Contains(k Keyer) bool {
	e, _ := c.find(k)
	return e != nil
}

// SetNonLive marks the entry as off the search path so it can be evicted
// ahead of live entries. Entries that were already evicted are ignored.
func (c *Cache) SetNonLive(e *Entry) {
	if e == nil || e.owner != &c.live {
		return
	}
	c.live.remove(e)
	e.live = false
	c.idle.pushFront(e)
}

func (c *Cache) evict() {
	victim := c.idle.tail
	if victim == nil {
		victim = c.live.tail
		c.liveEvictions++
	}
	victim.owner.remove(victim)
	bucket := c.buckets[victim.hash]
	for i, e := range bucket {
		if e == victim {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.buckets, victim.hash)
	} else {
		c.buckets[victim.hash] = bucket
	}
	c.evictions++
}

// Len is the number of cached positions.
func (c *Cache) Len() int {
	return c.idle.n + c.live.n
}

// BucketCount is the number of distinct hashes in use.
func (c *Cache) BucketCount() int {
	return len(c.buckets)
}

func (c *Cache) Capacity() int {
	return c.capacity
}

// Evictions counts every position dropped to make room, live or not.
func (c *Cache) Evictions() uint64 {
	return c.evictions
}

// LiveEvictions counts positions dropped while still on the search path.
func (c *Cache) LiveEvictions() uint64 {
	return c.liveEvictions
}

// Clear empties the cache and resets its counters.
func (c *Cache) Clear() {
	for _, l := range []*list{&c.idle, &c.live} {
		for e := l.head; e != nil; {
			next := e.next
			e.prev, e.next, e.owner = nil, nil, nil
			e = next
		}
	}
	c.buckets = make(map[uint64][]*Entry)
	c.idle = list{}
	c.live = list{}
	c.evictions = 0
	c.liveEvictions = 0
}
