// Package state holds the client-side cache of a user's movie list and
// the optimistic mutation bookkeeping over it.
package state

import (
	"strings"
	"sync"
)

// TempIDPrefix marks ids of not-yet-persisted entries. The server never
// issues ids with this prefix, so the predicate below is reliable.
const TempIDPrefix = "temp-"

// TempID derives the provisional id for an in-flight add request.
func TempID(requestID string) string {
	return TempIDPrefix + requestID
}

// IsTempID reports whether id belongs to a not-yet-confirmed entry.
// The single predicate used everywhere an id is consumed.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Snapshot mirrors one server-side movie snapshot in the client cache.
type Snapshot struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Year       *string `json:"year"`
	Runtime    *string `json:"runtime"`
	Genre      *string `json:"genre"`
	Director   *string `json:"director"`
	Poster     *string `json:"poster"`
	IsFavorite bool    `json:"isFavorite"`
}

// EditFields are the five fields an edit always rewrites.
type EditFields struct {
	Title    string
	Year     *string
	Runtime  *string
	Genre    *string
	Director *string
}

type rollbackKind int

const (
	rollbackFavorite rollbackKind = iota
	rollbackEdit
)

// rollback is the minimal prior-state capture needed to undo one
// optimistic mutation if its request fails.
type rollback struct {
	kind rollbackKind
	id   string
	prev Snapshot // full snapshot for edit, only IsFavorite meaningful for favorite
}

// Collection is the optimistic movie cache. Every mutation is applied
// through a named transition keyed by its request id; settlements may
// arrive on any goroutine and in any order. All reads return copies.
type Collection struct {
	mu        sync.Mutex
	items     []Snapshot
	rollbacks map[string]rollback
	deleting  map[string]bool
}

func NewCollection() *Collection {
	return &Collection{
		rollbacks: make(map[string]rollback),
		deleting:  make(map[string]bool),
	}
}

// ReplaceAll swaps the whole cache for a fresh server listing.
func (c *Collection) ReplaceAll(items []Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]Snapshot(nil), items...)
}

// Items returns a copy of the cached list.
func (c *Collection) Items() []Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Snapshot(nil), c.items...)
}

// Get returns a copy of the entry with the given id.
func (c *Collection) Get(id string) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i != -1 {
		return c.items[i], true
	}
	return Snapshot{}, false
}

// IsDeleting reports whether a delete request for id is in flight.
func (c *Collection) IsDeleting(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting[id]
}

// PendingRollbacks reports how many rollback records are live. A record
// exists for exactly the interval its request is in flight.
func (c *Collection) PendingRollbacks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rollbacks)
}

// BeginAdd appends a provisional snapshot under a temp id. Unknown
// fields stay nil, favorite starts false.
func (c *Collection) BeginAdd(requestID string, s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s.ID = TempID(requestID)
	s.IsFavorite = false
	c.items = append(c.items, s)
}

// ResolveAdd swaps the provisional entry for the authoritative one,
// preserving list position. The server cannot echo the temp id, so the
// entry is located by exact temp id first and by temp prefix plus title
// otherwise. A server poster of nil never clobbers an optimistic one:
// server-side enrichment is asynchronous and may lag.
func (c *Collection) ResolveAdd(requestID string, server Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.index(TempID(requestID))
	if idx == -1 {
		for i, it := range c.items {
			if IsTempID(it.ID) && it.Title == server.Title {
				idx = i
				break
			}
		}
	}
	if idx == -1 {
		c.items = append(c.items, server)
		return
	}
	if server.Poster == nil {
		server.Poster = c.items[idx].Poster
	}
	c.items[idx] = server
}

// FailAdd removes the provisional entry for the failed request.
func (c *Collection) FailAdd(requestID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(TempID(requestID)); i != -1 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// BeginFavorite records the previous flag and applies the requested
// value, or flips the current one when value is nil. Unknown id: no-op,
// no rollback record.
func (c *Collection) BeginFavorite(requestID, id string, value *bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i == -1 {
		return
	}
	c.rollbacks[requestID] = rollback{kind: rollbackFavorite, id: id, prev: c.items[i]}
	if value != nil {
		c.items[i].IsFavorite = *value
	} else {
		c.items[i].IsFavorite = !c.items[i].IsFavorite
	}
}

// ResolveFavorite writes the server-confirmed value (a concurrent
// mutation may have changed it) and discards the rollback record.
func (c *Collection) ResolveFavorite(requestID, id string, serverValue bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i != -1 {
		c.items[i].IsFavorite = serverValue
	}
	delete(c.rollbacks, requestID)
}

// FailFavorite restores the recorded previous flag.
func (c *Collection) FailFavorite(requestID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rb, ok := c.rollbacks[requestID]
	if !ok || rb.kind != rollbackFavorite {
		return
	}
	if i := c.index(rb.id); i != -1 {
		c.items[i].IsFavorite = rb.prev.IsFavorite
	}
	delete(c.rollbacks, requestID)
}

// BeginEdit records the entire previous snapshot and applies all five
// editable fields immediately. Unknown id: no-op.
func (c *Collection) BeginEdit(requestID, id string, fields EditFields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i == -1 {
		return
	}
	c.rollbacks[requestID] = rollback{kind: rollbackEdit, id: id, prev: c.items[i]}
	c.items[i].Title = fields.Title
	c.items[i].Year = fields.Year
	c.items[i].Runtime = fields.Runtime
	c.items[i].Genre = fields.Genre
	c.items[i].Director = fields.Director
}

// ResolveEdit replaces the entry wholesale with the authoritative
// snapshot and discards the rollback record.
func (c *Collection) ResolveEdit(requestID string, server Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(server.ID); i != -1 {
		c.items[i] = server
	}
	delete(c.rollbacks, requestID)
}

// FailEdit restores the full previous snapshot.
func (c *Collection) FailEdit(requestID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rb, ok := c.rollbacks[requestID]
	if !ok || rb.kind != rollbackEdit {
		return
	}
	if i := c.index(rb.id); i != -1 {
		c.items[i] = rb.prev
	}
	delete(c.rollbacks, requestID)
}

// BeginDelete marks the entry as deleting so the UI can disable it.
// The entry is NOT removed: an erroneous optimistic removal is the most
// disruptive failure mode, so removal waits for confirmation.
func (c *Collection) BeginDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleting[id] = true
}

// ResolveDelete removes the entry and clears the deleting flag.
func (c *Collection) ResolveDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i != -1 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	delete(c.deleting, id)
}

// FailDelete clears the flag; the entry stays visible.
func (c *Collection) FailDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.deleting, id)
}

// index is called with c.mu held.
func (c *Collection) index(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
