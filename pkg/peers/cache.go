package peers

import (
	"sync"

	"github.com/gotd/td/tg"
)

// Cache stores entities discovered from earlier server responses.
//
// Message resolution falls back to it when the entity table attached to one
// response does not carry a referenced peer. It is safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	entities map[int64]Entity
}

// NewCache creates an empty entity cache.
func NewCache() *Cache {
	return &Cache{
		entities: make(map[int64]Entity),
	}
}

// Put stores one resolved entity under its marked key.
func (c *Cache) Put(entity Entity) {
	if c == nil || entity == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities[entity.ID()] = entity
}

// Ingest indexes the users and chats attached to one server response.
func (c *Cache) Ingest(users []tg.UserClass, chats []tg.ChatClass) {
	if c == nil {
		return
	}

	table := NewTable(users, chats)

	c.mu.Lock()
	defer c.mu.Unlock()
	for marked, entity := range table.entities {
		c.entities[marked] = entity
	}
}

// Entity looks up a cached entity by its marked key.
func (c *Cache) Entity(marked int64) (Entity, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	entity, ok := c.entities[marked]

	return entity, ok
}

// InputPeer returns a cloned input reference for a cached entity.
//
// Cloning keeps callers from mutating shared access hashes through the
// returned value.
func (c *Cache) InputPeer(marked int64) (tg.InputPeerClass, bool) {
	entity, ok := c.Entity(marked)
	if !ok {
		return nil, false
	}
	peer := entity.InputPeer()
	if peer == nil {
		return nil, false
	}

	return CloneInputPeer(peer), true
}

// CloneInputPeer copies the concrete input peer variants that carry mutable
// identity fields. Unknown variants pass through unchanged.
func CloneInputPeer(peer tg.InputPeerClass) tg.InputPeerClass {
	switch typed := peer.(type) {
	case *tg.InputPeerUser:
		copyPeer := *typed
		return &copyPeer
	case *tg.InputPeerChat:
		copyPeer := *typed
		return &copyPeer
	case *tg.InputPeerChannel:
		copyPeer := *typed
		return &copyPeer
	case *tg.InputPeerSelf:
		copyPeer := *typed
		return &copyPeer
	default:
		return peer
	}
}
