package peers

import "github.com/gotd/td/tg"

// ResolvePair resolves a marked reference into its entity and input-reference
// forms. The table attached to the current response wins; the shared cache is
// the fallback. A full miss yields nils, never an error: an unresolvable
// reference means the view stays unresolved, not that the message is invalid.
//
// Both inputs are read-only; resolution never writes back to the cache.
func ResolvePair(marked int64, table *Table, cache *Cache) (Entity, tg.InputPeerClass) {
	var entity Entity
	if found, ok := table.Get(marked); ok {
		entity = found
	}
	if entity == nil && cache != nil {
		if found, ok := cache.Entity(marked); ok {
			entity = found
		}
	}

	var input tg.InputPeerClass
	if entity != nil {
		input = entity.InputPeer()
	}
	if input == nil && cache != nil {
		if peer, ok := cache.InputPeer(marked); ok {
			input = peer
		}
	}

	return entity, input
}
