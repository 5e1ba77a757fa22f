package peers

import "github.com/gotd/td/tg"

// Table is one batch of resolved entities delivered alongside a server
// response, keyed by marked ID. It is read-only after construction.
type Table struct {
	entities map[int64]Entity
}

// NewTable indexes the users and chats attached to one server response.
// Empty and forbidden variants carry no usable payload and are skipped.
func NewTable(users []tg.UserClass, chats []tg.ChatClass) *Table {
	table := &Table{
		entities: make(map[int64]Entity, len(users)+len(chats)),
	}

	for _, user := range users {
		if user == nil {
			continue
		}
		notEmpty, ok := user.AsNotEmpty()
		if !ok || notEmpty == nil {
			continue
		}
		table.entities[UserID(notEmpty.ID)] = User{Raw: notEmpty}
	}

	for _, chat := range chats {
		switch typed := chat.(type) {
		case *tg.Chat:
			table.entities[ChatID(typed.ID)] = Chat{Raw: typed}
		case *tg.Channel:
			table.entities[ChannelID(typed.ID)] = Channel{Raw: typed}
		}
	}

	return table
}

// Get looks up an entity by its marked key.
func (t *Table) Get(marked int64) (Entity, bool) {
	if t == nil {
		return nil, false
	}
	entity, ok := t.entities[marked]

	return entity, ok
}

// Len returns the number of indexed entities.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.entities)
}
