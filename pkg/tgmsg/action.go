package tgmsg

import (
	"tgmsg/pkg/peers"

	"github.com/gotd/td/tg"
)

// classifyActionEntities resolves the participants a service action
// references against the entity table, preserving action order. Variants
// outside the classified set yield nil; references missing from the table
// are dropped rather than surfaced as errors.
func classifyActionEntities(action tg.MessageActionClass, table *peers.Table) []peers.Entity {
	if action == nil {
		return nil
	}

	switch typed := action.(type) {
	case *tg.MessageActionChatAddUser:
		return lookupUsers(table, typed.Users)
	case *tg.MessageActionChatCreate:
		return lookupUsers(table, typed.Users)
	case *tg.MessageActionChatDeleteUser:
		return lookupUsers(table, []int64{typed.UserID})
	case *tg.MessageActionChatJoinedByLink:
		// The protocol scopes the inviter reference to the channel key space.
		return lookupMarked(table, peers.ChannelID(typed.InviterID))
	case *tg.MessageActionChannelMigrateFrom:
		return lookupMarked(table, peers.ChatID(typed.ChatID))
	default:
		return nil
	}
}

func lookupUsers(table *peers.Table, userIDs []int64) []peers.Entity {
	if len(userIDs) == 0 {
		return nil
	}

	out := make([]peers.Entity, 0, len(userIDs))
	for _, userID := range userIDs {
		if entity, ok := table.Get(peers.UserID(userID)); ok {
			out = append(out, entity)
		}
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

func lookupMarked(table *peers.Table, marked int64) []peers.Entity {
	entity, ok := table.Get(marked)
	if !ok {
		return nil
	}

	return []peers.Entity{entity}
}
