package tgmsg

import (
	"tgmsg/pkg/peers"

	"github.com/gotd/td/tg"
)

// chatGetter is the resolved-chat capability shared by message-like entities,
// composed the same way as senderGetter.
type chatGetter struct {
	chatPeer  tg.PeerClass
	broadcast bool
	chat      peers.Entity
	inputChat tg.InputPeerClass
}

// ChatID returns the marked chat reference when the entity carries one.
func (g *chatGetter) ChatID() (int64, bool) {
	if g.chatPeer == nil {
		return 0, false
	}

	return peers.ID(g.chatPeer)
}

// Chat returns the resolved chat entity, or nil.
func (g *chatGetter) Chat() peers.Entity {
	return g.chat
}

// InputChat returns the chat's input reference, or nil.
func (g *chatGetter) InputChat() tg.InputPeerClass {
	return g.inputChat
}

// IsPrivate reports whether the chat is a one-to-one conversation.
func (g *chatGetter) IsPrivate() bool {
	_, ok := g.chatPeer.(*tg.PeerUser)

	return ok
}

// IsChannel reports whether the chat is channel-backed (broadcast or megagroup).
func (g *chatGetter) IsChannel() bool {
	_, ok := g.chatPeer.(*tg.PeerChannel)

	return ok
}

// IsGroup reports whether the chat is a multi-user group rather than a
// broadcast channel or private conversation.
func (g *chatGetter) IsGroup() bool {
	switch g.chatPeer.(type) {
	case *tg.PeerChat:
		return true
	case *tg.PeerChannel:
		return !g.broadcast
	default:
		return false
	}
}

func (g *chatGetter) resolveChat(table *peers.Table, cache *peers.Cache) {
	marked, ok := g.ChatID()
	if !ok {
		return
	}
	g.chat, g.inputChat = peers.ResolvePair(marked, table, cache)
}
