package tgmsg

import (
	"tgmsg/pkg/peers"

	"github.com/gotd/td/tg"
)

// senderGetter is the resolved-sender capability shared by message-like
// entities. The resolution algorithm lives in peers.ResolvePair; this only
// holds the raw reference and the write-once results, so other entity kinds
// can compose the same behavior without inheriting message state.
type senderGetter struct {
	senderID    int64
	hasSender   bool
	sender      peers.Entity
	inputSender tg.InputPeerClass
}

// SenderID returns the marked sender reference when the message carries one.
func (g *senderGetter) SenderID() (int64, bool) {
	return g.senderID, g.hasSender
}

// Sender returns the resolved sender entity, or nil when resolution has not
// found one.
func (g *senderGetter) Sender() peers.Entity {
	return g.sender
}

// InputSender returns the sender's input reference, or nil.
func (g *senderGetter) InputSender() tg.InputPeerClass {
	return g.inputSender
}

func (g *senderGetter) resolveSender(table *peers.Table, cache *peers.Cache) {
	if !g.hasSender {
		return
	}
	g.sender, g.inputSender = peers.ResolvePair(g.senderID, table, cache)
}
