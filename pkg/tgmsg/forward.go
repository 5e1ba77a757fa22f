package tgmsg

import (
	"tgmsg/pkg/peers"

	"github.com/gotd/td/tg"
)

// Forward describes the origin of a forwarded message: the resolved sender
// and origin chat plus the raw forward header. It composes the same sender
// and chat capabilities as Message.
type Forward struct {
	senderGetter
	chatGetter

	// Header is the raw forward header, verbatim.
	Header tg.MessageFwdHeader

	client Client
}

// newForward builds the forward descriptor from a forward header and the
// entity table of the response that delivered it. A channel origin doubles
// as the origin chat; a user origin is the original sender.
func newForward(client Client, header tg.MessageFwdHeader, table *peers.Table, cache *peers.Cache) *Forward {
	f := &Forward{
		Header: header,
		client: client,
	}

	if fromID, ok := header.GetFromID(); ok {
		if marked, ok := peers.ID(fromID); ok {
			f.senderGetter = senderGetter{senderID: marked, hasSender: true}
		}
		if _, isChannel := fromID.(*tg.PeerChannel); isChannel {
			f.chatGetter = chatGetter{chatPeer: fromID, broadcast: true}
		}
	}
	if saved, ok := header.GetSavedFromPeer(); ok {
		f.chatGetter = chatGetter{chatPeer: saved}
	}

	f.resolveSender(table, cache)
	f.resolveChat(table, cache)

	return f
}

// FromName returns the hidden-origin display name, when the origin opted out
// of being linked.
func (f *Forward) FromName() string {
	name, _ := f.Header.GetFromName()

	return name
}

// Date returns the original send date as a unix timestamp.
func (f *Forward) Date() int {
	return f.Header.Date
}

// ChannelPost returns the original post id for channel forwards.
func (f *Forward) ChannelPost() (int, bool) {
	return f.Header.GetChannelPost()
}
