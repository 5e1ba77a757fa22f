package peers

import "github.com/gotd/td/tg"

// channelMarkOffset shifts channel identifiers into their own negative range
// so user, chat, and channel keys never collide in one map.
const channelMarkOffset int64 = 1000000000000

// ID normalizes a peer reference into its marked canonical key: users stay
// positive, basic chats are negated, channels are offset below the chat range.
func ID(peer tg.PeerClass) (int64, bool) {
	switch typed := peer.(type) {
	case *tg.PeerUser:
		return UserID(typed.UserID), true
	case *tg.PeerChat:
		return ChatID(typed.ChatID), true
	case *tg.PeerChannel:
		return ChannelID(typed.ChannelID), true
	default:
		return 0, false
	}
}

// UserID returns the marked key for a bare user identifier.
func UserID(id int64) int64 {
	return id
}

// ChatID returns the marked key for a bare basic-chat identifier.
func ChatID(id int64) int64 {
	return -id
}

// ChannelID returns the marked key for a bare channel identifier.
func ChannelID(id int64) int64 {
	return -channelMarkOffset - id
}

// Peer is the inverse of ID: it rebuilds the bare peer reference a marked key
// denotes. A zero key yields nil.
func Peer(marked int64) tg.PeerClass {
	switch {
	case marked > 0:
		return &tg.PeerUser{UserID: marked}
	case marked <= -channelMarkOffset:
		return &tg.PeerChannel{ChannelID: -(marked + channelMarkOffset)}
	case marked < 0:
		return &tg.PeerChat{ChatID: -marked}
	default:
		return nil
	}
}
