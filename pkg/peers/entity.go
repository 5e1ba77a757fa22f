// Package peers models resolved Telegram entities and the lookup structures
// used to cross-reference raw peer references against them: the per-response
// entity table and the long-lived shared cache.
package peers

import (
	"strconv"
	"strings"

	"github.com/gotd/td/tg"
)

// Entity is a resolved user, chat, or channel.
//
// The sum is closed: every variant wraps the corresponding gotd object and
// knows its marked key plus the input-reference form needed to address it in
// outbound requests.
type Entity interface {
	// ID returns the marked identifier used as the canonical lookup key.
	ID() int64
	// Peer returns the bare peer reference for this entity.
	Peer() tg.PeerClass
	// InputPeer returns the input reference for outbound requests, or nil
	// when the entity cannot be addressed directly.
	InputPeer() tg.InputPeerClass
	// DisplayName returns a human-readable label for logs and UIs.
	DisplayName() string

	sealedEntity()
}

// User is a resolved Telegram user or bot.
type User struct {
	Raw *tg.User
}

// ID returns the user's marked key.
func (u User) ID() int64 { return UserID(u.Raw.ID) }

// Peer returns the bare user peer.
func (u User) Peer() tg.PeerClass { return &tg.PeerUser{UserID: u.Raw.ID} }

// InputPeer returns the user's input reference.
func (u User) InputPeer() tg.InputPeerClass { return u.Raw.AsInputPeer() }

// DisplayName returns first+last name, falling back to username, then the id.
func (u User) DisplayName() string {
	firstName, _ := u.Raw.GetFirstName()
	lastName, _ := u.Raw.GetLastName()
	name := strings.TrimSpace(firstName + " " + lastName)
	if name == "" {
		name, _ = u.Raw.GetUsername()
	}
	if name == "" {
		name = strconv.FormatInt(u.Raw.ID, 10)
	}

	return name
}

func (u User) sealedEntity() {}

// Chat is a resolved basic group chat.
type Chat struct {
	Raw *tg.Chat
}

// ID returns the chat's marked key.
func (c Chat) ID() int64 { return ChatID(c.Raw.ID) }

// Peer returns the bare chat peer.
func (c Chat) Peer() tg.PeerClass { return &tg.PeerChat{ChatID: c.Raw.ID} }

// InputPeer returns the chat's input reference.
func (c Chat) InputPeer() tg.InputPeerClass { return c.Raw.AsInputPeer() }

// DisplayName returns the chat title.
func (c Chat) DisplayName() string { return c.Raw.Title }

func (c Chat) sealedEntity() {}

// Channel is a resolved channel or megagroup.
type Channel struct {
	Raw *tg.Channel
}

// ID returns the channel's marked key.
func (c Channel) ID() int64 { return ChannelID(c.Raw.ID) }

// Peer returns the bare channel peer.
func (c Channel) Peer() tg.PeerClass { return &tg.PeerChannel{ChannelID: c.Raw.ID} }

// InputPeer returns the channel's input reference.
func (c Channel) InputPeer() tg.InputPeerClass { return c.Raw.AsInputPeer() }

// DisplayName returns the channel title.
func (c Channel) DisplayName() string { return c.Raw.Title }

// Broadcast reports whether this is a broadcast channel rather than a megagroup.
func (c Channel) Broadcast() bool { return c.Raw.Broadcast }

func (c Channel) sealedEntity() {}
