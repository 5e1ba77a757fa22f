package tgmsg

import (
	"context"
	"io"

	"tgmsg/pkg/peers"

	"github.com/gotd/td/tg"
)

// Client is the owning client a bound Message delegates to.
//
// A Message borrows its client for resolution, reload, and outbound calls; it
// never manages the client's lifetime.
type Client interface {
	// GetMessages fetches messages by selector. A nil peer requests a global
	// lookup; missing messages are omitted from the result.
	GetMessages(ctx context.Context, peer tg.InputPeerClass, ids []tg.InputMessageClass) ([]*Message, error)
	// SendMessage publishes a new message to peer.
	SendMessage(ctx context.Context, peer tg.InputPeerClass, request SendRequest) (*Message, error)
	// EditMessage updates an existing message on peer.
	EditMessage(ctx context.Context, peer tg.InputPeerClass, request EditRequest) (*Message, error)
	// ForwardMessages forwards the given message ids from one peer to another.
	ForwardMessages(ctx context.Context, to, from tg.InputPeerClass, ids []int) ([]*Message, error)
	// DownloadMedia streams a media payload into target.
	DownloadMedia(ctx context.Context, media tg.MessageMediaClass, target io.Writer) (int64, error)
	// InputEntity resolves a marked reference into an input peer.
	InputEntity(ctx context.Context, marked int64) (tg.InputPeerClass, error)
	// EntityCache returns the shared entity cache consulted during resolution.
	EntityCache() *peers.Cache
	// Codec returns the configured text codec, or nil when none is set.
	Codec() TextCodec
	// SelfID returns the authenticated user's id.
	SelfID() int64
}

// SendRequest carries outbound message content for Respond and Reply.
type SendRequest struct {
	Text         string
	Entities     []tg.MessageEntityClass
	ReplyToMsgID int
	Silent       bool
	NoWebpage    bool
}

// EditRequest carries an outbound edit.
//
// LinkPreview nil means "derive from the message's current state"; a nil
// ReplyMarkup keeps the existing markup. ID is filled in by Message.Edit.
type EditRequest struct {
	ID          int
	Text        string
	Entities    []tg.MessageEntityClass
	LinkPreview *bool
	ReplyMarkup tg.ReplyMarkupClass
}
