// Package tgmsg models one decoded Telegram message as a resolved view: the
// raw protocol record plus lazily derived sender, chat, forward, text, and
// media projections cross-referenced against an entity table.
package tgmsg

import (
	"context"
	"fmt"
	"log/slog"

	"tgmsg/pkg/peers"

	"github.com/gotd/td/tg"
)

// Message is a resolved view over one decoded chat message.
//
// Construction is two-phase: FromRaw or FromService copies the protocol
// fields and derives the sender reference, then Bind attaches the owning
// client and resolves the entity graph against an entity table. Raw fields
// are immutable after construction (the text setters are the one exception);
// derived state populates lazily and caches write-once.
type Message struct {
	senderGetter
	chatGetter

	// Protocol fields, verbatim from the decoded record.
	ID                int
	PeerID            tg.PeerClass
	Date              int
	Out               bool
	Mentioned         bool
	MediaUnread       bool
	Silent            bool
	Post              bool
	FromScheduled     bool
	Legacy            bool
	EditHide          bool
	Pinned            bool
	FromID            tg.PeerClass
	ReplyTo           tg.MessageReplyHeaderClass
	Message           string
	FwdFrom           *tg.MessageFwdHeader
	ViaBotID          int64
	Media             tg.MessageMediaClass
	ReplyMarkup       tg.ReplyMarkupClass
	Entities          []tg.MessageEntityClass
	Views             int
	Forwards          int
	Replies           *tg.MessageReplies
	EditDate          int
	PostAuthor        string
	GroupedID         int64
	RestrictionReason []tg.RestrictionReason
	Action            tg.MessageActionClass
	TTLPeriod         int

	client Client
	logger *slog.Logger

	viaBot         peers.Entity
	viaInputBot    tg.InputPeerClass
	forward        *Forward
	actionEntities []peers.Entity
	displayText    lazy[string]
	replyMessage   lazy[*Message]
}

// FromRaw builds an unresolved Message from one decoded text message.
func FromRaw(raw *tg.Message) (*Message, error) {
	if raw == nil {
		return nil, fmt.Errorf("from raw message: nil message")
	}
	if raw.ID <= 0 {
		return nil, fmt.Errorf("from raw message: %w", ErrInvalidMessageID)
	}

	m := &Message{
		ID:            raw.ID,
		PeerID:        raw.PeerID,
		Date:          raw.Date,
		Out:           raw.Out,
		Mentioned:     raw.Mentioned,
		MediaUnread:   raw.MediaUnread,
		Silent:        raw.Silent,
		Post:          raw.Post,
		FromScheduled: raw.FromScheduled,
		Legacy:        raw.Legacy,
		EditHide:      raw.EditHide,
		Pinned:        raw.Pinned,
		Message:       raw.Message,
	}
	if fromID, ok := raw.GetFromID(); ok {
		m.FromID = fromID
	}
	if replyTo, ok := raw.GetReplyTo(); ok {
		m.ReplyTo = replyTo
	}
	if header, ok := raw.GetFwdFrom(); ok {
		headerCopy := header
		m.FwdFrom = &headerCopy
	}
	if viaBotID, ok := raw.GetViaBotID(); ok {
		m.ViaBotID = viaBotID
	}
	// The empty-media sentinel means "no media"; anything else passes
	// through untouched and is classified at accessor time.
	if media, ok := raw.GetMedia(); ok {
		if _, empty := media.(*tg.MessageMediaEmpty); !empty {
			m.Media = media
		}
	}
	if markup, ok := raw.GetReplyMarkup(); ok {
		m.ReplyMarkup = markup
	}
	if entities, ok := raw.GetEntities(); ok {
		m.Entities = entities
	}
	if views, ok := raw.GetViews(); ok {
		m.Views = views
	}
	if forwards, ok := raw.GetForwards(); ok {
		m.Forwards = forwards
	}
	if replies, ok := raw.GetReplies(); ok {
		repliesCopy := replies
		m.Replies = &repliesCopy
	}
	if editDate, ok := raw.GetEditDate(); ok {
		m.EditDate = editDate
	}
	if postAuthor, ok := raw.GetPostAuthor(); ok {
		m.PostAuthor = postAuthor
	}
	if groupedID, ok := raw.GetGroupedID(); ok {
		m.GroupedID = groupedID
	}
	if reasons, ok := raw.GetRestrictionReason(); ok {
		m.RestrictionReason = reasons
	}
	if ttl, ok := raw.GetTTLPeriod(); ok {
		m.TTLPeriod = ttl
	}
	m.initGetters()

	return m, nil
}

// FromService builds an unresolved Message from one decoded service message.
func FromService(raw *tg.MessageService) (*Message, error) {
	if raw == nil {
		return nil, fmt.Errorf("from service message: nil message")
	}
	if raw.ID <= 0 {
		return nil, fmt.Errorf("from service message: %w", ErrInvalidMessageID)
	}

	m := &Message{
		ID:          raw.ID,
		PeerID:      raw.PeerID,
		Date:        raw.Date,
		Out:         raw.Out,
		Mentioned:   raw.Mentioned,
		MediaUnread: raw.MediaUnread,
		Silent:      raw.Silent,
		Post:        raw.Post,
		Legacy:      raw.Legacy,
		Action:      raw.Action,
	}
	if fromID, ok := raw.GetFromID(); ok {
		m.FromID = fromID
	}
	if replyTo, ok := raw.GetReplyTo(); ok {
		m.ReplyTo = replyTo
	}
	if ttl, ok := raw.GetTTLPeriod(); ok {
		m.TTLPeriod = ttl
	}
	m.initGetters()

	return m, nil
}

// initGetters seeds the sender and chat capabilities from the raw references.
func (m *Message) initGetters() {
	m.chatGetter = chatGetter{chatPeer: m.PeerID, broadcast: m.Post}
	if marked, ok := deriveSenderID(m.FromID, m.PeerID, m.Out, m.Post); ok {
		m.senderGetter = senderGetter{senderID: marked, hasSender: true}
	}
}

// deriveSenderID applies the protocol's authorship convention: an explicit
// from reference wins; otherwise channel posts and incoming private messages
// attribute authorship to the conversation peer itself.
func deriveSenderID(fromID, peerID tg.PeerClass, out, post bool) (int64, bool) {
	if fromID != nil {
		return peers.ID(fromID)
	}
	if peerID == nil {
		return 0, false
	}
	if post {
		return peers.ID(peerID)
	}
	if _, isUser := peerID.(*tg.PeerUser); isUser && !out {
		return peers.ID(peerID)
	}

	return 0, false
}

// BindOption mutates Bind behavior.
type BindOption func(*bindConfig)

type bindConfig struct {
	inputChat tg.InputPeerClass
	logger    *slog.Logger
}

// WithInputChat overrides the input chat resolved from the entity table.
// Callers that already hold an authoritative input reference use this to
// avoid a later on-demand lookup.
func WithInputChat(peer tg.InputPeerClass) BindOption {
	return func(cfg *bindConfig) {
		if peer != nil {
			cfg.inputChat = peer
		}
	}
}

// WithLogger configures structured logging for reload and reply lookups.
func WithLogger(logger *slog.Logger) BindOption {
	return func(cfg *bindConfig) {
		cfg.logger = logger
	}
}

// Bind attaches the owning client and resolves the entity graph: sender,
// chat, and via-bot pairs, the forward descriptor, and service-action
// participants. The table and client are borrowed for the duration of the
// call; Bind never mutates them.
func (m *Message) Bind(client Client, table *peers.Table, options ...BindOption) {
	cfg := bindConfig{}
	for _, option := range options {
		option(&cfg)
	}

	m.client = client
	m.logger = cfg.logger

	var cache *peers.Cache
	if client != nil {
		cache = client.EntityCache()
	}

	m.resolveSender(table, cache)
	m.resolveChat(table, cache)
	if cfg.inputChat != nil {
		m.inputChat = cfg.inputChat
	}

	if m.ViaBotID != 0 {
		m.viaBot, m.viaInputBot = peers.ResolvePair(peers.UserID(m.ViaBotID), table, cache)
	}
	if m.FwdFrom != nil {
		m.forward = newForward(client, *m.FwdFrom, table, cache)
	}
	m.actionEntities = classifyActionEntities(m.Action, table)
}

// Client returns the owning client, or nil before Bind.
func (m *Message) Client() Client {
	return m.client
}

// ViaBot returns the resolved inline bot the message was sent through, or nil.
func (m *Message) ViaBot() peers.Entity {
	return m.viaBot
}

// ViaInputBot returns the inline bot's input reference, or nil.
func (m *Message) ViaInputBot() tg.InputPeerClass {
	return m.viaInputBot
}

// Forward returns the forward-origin descriptor, or nil for non-forwards.
func (m *Message) Forward() *Forward {
	return m.forward
}

// ActionEntities returns the entities a service action references, in action
// order. Non-service messages and unclassified actions yield nil.
func (m *Message) ActionEntities() []peers.Entity {
	return m.actionEntities
}

// ToID returns the destination peer as the protocol reports it: incoming
// private messages address the current user rather than the conversation peer.
func (m *Message) ToID() tg.PeerClass {
	if m.client != nil && !m.Out && m.IsPrivate() {
		return &tg.PeerUser{UserID: m.client.SelfID()}
	}

	return m.PeerID
}

// ButtonCount returns the total number of buttons across the reply markup.
func (m *Message) ButtonCount() int {
	var rows []tg.KeyboardButtonRow
	switch markup := m.ReplyMarkup.(type) {
	case *tg.ReplyInlineMarkup:
		rows = markup.Rows
	case *tg.ReplyKeyboardMarkup:
		rows = markup.Rows
	default:
		return 0
	}

	count := 0
	for _, row := range rows {
		count += len(row.Buttons)
	}

	return count
}

// GetSender returns the resolved sender, refetching the message once when the
// construction-time table lacked it. A message without a sender reference
// yields nil without any fetch.
func (m *Message) GetSender(ctx context.Context) peers.Entity {
	if m.sender == nil && m.hasSender {
		m.reload(ctx)
	}

	return m.sender
}

// GetChat returns the resolved chat, refetching the message once when the
// construction-time table lacked it.
func (m *Message) GetChat(ctx context.Context) peers.Entity {
	if m.chat == nil {
		if _, ok := m.ChatID(); ok {
			m.reload(ctx)
		}
	}

	return m.chat
}

// GetInputChat returns the chat's input reference, asking the owning client
// to resolve it on first use when construction could not.
func (m *Message) GetInputChat(ctx context.Context) tg.InputPeerClass {
	if m.inputChat != nil {
		return m.inputChat
	}
	if m.client == nil {
		return nil
	}
	marked, ok := m.ChatID()
	if !ok {
		return nil
	}

	peer, err := m.client.InputEntity(ctx, marked)
	if err != nil {
		m.log().WarnContext(ctx, "resolve input chat failed", "message_id", m.ID, "chat_id", marked, "error", err)
		return nil
	}
	m.inputChat = peer

	return m.inputChat
}

func (m *Message) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}

	return slog.Default()
}
