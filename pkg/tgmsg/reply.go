package tgmsg

import (
	"context"

	"github.com/gotd/td/tg"
)

// IsReply reports whether the message references another message.
func (m *Message) IsReply() bool {
	return m.ReplyTo != nil
}

// ReplyToMsgID returns the replied-to message id from the reply header.
func (m *Message) ReplyToMsgID() (int, bool) {
	header, ok := m.ReplyTo.(*tg.MessageReplyHeader)
	if !ok {
		return 0, false
	}

	return header.GetReplyToMsgID()
}

// ReplyMessage fetches and caches the message this one replies to.
//
// The first route asks for the reply target through the reply relationship
// keyed by this message's id, because backends restrict direct cross-bot id
// lookups but permit reply-relationship lookups. When that returns nothing
// (the original got deleted) a direct lookup by the replied-to id runs once
// against the already-resolved input chat. Found or not, the outcome is
// cached permanently; transport failures are logged and swallowed.
func (m *Message) ReplyMessage(ctx context.Context) *Message {
	if m.replyMessage.computed {
		return m.replyMessage.value
	}
	if m.ReplyTo == nil || m.client == nil {
		return nil
	}

	var chat tg.InputPeerClass
	if m.IsChannel() {
		chat = m.GetInputChat(ctx)
	}
	found := m.fetchOne(ctx, chat, &tg.InputMessageReplyTo{ID: m.ID})

	if found == nil {
		if replyToID, ok := m.ReplyToMsgID(); ok {
			var direct tg.InputPeerClass
			if m.IsChannel() {
				direct = m.InputChat()
			}
			found = m.fetchOne(ctx, direct, &tg.InputMessageID{ID: replyToID})
		}
	}

	m.replyMessage.set(found)

	return found
}

func (m *Message) fetchOne(ctx context.Context, peer tg.InputPeerClass, id tg.InputMessageClass) *Message {
	messages, err := m.client.GetMessages(ctx, peer, []tg.InputMessageClass{id})
	if err != nil {
		m.log().WarnContext(ctx, "reply lookup failed", "message_id", m.ID, "error", err)
		return nil
	}
	if len(messages) == 0 {
		return nil
	}

	return messages[0]
}

// reload refetches this message by id to recover sender, chat, via-bot,
// forward, and action-entity state that was missing from the
// construction-time entity table. Best effort: failures are logged and the
// triggering accessor degrades to its unresolved value.
func (m *Message) reload(ctx context.Context) {
	if m.client == nil {
		return
	}

	var chat tg.InputPeerClass
	if m.IsChannel() {
		chat = m.GetInputChat(ctx)
	}

	messages, err := m.client.GetMessages(ctx, chat, []tg.InputMessageClass{&tg.InputMessageID{ID: m.ID}})
	if err != nil {
		m.log().ErrorContext(ctx, "reload message failed", "message_id", m.ID, "error", err)
		return
	}
	if len(messages) == 0 || messages[0] == nil {
		return
	}

	fresh := messages[0]
	m.sender = fresh.sender
	m.inputSender = fresh.inputSender
	m.chat = fresh.chat
	m.inputChat = fresh.inputChat
	m.viaBot = fresh.viaBot
	m.viaInputBot = fresh.viaInputBot
	m.forward = fresh.forward
	m.actionEntities = fresh.actionEntities
}
