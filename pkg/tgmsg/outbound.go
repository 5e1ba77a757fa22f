package tgmsg

import (
	"context"
	"fmt"
	"io"
)

// Outbound convenience operations. Each is a thin pass-through to the owning
// client: without one the operation is a no-op with an empty result, while
// client errors propagate verbatim since the caller explicitly asked for the
// side effect.

// Respond sends a new message to this message's chat.
func (m *Message) Respond(ctx context.Context, request SendRequest) (*Message, error) {
	if m.client == nil {
		return nil, nil
	}
	chat := m.GetInputChat(ctx)
	if chat == nil {
		return nil, fmt.Errorf("respond to message %d: %w", m.ID, ErrNoInputChat)
	}

	return m.client.SendMessage(ctx, chat, request)
}

// Reply sends a new message to this message's chat, quoting this message.
func (m *Message) Reply(ctx context.Context, request SendRequest) (*Message, error) {
	if m.client == nil {
		return nil, nil
	}
	chat := m.GetInputChat(ctx)
	if chat == nil {
		return nil, fmt.Errorf("reply to message %d: %w", m.ID, ErrNoInputChat)
	}
	request.ReplyToMsgID = m.ID

	return m.client.SendMessage(ctx, chat, request)
}

// ForwardTo forwards this message to the peer a marked reference denotes.
func (m *Message) ForwardTo(ctx context.Context, target int64) ([]*Message, error) {
	if m.client == nil {
		return nil, nil
	}

	to, err := m.client.InputEntity(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("forward message %d resolve target: %w", m.ID, err)
	}
	from := m.GetInputChat(ctx)
	if from == nil {
		return nil, fmt.Errorf("forward message %d: %w", m.ID, ErrNoInputChat)
	}

	return m.client.ForwardMessages(ctx, to, from, []int{m.ID})
}

// Edit updates this message's content. Forwarded and incoming messages are
// not editable and return empty without touching the client. An unset link
// preview defaults to "on" only when a web preview is already present, and
// unset buttons default to the existing reply markup.
func (m *Message) Edit(ctx context.Context, request EditRequest) (*Message, error) {
	if m.FwdFrom != nil || !m.Out || m.client == nil {
		return nil, nil
	}

	if request.LinkPreview == nil {
		preview := m.WebPreview() != nil
		request.LinkPreview = &preview
	}
	if request.ReplyMarkup == nil {
		request.ReplyMarkup = m.ReplyMarkup
	}
	request.ID = m.ID

	chat := m.GetInputChat(ctx)
	if chat == nil {
		return nil, fmt.Errorf("edit message %d: %w", m.ID, ErrNoInputChat)
	}

	return m.client.EditMessage(ctx, chat, request)
}

// DownloadMedia streams this message's media payload into target, returning
// the number of bytes written. Messages without media or a client write
// nothing.
func (m *Message) DownloadMedia(ctx context.Context, target io.Writer) (int64, error) {
	if m.client == nil || m.Media == nil {
		return 0, nil
	}

	return m.client.DownloadMedia(ctx, m.Media, target)
}
