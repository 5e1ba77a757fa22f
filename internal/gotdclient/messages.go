package gotdclient

import (
	"context"
	"fmt"

	"tgmsg/pkg/peers"
	"tgmsg/pkg/tgmsg"

	"github.com/gotd/td/crypto"
	"github.com/gotd/td/telegram/message/unpack"
	"github.com/gotd/td/tg"
)

// GetMessages fetches messages by id and binds them against the entities the
// response carries.
func (c *Client) GetMessages(
	ctx context.Context,
	peer tg.InputPeerClass,
	ids []tg.InputMessageClass,
) ([]*tgmsg.Message, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var (
		result tg.MessagesMessagesClass
		err    error
	)
	if channel, ok := peer.(*tg.InputPeerChannel); ok {
		result, err = c.raw.ChannelsGetMessages(ctx, &tg.ChannelsGetMessagesRequest{
			Channel: &tg.InputChannel{
				ChannelID:  channel.ChannelID,
				AccessHash: channel.AccessHash,
			},
			ID: ids,
		})
	} else {
		result, err = c.raw.MessagesGetMessages(ctx, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}

	return c.bindResult(result, peer)
}

// bindResult converts a raw messages response into bound messages, indexing
// the response entities and merging them into the shared cache.
func (c *Client) bindResult(
	result tg.MessagesMessagesClass,
	inputChat tg.InputPeerClass,
) ([]*tgmsg.Message, error) {
	var (
		rawMessages []tg.MessageClass
		users       []tg.UserClass
		chats       []tg.ChatClass
	)
	switch value := result.(type) {
	case *tg.MessagesMessages:
		rawMessages = value.Messages
		users = value.Users
		chats = value.Chats
	case *tg.MessagesMessagesSlice:
		rawMessages = value.Messages
		users = value.Users
		chats = value.Chats
	case *tg.MessagesChannelMessages:
		rawMessages = value.Messages
		users = value.Users
		chats = value.Chats
	case *tg.MessagesMessagesNotModified:
		return nil, nil
	default:
		return nil, fmt.Errorf("bind messages: unexpected result %T", result)
	}

	table := peers.NewTable(users, chats)
	c.cache.Ingest(users, chats)

	messages := make([]*tgmsg.Message, 0, len(rawMessages))
	for _, raw := range rawMessages {
		var (
			msg *tgmsg.Message
			err error
		)
		switch value := raw.(type) {
		case *tg.Message:
			msg, err = tgmsg.FromRaw(value)
		case *tg.MessageService:
			msg, err = tgmsg.FromService(value)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("bind messages: %w", err)
		}

		options := []tgmsg.BindOption{tgmsg.WithLogger(c.logger)}
		if inputChat != nil {
			options = append(options, tgmsg.WithInputChat(inputChat))
		}
		msg.Bind(c, table, options...)
		messages = append(messages, msg)
	}

	return messages, nil
}

// SendMessage sends a text message and returns its bound representation.
func (c *Client) SendMessage(
	ctx context.Context,
	peer tg.InputPeerClass,
	request tgmsg.SendRequest,
) (*tgmsg.Message, error) {
	randomID, err := crypto.RandInt64(c.rand)
	if err != nil {
		return nil, fmt.Errorf("send message random id: %w", err)
	}

	sendRequest := &tg.MessagesSendMessageRequest{
		Peer:      peer,
		Message:   request.Text,
		Entities:  request.Entities,
		Silent:    request.Silent,
		NoWebpage: request.NoWebpage,
		RandomID:  randomID,
	}
	if request.ReplyToMsgID != 0 {
		sendRequest.ReplyTo = &tg.InputReplyToMessage{
			ReplyToMsgID: request.ReplyToMsgID,
		}
	}

	updates, err := c.raw.MessagesSendMessage(ctx, sendRequest)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	return c.messageFromUpdates(ctx, peer, updates)
}

// EditMessage edits a message and returns the fresh bound representation.
func (c *Client) EditMessage(
	ctx context.Context,
	peer tg.InputPeerClass,
	request tgmsg.EditRequest,
) (*tgmsg.Message, error) {
	editRequest := &tg.MessagesEditMessageRequest{
		Peer:        peer,
		ID:          request.ID,
		Message:     request.Text,
		Entities:    request.Entities,
		ReplyMarkup: request.ReplyMarkup,
	}
	if request.LinkPreview != nil {
		editRequest.NoWebpage = !*request.LinkPreview
	}

	updates, err := c.raw.MessagesEditMessage(ctx, editRequest)
	if err != nil {
		return nil, fmt.Errorf("edit message: %w", err)
	}

	return c.messageFromUpdates(ctx, peer, updates)
}

// ForwardMessages forwards messages by id and returns the bound copies.
func (c *Client) ForwardMessages(
	ctx context.Context,
	to tg.InputPeerClass,
	from tg.InputPeerClass,
	ids []int,
) ([]*tgmsg.Message, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	randomIDs := make([]int64, 0, len(ids))
	for range ids {
		randomID, err := crypto.RandInt64(c.rand)
		if err != nil {
			return nil, fmt.Errorf("forward messages random id: %w", err)
		}
		randomIDs = append(randomIDs, randomID)
	}

	updates, err := c.raw.MessagesForwardMessages(ctx, &tg.MessagesForwardMessagesRequest{
		FromPeer: from,
		ToPeer:   to,
		ID:       ids,
		RandomID: randomIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("forward messages: %w", err)
	}

	return c.messagesFromUpdates(ctx, to, updates)
}

// messageFromUpdates extracts the affected message from an updates envelope.
// When the envelope carries no full message body, the message is refetched
// by id.
func (c *Client) messageFromUpdates(
	ctx context.Context,
	peer tg.InputPeerClass,
	updates tg.UpdatesClass,
) (*tgmsg.Message, error) {
	messages, err := c.messagesFromUpdates(ctx, peer, updates)
	if err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		return messages[0], nil
	}

	messageID, err := unpack.MessageID(updates, nil)
	if err != nil {
		return nil, fmt.Errorf("extract message id: %w", err)
	}

	fetched, err := c.GetMessages(ctx, peer, []tg.InputMessageClass{
		&tg.InputMessageID{ID: messageID},
	})
	if err != nil {
		return nil, err
	}
	if len(fetched) == 0 {
		return nil, fmt.Errorf("refetch message %d: not found", messageID)
	}

	return fetched[0], nil
}

// messagesFromUpdates collects the full message bodies carried by an updates
// envelope, in envelope order.
func (c *Client) messagesFromUpdates(
	ctx context.Context,
	peer tg.InputPeerClass,
	updates tg.UpdatesClass,
) ([]*tgmsg.Message, error) {
	var (
		inner []tg.UpdateClass
		users []tg.UserClass
		chats []tg.ChatClass
	)
	switch value := updates.(type) {
	case *tg.Updates:
		inner = value.Updates
		users = value.Users
		chats = value.Chats
	case *tg.UpdatesCombined:
		inner = value.Updates
		users = value.Users
		chats = value.Chats
	default:
		return nil, nil
	}

	table := peers.NewTable(users, chats)
	c.cache.Ingest(users, chats)

	var messages []*tgmsg.Message
	for _, update := range inner {
		var raw tg.MessageClass
		switch value := update.(type) {
		case *tg.UpdateNewMessage:
			raw = value.Message
		case *tg.UpdateNewChannelMessage:
			raw = value.Message
		case *tg.UpdateEditMessage:
			raw = value.Message
		case *tg.UpdateEditChannelMessage:
			raw = value.Message
		default:
			continue
		}

		var (
			msg *tgmsg.Message
			err error
		)
		switch value := raw.(type) {
		case *tg.Message:
			msg, err = tgmsg.FromRaw(value)
		case *tg.MessageService:
			msg, err = tgmsg.FromService(value)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("bind update message: %w", err)
		}

		options := []tgmsg.BindOption{tgmsg.WithLogger(c.logger)}
		if peer != nil {
			options = append(options, tgmsg.WithInputChat(peer))
		}
		msg.Bind(c, table, options...)
		messages = append(messages, msg)
	}

	return messages, nil
}
