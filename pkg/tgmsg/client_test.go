package tgmsg

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"tgmsg/pkg/peers"

	"github.com/gotd/td/tg"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type getCall struct {
	peer tg.InputPeerClass
	id   tg.InputMessageClass
}

// fakeClient scripts GetMessages responses and records every delegated call.
type fakeClient struct {
	cache  *peers.Cache
	codec  TextCodec
	selfID int64

	getResults [][]*Message
	getErr     error
	getCalls   []getCall

	sendPeers    []tg.InputPeerClass
	sendRequests []SendRequest
	editPeers    []tg.InputPeerClass
	editRequests []EditRequest
	forwardTo    []tg.InputPeerClass
	forwardFrom  []tg.InputPeerClass
	forwardIDs   [][]int
	downloaded   []tg.MessageMediaClass
	inputPeers   map[int64]tg.InputPeerClass
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		cache:      peers.NewCache(),
		inputPeers: make(map[int64]tg.InputPeerClass),
	}
}

func (c *fakeClient) GetMessages(
	_ context.Context,
	peer tg.InputPeerClass,
	ids []tg.InputMessageClass,
) ([]*Message, error) {
	var id tg.InputMessageClass
	if len(ids) > 0 {
		id = ids[0]
	}
	c.getCalls = append(c.getCalls, getCall{peer: peer, id: id})

	if c.getErr != nil {
		return nil, c.getErr
	}
	if len(c.getResults) == 0 {
		return nil, nil
	}
	result := c.getResults[0]
	c.getResults = c.getResults[1:]

	return result, nil
}

func (c *fakeClient) SendMessage(
	_ context.Context,
	peer tg.InputPeerClass,
	request SendRequest,
) (*Message, error) {
	c.sendPeers = append(c.sendPeers, peer)
	c.sendRequests = append(c.sendRequests, request)

	return &Message{ID: 1000 + len(c.sendRequests)}, nil
}

func (c *fakeClient) EditMessage(
	_ context.Context,
	peer tg.InputPeerClass,
	request EditRequest,
) (*Message, error) {
	c.editPeers = append(c.editPeers, peer)
	c.editRequests = append(c.editRequests, request)

	return &Message{ID: request.ID}, nil
}

func (c *fakeClient) ForwardMessages(
	_ context.Context,
	to, from tg.InputPeerClass,
	ids []int,
) ([]*Message, error) {
	c.forwardTo = append(c.forwardTo, to)
	c.forwardFrom = append(c.forwardFrom, from)
	c.forwardIDs = append(c.forwardIDs, ids)

	messages := make([]*Message, 0, len(ids))
	for _, id := range ids {
		messages = append(messages, &Message{ID: id})
	}

	return messages, nil
}

func (c *fakeClient) DownloadMedia(
	_ context.Context,
	media tg.MessageMediaClass,
	target io.Writer,
) (int64, error) {
	c.downloaded = append(c.downloaded, media)
	n, err := target.Write([]byte("payload"))

	return int64(n), err
}

func (c *fakeClient) InputEntity(_ context.Context, marked int64) (tg.InputPeerClass, error) {
	if peer, ok := c.inputPeers[marked]; ok {
		return peer, nil
	}

	return nil, fmt.Errorf("fake input entity %d: not found", marked)
}

func (c *fakeClient) EntityCache() *peers.Cache {
	return c.cache
}

func (c *fakeClient) Codec() TextCodec {
	return c.codec
}

func (c *fakeClient) SelfID() int64 {
	return c.selfID
}

// fakeCodec prefixes rendered text so render and parse are observable inverses.
type fakeCodec struct {
	renderCalls int
	parseCalls  int
}

func (c *fakeCodec) Render(raw string, _ []tg.MessageEntityClass) string {
	c.renderCalls++

	return "r:" + raw
}

func (c *fakeCodec) Parse(text string) (string, []tg.MessageEntityClass) {
	c.parseCalls++

	return strings.TrimPrefix(text, "r:"), nil
}

func mustFromRaw(t *testing.T, raw *tg.Message) *Message {
	t.Helper()

	m, err := FromRaw(raw)
	if err != nil {
		t.Fatalf("from raw message failed: %v", err)
	}

	return m
}

func mustFromService(t *testing.T, raw *tg.MessageService) *Message {
	t.Helper()

	m, err := FromService(raw)
	if err != nil {
		t.Fatalf("from service message failed: %v", err)
	}

	return m
}
