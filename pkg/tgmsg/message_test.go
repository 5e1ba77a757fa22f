package tgmsg

import (
	"context"
	"errors"
	"testing"

	"tgmsg/pkg/peers"

	"github.com/gotd/td/tg"
)

func TestFromRawRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := FromRaw(nil); err == nil {
		t.Fatal("nil message accepted")
	}

	for _, id := range []int{0, -5} {
		_, err := FromRaw(&tg.Message{ID: id})
		if !errors.Is(err, ErrInvalidMessageID) {
			t.Fatalf("id %d: error = %v, want ErrInvalidMessageID", id, err)
		}
	}

	if _, err := FromService(nil); err == nil {
		t.Fatal("nil service message accepted")
	}
	if _, err := FromService(&tg.MessageService{ID: 0}); !errors.Is(err, ErrInvalidMessageID) {
		t.Fatal("zero service id accepted")
	}
}

func TestFromRawCopiesProtocolFields(t *testing.T) {
	t.Parallel()

	raw := &tg.Message{
		ID:      5,
		PeerID:  &tg.PeerChat{ChatID: 10},
		Date:    1700000000,
		Out:     true,
		Silent:  true,
		Pinned:  true,
		Message: "hello",
	}
	raw.SetFromID(&tg.PeerUser{UserID: 7})
	raw.SetViaBotID(90)
	raw.SetViews(3)
	raw.SetEditDate(1700000100)
	raw.SetGroupedID(12345)

	m := mustFromRaw(t, raw)

	if m.ID != 5 || m.Date != 1700000000 || !m.Out || !m.Silent || !m.Pinned {
		t.Fatalf("flags not copied: %+v", m)
	}
	if m.Message != "hello" {
		t.Fatalf("message text = %q, want %q", m.Message, "hello")
	}
	if m.ViaBotID != 90 || m.Views != 3 || m.EditDate != 1700000100 || m.GroupedID != 12345 {
		t.Fatalf("optional fields not copied: %+v", m)
	}
	if _, ok := m.FromID.(*tg.PeerUser); !ok {
		t.Fatalf("from reference = %T, want *tg.PeerUser", m.FromID)
	}
}

func TestFromRawNormalizesEmptyMedia(t *testing.T) {
	t.Parallel()

	raw := &tg.Message{ID: 5, PeerID: &tg.PeerUser{UserID: 7}}
	raw.SetMedia(&tg.MessageMediaEmpty{})

	m := mustFromRaw(t, raw)
	if m.Media != nil {
		t.Fatalf("empty media sentinel kept: %T", m.Media)
	}

	raw = &tg.Message{ID: 6, PeerID: &tg.PeerUser{UserID: 7}}
	raw.SetMedia(&tg.MessageMediaContact{PhoneNumber: "123"})

	m = mustFromRaw(t, raw)
	if _, ok := m.Media.(*tg.MessageMediaContact); !ok {
		t.Fatalf("media = %T, want *tg.MessageMediaContact", m.Media)
	}
}

func TestSenderDerivation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    *tg.Message
		want   int64
		wantOK bool
	}{
		{
			name: "explicit from reference wins",
			raw: func() *tg.Message {
				raw := &tg.Message{ID: 1, Out: true, Post: true, PeerID: &tg.PeerChannel{ChannelID: 20}}
				raw.SetFromID(&tg.PeerUser{UserID: 7})
				return raw
			}(),
			want:   7,
			wantOK: true,
		},
		{
			name:   "channel post attributes the channel",
			raw:    &tg.Message{ID: 1, Post: true, PeerID: &tg.PeerChannel{ChannelID: 20}},
			want:   -1000000000020,
			wantOK: true,
		},
		{
			name:   "incoming private attributes the peer",
			raw:    &tg.Message{ID: 1, PeerID: &tg.PeerUser{UserID: 7}},
			want:   7,
			wantOK: true,
		},
		{
			name:   "outgoing private has no derived sender",
			raw:    &tg.Message{ID: 1, Out: true, PeerID: &tg.PeerUser{UserID: 7}},
			wantOK: false,
		},
		{
			name:   "anonymous group message has no sender",
			raw:    &tg.Message{ID: 1, PeerID: &tg.PeerChat{ChatID: 10}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := mustFromRaw(t, tt.raw)
			got, ok := m.SenderID()
			if ok != tt.wantOK {
				t.Fatalf("SenderID ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("SenderID = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBindResolvesEntityGraph(t *testing.T) {
	t.Parallel()

	sender := &tg.User{ID: 7}
	sender.SetFirstName("Ann")
	sender.SetAccessHash(77)
	bot := &tg.User{ID: 90}
	bot.SetFirstName("bot")
	bot.SetAccessHash(99)
	bot.SetBot(true)
	chat := &tg.Chat{ID: 10, Title: "group"}
	table := peers.NewTable([]tg.UserClass{sender, bot}, []tg.ChatClass{chat})

	raw := &tg.Message{ID: 5, PeerID: &tg.PeerChat{ChatID: 10}}
	raw.SetFromID(&tg.PeerUser{UserID: 7})
	raw.SetViaBotID(90)

	m := mustFromRaw(t, raw)
	m.Bind(newFakeClient(), table)

	if m.Sender() == nil || m.Sender().DisplayName() != "Ann" {
		t.Fatalf("sender = %v, want Ann", m.Sender())
	}
	if m.InputSender() == nil {
		t.Fatal("input sender not resolved")
	}
	if m.Chat() == nil || m.Chat().DisplayName() != "group" {
		t.Fatalf("chat = %v, want group", m.Chat())
	}
	if m.InputChat() == nil {
		t.Fatal("input chat not resolved")
	}
	if m.ViaBot() == nil || m.ViaBot().DisplayName() != "bot" {
		t.Fatalf("via bot = %v, want bot", m.ViaBot())
	}
	if m.ViaInputBot() == nil {
		t.Fatal("via bot input not resolved")
	}
}

func TestBindFallsBackToClientCache(t *testing.T) {
	t.Parallel()

	cachedSender := &tg.User{ID: 7}
	cachedSender.SetFirstName("cached")
	cachedSender.SetAccessHash(77)

	client := newFakeClient()
	client.cache.Ingest([]tg.UserClass{cachedSender}, nil)

	raw := &tg.Message{ID: 5, PeerID: &tg.PeerChat{ChatID: 10}}
	raw.SetFromID(&tg.PeerUser{UserID: 7})

	m := mustFromRaw(t, raw)
	m.Bind(client, peers.NewTable(nil, nil))

	if m.Sender() == nil || m.Sender().DisplayName() != "cached" {
		t.Fatalf("sender = %v, want cache fallback", m.Sender())
	}
}

func TestBindInputChatOverride(t *testing.T) {
	t.Parallel()

	chat := &tg.Chat{ID: 10, Title: "group"}
	table := peers.NewTable(nil, []tg.ChatClass{chat})
	override := &tg.InputPeerChat{ChatID: 999}

	m := mustFromRaw(t, &tg.Message{ID: 5, PeerID: &tg.PeerChat{ChatID: 10}})
	m.Bind(newFakeClient(), table, WithInputChat(override))

	got, ok := m.InputChat().(*tg.InputPeerChat)
	if !ok || got.ChatID != 999 {
		t.Fatalf("input chat = %v, want override", m.InputChat())
	}
}

func TestToID(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.selfID = 555

	incoming := mustFromRaw(t, &tg.Message{ID: 1, PeerID: &tg.PeerUser{UserID: 7}})
	incoming.Bind(client, nil)
	if got, ok := incoming.ToID().(*tg.PeerUser); !ok || got.UserID != 555 {
		t.Fatalf("incoming private ToID = %v, want self peer", incoming.ToID())
	}

	outgoing := mustFromRaw(t, &tg.Message{ID: 2, Out: true, PeerID: &tg.PeerUser{UserID: 7}})
	outgoing.Bind(client, nil)
	if got, ok := outgoing.ToID().(*tg.PeerUser); !ok || got.UserID != 7 {
		t.Fatalf("outgoing private ToID = %v, want conversation peer", outgoing.ToID())
	}

	group := mustFromRaw(t, &tg.Message{ID: 3, PeerID: &tg.PeerChat{ChatID: 10}})
	group.Bind(client, nil)
	if got, ok := group.ToID().(*tg.PeerChat); !ok || got.ChatID != 10 {
		t.Fatalf("group ToID = %v, want conversation peer", group.ToID())
	}
}

func TestButtonCount(t *testing.T) {
	t.Parallel()

	rows := []tg.KeyboardButtonRow{
		{Buttons: []tg.KeyboardButtonClass{
			&tg.KeyboardButton{Text: "a"},
			&tg.KeyboardButton{Text: "b"},
		}},
		{Buttons: []tg.KeyboardButtonClass{
			&tg.KeyboardButton{Text: "c"},
		}},
	}

	tests := []struct {
		name   string
		markup tg.ReplyMarkupClass
		want   int
	}{
		{name: "no markup", markup: nil, want: 0},
		{name: "inline markup", markup: &tg.ReplyInlineMarkup{Rows: rows}, want: 3},
		{name: "keyboard markup", markup: &tg.ReplyKeyboardMarkup{Rows: rows}, want: 3},
		{name: "hide markup", markup: &tg.ReplyKeyboardHide{}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := mustFromRaw(t, &tg.Message{ID: 1, PeerID: &tg.PeerUser{UserID: 7}})
			m.ReplyMarkup = tt.markup
			if got := m.ButtonCount(); got != tt.want {
				t.Fatalf("button count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChatKindPredicates(t *testing.T) {
	t.Parallel()

	private := mustFromRaw(t, &tg.Message{ID: 1, PeerID: &tg.PeerUser{UserID: 7}})
	if !private.IsPrivate() || private.IsGroup() || private.IsChannel() {
		t.Fatal("private message misclassified")
	}

	group := mustFromRaw(t, &tg.Message{ID: 1, PeerID: &tg.PeerChat{ChatID: 10}})
	if !group.IsGroup() || group.IsPrivate() || group.IsChannel() {
		t.Fatal("basic group misclassified")
	}

	megagroup := mustFromRaw(t, &tg.Message{ID: 1, PeerID: &tg.PeerChannel{ChannelID: 20}})
	if !megagroup.IsChannel() || !megagroup.IsGroup() {
		t.Fatal("megagroup message misclassified")
	}

	post := mustFromRaw(t, &tg.Message{ID: 1, Post: true, PeerID: &tg.PeerChannel{ChannelID: 20}})
	if !post.IsChannel() || post.IsGroup() {
		t.Fatal("broadcast post misclassified")
	}
}

func TestGetSenderReloadsOnce(t *testing.T) {
	t.Parallel()

	sender := &tg.User{ID: 7}
	sender.SetFirstName("Ann")
	sender.SetAccessHash(77)

	client := newFakeClient()

	fresh := mustFromRaw(t, func() *tg.Message {
		raw := &tg.Message{ID: 5, PeerID: &tg.PeerChat{ChatID: 10}}
		raw.SetFromID(&tg.PeerUser{UserID: 7})
		return raw
	}())
	fresh.Bind(client, peers.NewTable([]tg.UserClass{sender}, nil))
	client.getResults = [][]*Message{{fresh}}

	raw := &tg.Message{ID: 5, PeerID: &tg.PeerChat{ChatID: 10}}
	raw.SetFromID(&tg.PeerUser{UserID: 7})
	m := mustFromRaw(t, raw)
	m.Bind(client, peers.NewTable(nil, nil))

	if m.Sender() != nil {
		t.Fatal("sender resolved without table entry")
	}

	got := m.GetSender(context.Background())
	if got == nil || got.DisplayName() != "Ann" {
		t.Fatalf("reloaded sender = %v, want Ann", got)
	}
	if len(client.getCalls) != 1 {
		t.Fatalf("reload call count = %d, want 1", len(client.getCalls))
	}

	m.GetSender(context.Background())
	if len(client.getCalls) != 1 {
		t.Fatalf("second access refetched: call count = %d", len(client.getCalls))
	}
}

func TestGetInputChatResolvesOnDemand(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.inputPeers[-10] = &tg.InputPeerChat{ChatID: 10}

	m := mustFromRaw(t, &tg.Message{ID: 5, PeerID: &tg.PeerChat{ChatID: 10}})
	m.Bind(client, nil)

	if m.InputChat() != nil {
		t.Fatal("input chat resolved without table entry")
	}

	got, ok := m.GetInputChat(context.Background()).(*tg.InputPeerChat)
	if !ok || got.ChatID != 10 {
		t.Fatalf("on-demand input chat = %v, want chat 10", got)
	}
}
