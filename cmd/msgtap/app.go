// Command msgtap fetches one message from Telegram and prints the resolved
// views the tgmsg package derives from it.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"tgmsg/internal/gotdclient"
	"tgmsg/pkg/peers"
	"tgmsg/pkg/tgmsg"

	"github.com/gotd/td/session"
	gotdtelegram "github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/jessevdk/go-flags"
	"github.com/lmittmann/tint"
)

const authStatusTimeout = 30 * time.Second

var opts struct {
	Config    string `long:"config" env:"MSGTAP_CONFIG_FILE" description:"path to yaml config file"`
	Peer      string `long:"peer" description:"username of the chat to fetch from (overrides config)"`
	MessageID int    `long:"message-id" description:"message id to fetch (overrides config)"`
}

func run() error {
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}

		return fmt.Errorf("parse flags: %w", err)
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}
	if opts.Peer != "" {
		cfg.Peer = opts.Peer
	}
	if opts.MessageID != 0 {
		cfg.MessageID = opts.MessageID
	}

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))

	sessionStorage, err := newSessionStorage(cfg.SessionFile)
	if err != nil {
		return err
	}

	client := gotdtelegram.NewClient(cfg.APIID, cfg.APIHash, gotdtelegram.Options{
		SessionStorage: sessionStorage,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return client.Run(ctx, func(runCtx context.Context) error {
		statusCtx, cancel := context.WithTimeout(runCtx, authStatusTimeout)
		defer cancel()

		status, err := client.Auth().Status(statusCtx)
		if err != nil {
			return fmt.Errorf("check auth status: %w", err)
		}
		if !status.Authorized {
			return fmt.Errorf("session %s is not authorized", cfg.SessionFile)
		}

		self, err := client.Self(runCtx)
		if err != nil {
			return fmt.Errorf("fetch self: %w", err)
		}

		tap, err := gotdclient.New(client.API(),
			gotdclient.WithSelfID(self.ID),
			gotdclient.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("new gotd client: %w", err)
		}
		tap.EntityCache().Ingest([]tg.UserClass{self}, nil)

		return tapMessage(runCtx, logger, tap, cfg)
	})
}

func tapMessage(ctx context.Context, logger *slog.Logger, tap *gotdclient.Client, cfg appConfig) error {
	var (
		inputPeer tg.InputPeerClass
		err       error
	)
	if cfg.Peer != "" {
		inputPeer, err = resolvePeer(ctx, tap, cfg.Peer)
		if err != nil {
			return err
		}
	}

	messages, err := tap.GetMessages(ctx, inputPeer, []tg.InputMessageClass{
		&tg.InputMessageID{ID: cfg.MessageID},
	})
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("message %d not found", cfg.MessageID)
	}

	printMessage(logger, messages[0])

	return nil
}

// resolvePeer resolves a username into an input peer, feeding the resolved
// entities into the client cache.
func resolvePeer(ctx context.Context, tap *gotdclient.Client, username string) (tg.InputPeerClass, error) {
	resolved, err := tap.Raw().ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: strings.TrimPrefix(username, "@"),
	})
	if err != nil {
		return nil, fmt.Errorf("resolve peer %s: %w", username, err)
	}
	tap.EntityCache().Ingest(resolved.Users, resolved.Chats)

	marked, ok := peers.ID(resolved.Peer)
	if !ok {
		return nil, fmt.Errorf("resolve peer %s: empty peer in response", username)
	}

	return tap.InputEntity(ctx, marked)
}

func printMessage(logger *slog.Logger, msg *tgmsg.Message) {
	attrs := []any{"id", msg.ID}
	if chatID, ok := msg.ChatID(); ok {
		attrs = append(attrs, "chat_id", chatID)
	}
	if senderID, ok := msg.SenderID(); ok {
		attrs = append(attrs, "sender_id", senderID)
	}
	if sender := msg.Sender(); sender != nil {
		attrs = append(attrs, "sender", sender.DisplayName())
	}
	if chat := msg.Chat(); chat != nil {
		attrs = append(attrs, "chat", chat.DisplayName())
	}
	attrs = append(attrs,
		"out", msg.Out,
		"private", msg.IsPrivate(),
		"group", msg.IsGroup(),
		"channel", msg.IsChannel(),
		"reply", msg.IsReply(),
	)
	if msg.Action != nil {
		attrs = append(attrs, "action", fmt.Sprintf("%T", msg.Action))
	}
	logger.Info("message", attrs...)

	if forward := msg.Forward(); forward != nil {
		forwardAttrs := []any{"date", forward.Date()}
		if name := forward.FromName(); name != "" {
			forwardAttrs = append(forwardAttrs, "from_name", name)
		}
		if senderID, ok := forward.SenderID(); ok {
			forwardAttrs = append(forwardAttrs, "sender_id", senderID)
		}
		if post, ok := forward.ChannelPost(); ok {
			forwardAttrs = append(forwardAttrs, "channel_post", post)
		}
		logger.Info("forward header", forwardAttrs...)
	}

	logger.Info("media",
		"photo", msg.Photo() != nil,
		"document", msg.Document() != nil,
		"audio", msg.Audio() != nil,
		"voice", msg.Voice() != nil,
		"video", msg.Video() != nil,
		"video_note", msg.VideoNote() != nil,
		"gif", msg.GIF() != nil,
		"sticker", msg.Sticker() != nil,
		"web_preview", msg.WebPreview() != nil,
		"geo", msg.Geo() != nil,
		"buttons", msg.ButtonCount(),
	)

	if text := msg.Text(); text != "" {
		fmt.Println(text)
	}
}

func newSessionStorage(path string) (*session.FileStorage, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("empty session file path")
	}

	absPath, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve session file path %s: %w", trimmed, err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	return &session.FileStorage{Path: absPath}, nil
}
