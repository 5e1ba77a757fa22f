// Package gotdclient implements the tgmsg owning-client contract over the
// gotd raw API.
package gotdclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"tgmsg/pkg/peers"
	"tgmsg/pkg/tgmsg"

	"github.com/gotd/td/crypto"
	"github.com/gotd/td/tg"
)

// ErrEntityNotCached indicates an input-entity lookup for a peer that no
// earlier response has delivered.
var ErrEntityNotCached = errors.New("gotdclient: entity not cached")

var _ tgmsg.Client = (*Client)(nil)

// Client is a tgmsg.Client backed by one gotd raw API client.
type Client struct {
	raw    *tg.Client
	rand   io.Reader
	cache  *peers.Cache
	codec  tgmsg.TextCodec
	selfID int64
	logger *slog.Logger
}

// Option mutates client configuration.
type Option func(*Client)

// WithCodec configures the text codec handed to bound messages.
func WithCodec(codec tgmsg.TextCodec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// WithSelfID records the authenticated user's id.
func WithSelfID(id int64) Option {
	return func(c *Client) {
		c.selfID = id
	}
}

// WithLogger configures structured logging for the client and the messages
// it binds.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client over the given raw API handle.
func New(raw *tg.Client, options ...Option) (*Client, error) {
	if raw == nil {
		return nil, fmt.Errorf("new gotd client: nil raw api")
	}

	c := &Client{
		raw:    raw,
		rand:   crypto.DefaultRand(),
		cache:  peers.NewCache(),
		logger: slog.Default(),
	}
	for _, option := range options {
		option(c)
	}

	return c, nil
}

// Raw returns the underlying raw API handle.
func (c *Client) Raw() *tg.Client {
	return c.raw
}

// EntityCache returns the shared entity cache.
func (c *Client) EntityCache() *peers.Cache {
	return c.cache
}

// Codec returns the configured text codec, or nil.
func (c *Client) Codec() tgmsg.TextCodec {
	return c.codec
}

// SelfID returns the authenticated user's id.
func (c *Client) SelfID() int64 {
	return c.selfID
}

// InputEntity resolves a marked reference from the entity cache.
func (c *Client) InputEntity(ctx context.Context, marked int64) (tg.InputPeerClass, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("input entity: %w", err)
	}
	if peer, ok := c.cache.InputPeer(marked); ok {
		return peer, nil
	}

	return nil, fmt.Errorf("input entity %d: %w", marked, ErrEntityNotCached)
}
