package tgmsg

import "github.com/gotd/td/tg"

// TextCodec converts between the protocol text representation (raw text plus
// entity spans) and a single rendered form such as markdown or HTML.
//
// The codec is supplied by the owning client; this package never implements
// markup itself.
type TextCodec interface {
	// Render produces the display form of raw text and its entity spans.
	Render(raw string, entities []tg.MessageEntityClass) string
	// Parse decomposes display text into raw text and entity spans.
	Parse(text string) (raw string, entities []tg.MessageEntityClass)
}
