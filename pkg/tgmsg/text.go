package tgmsg

import (
	"unicode/utf16"

	"github.com/gotd/td/tg"
)

// Text returns the display form of the message body.
//
// With a bound client that carries a codec, the first read renders raw text
// plus entity spans and caches the result for the message's lifetime; later
// entity mutations do not re-render unless the raw text is reset. Without a
// client or codec the raw text is returned uncached.
func (m *Message) Text() string {
	if m.displayText.computed {
		return m.displayText.value
	}
	if m.client != nil {
		if codec := m.client.Codec(); codec != nil {
			m.displayText.set(codec.Render(m.Message, m.Entities))
			return m.displayText.value
		}
	}

	return m.Message
}

// SetText replaces the message body from display text. With a codec the raw
// text and entity spans are recomputed by parsing; without one the raw text
// is set verbatim and the spans cleared. The display cache always reflects
// the exact input afterwards.
func (m *Message) SetText(value string) {
	var codec TextCodec
	if m.client != nil {
		codec = m.client.Codec()
	}

	if codec != nil {
		m.Message, m.Entities = codec.Parse(value)
	} else {
		m.Message = value
		m.Entities = nil
	}
	m.displayText.set(value)
}

// RawText returns the protocol text representation.
func (m *Message) RawText() string {
	return m.Message
}

// SetRawText replaces the protocol text, clears the entity spans, and resets
// the display cache so the next Text read recomputes from the new raw text,
// honoring a codec if one is attached by then.
func (m *Message) SetRawText(value string) {
	m.Message = value
	m.Entities = nil
	m.displayText.reset()
}

// EntityText pairs one markup span with the substring it covers.
type EntityText struct {
	Entity tg.MessageEntityClass
	Text   string
}

// EntitiesText returns the message's markup spans zipped with the text they
// cover, optionally filtered. Span offsets are UTF-16 units, per protocol.
func (m *Message) EntitiesText(filter func(tg.MessageEntityClass) bool) []EntityText {
	if len(m.Entities) == 0 {
		return nil
	}

	units := utf16.Encode([]rune(m.Message))
	out := make([]EntityText, 0, len(m.Entities))
	for _, entity := range m.Entities {
		if entity == nil {
			continue
		}
		if filter != nil && !filter(entity) {
			continue
		}

		start := entity.GetOffset()
		end := start + entity.GetLength()
		if start < 0 || end < start || end > len(units) {
			continue
		}
		out = append(out, EntityText{
			Entity: entity,
			Text:   string(utf16.Decode(units[start:end])),
		})
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
