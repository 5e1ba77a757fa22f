package tgmsg

import "github.com/gotd/td/tg"

// Media and action classification. Every accessor is a pure projection of
// the raw tagged unions; an unmatched variant yields nil, never an error.

// Photo returns the message's photo: the media photo when present, the new
// chat photo for an edit-photo service action, or the web preview's photo.
func (m *Message) Photo() *tg.Photo {
	if media, ok := m.Media.(*tg.MessageMediaPhoto); ok {
		photo, ok := media.GetPhoto()
		if !ok {
			return nil
		}
		typed, ok := photo.(*tg.Photo)
		if !ok {
			return nil
		}
		return typed
	}
	if action, ok := m.Action.(*tg.MessageActionChatEditPhoto); ok {
		typed, ok := action.Photo.(*tg.Photo)
		if !ok {
			return nil
		}
		return typed
	}
	if page := m.WebPreview(); page != nil {
		if photo, ok := page.GetPhoto(); ok {
			if typed, ok := photo.(*tg.Photo); ok {
				return typed
			}
		}
	}

	return nil
}

// Document returns the message's document, from the media payload or the web
// preview.
func (m *Message) Document() *tg.Document {
	if media, ok := m.Media.(*tg.MessageMediaDocument); ok {
		document, ok := media.GetDocument()
		if !ok {
			return nil
		}
		typed, ok := document.(*tg.Document)
		if !ok {
			return nil
		}
		return typed
	}
	if page := m.WebPreview(); page != nil {
		if document, ok := page.GetDocument(); ok {
			if typed, ok := document.(*tg.Document); ok {
				return typed
			}
		}
	}

	return nil
}

// WebPreview returns the concrete web page attached to the message, or nil
// while the preview is empty or still pending server side.
func (m *Message) WebPreview() *tg.WebPage {
	media, ok := m.Media.(*tg.MessageMediaWebPage)
	if !ok {
		return nil
	}
	page, ok := media.Webpage.(*tg.WebPage)
	if !ok {
		return nil
	}

	return page
}

// Audio returns the document when it is a non-voice audio file.
func (m *Message) Audio() *tg.Document {
	return m.audioDocument(false)
}

// Voice returns the document when it is a voice note.
func (m *Message) Voice() *tg.Document {
	return m.audioDocument(true)
}

// audioDocument scans for the first audio attribute. That attribute alone
// decides: when its voice flag disagrees with the request the scan stops
// without a match instead of continuing to later attributes.
func (m *Message) audioDocument(wantVoice bool) *tg.Document {
	doc := m.Document()
	if doc == nil {
		return nil
	}
	for _, attribute := range doc.Attributes {
		typed, ok := attribute.(*tg.DocumentAttributeAudio)
		if !ok {
			continue
		}
		if typed.Voice == wantVoice {
			return doc
		}
		return nil
	}

	return nil
}

// Video returns the document when it carries a video attribute.
func (m *Message) Video() *tg.Document {
	doc := m.Document()
	if doc == nil {
		return nil
	}
	for _, attribute := range doc.Attributes {
		if _, ok := attribute.(*tg.DocumentAttributeVideo); ok {
			return doc
		}
	}

	return nil
}

// VideoNote returns the document when its first video attribute marks a
// round message. As with audioDocument, the first video attribute decides.
func (m *Message) VideoNote() *tg.Document {
	doc := m.Document()
	if doc == nil {
		return nil
	}
	for _, attribute := range doc.Attributes {
		typed, ok := attribute.(*tg.DocumentAttributeVideo)
		if !ok {
			continue
		}
		if typed.RoundMessage {
			return doc
		}
		return nil
	}

	return nil
}

// GIF returns the document when it carries the animated attribute.
func (m *Message) GIF() *tg.Document {
	doc := m.Document()
	if doc == nil {
		return nil
	}
	for _, attribute := range doc.Attributes {
		if _, ok := attribute.(*tg.DocumentAttributeAnimated); ok {
			return doc
		}
	}

	return nil
}

// Sticker returns the document when it carries a sticker attribute.
func (m *Message) Sticker() *tg.Document {
	doc := m.Document()
	if doc == nil {
		return nil
	}
	for _, attribute := range doc.Attributes {
		if _, ok := attribute.(*tg.DocumentAttributeSticker); ok {
			return doc
		}
	}

	return nil
}

// Contact returns the shared-contact payload, or nil.
func (m *Message) Contact() *tg.MessageMediaContact {
	media, ok := m.Media.(*tg.MessageMediaContact)
	if !ok {
		return nil
	}

	return media
}

// Game returns the game payload, or nil.
func (m *Message) Game() *tg.Game {
	media, ok := m.Media.(*tg.MessageMediaGame)
	if !ok {
		return nil
	}
	game := media.Game

	return &game
}

// Invoice returns the invoice payload, or nil.
func (m *Message) Invoice() *tg.MessageMediaInvoice {
	media, ok := m.Media.(*tg.MessageMediaInvoice)
	if !ok {
		return nil
	}

	return media
}

// Poll returns the poll payload, or nil.
func (m *Message) Poll() *tg.MessageMediaPoll {
	media, ok := m.Media.(*tg.MessageMediaPoll)
	if !ok {
		return nil
	}

	return media
}

// Venue returns the venue payload, or nil.
func (m *Message) Venue() *tg.MessageMediaVenue {
	media, ok := m.Media.(*tg.MessageMediaVenue)
	if !ok {
		return nil
	}

	return media
}

// Dice returns the dice payload, or nil.
func (m *Message) Dice() *tg.MessageMediaDice {
	media, ok := m.Media.(*tg.MessageMediaDice)
	if !ok {
		return nil
	}

	return media
}

// Geo returns the geo point from plain, live, or venue location media.
func (m *Message) Geo() tg.GeoPointClass {
	switch media := m.Media.(type) {
	case *tg.MessageMediaGeo:
		return media.Geo
	case *tg.MessageMediaGeoLive:
		return media.Geo
	case *tg.MessageMediaVenue:
		return media.Geo
	default:
		return nil
	}
}
