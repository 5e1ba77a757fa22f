package tgmsg

import "errors"

var (
	// ErrInvalidMessageID indicates construction with a missing or
	// non-positive message id.
	ErrInvalidMessageID = errors.New("tgmsg: invalid message id")
	// ErrNoInputChat indicates an outbound operation could not resolve an
	// input reference for its target chat.
	ErrNoInputChat = errors.New("tgmsg: input chat unavailable")
)
