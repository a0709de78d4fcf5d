/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package lingo

import "errors"

// Rule violations. Handlers wrap these with context; the wrapped text is what
// the offending player sees in an invalid-move notification.
var (
	ErrNotYourTurn      = errors.New("it is not your turn")
	ErrCardNotInHand    = errors.New("that card is not in your hand")
	ErrOutOfBounds      = errors.New("that cell is off the board")
	ErrCellOccupied     = errors.New("that cell is already occupied")
	ErrCellEmpty        = errors.New("there is no card in that cell")
	ErrDeckEmpty        = errors.New("the deck is empty")
	ErrUnknownPlayer    = errors.New("you are not in the game")
	ErrAlreadyConnected = errors.New("that player is already connected")
)

// Decoding failures. These are logged and dropped, never sent to a client.
var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)
