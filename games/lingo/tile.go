/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package lingo holds the authoritative state for a word-tile board game:
// the deck, the board, the roster of connected players and the chat log.
//
// A Session is not safe for concurrent use. It is meant to be owned by a
// single goroutine that feeds it one event at a time and fans out the
// Deliveries each handler returns.
package lingo

import "slices"

// Tile is a single word-bearing game piece. Tiles move between the deck,
// player hands and the board, and are never copied into two places at once.
type Tile struct {
	ID   string `json:"id"`
	Word string `json:"word"`
}

var vocabulary = []string{
	"THE", "QUICK", "BROWN", "FOX", "JUMPS", "OVER",
	"LAZY", "DOG", "AND", "CAT", "SLEEPY", "RUNS",
	"A", "IS", "BIG", "RED", "SUN", "MOON",
	"BLUE", "SMALL", "HAPPY", "SAD", "TREE", "BIRD",
	"SINGS", "EATS", "FAST", "SLOW", "HOUSE", "WITH",
}

// Vocabulary returns the words a standard deck is built from.
func Vocabulary() []string {
	return slices.Clone(vocabulary)
}
