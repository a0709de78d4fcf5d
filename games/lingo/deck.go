/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package lingo

import (
	"fmt"

	"lukechampine.com/frand"
)

// ShuffleFunc permutes n elements through swap. frand.Shuffle satisfies it.
type ShuffleFunc func(n int, swap func(i, j int))

// Deck is the face-down pile tiles are dealt and drawn from. The top of the
// deck is the end of the slice.
type Deck struct {
	tiles   []Tile
	shuffle ShuffleFunc
}

// NewDeck builds a deck from words and shuffles it. A nil shuffle uses frand.
func NewDeck(words []string, shuffle ShuffleFunc) *Deck {
	if shuffle == nil {
		shuffle = frand.Shuffle
	}

	d := &Deck{shuffle: shuffle}
	d.Build(words)
	d.Shuffle()

	return d
}

// Build replaces the deck contents with one tile per word, in order, with ids
// of the form deck-<n> counting from 1.
func (d *Deck) Build(words []string) {
	d.tiles = make([]Tile, len(words))
	for i, w := range words {
		d.tiles[i] = Tile{
			ID:   fmt.Sprintf("deck-%d", i+1),
			Word: w,
		}
	}
}

// Shuffle applies a uniform random permutation (Fisher-Yates).
func (d *Deck) Shuffle() {
	d.shuffle(len(d.tiles), func(i, j int) {
		d.tiles[i], d.tiles[j] = d.tiles[j], d.tiles[i]
	})
}

// Draw removes and returns the top tile.
func (d *Deck) Draw() (Tile, error) {
	n := len(d.tiles)
	if n == 0 {
		return Tile{}, ErrDeckEmpty
	}

	t := d.tiles[n-1]
	d.tiles = d.tiles[:n-1]

	return t, nil
}

// Deal draws up to n tiles. A short deck deals what it has.
func (d *Deck) Deal(n int) []Tile {
	hand := make([]Tile, 0, n)
	for range n {
		t, err := d.Draw()
		if err != nil {
			break
		}
		hand = append(hand, t)
	}

	return hand
}

// Return puts tiles back into the deck and reshuffles it.
func (d *Deck) Return(tiles ...Tile) {
	if len(tiles) == 0 {
		return
	}

	d.tiles = append(d.tiles, tiles...)
	d.Shuffle()
}

// Remaining reports how many tiles are left to draw.
func (d *Deck) Remaining() int {
	return len(d.tiles)
}
