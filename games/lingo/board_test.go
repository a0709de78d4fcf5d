package lingo

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestBoardPlace(t *testing.T) {
	fox := Tile{ID: "deck-4", Word: "FOX"}

	tests := []struct {
		name     string
		row, col int
		want     error
	}{
		{name: "top left", row: 0, col: 0},
		{name: "bottom right", row: 4, col: 7},
		{name: "negative row", row: -1, col: 0, want: ErrOutOfBounds},
		{name: "negative col", row: 0, col: -1, want: ErrOutOfBounds},
		{name: "row past edge", row: 5, col: 0, want: ErrOutOfBounds},
		{name: "col past edge", row: 0, col: 8, want: ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)

			b := NewBoard(5, 8)
			err := b.Place(tt.row, tt.col, fox)
			if tt.want != nil {
				is.True(errors.Is(err, tt.want))
				is.Equal(b.Occupied(), 0)
				return
			}

			is.NoErr(err)
			is.True(!b.IsEmptyAt(tt.row, tt.col))
			got, ok := b.At(tt.row, tt.col)
			is.True(ok)
			is.Equal(got, fox)
		})
	}
}

func TestBoardPlaceOccupied(t *testing.T) {
	is := is.New(t)

	b := NewBoard(5, 8)
	is.NoErr(b.Place(2, 3, Tile{ID: "deck-1", Word: "THE"}))

	err := b.Place(2, 3, Tile{ID: "deck-2", Word: "QUICK"})
	is.True(errors.Is(err, ErrCellOccupied))

	got, _ := b.At(2, 3)
	is.Equal(got.ID, "deck-1")
	is.Equal(b.Occupied(), 1)
}

func TestBoardIsEmptyAtOutOfBounds(t *testing.T) {
	is := is.New(t)

	b := NewBoard(5, 8)
	is.True(b.IsEmptyAt(0, 0))
	is.True(!b.IsEmptyAt(5, 0))
	is.True(!b.IsEmptyAt(0, -1))
}

func TestBoardMove(t *testing.T) {
	tests := []struct {
		name                           string
		fromRow, fromCol, toRow, toCol int
		want                           error
	}{
		{name: "to empty cell", fromRow: 0, fromCol: 0, toRow: 1, toCol: 1},
		{name: "onto itself", fromRow: 0, fromCol: 0, toRow: 0, toCol: 0},
		{name: "onto occupied cell", fromRow: 0, fromCol: 0, toRow: 0, toCol: 1, want: ErrCellOccupied},
		{name: "from empty cell", fromRow: 3, fromCol: 3, toRow: 1, toCol: 1, want: ErrCellEmpty},
		{name: "off the board", fromRow: 0, fromCol: 0, toRow: 9, toCol: 0, want: ErrOutOfBounds},
		{name: "from off the board", fromRow: -1, fromCol: 0, toRow: 1, toCol: 1, want: ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)

			b := NewBoard(5, 8)
			is.NoErr(b.Place(0, 0, Tile{ID: "deck-1", Word: "THE"}))
			is.NoErr(b.Place(0, 1, Tile{ID: "deck-2", Word: "QUICK"}))
			before := b.Snapshot()

			err := b.Move(tt.fromRow, tt.fromCol, tt.toRow, tt.toCol)
			is.Equal(b.Occupied(), 2)

			if tt.want != nil {
				is.True(errors.Is(err, tt.want))
				is.Equal(b.Snapshot(), before)
				return
			}

			is.NoErr(err)
			got, ok := b.At(tt.toRow, tt.toCol)
			is.True(ok)
			is.Equal(got.ID, "deck-1")
		})
	}
}

func TestBoardSnapshotIsACopy(t *testing.T) {
	is := is.New(t)

	b := NewBoard(2, 2)
	is.NoErr(b.Place(1, 1, Tile{ID: "deck-1", Word: "THE"}))

	snap := b.Snapshot()
	is.Equal(len(snap), 2)
	is.Equal(len(snap[0]), 2)
	is.True(snap[0][0] == nil)

	snap[1][1].Word = "CHANGED"
	got, _ := b.At(1, 1)
	is.Equal(got.Word, "THE")

	b.Clear()
	is.Equal(b.Occupied(), 0)
}
