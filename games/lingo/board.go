/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package lingo

import "fmt"

// Board is a fixed rows x cols grid where each cell holds at most one tile.
type Board struct {
	rows  int
	cols  int
	cells [][]*Tile
}

func NewBoard(rows, cols int) *Board {
	b := &Board{rows: rows, cols: cols}
	b.Clear()

	return b
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Clear empties every cell.
func (b *Board) Clear() {
	b.cells = make([][]*Tile, b.rows)
	for r := range b.cells {
		b.cells[r] = make([]*Tile, b.cols)
	}
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// IsEmptyAt reports whether the cell exists and holds no tile.
func (b *Board) IsEmptyAt(row, col int) bool {
	return b.inBounds(row, col) && b.cells[row][col] == nil
}

// At returns the tile in a cell, if any.
func (b *Board) At(row, col int) (Tile, bool) {
	if !b.inBounds(row, col) || b.cells[row][col] == nil {
		return Tile{}, false
	}

	return *b.cells[row][col], true
}

// Place puts t into an empty cell.
func (b *Board) Place(row, col int, t Tile) error {
	if !b.inBounds(row, col) {
		return fmt.Errorf("row %d, column %d: %w", row, col, ErrOutOfBounds)
	}
	if b.cells[row][col] != nil {
		return fmt.Errorf("row %d, column %d: %w", row, col, ErrCellOccupied)
	}

	b.cells[row][col] = &t

	return nil
}

// Move relocates a tile to an empty cell. Moving onto an occupied cell is
// rejected; there is no swap.
func (b *Board) Move(fromRow, fromCol, toRow, toCol int) error {
	if !b.inBounds(fromRow, fromCol) {
		return fmt.Errorf("from row %d, column %d: %w", fromRow, fromCol, ErrOutOfBounds)
	}
	if !b.inBounds(toRow, toCol) {
		return fmt.Errorf("to row %d, column %d: %w", toRow, toCol, ErrOutOfBounds)
	}
	if b.cells[fromRow][fromCol] == nil {
		return fmt.Errorf("from row %d, column %d: %w", fromRow, fromCol, ErrCellEmpty)
	}
	if fromRow == toRow && fromCol == toCol {
		return nil
	}
	if b.cells[toRow][toCol] != nil {
		return fmt.Errorf("to row %d, column %d: %w", toRow, toCol, ErrCellOccupied)
	}

	b.cells[toRow][toCol] = b.cells[fromRow][fromCol]
	b.cells[fromRow][fromCol] = nil

	return nil
}

// Occupied counts the cells holding a tile.
func (b *Board) Occupied() int {
	n := 0
	for _, row := range b.cells {
		for _, c := range row {
			if c != nil {
				n++
			}
		}
	}

	return n
}

// Snapshot returns a deep copy of the grid, nil for empty cells.
func (b *Board) Snapshot() [][]*Tile {
	out := make([][]*Tile, b.rows)
	for r, row := range b.cells {
		out[r] = make([]*Tile, b.cols)
		for c, t := range row {
			if t != nil {
				cp := *t
				out[r][c] = &cp
			}
		}
	}

	return out
}
