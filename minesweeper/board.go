package minesweeper

import (
	"emperror.dev/errors"
)

// ErrInvalidConfiguration is returned when a board cannot be generated
// with the requested size and mine count.
const ErrInvalidConfiguration = errors.Sentinel("invalid board configuration")

// Source supplies uniform random integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Cell is a single square of a fully revealed board.
type Cell struct {
	mine  bool
	count uint8
}

// IsMine reports whether the cell holds a mine.
func (c Cell) IsMine() bool { return c.mine }

// Count is the number of mines around a non-mine cell. It is always 0 for mines.
func (c Cell) Count() int { return int(c.count) }

// Board is a square minesweeper grid with every cell revealed.
type Board struct {
	size  int
	mines int
	cells []Cell
}

// Validate checks that a board of the given size can hold mineCount mines
// and still leave at least one free cell.
func Validate(size, mineCount int) error {
	if size <= 0 {
		return errors.WithDetails(errors.WrapIf(ErrInvalidConfiguration, "size must be positive"), "size", size)
	}
	if mineCount < 0 {
		return errors.WithDetails(errors.WrapIf(ErrInvalidConfiguration, "mine count must not be negative"), "mines", mineCount)
	}
	if mineCount >= size*size {
		return errors.WithDetails(
			errors.WrapIf(ErrInvalidConfiguration, "mine count must be less than the number of cells"),
			"size", size, "mines", mineCount,
		)
	}

	return nil
}

// Generate places mineCount mines on a size×size board using rng and fills
// in the neighbour counts.
func Generate(size, mineCount int, rng Source) (*Board, error) {
	if err := Validate(size, mineCount); err != nil {
		return nil, err
	}

	b := &Board{
		size:  size,
		mines: mineCount,
		cells: make([]Cell, size*size),
	}

	for i := 0; i < mineCount; i++ {
		var x, y int
		for {
			x = rng.IntN(size)
			y = rng.IntN(size)
			if !b.at(x, y).mine {
				break
			}
		}

		*b.at(x, y) = Cell{mine: true}

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if !b.inBounds(nx, ny) {
					continue
				}
				if n := b.at(nx, ny); !n.mine {
					n.count++
				}
			}
		}
	}

	return b, nil
}

func (b *Board) at(x, y int) *Cell {
	return &b.cells[y*b.size+x]
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// Size is the side length of the board.
func (b *Board) Size() int { return b.size }

// MineCount is the number of mines on the board.
func (b *Board) MineCount() int { return b.mines }

// Cell returns the cell at column x, row y. It panics when out of range.
func (b *Board) Cell(x, y int) Cell {
	if !b.inBounds(x, y) {
		panic(errors.Errorf("minesweeper: cell (%d, %d) out of range for size %d", x, y, b.size))
	}
	return *b.at(x, y)
}

// Rows returns a copy of the grid, one slice per row.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.size)
	for y := range rows {
		rows[y] = append([]Cell(nil), b.cells[y*b.size:(y+1)*b.size]...)
	}
	return rows
}
