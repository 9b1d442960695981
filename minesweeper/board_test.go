package minesweeper

import (
	"math/rand/v2"
	"testing"

	"emperror.dev/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed sequence of draws.
type scriptedSource struct {
	draws []int
	pos   int
}

func (s *scriptedSource) IntN(n int) int {
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	return v % n
}

func countMines(b *Board) int {
	n := 0
	for _, row := range b.Rows() {
		for _, c := range row {
			if c.IsMine() {
				n++
			}
		}
	}
	return n
}

func neighbourMines(b *Board, x, y int) int {
	n := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= b.Size() || ny >= b.Size() {
				continue
			}
			if b.Cell(nx, ny).IsMine() {
				n++
			}
		}
	}
	return n
}

func assertConsistent(t *testing.T, b *Board) {
	t.Helper()
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			c := b.Cell(x, y)
			if c.IsMine() {
				assert.Zero(t, c.Count(), "mine at (%d, %d) carries a count", x, y)
				continue
			}
			assert.Equal(t, neighbourMines(b, x, y), c.Count(), "count at (%d, %d)", x, y)
			assert.GreaterOrEqual(t, c.Count(), 0)
			assert.LessOrEqual(t, c.Count(), 8)
		}
	}
}

func TestGenerateCenterMine(t *testing.T) {
	b, err := Generate(3, 1, &scriptedSource{draws: []int{1}})
	require.NoError(t, err)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := b.Cell(x, y)
			if x == 1 && y == 1 {
				assert.True(t, c.IsMine())
				continue
			}
			assert.False(t, c.IsMine())
			assert.Equal(t, 1, c.Count())
		}
	}
}

func TestGenerateRejectsTakenCells(t *testing.T) {
	// The second mine first redraws (0,0), which is already taken.
	src := &scriptedSource{draws: []int{0, 0, 0, 0, 1, 1}}
	b, err := Generate(2, 2, src)
	require.NoError(t, err)

	assert.True(t, b.Cell(0, 0).IsMine())
	assert.True(t, b.Cell(1, 1).IsMine())
	assert.Equal(t, 2, b.Cell(1, 0).Count())
	assert.Equal(t, 2, b.Cell(0, 1).Count())
	assert.Equal(t, 6, src.pos)
}

func TestGenerateMineOverCountedCell(t *testing.T) {
	// (1,0) is counted by the first mine, then becomes a mine itself.
	b, err := Generate(3, 2, &scriptedSource{draws: []int{0, 0, 1, 0}})
	require.NoError(t, err)

	assert.True(t, b.Cell(1, 0).IsMine())
	assert.Zero(t, b.Cell(1, 0).Count())
	assertConsistent(t, b)
}

func TestGenerateInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name        string
		size, mines int
	}{
		{"full board", 2, 4},
		{"overfull board", 3, 10},
		{"zero size", 0, 0},
		{"negative size", -3, 1},
		{"negative mines", 5, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Generate(tc.size, tc.mines, rand.New(rand.NewPCG(1, 2)))
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "got %v", err)
		})
	}
}

func TestGenerateNoMines(t *testing.T) {
	b, err := Generate(4, 0, &scriptedSource{draws: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, 0, countMines(b))
	for _, row := range b.Rows() {
		for _, c := range row {
			assert.Zero(t, c.Count())
		}
	}
}

func TestGenerateAllButOne(t *testing.T) {
	b, err := Generate(3, 8, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Equal(t, 8, countMines(b))
	assertConsistent(t, b)
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(9, 10, rand.New(rand.NewPCG(42, 1024)))
	require.NoError(t, err)
	b, err := Generate(9, 10, rand.New(rand.NewPCG(42, 1024)))
	require.NoError(t, err)

	assert.Equal(t, a.Rows(), b.Rows())
}

func TestGenerateShippedConfiguration(t *testing.T) {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	for i := 0; i < 1000; i++ {
		b, err := Generate(9, 10, rng)
		require.NoError(t, err)
		require.Equal(t, 10, countMines(b))
		assertConsistent(t, b)
	}
}

func TestCellOutOfRangePanics(t *testing.T) {
	b, err := Generate(2, 1, &scriptedSource{draws: []int{0}})
	require.NoError(t, err)
	assert.Panics(t, func() { b.Cell(2, 0) })
	assert.Panics(t, func() { b.Cell(0, -1) })
}
