package maze

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reachable counts the cells reachable from (0,0) through open passages.
func reachable(g *Grid) int {
	seen := make([]bool, g.Cells())
	queue := []CellPosition{{Row: 0, Col: 0}}
	seen[0] = true
	count := 0
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		count++
		for _, d := range Directions {
			nbr, ok := g.Neighbor(pos, d)
			if !ok || seen[g.Index(nbr)] {
				continue
			}
			seen[g.Index(nbr)] = true
			queue = append(queue, nbr)
		}
	}
	return count
}

func TestNew(t *testing.T) {
	t.Run("rejects invalid dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}, {MaxDimension + 1, 2}} {
			_, err := New(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		}
	})

	t.Run("starts fully walled with clear sentinels", func(t *testing.T) {
		g, err := New(3, 2)
		require.NoError(t, err)
		assert.Equal(t, 4, g.Stride())

		flags := g.Flags()
		require.Len(t, flags, 4*3)
		for row := 0; row <= 2; row++ {
			for col := 0; col <= 3; col++ {
				f := flags[row*4+col]
				assert.Equal(t, row != 2, f&WestWall != 0, "west flag at %d,%d", row, col)
				assert.Equal(t, col != 3, f&NorthWall != 0, "north flag at %d,%d", row, col)
			}
		}
		assert.Equal(t, 0, g.Passages())
	})

	t.Run("outer boundary is blocked", func(t *testing.T) {
		g, err := New(2, 2)
		require.NoError(t, err)
		assert.True(t, g.Blocked(CellPosition{Row: 0, Col: 0}, North))
		assert.True(t, g.Blocked(CellPosition{Row: 0, Col: 0}, West))
		assert.True(t, g.Blocked(CellPosition{Row: 1, Col: 1}, South))
		assert.True(t, g.Blocked(CellPosition{Row: 1, Col: 1}, East))
	})
}

func TestOpen(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	require.NoError(t, g.Open(CellPosition{Row: 0, Col: 0}, East))
	assert.False(t, g.Blocked(CellPosition{Row: 0, Col: 0}, East))
	assert.False(t, g.Blocked(CellPosition{Row: 0, Col: 1}, West), "east wall is shared with the neighbour's west wall")

	require.NoError(t, g.Open(CellPosition{Row: 1, Col: 1}, North))
	assert.False(t, g.Blocked(CellPosition{Row: 0, Col: 1}, South))

	assert.ErrorIs(t, g.Open(CellPosition{Row: 0, Col: 0}, North), ErrOutOfBounds)
	assert.ErrorIs(t, g.Open(CellPosition{Row: 5, Col: 0}, South), ErrOutOfBounds)
	assert.Equal(t, 2, g.Passages())
}

func TestGenerate(t *testing.T) {
	t.Run("rejects a nil random source", func(t *testing.T) {
		_, err := Generate(3, 3, nil)
		assert.ErrorIs(t, err, ErrNilRand)
	})

	t.Run("rejects invalid dimensions", func(t *testing.T) {
		_, err := Generate(0, 4, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("produces spanning trees", func(t *testing.T) {
		sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {2, 2}, {3, 3}, {4, 4}, {10, 6}, {25, 25}}
		for seed := int64(1); seed <= 5; seed++ {
			for _, size := range sizes {
				g, err := Generate(size[0], size[1], rand.New(rand.NewSource(seed)))
				require.NoError(t, err)

				cells := size[0] * size[1]
				assert.Equal(t, cells-1, g.Passages(), "passages for %v seed %d", size, seed)
				assert.Equal(t, cells, reachable(g), "reachable cells for %v seed %d", size, seed)
			}
		}
	})

	t.Run("keeps the outer boundary", func(t *testing.T) {
		g, err := Generate(6, 4, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		for col := 0; col < 6; col++ {
			assert.True(t, g.Blocked(CellPosition{Row: 0, Col: col}, North))
			assert.True(t, g.Blocked(CellPosition{Row: 3, Col: col}, South))
		}
		for row := 0; row < 4; row++ {
			assert.True(t, g.Blocked(CellPosition{Row: row, Col: 0}, West))
			assert.True(t, g.Blocked(CellPosition{Row: row, Col: 5}, East))
		}
	})

	t.Run("is deterministic for a seed", func(t *testing.T) {
		a, err := Generate(8, 8, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		b, err := Generate(8, 8, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		assert.Equal(t, a.Flags(), b.Flags())
	})
}

func TestIndex(t *testing.T) {
	g, err := New(5, 3)
	require.NoError(t, err)
	for i := 0; i < g.Cells(); i++ {
		assert.Equal(t, i, g.Index(g.PositionOf(i)))
	}
	assert.True(t, g.InBound(CellPosition{Row: 2, Col: 4}))
	assert.False(t, g.InBound(CellPosition{Row: 3, Col: 0}))
	assert.False(t, g.InBound(CellPosition{Row: 0, Col: -1}))
}

func TestString(t *testing.T) {
	g, err := New(2, 1)
	require.NoError(t, err)
	require.NoError(t, g.Open(CellPosition{Row: 0, Col: 0}, East))

	want := strings.Join([]string{
		"+---+---+",
		"|       |",
		"+---+---+",
		"",
	}, "\n")
	assert.Equal(t, want, g.String())
}

func TestWallSegments(t *testing.T) {
	g, err := New(1, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []WallSegment{
		{Row: 0, Col: 0, Vertical: true},
		{Row: 0, Col: 0},
		{Row: 0, Col: 1, Vertical: true},
		{Row: 1, Col: 0},
	}, g.WallSegments())
}
