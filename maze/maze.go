/*
Package maze provides tools for creating and inspecting rectangular mazes.

A maze is stored as a flat array of wall flags, one entry per grid vertex.
Each entry carries at most two walls: the west edge and the north edge of the
cell whose top-left corner sits on that vertex. East and south walls are read
from the neighbouring vertex, so no wall is stored twice.

The package includes a randomized Kruskal generator that produces perfect
mazes (exactly one simple path between any two cells) and an ASCII dump.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// WestWall marks a wall on the west edge of the cell at a vertex.
	WestWall uint8 = 1 << iota
	// NorthWall marks a wall on the north edge of the cell at a vertex.
	NorthWall

	// MaxDimension bounds both width and height.
	MaxDimension = 256
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("position is out of the maze")
	ErrNilRand           = errors.New("random source is nil")
)

// Grid is a fixed-size maze. The zero value is not usable; call New or Generate.
type Grid struct {
	width  int     // Width of the maze (number of columns)
	height int     // Height of the maze (number of rows)
	stride int     // Number of vertices per row (width + 1)
	flags  []uint8 // Wall flags per vertex, (width+1)*(height+1) entries
}

// New returns a fully walled grid of the given dimensions.
// The bottom-row west flags and right-column north flags are left clear; they
// sit outside the grid and are never traversed.
func New(width, height int) (*Grid, error) {
	if min(width, height) <= 0 || max(width, height) > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	stride := width + 1
	flags := make([]uint8, stride*(height+1))
	for row := 0; row <= height; row++ {
		for col := 0; col <= width; col++ {
			var f uint8
			if row != height {
				f |= WestWall
			}
			if col != width {
				f |= NorthWall
			}
			flags[row*stride+col] = f
		}
	}

	return &Grid{
		width:  width,
		height: height,
		stride: stride,
		flags:  flags,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Stride returns the number of entries per row of the wall flag array.
func (g *Grid) Stride() int {
	return g.stride
}

// Cells returns the number of cells in the grid.
func (g *Grid) Cells() int {
	return g.width * g.height
}

// Flags returns a copy of the raw wall flag array.
func (g *Grid) Flags() []uint8 {
	out := make([]uint8, len(g.flags))
	copy(out, g.flags)
	return out
}

// InBound reports whether pos lies inside the grid.
func (g *Grid) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < g.height && pos.Col >= 0 && pos.Col < g.width
}

// Index returns the cell index of pos (row-major).
func (g *Grid) Index(pos CellPosition) int {
	return pos.Row*g.width + pos.Col
}

// PositionOf is the inverse of Index.
func (g *Grid) PositionOf(index int) CellPosition {
	return CellPosition{Row: index / g.width, Col: index % g.width}
}

// wallAt returns the vertex index and bit guarding the edge of pos facing d.
func (g *Grid) wallAt(pos CellPosition, d Direction) (int, uint8) {
	switch d {
	case North:
		return pos.Row*g.stride + pos.Col, NorthWall
	case West:
		return pos.Row*g.stride + pos.Col, WestWall
	case South:
		return (pos.Row+1)*g.stride + pos.Col, NorthWall
	default:
		return pos.Row*g.stride + pos.Col + 1, WestWall
	}
}

// Blocked reports whether a wall separates pos from its neighbour in direction d.
// pos must be in bounds; the outer boundary is always walled.
func (g *Grid) Blocked(pos CellPosition, d Direction) bool {
	i, bit := g.wallAt(pos, d)
	return g.flags[i]&bit != 0
}

// Neighbor returns the neighbour of pos in direction d if no wall is in the way.
func (g *Grid) Neighbor(pos CellPosition, d Direction) (CellPosition, bool) {
	if g.Blocked(pos, d) {
		return pos, false
	}
	return pos.Step(d), true
}

// Open removes the wall on the d side of pos. Opening an outer wall is rejected.
func (g *Grid) Open(pos CellPosition, d Direction) error {
	if !g.InBound(pos) || !g.InBound(pos.Step(d)) {
		return ErrOutOfBounds
	}
	i, bit := g.wallAt(pos, d)
	g.flags[i] &^= bit
	return nil
}

// Passages counts the open edges between interior cells.
func (g *Grid) Passages() int {
	count := 0
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			pos := CellPosition{Row: row, Col: col}
			if col+1 < g.width && !g.Blocked(pos, East) {
				count++
			}
			if row+1 < g.height && !g.Blocked(pos, South) {
				count++
			}
		}
	}
	return count
}

// WallSegments lists every wall currently standing, outer boundary included.
func (g *Grid) WallSegments() []WallSegment {
	var segments []WallSegment
	for row := 0; row <= g.height; row++ {
		for col := 0; col <= g.width; col++ {
			f := g.flags[row*g.stride+col]
			if f&WestWall != 0 {
				segments = append(segments, WallSegment{Row: row, Col: col, Vertical: true})
			}
			if f&NorthWall != 0 {
				segments = append(segments, WallSegment{Row: row, Col: col})
			}
		}
	}
	return segments
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	var sb strings.Builder

	for row := 0; row <= g.height; row++ {
		// Wall row
		for col := 0; col < g.width; col++ {
			if g.flags[row*g.stride+col]&NorthWall != 0 {
				sb.WriteString("+---")
			} else {
				sb.WriteString("+   ")
			}
		}
		sb.WriteString("+\n")

		if row == g.height {
			break
		}

		// Cell row
		for col := 0; col <= g.width; col++ {
			if g.flags[row*g.stride+col]&WestWall != 0 {
				sb.WriteString("|")
			} else {
				sb.WriteString(" ")
			}
			if col < g.width {
				sb.WriteString("   ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
