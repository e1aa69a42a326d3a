// Package render holds render surfaces that draw a simulation outside the
// browser.
package render

import (
	"strings"
	"sync"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
)

var _ game.RenderSurface = &ASCII{}

// Characters used by the ASCII surface.
const (
	AgentMark      = '@'
	GoalMark       = 'X'
	PredictionMark = '?'
	ThickMark      = '#'
)

// saturation shades a cell by visit count: 1, 2-3, 4-7, 8 or more.
var saturation = []byte{' ', '.', ':', '*', '%'}

// ASCII is a character-buffer render surface. Each cell is three characters
// wide with walls drawn between them, the way maze.Grid prints itself.
type ASCII struct {
	width  int
	height int
	rows   [][]byte
	sync.Mutex
}

// NewASCII returns a blank surface for a width x height grid.
func NewASCII(width, height int) *ASCII {
	a := &ASCII{}
	a.Reset(width, height)
	return a
}

// Reset blanks the surface and resizes it.
func (a *ASCII) Reset(width, height int) {
	a.Lock()
	defer a.Unlock()
	a.width, a.height = width, height
	a.rows = make([][]byte, 2*height+1)
	for r := range a.rows {
		row := []byte(strings.Repeat(" ", 4*width+1))
		if r%2 == 0 {
			for c := 0; c <= width; c++ {
				row[4*c] = '+'
			}
		}
		a.rows[r] = row
	}
}

// ClearCell repaints the cell interior with its visit shade.
func (a *ASCII) ClearCell(pos maze.CellPosition, visits int) {
	a.Lock()
	defer a.Unlock()
	if !a.inBound(pos) {
		return
	}
	row, col := a.anchor(pos)
	copy(a.rows[row][col-1:col+2], "   ")
	a.rows[row][col] = shade(visits)
}

// DrawWall draws seg with the thin or thick wall character.
func (a *ASCII) DrawWall(seg maze.WallSegment, thick bool) {
	a.Lock()
	defer a.Unlock()
	if seg.Row < 0 || seg.Col < 0 || seg.Row > a.height || seg.Col > a.width {
		return
	}
	if seg.Vertical {
		if seg.Row == a.height {
			return
		}
		ch := byte('|')
		if thick {
			ch = ThickMark
		}
		a.rows[2*seg.Row+1][4*seg.Col] = ch
		return
	}
	if seg.Col == a.width {
		return
	}
	fill := "---"
	if thick {
		fill = "###"
	}
	copy(a.rows[2*seg.Row][4*seg.Col+1:4*seg.Col+4], fill)
}

// DrawAgent marks the agent's cell.
func (a *ASCII) DrawAgent(pos maze.CellPosition) {
	a.mark(pos, 0, AgentMark)
}

// DrawGoal marks the goal cell.
func (a *ASCII) DrawGoal(pos maze.CellPosition) {
	a.mark(pos, 0, GoalMark)
}

// DrawPrediction marks the predicted cell left of its centre so the agent
// and goal stay visible.
func (a *ASCII) DrawPrediction(pos maze.CellPosition) {
	a.mark(pos, -1, PredictionMark)
}

// String returns the current picture, one line per text row.
func (a *ASCII) String() string {
	a.Lock()
	defer a.Unlock()
	var sb strings.Builder
	for _, row := range a.rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (a *ASCII) mark(pos maze.CellPosition, offset int, ch byte) {
	a.Lock()
	defer a.Unlock()
	if !a.inBound(pos) {
		return
	}
	row, col := a.anchor(pos)
	a.rows[row][col+offset] = ch
}

func (a *ASCII) inBound(pos maze.CellPosition) bool {
	return pos.Row >= 0 && pos.Row < a.height && pos.Col >= 0 && pos.Col < a.width
}

// anchor returns the text coordinates of the centre of pos.
func (a *ASCII) anchor(pos maze.CellPosition) (int, int) {
	return 2*pos.Row + 1, 4*pos.Col + 2
}

func shade(visits int) byte {
	switch {
	case visits <= 0:
		return saturation[0]
	case visits == 1:
		return saturation[1]
	case visits < 4:
		return saturation[2]
	case visits < 8:
		return saturation[3]
	default:
		return saturation[4]
	}
}
