package game

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// RenderSurface receives draw calls in logical grid coordinates.
// Pixel scaling is the surface's concern.
type RenderSurface interface {
	// Reset blanks the surface for a grid of the given size.
	Reset(width, height int)

	// ClearCell repaints pos as empty floor shaded by its visit count.
	ClearCell(pos maze.CellPosition, visits int)

	// DrawWall draws a wall segment; thick marks a wall the agent bumped into.
	DrawWall(seg maze.WallSegment, thick bool)

	// DrawAgent marks the agent's cell.
	DrawAgent(pos maze.CellPosition)

	// DrawGoal marks the goal cell.
	DrawGoal(pos maze.CellPosition)

	// DrawPrediction marks the cell the predictor expects the agent to reach.
	DrawPrediction(pos maze.CellPosition)
}

// Scheduler runs a callback after a delay. Only one callback is pending at a time.
type Scheduler interface {
	ScheduleNext(fn func(), delay time.Duration)
	Cancel()
}

// Paint draws f onto s from a blank surface.
func Paint(s RenderSurface, f Frame) {
	s.Reset(f.Width, f.Height)
	for i, visits := range f.Visits {
		s.ClearCell(maze.CellPosition{Row: i / f.Width, Col: i % f.Width}, visits)
	}
	for _, seg := range f.Walls {
		s.DrawWall(seg, f.IsThick(seg))
	}
	if f.Goal != nil {
		s.DrawGoal(*f.Goal)
	}
	if f.Predicted != nil {
		s.DrawPrediction(*f.Predicted)
	}
	s.DrawAgent(f.Agent)
}
