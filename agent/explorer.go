package agent

import (
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/memory"
)

var _ Agent = &Explorer{}

// Explorer always heads for the open neighbour it saw longest ago.
type Explorer struct {
	grid   *maze.Grid
	pos    maze.CellPosition
	memory *memory.CellStore
}

// NewExplorer places an explorer on start and stamps it at clock 0.
func NewExplorer(g *maze.Grid, start maze.CellPosition) (*Explorer, error) {
	if !g.InBound(start) {
		return nil, maze.ErrOutOfBounds
	}
	e := &Explorer{
		grid:   g,
		pos:    start,
		memory: memory.NewCellStore(g),
	}
	e.memory.Stamp(start, 0)
	return e, nil
}

// Step implements Agent. The policy is ignored.
func (e *Explorer) Step(clock int64, _ Policy) StepResult {
	res := StepResult{From: e.pos}
	if d, ok := e.memory.BestRecent(e.grid, e.pos); ok {
		e.pos = e.pos.Step(d)
		res.Direction, res.Moved = d, true
	}
	res.To = e.pos
	e.memory.Stamp(e.pos, clock)
	return res
}

// Position implements Agent.
func (e *Explorer) Position() maze.CellPosition {
	return e.pos
}

// Visits implements Agent.
func (e *Explorer) Visits(pos maze.CellPosition) int {
	return e.memory.Visits(pos)
}

// Memory exposes the explorer's cell store.
func (e *Explorer) Memory() *memory.CellStore {
	return e.memory
}
