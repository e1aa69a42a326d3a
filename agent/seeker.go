package agent

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/memory"
)

var _ Agent = &Seeker{}

// Seeker walks towards the neighbour with the shortest known reward distance
// and learns those distances each time it reaches the goal.
type Seeker struct {
	grid   *maze.Grid
	goal   maze.CellPosition
	rng    *rand.Rand
	pos    maze.CellPosition
	path   []maze.CellPosition // Cells walked since the last respawn
	memory *memory.CellStore
}

// NewSeeker places a seeker on start. start must differ from goal.
func NewSeeker(g *maze.Grid, goal, start maze.CellPosition, rng *rand.Rand) (*Seeker, error) {
	if err := checkGoal(g, start, goal); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, maze.ErrNilRand
	}
	s := &Seeker{
		grid:   g,
		goal:   goal,
		rng:    rng,
		memory: memory.NewCellStore(g),
	}
	s.place(start)
	s.memory.Stamp(start, 0)
	return s, nil
}

// place moves the seeker to pos and starts a new path there.
func (s *Seeker) place(pos maze.CellPosition) {
	s.pos = pos
	s.path = []maze.CellPosition{pos}
}

// Step implements Agent.
func (s *Seeker) Step(clock int64, policy Policy) StepResult {
	res := StepResult{From: s.pos}
	if d, ok := s.memory.BestReward(s.grid, s.pos); ok {
		s.pos = s.pos.Step(d)
		res.Direction, res.Moved = d, true
	}
	res.To = s.pos
	s.path = append(s.path, s.pos)
	s.memory.Stamp(s.pos, clock)

	if s.pos != s.goal {
		return res
	}

	if policy == DistancePolicy {
		s.memory.PropagateDistance(s.grid, s.goal)
	} else {
		s.memory.ReinforcePath(s.path)
	}

	res.ReachedGoal = true
	s.place(respawn(s.grid, s.goal, s.rng))
	res.Respawn = s.pos
	return res
}

// Position implements Agent.
func (s *Seeker) Position() maze.CellPosition {
	return s.pos
}

// Visits implements Agent.
func (s *Seeker) Visits(pos maze.CellPosition) int {
	return s.memory.Visits(pos)
}

// Goal returns the cell the seeker is looking for.
func (s *Seeker) Goal() maze.CellPosition {
	return s.goal
}

// Path returns the cells walked since the last respawn.
func (s *Seeker) Path() []maze.CellPosition {
	out := make([]maze.CellPosition, len(s.path))
	copy(out, s.path)
	return out
}

// Memory exposes the seeker's cell store.
func (s *Seeker) Memory() *memory.CellStore {
	return s.memory
}
