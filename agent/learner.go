package agent

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/memory"
	"github.com/beka-birhanu/vinom-maze/predictor"
)

var _ Agent = &Learner{}

// Learner remembers actions rather than cells. It does not know where the
// walls are: it tries a direction, bumps or moves, and records the attempt.
// A predictor learns where each action leads; its guess is reported for
// display and never steers the learner.
type Learner struct {
	grid      *maze.Grid
	goal      maze.CellPosition
	rng       *rand.Rand
	pos       maze.CellPosition
	counts    []int
	memory    *memory.ActionStore
	predictor *predictor.Predictor
}

// NewLearner places a learner on start. start must differ from goal.
func NewLearner(g *maze.Grid, goal, start maze.CellPosition, rng *rand.Rand, p *predictor.Predictor) (*Learner, error) {
	if err := checkGoal(g, start, goal); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, maze.ErrNilRand
	}
	if p == nil {
		p, _ = predictor.New(predictor.DefaultLearningRate)
	}
	l := &Learner{
		grid:      g,
		goal:      goal,
		rng:       rng,
		pos:       start,
		counts:    make([]int, g.Cells()),
		memory:    memory.NewActionStore(),
		predictor: p,
	}
	l.counts[g.Index(start)]++
	return l, nil
}

// Step implements Agent. The learner keeps no reward: arriving at the goal
// only moves it to a fresh start, so the policy is ignored and actions are
// ranked by whether and when they were last tried.
func (l *Learner) Step(clock int64, _ Policy) StepResult {
	cell := l.grid.Index(l.pos)
	d := l.memory.Best(cell)
	key := memory.ActionKey{Cell: cell, Direction: d}

	input := predictor.InputKey(cell, d)
	pred := l.predictor.Predict(input)

	res := StepResult{From: l.pos, Direction: d}
	if pred.Known {
		guess := l.grid.PositionOf(pred.Next.Value)
		res.Predicted = &guess
	}

	if next, ok := l.grid.Neighbor(l.pos, d); ok {
		l.pos = next
		res.Moved = true
	} else {
		res.Bumped = true
	}
	res.To = l.pos

	l.memory.At(key).Stamp(clock)
	l.predictor.Update(input, pred.Key, predictor.NewKey(predictor.PositionFeature(l.grid.Index(l.pos))))
	l.counts[l.grid.Index(l.pos)]++

	if l.pos != l.goal {
		return res
	}

	res.ReachedGoal = true
	l.pos = respawn(l.grid, l.goal, l.rng)
	res.Respawn = l.pos
	return res
}

// Position implements Agent.
func (l *Learner) Position() maze.CellPosition {
	return l.pos
}

// Visits implements Agent.
func (l *Learner) Visits(pos maze.CellPosition) int {
	return l.counts[l.grid.Index(pos)]
}

// Goal returns the cell the learner is looking for.
func (l *Learner) Goal() maze.CellPosition {
	return l.goal
}

// Memory exposes the learner's action store.
func (l *Learner) Memory() *memory.ActionStore {
	return l.memory
}

// Predictor exposes the learner's predictor.
func (l *Learner) Predictor() *predictor.Predictor {
	return l.predictor
}
