// Package agent implements the three maze-walking agents. Each one advances a
// single grid step per call to Step and reports what changed so a renderer
// can redraw only the affected cells.
package agent

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var (
	ErrUnknownVariant = errors.New("unknown agent variant")
	ErrUnknownPolicy  = errors.New("unknown reinforcement policy")
	ErrStartOnGoal    = errors.New("start position coincides with the goal")
	ErrGridTooSmall   = errors.New("grid needs at least two cells for a goal")
)

// Variant selects which agent drives a simulation.
type Variant string

const (
	ExplorerVariant Variant = "explorer" // Least recently visited neighbour
	SeekerVariant   Variant = "seeker"   // Reward distance towards a goal
	LearnerVariant  Variant = "learner"  // Action memory plus predictor
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case ExplorerVariant, SeekerVariant, LearnerVariant:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// HasGoal reports whether the variant seeks a goal cell.
func (v Variant) HasGoal() bool {
	return v == SeekerVariant || v == LearnerVariant
}

// Policy selects how a seeker backpropagates reward on reaching the goal.
type Policy string

const (
	PathPolicy     Policy = "path"     // Reinforce the cells of the walked path
	DistancePolicy Policy = "distance" // Flood hop counts from the goal
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PathPolicy, DistancePolicy:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// StepResult describes one tick of an agent.
type StepResult struct {
	From        maze.CellPosition  `json:"from"`
	To          maze.CellPosition  `json:"to"`                  // Position after the move, before any respawn
	Direction   maze.Direction     `json:"direction"`           // Direction chosen this tick
	Moved       bool               `json:"moved"`               // False when the agent stayed in place
	Bumped      bool               `json:"bumped"`              // The chosen direction was walled
	ReachedGoal bool               `json:"reached_goal"`        // The agent entered the goal this tick
	Respawn     maze.CellPosition  `json:"respawn"`             // New start when ReachedGoal
	Predicted   *maze.CellPosition `json:"predicted,omitempty"` // Predictor's expected next cell
}

// Agent is a single maze walker.
type Agent interface {
	// Step advances the agent one grid step at the given clock.
	Step(clock int64, policy Policy) StepResult

	// Position returns the current cell.
	Position() maze.CellPosition

	// Visits returns how many ticks the agent spent on pos.
	Visits(pos maze.CellPosition) int
}

// respawn picks a uniformly random cell other than goal.
func respawn(g *maze.Grid, goal maze.CellPosition, rng *rand.Rand) maze.CellPosition {
	for {
		pos := g.PositionOf(rng.Intn(g.Cells()))
		if pos != goal {
			return pos
		}
	}
}

// checkGoal validates the start and goal of a goal-seeking agent.
func checkGoal(g *maze.Grid, start, goal maze.CellPosition) error {
	if g.Cells() < 2 {
		return ErrGridTooSmall
	}
	if !g.InBound(start) || !g.InBound(goal) {
		return maze.ErrOutOfBounds
	}
	if start == goal {
		return ErrStartOnGoal
	}
	return nil
}
