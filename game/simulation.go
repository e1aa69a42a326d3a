package game

import (
	"cmp"
	"errors"
	"math/rand"
	"slices"

	"github.com/beka-birhanu/vinom-maze/agent"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/predictor"
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// Simulation errors. The agent package owns the underlying values so callers
// can match either name with errors.Is.
var (
	ErrGridTooSmall   = agent.ErrGridTooSmall
	ErrUnknownVariant = agent.ErrUnknownVariant
	ErrStartOnGoal    = agent.ErrStartOnGoal
	ErrInvalidRate    = errors.New("learning rate must be positive")
)

// Options configures a simulation.
type Options struct {
	Width        int
	Height       int
	Variant      agent.Variant
	Seed         int64
	LearningRate float64            // Learner only; zero selects the default
	Start        *maze.CellPosition // Random when nil
	Goal         *maze.CellPosition // Random when nil; ignored by the explorer
	CellSize     int                // Pixel size hint copied into frames
}

// Simulation ties one generated maze to one agent and a logical clock.
type Simulation struct {
	ID           uuid.UUID
	variant      agent.Variant
	cellSize     int
	grid         *maze.Grid
	agent        agent.Agent
	goal         *maze.CellPosition
	clock        int64
	goalsReached int
	predicted    *maze.CellPosition
	thick        mapset.Set[maze.WallSegment] // Walls the agent has bumped into
}

// NewSimulation generates a maze from opts.Seed and places the agent.
func NewSimulation(opts Options) (*Simulation, error) {
	if _, err := agent.ParseVariant(string(opts.Variant)); err != nil {
		return nil, err
	}
	if opts.LearningRate < 0 {
		return nil, ErrInvalidRate
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	grid, err := maze.Generate(opts.Width, opts.Height, rng)
	if err != nil {
		return nil, err
	}

	sim := &Simulation{
		ID:       uuid.New(),
		variant:  opts.Variant,
		cellSize: opts.CellSize,
		grid:     grid,
		thick:    mapset.New[maze.WallSegment](),
	}

	if !opts.Variant.HasGoal() {
		start, err := pick(grid, opts.Start, nil, rng)
		if err != nil {
			return nil, err
		}
		sim.agent, err = agent.NewExplorer(grid, start)
		if err != nil {
			return nil, err
		}
		return sim, nil
	}

	if grid.Cells() < 2 {
		return nil, ErrGridTooSmall
	}
	goal, err := pick(grid, opts.Goal, nil, rng)
	if err != nil {
		return nil, err
	}
	start, err := pick(grid, opts.Start, &goal, rng)
	if err != nil {
		return nil, err
	}
	sim.goal = &goal

	switch opts.Variant {
	case agent.SeekerVariant:
		sim.agent, err = agent.NewSeeker(grid, goal, start, rng)
	case agent.LearnerVariant:
		rate := opts.LearningRate
		if rate == 0 {
			rate = predictor.DefaultLearningRate
		}
		var p *predictor.Predictor
		if p, err = predictor.New(rate); err != nil {
			return nil, err
		}
		sim.agent, err = agent.NewLearner(grid, goal, start, rng, p)
	}
	if err != nil {
		return nil, err
	}
	return sim, nil
}

// pick returns the pinned position when set, otherwise a random cell that is
// not avoid.
func pick(g *maze.Grid, pinned, avoid *maze.CellPosition, rng *rand.Rand) (maze.CellPosition, error) {
	if pinned != nil {
		if !g.InBound(*pinned) {
			return maze.CellPosition{}, maze.ErrOutOfBounds
		}
		if avoid != nil && *pinned == *avoid {
			return maze.CellPosition{}, ErrStartOnGoal
		}
		return *pinned, nil
	}
	for {
		pos := g.PositionOf(rng.Intn(g.Cells()))
		if avoid == nil || pos != *avoid {
			return pos, nil
		}
	}
}

// Tick advances the logical clock and steps the agent once.
func (s *Simulation) Tick(policy agent.Policy) agent.StepResult {
	s.clock++
	res := s.agent.Step(s.clock, policy)
	if res.Bumped {
		s.thick.Put(maze.SegmentOf(res.From, res.Direction))
	}
	if res.ReachedGoal {
		s.goalsReached++
	}
	s.predicted = res.Predicted
	return res
}

// Clock returns the number of ticks taken so far.
func (s *Simulation) Clock() int64 {
	return s.clock
}

// Grid returns the simulation's maze.
func (s *Simulation) Grid() *maze.Grid {
	return s.grid
}

// Goal returns the goal cell, or nil for the explorer.
func (s *Simulation) Goal() *maze.CellPosition {
	return s.goal
}

// Agent returns the walker.
func (s *Simulation) Agent() agent.Agent {
	return s.agent
}

// GoalsReached counts goal arrivals since the simulation was built.
func (s *Simulation) GoalsReached() int {
	return s.goalsReached
}

// Frame is a point-in-time view of a simulation.
type Frame struct {
	ID           uuid.UUID          `json:"id"`
	Tick         int64              `json:"tick"`
	Variant      agent.Variant      `json:"variant"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	CellSize     int                `json:"cell_size,omitempty"`
	Walls        []maze.WallSegment `json:"walls"`
	ThickWalls   []maze.WallSegment `json:"thick_walls"`
	Agent        maze.CellPosition  `json:"agent"`
	Goal         *maze.CellPosition `json:"goal,omitempty"`
	Predicted    *maze.CellPosition `json:"predicted,omitempty"`
	Visits       []int              `json:"visits"` // Row-major
	GoalsReached int                `json:"goals_reached"`
}

// Frame builds a snapshot of the current state.
func (s *Simulation) Frame() Frame {
	visits := make([]int, s.grid.Cells())
	for i := range visits {
		visits[i] = s.agent.Visits(s.grid.PositionOf(i))
	}

	thick := make([]maze.WallSegment, 0, s.thick.Size())
	s.thick.Each(func(seg maze.WallSegment) {
		thick = append(thick, seg)
	})
	slices.SortFunc(thick, compareSegments)

	f := Frame{
		ID:           s.ID,
		Tick:         s.clock,
		Variant:      s.variant,
		Width:        s.grid.Width(),
		Height:       s.grid.Height(),
		CellSize:     s.cellSize,
		Walls:        s.grid.WallSegments(),
		ThickWalls:   thick,
		Agent:        s.agent.Position(),
		Visits:       visits,
		GoalsReached: s.goalsReached,
	}
	if s.goal != nil {
		goal := *s.goal
		f.Goal = &goal
	}
	if s.predicted != nil {
		p := *s.predicted
		f.Predicted = &p
	}
	return f
}

// IsThick reports whether the agent has bumped into seg.
func (f Frame) IsThick(seg maze.WallSegment) bool {
	_, ok := slices.BinarySearchFunc(f.ThickWalls, seg, compareSegments)
	return ok
}

func compareSegments(a, b maze.WallSegment) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Col, b.Col); c != 0 {
		return c
	}
	switch {
	case a.Vertical == b.Vertical:
		return 0
	case a.Vertical:
		return 1
	default:
		return -1
	}
}
