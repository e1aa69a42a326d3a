package memory

import (
	"math"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// CellStore keeps one record per cell. Records are allocated on first touch.
type CellStore struct {
	records []*Record
	width   int
	pass    uint64
}

// NewCellStore creates an empty store sized for g.
func NewCellStore(g *maze.Grid) *CellStore {
	return &CellStore{
		records: make([]*Record, g.Cells()),
		width:   g.Width(),
	}
}

func (s *CellStore) index(pos maze.CellPosition) int {
	return pos.Row*s.width + pos.Col
}

// Peek returns the record at pos without allocating; nil if untouched.
func (s *CellStore) Peek(pos maze.CellPosition) *Record {
	return s.records[s.index(pos)]
}

// At returns the record at pos, allocating it if needed.
func (s *CellStore) At(pos maze.CellPosition) *Record {
	i := s.index(pos)
	if s.records[i] == nil {
		s.records[i] = newRecord()
	}
	return s.records[i]
}

// Stamp records a visit to pos at the given clock.
func (s *CellStore) Stamp(pos maze.CellPosition, clock int64) {
	s.At(pos).Stamp(clock)
}

// Visits returns how often pos was stamped.
func (s *CellStore) Visits(pos maze.CellPosition) int {
	if r := s.Peek(pos); r != nil {
		return r.Visits
	}
	return 0
}

// RewardDistance returns the learned distance to the goal from pos.
func (s *CellStore) RewardDistance(pos maze.CellPosition) int {
	if r := s.Peek(pos); r != nil {
		return r.RewardDistance
	}
	return Unknown
}

// BestRecent picks the open neighbour of pos seen longest ago. Never visited
// neighbours come first, blocked directions last; ties keep the earlier
// direction in maze.Directions. It returns false when every side is walled.
func (s *CellStore) BestRecent(g *maze.Grid, pos maze.CellPosition) (maze.Direction, bool) {
	best, bestScore := maze.North, int64(math.MaxInt64)
	for _, d := range maze.Directions {
		score := int64(math.MaxInt64)
		if nbr, ok := g.Neighbor(pos, d); ok {
			score = s.Peek(nbr).recency()
		}
		if score < bestScore {
			best, bestScore = d, score
		}
	}
	return best, bestScore != math.MaxInt64
}

// BestReward picks the open neighbour of pos with the shortest known reward
// distance, falling back to the one seen longest ago.
func (s *CellStore) BestReward(g *maze.Grid, pos maze.CellPosition) (maze.Direction, bool) {
	var candidates [maze.DirectionCount]*Record
	for _, d := range maze.Directions {
		if nbr, ok := g.Neighbor(pos, d); ok {
			candidates[d] = s.At(nbr)
		}
	}
	return pick(candidates)
}

// pick returns the first direction whose record is better than every other.
func pick(candidates [maze.DirectionCount]*Record) (maze.Direction, bool) {
	for _, d := range maze.Directions {
		if candidates[d] == nil {
			continue
		}
		wins := true
		for _, other := range maze.Directions {
			if other != d && !Better(candidates[d], candidates[other]) {
				wins = false
				break
			}
		}
		if wins {
			return d, true
		}
	}
	return maze.North, false
}

// ReinforcePath walks path backwards from the goal and offers every cell its
// distance along the path. The last entry is the goal itself.
func (s *CellStore) ReinforcePath(path []maze.CellPosition) {
	last := len(path) - 1
	for i := last; i >= 0; i-- {
		s.At(path[i]).Reinforce(last - i)
	}
}

// PropagateDistance floods outward from goal over open edges into visited
// cells, offering each its hop count. Each record is settled at most once per
// pass, so the traversal also terminates on subgraphs with cycles.
func (s *CellStore) PropagateDistance(g *maze.Grid, goal maze.CellPosition) {
	s.pass++
	pass := s.pass

	type item struct {
		pos  maze.CellPosition
		hops int
	}

	root := s.At(goal)
	root.pass = pass
	queue := []item{{pos: goal}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		s.At(cur.pos).Reinforce(cur.hops)

		for _, d := range maze.Directions {
			nbr, ok := g.Neighbor(cur.pos, d)
			if !ok {
				continue
			}
			r := s.Peek(nbr)
			if !r.Visited() || r.pass == pass {
				continue
			}
			r.pass = pass
			queue = append(queue, item{pos: nbr, hops: cur.hops + 1})
		}
	}
}
