package memory

import (
	"github.com/beka-birhanu/vinom-maze/maze"
)

// ActionKey identifies the action of moving in Direction from Cell.
type ActionKey struct {
	Cell      int
	Direction maze.Direction
}

// ActionStore keeps a sparse map of records, one per action tried so far.
type ActionStore struct {
	records map[ActionKey]*Record
}

// NewActionStore creates an empty store.
func NewActionStore() *ActionStore {
	return &ActionStore{records: make(map[ActionKey]*Record)}
}

// Peek returns the record for k, or nil if the action was never tried.
func (s *ActionStore) Peek(k ActionKey) *Record {
	return s.records[k]
}

// At returns the record for k, creating it if needed.
func (s *ActionStore) At(k ActionKey) *Record {
	r, ok := s.records[k]
	if !ok {
		r = newRecord()
		s.records[k] = r
	}
	return r
}

// Len returns the number of actions remembered.
func (s *ActionStore) Len() int {
	return len(s.records)
}

// Best picks the action to try from cell. An action never tried beats every
// tried one; tried actions are ranked with Better. Ties keep the earlier
// direction in maze.Directions.
func (s *ActionStore) Best(cell int) maze.Direction {
	best := maze.North
	var bestRecord *Record
	for i, d := range maze.Directions {
		r := s.records[ActionKey{Cell: cell, Direction: d}]
		if r == nil {
			return d
		}
		if i == 0 || strictlyBetter(r, bestRecord) {
			best, bestRecord = d, r
		}
	}
	return best
}

func strictlyBetter(a, b *Record) bool {
	return Better(a, b) && !Better(b, a)
}
