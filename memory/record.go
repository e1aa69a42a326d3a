// Package memory holds what an agent remembers about the maze: when it last
// saw a cell (or tried an action), how often, and how far it believes the
// goal to be.
package memory

import (
	"math"
)

// Unknown is the reward distance of a record that has never been reinforced.
const Unknown = math.MaxInt

// Record is a single memory node.
type Record struct {
	LastVisited    int64 // Clock of the most recent stamp
	Visits         int   // Number of stamps, zero for never visited
	RewardDistance int   // Shortest known number of steps to the goal
	pass           uint64
}

func newRecord() *Record {
	return &Record{RewardDistance: Unknown}
}

// Visited reports whether the record was ever stamped.
func (r *Record) Visited() bool {
	return r != nil && r.Visits > 0
}

// Stamp records a visit at the given clock.
func (r *Record) Stamp(clock int64) {
	r.LastVisited = clock
	r.Visits++
}

// Reinforce lowers the reward distance to d if d is shorter.
func (r *Record) Reinforce(d int) {
	r.RewardDistance = min(r.RewardDistance, d)
}

// recency orders records by when they were last seen; never visited sorts first.
func (r *Record) recency() int64 {
	if !r.Visited() {
		return -1
	}
	return r.LastVisited
}

// Better reports whether a is preferable to b.
// A nil record stands for a blocked option and never wins. Otherwise the
// shorter reward distance wins, then the record seen longest ago. Full ties
// count as better so that callers scanning in priority order keep the first.
func Better(a, b *Record) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if a.RewardDistance != b.RewardDistance {
		return a.RewardDistance < b.RewardDistance
	}
	return a.recency() <= b.recency()
}
