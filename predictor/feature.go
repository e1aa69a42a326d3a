// Package predictor implements a single-layer associative memory that learns
// to predict where an agent ends up after choosing a direction.
//
// Inputs and outputs are sets of typed features. Each active input feature
// holds a sparse table of signed weights towards output features; a
// prediction sums those weights and keeps the strongest position plus every
// other output with a positive score.
package predictor

import (
	"fmt"
	"sort"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/zyedidia/generic/mapset"
)

// FeatureKind tags what a Feature's value means.
type FeatureKind uint8

const (
	Bias FeatureKind = iota
	Direction
	Position
)

// Feature is a typed identifier. For Position the value is a cell index, for
// Direction it is a maze.Direction, for Bias it is always zero.
type Feature struct {
	Kind  FeatureKind `json:"kind"`
	Value int         `json:"value"`
}

// BiasFeature is active in every input key.
func BiasFeature() Feature {
	return Feature{Kind: Bias}
}

// DirectionFeature identifies the chosen direction.
func DirectionFeature(d maze.Direction) Feature {
	return Feature{Kind: Direction, Value: int(d)}
}

// PositionFeature identifies a cell by index.
func PositionFeature(cell int) Feature {
	return Feature{Kind: Position, Value: cell}
}

func (f Feature) String() string {
	switch f.Kind {
	case Bias:
		return "bias"
	case Direction:
		return "dir:" + maze.Direction(f.Value).String()
	case Position:
		return fmt.Sprintf("pos:%d", f.Value)
	default:
		return fmt.Sprintf("feature(%d,%d)", f.Kind, f.Value)
	}
}

// less orders features by kind, then value.
func (f Feature) less(o Feature) bool {
	if f.Kind != o.Kind {
		return f.Kind < o.Kind
	}
	return f.Value < o.Value
}

// Key is a set of active features.
type Key = mapset.Set[Feature]

// NewKey builds a key from the given features.
func NewKey(features ...Feature) Key {
	k := mapset.New[Feature]()
	for _, f := range features {
		k.Put(f)
	}
	return k
}

// InputKey encodes the situation of moving in d from cell.
func InputKey(cell int, d maze.Direction) Key {
	return NewKey(BiasFeature(), DirectionFeature(d), PositionFeature(cell))
}

// Sorted returns the features of k in a stable order.
func Sorted(k Key) []Feature {
	out := make([]Feature, 0, k.Size())
	k.Each(func(f Feature) {
		out = append(out, f)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Equal reports whether two keys hold the same features.
func Equal(a, b Key) bool {
	if a.Size() != b.Size() {
		return false
	}
	same := true
	a.Each(func(f Feature) {
		if !b.Has(f) {
			same = false
		}
	})
	return same
}
