package maze

import (
	"math/rand"

	"github.com/spakin/disjoint"
)

// edge is a wall between two cells that belong to different sections.
type edge struct {
	a, b   int   // Cell indices on either side of the wall
	vertex int   // Index into the wall flag array
	bit    uint8 // Flag to clear when the wall is torn down
}

// sections tracks the live sections during generation. Each cell owns a
// disjoint-set element whose Data is the cell index; a section is identified
// by the cell index stored in its root element.
type sections struct {
	elements []*disjoint.Element
	edges    map[int][]edge // Outgoing walls keyed by section id
	live     []int          // Section ids still in play
	slot     map[int]int    // Position of each live id in live
}

func newSections(g *Grid) *sections {
	n := g.Cells()
	s := &sections{
		elements: make([]*disjoint.Element, n),
		edges:    make(map[int][]edge, n),
		live:     make([]int, n),
		slot:     make(map[int]int, n),
	}

	for i := range s.elements {
		e := disjoint.NewElement()
		e.Data = i
		s.elements[i] = e
		s.live[i] = i
		s.slot[i] = i
	}

	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			pos := CellPosition{Row: row, Col: col}
			i := g.Index(pos)
			for _, d := range Directions {
				nbr := pos.Step(d)
				if !g.InBound(nbr) {
					continue
				}
				vertex, bit := g.wallAt(pos, d)
				s.edges[i] = append(s.edges[i], edge{a: i, b: g.Index(nbr), vertex: vertex, bit: bit})
			}
		}
	}

	return s
}

// find returns the section id of cell i.
func (s *sections) find(i int) int {
	return s.elements[i].Find().Data.(int)
}

// merge joins the sections on either side of e and returns the surviving id.
func (s *sections) merge(e edge) int {
	ra, rb := s.find(e.a), s.find(e.b)
	disjoint.Union(s.elements[e.a], s.elements[e.b])
	root := s.find(e.a)
	gone := ra
	if root == ra {
		gone = rb
	}

	merged := make([]edge, 0, len(s.edges[ra])+len(s.edges[rb]))
	for _, id := range []int{ra, rb} {
		for _, candidate := range s.edges[id] {
			if s.find(candidate.a) != s.find(candidate.b) {
				merged = append(merged, candidate)
			}
		}
	}
	s.edges[root] = merged
	delete(s.edges, gone)
	s.drop(gone)

	return root
}

// drop removes id from the live list in O(1).
func (s *sections) drop(id int) {
	i := s.slot[id]
	last := len(s.live) - 1
	s.live[i] = s.live[last]
	s.slot[s.live[i]] = i
	s.live = s.live[:last]
	delete(s.slot, id)
}

// Generate carves a perfect maze of the given dimensions.
//
// Every cell starts as its own section. While more than one section remains,
// a uniformly random section is picked, then a uniformly random wall leading
// out of it; the wall is cleared and the two sections are merged. Exactly
// width*height-1 walls are removed, so the result is a spanning tree.
func Generate(width, height int, rng *rand.Rand) (*Grid, error) {
	if rng == nil {
		return nil, ErrNilRand
	}

	g, err := New(width, height)
	if err != nil {
		return nil, err
	}

	s := newSections(g)
	for len(s.live) > 1 {
		id := s.live[rng.Intn(len(s.live))]
		out := s.edges[id]
		e := out[rng.Intn(len(out))]

		g.flags[e.vertex] &^= e.bit
		s.merge(e)
	}

	return g, nil
}
