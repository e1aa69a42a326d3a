package maze

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Step returns the position one cell away in the given direction.
// It does not check bounds or walls.
func (cp CellPosition) Step(d Direction) CellPosition {
	delta := deltas[d]
	return CellPosition{Row: cp.Row + delta.Row, Col: cp.Col + delta.Col}
}

// Direction is one of the four moves available to an agent.
// The declaration order doubles as the tie-break priority.
type Direction uint8

const (
	North Direction = iota
	West
	South
	East

	DirectionCount = 4
)

// Directions lists every direction in priority order (up, left, down, right).
var Directions = [DirectionCount]Direction{North, West, South, East}

var deltas = [DirectionCount]CellPosition{
	North: {Row: -1, Col: 0},
	West:  {Row: 0, Col: -1},
	South: {Row: 1, Col: 0},
	East:  {Row: 0, Col: 1},
}

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case West:
		return "West"
	case South:
		return "South"
	case East:
		return "East"
	default:
		return "Unknown"
	}
}

// WallSegment is a single wall edge in logical grid coordinates.
// Vertical segments run down the west edge of the cell at (Row, Col);
// horizontal segments run along its north edge.
type WallSegment struct {
	Row      int  `json:"row"`
	Col      int  `json:"col"`
	Vertical bool `json:"vertical"`
}

// SegmentOf returns the wall segment on the d side of pos.
func SegmentOf(pos CellPosition, d Direction) WallSegment {
	switch d {
	case North:
		return WallSegment{Row: pos.Row, Col: pos.Col}
	case West:
		return WallSegment{Row: pos.Row, Col: pos.Col, Vertical: true}
	case South:
		return WallSegment{Row: pos.Row + 1, Col: pos.Col}
	default:
		return WallSegment{Row: pos.Row, Col: pos.Col + 1, Vertical: true}
	}
}
