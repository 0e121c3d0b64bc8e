package model

import "fmt"

// Point is a grid coordinate. X grows east, Y grows south.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

type Direction uint8

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// Directions lists the four moves in a fixed order. Random walks index into it.
var Directions = [4]Direction{Up, Down, Left, Right}

// Delta is the unit vector for d; the zero Point for an invalid direction.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	}
	return Point{}
}

func (d Direction) Valid() bool { return d >= Up && d <= Right }

func (d Direction) String() string {
	switch d {
	case Up:
		return "U"
	case Down:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "?"
}

// ParseDirection accepts the single-letter codes (U, D, L, R) and their long names.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "U", "u", "UP", "up":
		return Up, true
	case "D", "d", "DOWN", "down":
		return Down, true
	case "L", "l", "LEFT", "left":
		return Left, true
	case "R", "r", "RIGHT", "right":
		return Right, true
	}
	return 0, false
}
