package level

import "dinerline.ai/internal/sim/model"

type Tile uint8

const (
	Wall Tile = iota
	FloorA
	FloorB
	FoodA
	FoodB
	FoodC
	Table
	Door
)

// Template codes as emitted by a TemplateCatalog.
const (
	CodeWall  = 0
	CodeFloor = 1
	CodeDoor  = 2
	CodeFoodA = 3
	CodeFoodB = 4
	CodeFoodC = 5
)

// Walkable reports whether an entity may stand on the tile.
func (t Tile) Walkable() bool { return t != Wall && t != Table }

func (t Tile) IsFloor() bool { return t == FloorA || t == FloorB }

// Food returns the food handed out by a food tile.
func (t Tile) Food() (model.FoodKind, bool) {
	switch t {
	case FoodA:
		return model.FoodA, true
	case FoodB:
		return model.FoodB, true
	case FoodC:
		return model.FoodC, true
	}
	return model.FoodNone, false
}

// FoodTile is the station tile that hands out f.
func FoodTile(f model.FoodKind) (Tile, bool) {
	switch f {
	case model.FoodA:
		return FoodA, true
	case model.FoodB:
		return FoodB, true
	case model.FoodC:
		return FoodC, true
	}
	return Wall, false
}

// Rune is the glyph used in snapshots and debug dumps.
func (t Tile) Rune() rune {
	switch t {
	case FloorA:
		return '.'
	case FloorB:
		return ','
	case FoodA:
		return 'a'
	case FoodB:
		return 'b'
	case FoodC:
		return 'c'
	case Table:
		return 'T'
	case Door:
		return 'D'
	}
	return '#'
}

func (t Tile) String() string {
	switch t {
	case FloorA:
		return "FLOOR_A"
	case FloorB:
		return "FLOOR_B"
	case FoodA:
		return "FOOD_A"
	case FoodB:
		return "FOOD_B"
	case FoodC:
		return "FOOD_C"
	case Table:
		return "TABLE"
	case Door:
		return "DOOR"
	}
	return "WALL"
}

// tileFromCode maps a template code; unknown codes are walls.
func tileFromCode(code int, floor Tile) Tile {
	switch code {
	case CodeFloor:
		return floor
	case CodeDoor:
		return Door
	case CodeFoodA:
		return FoodA
	case CodeFoodB:
		return FoodB
	case CodeFoodC:
		return FoodC
	}
	return Wall
}
