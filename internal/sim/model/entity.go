package model

type FoodKind uint8

const (
	FoodNone FoodKind = iota
	FoodA
	FoodB
	FoodC
)

// FoodKinds are the kinds a customer may want.
var FoodKinds = [3]FoodKind{FoodA, FoodB, FoodC}

func (f FoodKind) String() string {
	switch f {
	case FoodA:
		return "FOOD_A"
	case FoodB:
		return "FOOD_B"
	case FoodC:
		return "FOOD_C"
	}
	return "NONE"
}

func ParseFoodKind(s string) FoodKind {
	switch s {
	case "FOOD_A":
		return FoodA
	case "FOOD_B":
		return FoodB
	case "FOOD_C":
		return FoodC
	}
	return FoodNone
}

type Player struct {
	Pos      Point
	Stamina  int
	Carrying FoodKind
}

// Customer is one roster entry. Patience only goes down; Fed is set once.
type Customer struct {
	Slot     int
	Pos      Point
	Patience int
	Wants    FoodKind
	Fed      bool
	Seated   bool
}

// Waiting reports whether the customer still takes part in AI steps.
func (c *Customer) Waiting() bool { return c != nil && !c.Fed && !c.Seated }
