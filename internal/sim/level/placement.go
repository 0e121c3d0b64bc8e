package level

import (
	"fmt"
	"math/rand"

	"dinerline.ai/internal/sim/model"
)

// PlacePlayer puts a fresh player on the level's spawn point.
func PlacePlayer(lv *Level, stamina int) (model.Player, error) {
	if lv == nil || !lv.HasPlayerSpawn {
		n := -1
		if lv != nil {
			n = lv.Number
		}
		return model.Player{}, fmt.Errorf("place player on level %d: %w", n, ErrNoPlayerSpawn)
	}
	return model.Player{Pos: lv.PlayerSpawn, Stamina: stamina, Carrying: model.FoodNone}, nil
}

// PlaceCustomers draws up to CustomerCount points from the pool and seats a
// customer on each. A small pool yields fewer customers; a nil level yields none.
func PlaceCustomers(lv *Level, rng *rand.Rand, patience int) []*model.Customer {
	if lv == nil {
		return nil
	}
	n := lv.CustomerCount
	if avail := lv.SpawnPool.Len(); avail < n {
		n = avail
	}
	out := make([]*model.Customer, 0, n)
	for i := 0; i < n; i++ {
		pt, ok := lv.SpawnPool.Draw(rng)
		if !ok {
			break
		}
		out = append(out, &model.Customer{
			Slot:     i,
			Pos:      pt,
			Patience: patience,
			Wants:    model.FoodKinds[rng.Intn(len(model.FoodKinds))],
		})
	}
	return out
}
