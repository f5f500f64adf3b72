package agents

import (
	"math/rand/v2"

	"github.com/nathanieltooley/gokemon-showdown/battle"
	"github.com/samber/lo"
)

// RandomPlayer picks uniformly among the legal orders.
type RandomPlayer struct {
	rng *lockedRand
}

// NewRandomPlayer seeds the player with seed, or a random seed when nil.
func NewRandomPlayer(seed *rand.PCG) *RandomPlayer {
	return &RandomPlayer{rng: newLockedRand(seed)}
}

func (p *RandomPlayer) ChooseMove(b battle.Battle) battle.Order {
	valid := b.ValidOrders()
	if len(valid) == 0 {
		return battle.DefaultOrder{}
	}
	return valid[p.rng.IntN(len(valid))]
}

// TeamPreview sends the team in a random order.
func (p *RandomPlayer) TeamPreview(b battle.Battle) battle.Order {
	size := b.Team().Len()
	if size == 0 {
		return battle.DefaultOrder{}
	}

	return battle.TeamOrder{Slots: lo.Map(p.rng.Perm(size), func(slot int, _ int) int {
		return slot + 1
	})}
}
