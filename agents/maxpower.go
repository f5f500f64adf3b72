package agents

import (
	"math/rand/v2"

	"github.com/nathanieltooley/gokemon-showdown/battle"
)

// MaxBasePowerPlayer uses the move with the highest base power after type effectiveness
// against its target. It falls back to a random legal order when no move does damage,
// and sends its team in a random order.
type MaxBasePowerPlayer struct {
	*RandomPlayer
}

func NewMaxBasePowerPlayer(seed *rand.PCG) *MaxBasePowerPlayer {
	return &MaxBasePowerPlayer{RandomPlayer: NewRandomPlayer(seed)}
}

type slotOrderer interface {
	SlotOrders(slot int) []battle.Order
}

func (p *MaxBasePowerPlayer) ChooseMove(b battle.Battle) battle.Order {
	if b.TeamPreview() || b.Wait() {
		return battle.DefaultOrder{}
	}

	if doubles, ok := b.(slotOrderer); ok {
		first, firstOk := p.bestOrder(b, doubles.SlotOrders(0), 0)
		second, secondOk := p.bestOrder(b, doubles.SlotOrders(1), 1)
		if !firstOk && !secondOk {
			return p.RandomPlayer.ChooseMove(b)
		}

		if joined, ok := battle.Join(first, second); ok {
			return joined
		}
		return p.RandomPlayer.ChooseMove(b)
	}

	best, ok := p.bestOrder(b, b.ValidOrders(), 0)
	if !ok {
		return p.RandomPlayer.ChooseMove(b)
	}
	return best
}

// bestOrder returns the highest scoring plain move order. When nothing scores, it returns
// a random order from the list with ok false.
func (p *MaxBasePowerPlayer) bestOrder(b battle.Battle, orders []battle.Order, slot int) (battle.Order, bool) {
	bestIndex := -1
	bestScore := 0.0

	for i, order := range orders {
		single, ok := order.(battle.SingleOrder)
		if !ok || single.Move == nil || single.Mega || single.ZMove || single.Dynamax || single.Terastallize {
			continue
		}

		score := moveScore(b, single, slot)
		if score > bestScore {
			bestIndex = i
			bestScore = score
		}
	}

	if bestIndex == -1 {
		if len(orders) == 0 {
			return battle.DefaultOrder{}, false
		}
		return orders[p.rng.IntN(len(orders))], false
	}
	return orders[bestIndex], true
}

func moveScore(b battle.Battle, order battle.SingleOrder, slot int) float64 {
	power := float64(order.Move.BasePower())
	if power <= 0 {
		return 0
	}

	var user *battle.Pokemon
	if active := b.ActivePokemon(); slot < len(active) {
		user = active[slot]
	}
	stab := 1.0
	if user != nil {
		stab = user.StabMultiplier(order.Move.Type())
	}

	opponents := b.OpponentActivePokemon()
	switch order.Target {
	case battle.OPPONENT_1_POSITION, battle.OPPONENT_2_POSITION:
		index := order.Target - 1
		if index >= len(opponents) || opponents[index] == nil {
			return 0
		}
		return power * stab * opponents[index].DamageMultiplier(order.Move.Type())
	case battle.POKEMON_1_POSITION, battle.POKEMON_2_POSITION:
		// never attack our own side
		return 0
	}

	// no target picked: singles, or a spread move. Score against the opponent it hurts most.
	best := 0.0
	for _, opponent := range opponents {
		if opponent == nil {
			continue
		}
		best = max(best, power*stab*opponent.DamageMultiplier(order.Move.Type()))
	}
	return best
}
