package battle

import "github.com/nathanieltooley/gokemon-showdown/dex"

var _ Battle = (*SingleBattle)(nil)

// SingleBattle is a battle with one active pokemon per side.
type SingleBattle struct {
	*battleCore
}

func NewSingleBattle(tag string, username string, provider dex.Provider, gen int) *SingleBattle {
	b := &SingleBattle{battleCore: newBattleCore(tag, username, provider, gen)}
	b.setVariant(b)
	return b
}

func (b *SingleBattle) slots() int {
	return 1
}

// Active returns our active pokemon, or nil.
func (b *SingleBattle) Active() *Pokemon {
	return b.ActivePokemon()[0]
}

func (b *SingleBattle) OpponentActive() *Pokemon {
	return b.OpponentActivePokemon()[0]
}

func (b *SingleBattle) Moves() []BattleMove {
	return b.availableMoves[0]
}

func (b *SingleBattle) Switches() []*Pokemon {
	return b.availableSwitches[0]
}

// onSwitch keeps the active pokemon first in team order, like the server does.
func (b *SingleBattle) onSwitch(role string, incoming *Pokemon, outgoing *Pokemon) {
	team := b.teamFor(role)
	if outgoing != nil && outgoing != incoming {
		team.swap(outgoing, incoming)
	}
	team.moveToFront(incoming)
}

func (b *SingleBattle) swap(role string, slot int, target int) {}

func (b *SingleBattle) applyLegality(request *Request, active []*Pokemon) error {
	if request.Forced(0) {
		b.forceSwitch[0] = true
		b.availableSwitches[0] = b.switchCandidates(request)
		return nil
	}

	if len(request.Active) == 0 || len(active) == 0 {
		return nil
	}

	if err := b.slotLegality(0, &request.Active[0], active[0]); err != nil {
		return err
	}
	if !b.trapped[0] {
		b.availableSwitches[0] = b.switchCandidates(request)
	}

	return nil
}

func (b *SingleBattle) ValidOrders() []Order {
	return b.validOrders()
}

func (b *SingleBattle) validOrders() []Order {
	if b.teamPreview || b.wait {
		return []Order{DefaultOrder{}}
	}

	orders := []Order{}
	for _, move := range b.availableMoves[0] {
		orders = append(orders, SingleOrder{Move: move})
		if move.Base().IsSpecial() {
			continue
		}

		if b.canMegaEvolve[0] {
			orders = append(orders, SingleOrder{Move: move, Mega: true})
		}
		if b.CanZMoveWith(0, move) {
			orders = append(orders, SingleOrder{Move: move, ZMove: true})
		}
		if b.canDynamax[0] {
			orders = append(orders, SingleOrder{Move: move, Dynamax: true})
		}
		if b.canTerastallize[0] {
			orders = append(orders, SingleOrder{Move: move, Terastallize: true})
		}
	}

	for _, p := range b.availableSwitches[0] {
		orders = append(orders, SingleOrder{Switch: p})
	}

	if len(orders) == 0 {
		return []Order{DefaultOrder{}}
	}
	return orders
}
