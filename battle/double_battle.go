package battle

import (
	"slices"

	"github.com/nathanieltooley/gokemon-showdown/dex"
	"github.com/samber/lo"
)

var _ Battle = (*DoubleBattle)(nil)

// DoubleBattle is a battle with two active pokemon per side.
type DoubleBattle struct {
	*battleCore
}

func NewDoubleBattle(tag string, username string, provider dex.Provider, gen int) *DoubleBattle {
	b := &DoubleBattle{battleCore: newBattleCore(tag, username, provider, gen)}
	b.setVariant(b)
	return b
}

func (b *DoubleBattle) slots() int {
	return 2
}

// positions are tracked per slot, team order doesn't move
func (b *DoubleBattle) onSwitch(role string, incoming *Pokemon, outgoing *Pokemon) {}

// swap handles Ally Switch and shifts: the pokemon in slot moves to target.
func (b *DoubleBattle) swap(role string, slot int, target int) {
	slots := b.active[role]
	if slot < 0 || slot >= len(slots) || target < 0 || target >= len(slots) {
		warn(internalLogger, "swap outside the field", "role", role, "slot", slot, "target", target)
		return
	}
	slots[slot], slots[target] = slots[target], slots[slot]
}

func (b *DoubleBattle) applyLegality(request *Request, active []*Pokemon) error {
	candidates := b.switchCandidates(request)

	if request.AnyForced() {
		for slot := range b.slots() {
			if request.Forced(slot) {
				b.forceSwitch[slot] = true
				b.availableSwitches[slot] = candidates
			}
		}
		return nil
	}

	for slot := range b.slots() {
		if slot >= len(request.Active) || slot >= len(active) {
			break
		}

		p := active[slot]
		commanding := slot < len(request.Side.Pokemon) && request.Side.Pokemon[slot].Commanding
		if p.Fainted() || commanding {
			continue
		}

		if err := b.slotLegality(slot, &request.Active[slot], p); err != nil {
			return err
		}
		if !b.trapped[slot] {
			b.availableSwitches[slot] = candidates
		}
	}

	return nil
}

// selfPosition is the target selector for the slot p occupies.
func (b *DoubleBattle) selfPosition(p *Pokemon) (self int, ally int) {
	if slices.Index(b.active[b.playerRole], p) == 1 {
		return POKEMON_2_POSITION, POKEMON_1_POSITION
	}
	return POKEMON_1_POSITION, POKEMON_2_POSITION
}

// GetPossibleShowdownTargets lists every target selector the move can be sent with, allies
// first. Selectors pointing at empty or fainted slots are left out.
func (b *DoubleBattle) GetPossibleShowdownTargets(move BattleMove, p *Pokemon, dynamax bool, terastallize bool) []int {
	self, ally := b.selfPosition(p)
	foes := []int{OPPONENT_1_POSITION, OPPONENT_2_POSITION}

	var targets []int
	base := move.Base()

	switch {
	case dynamax || move.IsDynamaxed() || p.IsDynamaxed():
		if base.Category() == CATEGORY_STATUS {
			targets = []int{EMPTY_TARGET_POSITION}
		} else {
			targets = foes
		}
	case base.ID() == "curse":
		if p.HasType(TYPE_GHOST) {
			targets = foes
		} else {
			targets = []int{EMPTY_TARGET_POSITION}
		}
	case base.ID() == "terastarstorm" && p.teraType == TYPE_STELLAR && (p.terastallized || terastallize):
		targets = []int{EMPTY_TARGET_POSITION}
	default:
		switch base.Target() {
		case TARGET_ADJACENT_ALLY:
			targets = []int{ally}
		case TARGET_ADJACENT_ALLY_OR_SELF:
			targets = []int{ally, self}
		case TARGET_ADJACENT_FOE:
			targets = foes
		case TARGET_ANY, TARGET_NORMAL:
			targets = []int{ally, OPPONENT_1_POSITION, OPPONENT_2_POSITION}
		default:
			targets = []int{EMPTY_TARGET_POSITION}
		}
	}

	return lo.Filter(targets, func(target int, _ int) bool {
		return target == EMPTY_TARGET_POSITION || b.occupied(target)
	})
}

func (b *DoubleBattle) occupied(target int) bool {
	var p *Pokemon
	switch target {
	case POKEMON_1_POSITION:
		p = b.activeAt(b.playerRole, 0)
	case POKEMON_2_POSITION:
		p = b.activeAt(b.playerRole, 1)
	case OPPONENT_1_POSITION:
		p = b.activeAt(b.OpponentRole(), 0)
	case OPPONENT_2_POSITION:
		p = b.activeAt(b.OpponentRole(), 1)
	}
	return p != nil && p.active && !p.Fainted()
}

// ToShowdownTarget is the selector to send when aiming the move at target.
func (b *DoubleBattle) ToShowdownTarget(move BattleMove, target *Pokemon) int {
	switch move.Base().Target() {
	case TARGET_ADJACENT_ALLY, TARGET_ADJACENT_ALLY_OR_SELF, TARGET_ADJACENT_FOE, TARGET_ANY, TARGET_NORMAL:
	default:
		if !move.IsDynamaxed() {
			return EMPTY_TARGET_POSITION
		}
	}

	if target == nil {
		return EMPTY_TARGET_POSITION
	}
	if i := slices.Index(b.OpponentActivePokemon(), target); i >= 0 {
		return i + 1
	}
	if i := slices.Index(b.ActivePokemon(), target); i >= 0 {
		return -(i + 1)
	}
	return EMPTY_TARGET_POSITION
}

func (b *DoubleBattle) ValidOrders() []Order {
	return b.validOrders()
}

func (b *DoubleBattle) validOrders() []Order {
	if b.teamPreview || b.wait {
		return []Order{DefaultOrder{}}
	}
	return JoinOrders(b.slotOrders(0), b.slotOrders(1))
}

// SlotOrders lists the legal choices of one slot on its own.
func (b *DoubleBattle) SlotOrders(slot int) []Order {
	return b.slotOrders(slot)
}

func (b *DoubleBattle) slotOrders(slot int) []Order {
	if lo.Contains(b.forceSwitch, true) {
		if !b.forceSwitch[slot] {
			return []Order{PassOrder{}}
		}

		orders := lo.Map(b.availableSwitches[slot], func(p *Pokemon, _ int) Order {
			return SingleOrder{Switch: p}
		})
		// both slots need a replacement but there's only enough for one
		forced := lo.Count(b.forceSwitch, true)
		if len(b.availableSwitches[slot]) < forced {
			orders = append(orders, PassOrder{})
		}
		return orders
	}

	p := b.ActivePokemon()[slot]
	if p == nil {
		return []Order{PassOrder{}}
	}

	orders := []Order{}
	for _, move := range b.availableMoves[slot] {
		for _, target := range b.GetPossibleShowdownTargets(move, p, false, false) {
			orders = append(orders, SingleOrder{Move: move, Target: target})
			if move.Base().IsSpecial() {
				continue
			}
			if b.canMegaEvolve[slot] {
				orders = append(orders, SingleOrder{Move: move, Target: target, Mega: true})
			}
			if b.CanZMoveWith(slot, move) {
				orders = append(orders, SingleOrder{Move: move, Target: target, ZMove: true})
			}
		}

		if move.Base().IsSpecial() {
			continue
		}
		if b.canDynamax[slot] {
			for _, target := range b.GetPossibleShowdownTargets(move, p, true, false) {
				orders = append(orders, SingleOrder{Move: move, Target: target, Dynamax: true})
			}
		}
		if b.canTerastallize[slot] {
			for _, target := range b.GetPossibleShowdownTargets(move, p, false, true) {
				orders = append(orders, SingleOrder{Move: move, Target: target, Terastallize: true})
			}
		}
	}

	for _, switchTarget := range b.availableSwitches[slot] {
		orders = append(orders, SingleOrder{Switch: switchTarget})
	}

	if len(orders) == 0 {
		return []Order{PassOrder{}}
	}
	return orders
}
