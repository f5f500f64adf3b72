package battle

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Order is a decision ready to be sent to the server.
type Order interface {
	Message() string
}

// SingleOrder is one slot's choice: a move (with target and gimmick) or a switch.
type SingleOrder struct {
	Move   BattleMove
	Switch *Pokemon
	// target selector, only used in double battles. 0 means no target.
	Target       int
	Mega         bool
	ZMove        bool
	Dynamax      bool
	Terastallize bool
}

func (o SingleOrder) Message() string {
	if o.Switch != nil {
		return "/choose switch " + o.Switch.species
	}
	if o.Move == nil {
		return DefaultOrder{}.Message()
	}
	if o.Move.ID() == "recharge" {
		return "/choose move 1"
	}

	var message strings.Builder
	message.WriteString("/choose move ")
	message.WriteString(o.Move.ID())
	if o.Target != EMPTY_TARGET_POSITION {
		message.WriteString(" " + strconv.Itoa(o.Target))
	}

	switch {
	case o.Mega:
		message.WriteString(" mega")
	case o.ZMove:
		message.WriteString(" zmove")
	case o.Dynamax:
		message.WriteString(" dynamax")
	case o.Terastallize:
		message.WriteString(" terastallize")
	}

	return message.String()
}

func (o SingleOrder) String() string {
	return o.Message()
}

// DoubleOrder joins the choices for both slots of a double battle.
type DoubleOrder struct {
	First  Order
	Second Order
}

func (o DoubleOrder) Message() string {
	first := o.First
	if first == nil {
		first = PassOrder{}
	}
	if o.Second == nil {
		return first.Message() + ", default"
	}
	return first.Message() + ", " + strings.TrimPrefix(o.Second.Message(), "/choose ")
}

// PassOrder leaves a slot idle. Only meaningful as part of a DoubleOrder.
type PassOrder struct{}

func (PassOrder) Message() string {
	return "/choose pass"
}

// DefaultOrder lets the server pick.
type DefaultOrder struct{}

func (DefaultOrder) Message() string {
	return "/choose default"
}

type ForfeitOrder struct{}

func (ForfeitOrder) Message() string {
	return "/forfeit"
}

// TeamOrder picks the lead and team order during team preview. Slots are 1 indexed.
type TeamOrder struct {
	Slots []int
}

func (o TeamOrder) Message() string {
	return "/team " + strings.Join(lo.Map(o.Slots, func(slot int, _ int) string {
		return strconv.Itoa(slot)
	}), "")
}

func (o SingleOrder) gimmicks() (mega, zmove, dynamax, tera bool) {
	return o.Mega, o.ZMove, o.Dynamax, o.Terastallize
}

// Join combines two slot orders, refusing pairs that can't both happen: two gimmicks of the
// same kind or two switches into the same pokemon.
func Join(first Order, second Order) (DoubleOrder, bool) {
	a, aSingle := first.(SingleOrder)
	b, bSingle := second.(SingleOrder)
	if aSingle && bSingle {
		aMega, aZ, aDyna, aTera := a.gimmicks()
		bMega, bZ, bDyna, bTera := b.gimmicks()
		if (aMega && bMega) || (aZ && bZ) || (aDyna && bDyna) || (aTera && bTera) {
			return DoubleOrder{}, false
		}
		if a.Switch != nil && a.Switch == b.Switch {
			return DoubleOrder{}, false
		}
	}

	_, aPass := first.(PassOrder)
	_, bPass := second.(PassOrder)
	if aPass && bPass {
		return DoubleOrder{}, false
	}

	return DoubleOrder{First: first, Second: second}, true
}

// JoinOrders builds every consistent pair. When none is left the server decides.
func JoinOrders(first []Order, second []Order) []Order {
	joined := []Order{}
	for _, a := range first {
		for _, b := range second {
			if order, ok := Join(a, b); ok {
				joined = append(joined, order)
			}
		}
	}

	if len(joined) == 0 {
		return []Order{DefaultOrder{}}
	}
	return joined
}

type ConvertOptions struct {
	// Strict rejects illegal orders instead of replacing them with a random legal one.
	Strict bool
	Rand   *rand.Rand
}

// ToWireCommand checks an order against the battle's legal orders and returns the command
// to send.
func ToWireCommand(b Battle, order Order, options ConvertOptions) (string, error) {
	switch order.(type) {
	case DefaultOrder, ForfeitOrder, TeamOrder:
		return order.Message(), nil
	}

	valid := b.ValidOrders()
	message := order.Message()
	if lo.ContainsBy(valid, func(candidate Order) bool { return candidate.Message() == message }) {
		return message, nil
	}

	if options.Strict {
		return "", fmt.Errorf("%w: %q in %s", ErrIllegalOrder, message, b.Tag())
	}

	if len(valid) == 0 {
		warn(internalLogger, "illegal order and nothing legal to replace it with", "order", message, "battle", b.Tag())
		return DefaultOrder{}.Message(), nil
	}

	pick := rand.IntN
	if options.Rand != nil {
		pick = options.Rand.IntN
	}
	replacement := valid[pick(len(valid))].Message()
	warn(internalLogger, "illegal order replaced with a random legal one", "order", message, "replacement", replacement, "battle", b.Tag())

	return replacement, nil
}
