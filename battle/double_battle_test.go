package battle

import (
	"testing"

	"github.com/nathanieltooley/gokemon-showdown/dex"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// three of four slots filled: the opponent's second slot is empty
func newTestDoubleBattle(t *testing.T) *DoubleBattle {
	t.Helper()

	b := NewDoubleBattle("battle-gen9vgc2024regg-1", "ash", dex.MustDefault(), 9)
	feed(t, b,
		"|player|p1|ash|1",
		"|player|p2|gary|2",
		"|gametype|doubles",
		"|switch|p1a: Gardevoir|Gardevoir, L50, F|100/100",
		"|switch|p1b: Incineroar|Incineroar, L50, M|100/100",
		"|switch|p2a: Garchomp|Garchomp, L50, M|100/100",
	)
	return b
}

func TestDoubleActiveSlots(t *testing.T) {
	b := newTestDoubleBattle(t)

	active := b.ActivePokemon()
	require.Len(t, active, 2)
	assert.Equal(t, "gardevoir", active[0].Species())
	assert.Equal(t, "incineroar", active[1].Species())

	opponents := b.OpponentActivePokemon()
	require.Len(t, opponents, 2)
	assert.Equal(t, "garchomp", opponents[0].Species())
	assert.Nil(t, opponents[1])
}

func TestTargetsSkipEmptySlots(t *testing.T) {
	b := newTestDoubleBattle(t)
	provider := dex.MustDefault()
	gardevoir := b.ActivePokemon()[0]
	incineroar := b.ActivePokemon()[1]

	cases := []struct {
		move     string
		user     *Pokemon
		dynamax  bool
		expected []int
	}{
		{"Moonblast", gardevoir, false, []int{POKEMON_2_POSITION, OPPONENT_1_POSITION}},
		{"Air Slash", incineroar, false, []int{POKEMON_1_POSITION, OPPONENT_1_POSITION}},
		{"Helping Hand", gardevoir, false, []int{POKEMON_2_POSITION}},
		{"Earthquake", gardevoir, false, []int{EMPTY_TARGET_POSITION}},
		{"Dazzling Gleam", gardevoir, false, []int{EMPTY_TARGET_POSITION}},
		{"Curse", gardevoir, false, []int{EMPTY_TARGET_POSITION}},
		{"Moonblast", gardevoir, true, []int{OPPONENT_1_POSITION}},
		{"Protect", gardevoir, true, []int{EMPTY_TARGET_POSITION}},
	}

	for _, c := range cases {
		targets := b.GetPossibleShowdownTargets(NewMove(c.move, provider), c.user, c.dynamax, false)
		assert.Equal(t, c.expected, targets, c.move)
		assert.NotContains(t, targets, OPPONENT_2_POSITION, c.move)
	}
}

func TestGhostCurseTargetsFoes(t *testing.T) {
	b := NewDoubleBattle("battle-gen9doublesou-1", "ash", dex.MustDefault(), 9)
	feed(t, b,
		"|player|p1|ash|1",
		"|player|p2|gary|2",
		"|switch|p1a: Gengar|Gengar, L50, M|100/100",
		"|switch|p2a: Garchomp|Garchomp, L50, M|100/100",
		"|switch|p2b: Amoonguss|Amoonguss, L50, F|100/100",
	)

	targets := b.GetPossibleShowdownTargets(NewMove("Curse", dex.MustDefault()), b.ActivePokemon()[0], false, false)
	assert.Equal(t, []int{OPPONENT_1_POSITION, OPPONENT_2_POSITION}, targets)
}

func TestFaintedSlotIsNotATarget(t *testing.T) {
	b := newTestDoubleBattle(t)
	feed(t, b,
		"|switch|p2b: Amoonguss|Amoonguss, L50, F|100/100",
		"|-damage|p2b: Amoonguss|0 fnt",
		"|faint|p2b: Amoonguss",
	)

	targets := b.GetPossibleShowdownTargets(NewMove("Moonblast", dex.MustDefault()), b.ActivePokemon()[0], false, false)
	assert.Equal(t, []int{POKEMON_2_POSITION, OPPONENT_1_POSITION}, targets)
}

func TestToShowdownTarget(t *testing.T) {
	b := newTestDoubleBattle(t)
	provider := dex.MustDefault()
	garchomp := b.OpponentActivePokemon()[0]
	incineroar := b.ActivePokemon()[1]

	assert.Equal(t, OPPONENT_1_POSITION, b.ToShowdownTarget(NewMove("Moonblast", provider), garchomp))
	assert.Equal(t, POKEMON_2_POSITION, b.ToShowdownTarget(NewMove("Helping Hand", provider), incineroar))
	assert.Equal(t, EMPTY_TARGET_POSITION, b.ToShowdownTarget(NewMove("Earthquake", provider), garchomp))
	assert.Equal(t, OPPONENT_1_POSITION, b.ToShowdownTarget(NewMove("Earthquake", provider).Dynamaxed(), garchomp))
	assert.Equal(t, EMPTY_TARGET_POSITION, b.ToShowdownTarget(NewMove("Moonblast", provider), nil))
}

func TestAllySwitchSwapsSlots(t *testing.T) {
	b := newTestDoubleBattle(t)
	feed(t, b, "|swap|p1a: Gardevoir|1|[from] move: Ally Switch")

	active := b.ActivePokemon()
	assert.Equal(t, "incineroar", active[0].Species())
	assert.Equal(t, "gardevoir", active[1].Species())

	self, ally := b.selfPosition(active[1])
	assert.Equal(t, POKEMON_2_POSITION, self)
	assert.Equal(t, POKEMON_1_POSITION, ally)
}

const doubleRequest = `{
	"rqid": 4,
	"active": [
		{"moves": [
			{"move": "Moonblast", "id": "moonblast", "pp": 24, "maxpp": 24, "target": "normal", "disabled": false},
			{"move": "Protect", "id": "protect", "pp": 16, "maxpp": 16, "target": "self", "disabled": false}
		], "canTerastallize": "Fairy"},
		{"moves": [
			{"move": "Fake Out", "id": "fakeout", "pp": 16, "maxpp": 16, "target": "normal", "disabled": false}
		], "canTerastallize": "Ghost"}
	],
	"side": {"name": "ash", "id": "p1", "pokemon": [
		{"ident": "p1: Gardevoir", "details": "Gardevoir, L50, F", "condition": "100/100", "active": true, "stats": {}, "moves": ["moonblast", "protect"], "baseAbility": "trace", "item": "choicespecs", "teraType": "Fairy"},
		{"ident": "p1: Incineroar", "details": "Incineroar, L50, M", "condition": "100/100", "active": true, "stats": {}, "moves": ["fakeout"], "baseAbility": "intimidate", "item": "sitrusberry", "teraType": "Ghost"}
	]}
}`

func TestDoubleValidOrders(t *testing.T) {
	b := newTestDoubleBattle(t)
	parseTestRequest(t, b, doubleRequest)

	first := lo.Map(b.SlotOrders(0), func(order Order, _ int) string { return order.Message() })
	assert.Equal(t, []string{
		"/choose move moonblast -2",
		"/choose move moonblast 1",
		"/choose move moonblast -2 terastallize",
		"/choose move moonblast 1 terastallize",
		"/choose move protect",
		"/choose move protect terastallize",
	}, first)

	second := b.SlotOrders(1)
	require.Len(t, second, 4)

	messages := lo.Map(b.ValidOrders(), func(order Order, _ int) string { return order.Message() })
	assert.Contains(t, messages, "/choose move moonblast 1, move fakeout 1")
	assert.Contains(t, messages, "/choose move moonblast 1 terastallize, move fakeout 1")
	assert.NotContains(t, messages, "/choose move moonblast 1 terastallize, move fakeout 1 terastallize")
	assert.Len(t, messages, len(first)*len(second)-3*2)
}

func TestDoubleForcedSwitchWithOneReplacement(t *testing.T) {
	b := newTestDoubleBattle(t)
	parseTestRequest(t, b, `{
		"rqid": 7,
		"forceSwitch": [true, true],
		"side": {"name": "ash", "id": "p1", "pokemon": [
			{"ident": "p1: Gardevoir", "details": "Gardevoir, L50, F", "condition": "0 fnt", "active": true, "stats": {}, "moves": ["moonblast"], "baseAbility": "trace", "item": ""},
			{"ident": "p1: Incineroar", "details": "Incineroar, L50, M", "condition": "0 fnt", "active": true, "stats": {}, "moves": ["fakeout"], "baseAbility": "intimidate", "item": ""},
			{"ident": "p1: Amoonguss", "details": "Amoonguss, L50, F", "condition": "100/100", "active": false, "stats": {}, "moves": ["spore"], "baseAbility": "regenerator", "item": "rockyhelmet"}
		]}
	}`)

	messages := lo.Map(b.ValidOrders(), func(order Order, _ int) string { return order.Message() })
	assert.Equal(t, []string{
		"/choose switch amoonguss, pass",
		"/choose pass, switch amoonguss",
	}, messages)
}

func TestDoubleForcedSwitchOnOneSlot(t *testing.T) {
	b := newTestDoubleBattle(t)
	parseTestRequest(t, b, `{
		"rqid": 8,
		"forceSwitch": [false, true],
		"side": {"name": "ash", "id": "p1", "pokemon": [
			{"ident": "p1: Gardevoir", "details": "Gardevoir, L50, F", "condition": "100/100", "active": true, "stats": {}, "moves": ["moonblast"], "baseAbility": "trace", "item": ""},
			{"ident": "p1: Incineroar", "details": "Incineroar, L50, M", "condition": "0 fnt", "active": true, "stats": {}, "moves": ["fakeout"], "baseAbility": "intimidate", "item": ""},
			{"ident": "p1: Amoonguss", "details": "Amoonguss, L50, F", "condition": "100/100", "active": false, "stats": {}, "moves": ["spore"], "baseAbility": "regenerator", "item": "rockyhelmet"},
			{"ident": "p1: Rillaboom", "details": "Rillaboom, L50, M", "condition": "100/100", "active": false, "stats": {}, "moves": ["grassyglide"], "baseAbility": "grassysurge", "item": "assaultvest"}
		]}
	}`)

	messages := lo.Map(b.ValidOrders(), func(order Order, _ int) string { return order.Message() })
	assert.Equal(t, []string{
		"/choose pass, switch amoonguss",
		"/choose pass, switch rillaboom",
	}, messages)
}
