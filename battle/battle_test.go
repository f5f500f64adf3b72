package battle

import (
	"strings"
	"testing"

	"github.com/nathanieltooley/gokemon-showdown/dex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBattle(t *testing.T) *SingleBattle {
	t.Helper()

	b := NewSingleBattle("battle-gen9ou-1", "ash", dex.MustDefault(), 9)
	feed(t, b,
		"|player|p1|ash|1",
		"|player|p2|gary|2",
	)
	return b
}

func feed(t *testing.T, b Battle, lines ...string) {
	t.Helper()

	for _, line := range lines {
		require.NoError(t, b.ParseMessage(strings.Split(line, "|")), line)
	}
}

func mustGet(t *testing.T, b Battle, identifier string) *Pokemon {
	t.Helper()

	p, err := b.GetPokemon(identifier)
	require.NoError(t, err)
	return p
}

func TestPlayerRoles(t *testing.T) {
	b := newTestBattle(t)

	assert.Equal(t, "p1", b.PlayerRole())
	assert.Equal(t, "p2", b.OpponentRole())
	assert.Equal(t, "gary", b.OpponentUsername())
}

func TestLookupIsIdempotent(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b, "|switch|p2a: Venusaur|Venusaur, L50, F|100/100")

	first := mustGet(t, b, "p2a: Venusaur")
	assert.Same(t, first, mustGet(t, b, "p2: Venusaur"))
	assert.Same(t, first, mustGet(t, b, "p2b: Venusaur"))
	assert.Equal(t, 1, b.OpponentTeam().Len())
}

func TestSwitchDamageFaint(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p1a: Charizard|Charizard, L50, M|150/150",
		"|switch|p2a: Venusaur|Venusaur, L50, F|100/100",
		"|turn|1",
		"|move|p1a: Charizard|Flamethrower|p2a: Venusaur",
		"|-supereffective|p2a: Venusaur",
		"|-damage|p2a: Venusaur|0 fnt",
		"|faint|p2a: Venusaur",
		"|switch|p2a: Blastoise|Blastoise, L50|100/100",
	)

	venusaur := mustGet(t, b, "p2: Venusaur")
	assert.True(t, venusaur.Fainted())
	assert.False(t, venusaur.Active())
	assert.True(t, venusaur.Revealed())

	assert.Equal(t, "blastoise", b.OpponentActive().Species())
	assert.Equal(t, 2, b.OpponentTeam().Len())

	charizard := b.Active()
	require.NotNil(t, charizard)
	flamethrower, ok := charizard.Move("flamethrower")
	require.True(t, ok)
	assert.Equal(t, flamethrower.MaxPP()-1, flamethrower.CurrentPP())
	assert.Equal(t, 150, charizard.CurrentHP())
}

func TestBoostEventsAreClamped(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p1a: Charizard|Charizard, L50, M|150/150",
		"|-boost|p1a: Charizard|spa|4",
		"|-boost|p1a: Charizard|spa|4",
		"|-unboost|p1a: Charizard|spe|20",
	)

	assert.Equal(t, MAX_BOOST, b.Active().Boost(STAT_SPATTACK))
	assert.Equal(t, MIN_BOOST, b.Active().Boost(STAT_SPEED))

	feed(t, b, "|-setboost|p1a: Charizard|atk|12")
	assert.Equal(t, MAX_BOOST, b.Active().Boost(STAT_ATTACK))
}

func TestTeamSizeBound(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|teamsize|p2|2",
		"|switch|p2a: Pikachu|Pikachu, L50|100/100",
		"|switch|p2a: Raichu|Raichu, L50|100/100",
	)

	err := b.ParseMessage(strings.Split("|switch|p2a: Gengar|Gengar, L50|100/100", "|"))
	require.ErrorIs(t, err, ErrTeamFull)

	var eventErr *EventError
	require.ErrorAs(t, err, &eventErr)
	assert.Equal(t, "switch", eventErr.Event[1])
	assert.Equal(t, 2, b.OpponentTeam().Len())
	assert.Equal(t, "raichu", b.OpponentActive().Species())
}

func TestSwitchOutResetsVolatilesButKeepsKnowledge(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Venusaur|Venusaur, L50, F|100/100",
		"|-boost|p2a: Venusaur|spa|2",
		"|-start|p2a: Venusaur|confusion",
		"|move|p2a: Venusaur|Giga Drain|p1a: Charizard",
		"|-heal|p2a: Venusaur|80/100|[from] item: Black Sludge",
		"|-ability|p2a: Venusaur|Chlorophyll",
		"|switch|p2a: Blastoise|Blastoise, L50|100/100",
	)

	venusaur := mustGet(t, b, "p2: Venusaur")
	assert.Zero(t, venusaur.Boost(STAT_SPATTACK))
	assert.Empty(t, venusaur.Effects())
	assert.Equal(t, "blacksludge", venusaur.Item().ID())
	assert.Equal(t, "chlorophyll", venusaur.Ability().ID())
	assert.Equal(t, 80, venusaur.CurrentHP())

	_, ok := venusaur.Move("gigadrain")
	assert.True(t, ok)

	feed(t, b, "|switch|p2a: Venusaur|Venusaur, L50, F|80/100")
	assert.Same(t, venusaur, b.OpponentActive())
	assert.Equal(t, 2, b.OpponentTeam().Len())
}

func TestToxicCounter(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Venusaur|Venusaur, L50, F|100/100",
		"|-status|p2a: Venusaur|tox",
		"|turn|1",
		"|turn|2",
	)

	venusaur := b.OpponentActive()
	assert.Equal(t, STATUS_TOX, venusaur.Status())
	assert.Equal(t, 2, venusaur.StatusCounter())

	feed(t, b, "|switch|p2a: Blastoise|Blastoise, L50|100/100")
	assert.Equal(t, STATUS_TOX, venusaur.Status())
	assert.Zero(t, venusaur.StatusCounter())

	feed(t, b, "|turn|3")
	assert.Zero(t, venusaur.StatusCounter())
}

func TestPPOnlyGoesDown(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Toxapex|Toxapex, L50|100/100",
		"|move|p2a: Toxapex|Protect|p2a: Toxapex",
		"|move|p2a: Toxapex|Protect|p2a: Toxapex|[still]",
	)

	protect, ok := b.OpponentActive().Move("protect")
	require.True(t, ok)
	assert.Equal(t, 14, protect.CurrentPP())
	assert.Equal(t, 16, protect.MaxPP())
}

func TestStillProtectDoesNotCount(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Toxapex|Toxapex, L50|100/100",
		"|move|p2a: Toxapex|Protect|p2a: Toxapex",
	)
	assert.Equal(t, 1, b.OpponentActive().ProtectCounter())

	feed(t, b, "|move|p2a: Toxapex|Protect|p2a: Toxapex|[still]")
	assert.Zero(t, b.OpponentActive().ProtectCounter())
}

func TestAbilityStartsEffect(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Heatran|Heatran, L50|100/100",
		"|-start|p2a: Heatran|ability: Flash Fire",
	)

	heatran := b.OpponentActive()
	assert.Equal(t, "flashfire", heatran.Ability().ID())
	assert.True(t, heatran.HasEffect(EFFECT_FLASH_FIRE))

	feed(t, b,
		"|switch|p2a: Regigigas|Regigigas, L50|100/100",
		"|-start|p2a: Regigigas|ability: Slow Start",
	)

	regigigas := b.OpponentActive()
	assert.Equal(t, "slowstart", regigigas.Ability().ID())
	assert.True(t, regigigas.HasEffect(EFFECT_SLOW_START))
}

func TestLockedMoveCostsNoPP(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Dragonite|Dragonite, L50, M|100/100",
		"|move|p2a: Dragonite|Outrage|p1a: Charizard",
		"|move|p2a: Dragonite|Outrage|p1a: Charizard|[from]lockedmove",
	)

	outrage, ok := b.OpponentActive().Move("outrage")
	require.True(t, ok)
	assert.Equal(t, outrage.MaxPP()-1, outrage.CurrentPP())
}

func TestSleepTalkAccounting(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Snorlax|Snorlax, L50, M|100/100",
		"|-status|p2a: Snorlax|slp",
		"|move|p2a: Snorlax|Sleep Talk|",
		"|move|p2a: Snorlax|Tackle|p1a: Charizard|[from]move: Sleep Talk",
	)

	snorlax := b.OpponentActive()

	sleepTalk, ok := snorlax.Move("sleeptalk")
	require.True(t, ok)
	assert.Equal(t, 15, sleepTalk.CurrentPP())

	tackle, ok := snorlax.Move("tackle")
	require.True(t, ok)
	assert.Equal(t, tackle.MaxPP()-1, tackle.CurrentPP())

	assert.Equal(t, 1, snorlax.StatusCounter())
}

func TestCalledMoveIsNotLearned(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Clefable|Clefable, L50, F|100/100",
		"|move|p2a: Clefable|Metronome|",
		"|move|p2a: Clefable|Flamethrower|p1a: Charizard|[from]move: Metronome",
	)

	clefable := b.OpponentActive()
	metronome, ok := clefable.Move("metronome")
	require.True(t, ok)
	assert.Equal(t, metronome.MaxPP()-1, metronome.CurrentPP())

	_, ok = clefable.Move("flamethrower")
	assert.False(t, ok)
}

func TestMagicBounceDoesNotReveal(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Hatterene|Hatterene, L50, F|100/100",
		"|move|p2a: Hatterene|Stealth Rock|p1a: Charizard|[from]ability: Magic Bounce",
	)

	hatterene := b.OpponentActive()
	assert.Equal(t, "magicbounce", hatterene.Ability().ID())
	assert.Empty(t, hatterene.Moves())
}

func TestSideConditions(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|-sidestart|p2: gary|move: Spikes",
		"|-sidestart|p2: gary|move: Spikes",
		"|turn|3",
		"|-sidestart|p1: ash|Reflect",
		"|turn|4",
		"|-sidestart|p1: ash|Reflect",
	)

	assert.Equal(t, 2, b.OpponentSideConditions()[SIDE_SPIKES])
	assert.Equal(t, 3, b.SideConditions()[SIDE_REFLECT])

	err := b.ParseMessage(strings.Split("|-sideend|p1: ash|move: Light Screen", "|"))
	require.ErrorIs(t, err, ErrUnknownSideCondition)

	feed(t, b, "|-sideend|p1: ash|Reflect")
	assert.NotContains(t, b.SideConditions(), SIDE_REFLECT)

	feed(t, b, "|-swapsideconditions|")
	assert.Equal(t, 2, b.SideConditions()[SIDE_SPIKES])
	assert.Empty(t, b.OpponentSideConditions())
}

func TestFieldsAndWeather(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|-fieldstart|move: Electric Terrain",
		"|-fieldstart|move: Grassy Terrain",
		"|-weather|RainDance",
	)

	assert.Equal(t, map[Field]int{FIELD_GRASSY_TERRAIN: 0}, b.Fields())
	assert.Contains(t, b.Weather(), WEATHER_RAINDANCE)

	err := b.ParseMessage(strings.Split("|-fieldend|move: Psychic Terrain", "|"))
	require.ErrorIs(t, err, ErrUnknownField)

	feed(t, b,
		"|-weather|RainDance|[upkeep]",
		"|-weather|none",
	)
	assert.Empty(t, b.Weather())
}

func TestItemsMoveBetweenPokemon(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p1a: Charizard|Charizard, L50, M|150/150",
		"|switch|p2a: Venusaur|Venusaur, L50, F|100/100",
		"|-item|p2a: Venusaur|Black Sludge|[from] ability: Frisk|[of] p1a: Charizard",
		"|move|p1a: Charizard|Thief|p2a: Venusaur",
		"|-item|p1a: Charizard|Black Sludge|[from] move: Thief|[of] p2a: Venusaur",
	)

	charizard := mustGet(t, b, "p1: Charizard")
	venusaur := mustGet(t, b, "p2: Venusaur")

	assert.Equal(t, "frisk", charizard.Ability().ID())
	assert.Equal(t, "blacksludge", charizard.Item().ID())
	assert.True(t, venusaur.Item().IsAbsent())
}

func TestDamageSourcesRevealOwners(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p1a: Charizard|Charizard, L50, M|150/150",
		"|switch|p2a: Garchomp|Garchomp, L50, M|100/100",
		"|-damage|p1a: Charizard|120/150|[from] item: Life Orb",
		"|-damage|p1a: Charizard|100/150|[from] ability: Rough Skin|[of] p2a: Garchomp",
	)

	assert.Equal(t, "lifeorb", b.Active().Item().ID())
	assert.Equal(t, "roughskin", b.OpponentActive().Ability().ID())
	assert.True(t, b.Active().Ability().IsUnknown())
	assert.Equal(t, 100, b.Active().CurrentHP())
}

func TestTraceCopiesAbility(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p1a: Gardevoir|Gardevoir, L50, F|100/100",
		"|switch|p2a: Garchomp|Garchomp, L50, M|100/100",
		"|-ability|p1a: Gardevoir|Rough Skin|[from] ability: Trace|[of] p2a: Garchomp",
	)

	gardevoir := b.Active()
	assert.Equal(t, "roughskin", gardevoir.Ability().ID())
	assert.Equal(t, "trace", gardevoir.BaseAbility().ID())
	assert.Equal(t, "roughskin", b.OpponentActive().Ability().ID())

	feed(t, b, "|switch|p1a: Incineroar|Incineroar, L50, M|100/100")
	assert.Equal(t, "trace", gardevoir.Ability().ID())
}

func TestSkillSwap(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p1a: Gardevoir|Gardevoir, L50, F|100/100",
		"|switch|p2a: Garchomp|Garchomp, L50, M|100/100",
		"|-activate|p1a: Gardevoir|move: Skill Swap|Rough Skin|Trace|[of] p2a: Garchomp",
	)

	assert.Equal(t, "roughskin", b.Active().Ability().ID())
	assert.Equal(t, "trace", b.Active().BaseAbility().ID())
	assert.Equal(t, "trace", b.OpponentActive().Ability().ID())
	assert.Equal(t, "roughskin", b.OpponentActive().BaseAbility().ID())
}

func TestMegaEvolutionEvent(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Charizard|Charizard, L50, M|100/100",
		"|detailschange|p2a: Charizard|Charizard-Mega-Y, L50, M",
		"|-mega|p2a: Charizard|Charizard|Charizardite Y",
	)

	charizard := b.OpponentActive()
	assert.Equal(t, "charizardmegay", charizard.Species())
	assert.Equal(t, "charizarditey", charizard.Item().ID())
	assert.True(t, b.UsedMegaEvolve("p2"))
	assert.False(t, b.UsedMegaEvolve("p1"))
}

func TestTerastallizeEvent(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p2a: Dragonite|Dragonite, L50, M|100/100",
		"|-terastallize|p2a: Dragonite|Normal",
	)

	dragonite := b.OpponentActive()
	assert.Equal(t, []PokemonType{TYPE_NORMAL}, dragonite.Types())
	assert.True(t, b.UsedTerastallize("p2"))
}

func TestTransformEvent(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p1a: Garchomp|Garchomp, L50, M|100/100",
		"|switch|p2a: Ditto|Ditto|100/100",
		"|-boost|p1a: Garchomp|atk|1",
		"|move|p2a: Ditto|Transform|p1a: Garchomp",
		"|-transform|p2a: Ditto|p1a: Garchomp|[from] ability: Imposter",
		"|move|p2a: Ditto|Earthquake|p1a: Garchomp",
	)

	ditto := b.OpponentActive()
	assert.True(t, ditto.Transformed())
	assert.Equal(t, "imposter", ditto.BaseAbility().ID())
	assert.Equal(t, 1, ditto.Boost(STAT_ATTACK))
	assert.True(t, ditto.HasType(TYPE_DRAGON))

	_, ok := ditto.Move("earthquake")
	assert.False(t, ok)
}

func TestIllusionReplace(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p1a: Garchomp|Garchomp, L50, M|100/100",
		"|switch|p2a: Charizard|Charizard, L50, M|100/100",
		"|move|p2a: Charizard|Flamethrower|p1a: Garchomp",
		"|-damage|p2a: Charizard|60/100",
		"|replace|p2a: Zoroark|Zoroark, L50, M",
		"|-end|p2a: Zoroark|Illusion",
	)

	zoroark := b.OpponentActive()
	require.NotNil(t, zoroark)
	assert.Equal(t, "zoroark", zoroark.Species())
	assert.Equal(t, 60, zoroark.CurrentHP())
	assert.Equal(t, "illusion", zoroark.Ability().ID())

	_, ok := zoroark.Move("flamethrower")
	assert.True(t, ok)

	// the charizard was never really there
	assert.Equal(t, 1, b.OpponentTeam().Len())
	_, ok = b.OpponentTeam().Get("p2: Charizard")
	assert.False(t, ok)
}

func TestReplaceWithNothingActive(t *testing.T) {
	b := newTestBattle(t)

	err := b.ParseMessage(strings.Split("|replace|p2a: Zoroark|Zoroark, L50, M", "|"))
	require.ErrorIs(t, err, ErrIllusion)
}

func TestTeamPreviewKeysAreRewritten(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|clearpoke",
		"|poke|p1|Garchomp, L50, M|",
		"|poke|p2|Charizard, L50, M|",
		"|poke|p2|Venusaur, L50, F|",
		"|teampreview|2",
		"|switch|p2a: Zard|Charizard, L50, M|100/100",
	)

	assert.Equal(t, 2, b.OpponentTeam().Len())
	assert.Zero(t, b.Team().Len())
	assert.Equal(t, 2, b.MaxTeamSize())

	zard, ok := b.OpponentTeam().Get("p2: Zard")
	require.True(t, ok)
	assert.Equal(t, "Zard", zard.Name())
	assert.Same(t, zard, b.OpponentActive())
}

func TestUnhandledEvent(t *testing.T) {
	b := newTestBattle(t)

	err := b.ParseMessage([]string{"", "notakeyword", "x"})
	require.ErrorIs(t, err, ErrUnhandledEvent)

	var unhandled *UnhandledEventError
	require.ErrorAs(t, err, &unhandled)
	assert.Equal(t, "notakeyword", unhandled.Event[1])
	assert.Contains(t, b.Log(), "|notakeyword|x")
}

func TestIgnoredEventsAreStillLogged(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|j|☆gary",
		"|c|☆gary|gl hf",
		"|-crit|p2a: Venusaur",
	)

	assert.Contains(t, b.Log(), "|c|☆gary|gl hf")
	assert.Len(t, b.CurrentObservation().Events, 5)
}

func TestMalformedEvents(t *testing.T) {
	b := newTestBattle(t)

	require.ErrorIs(t, b.ParseMessage([]string{"turn"}), ErrMalformedEvent)
	require.ErrorIs(t, b.ParseMessage(strings.Split("|turn|soon", "|")), ErrMalformedEvent)
	require.ErrorIs(t, b.ParseMessage(strings.Split("|switch|p1a: Charizard", "|")), ErrMalformedEvent)
	require.Error(t, b.ParseMessage(strings.Split("|switch|p1a: Charizard|Charizard|lots/100", "|")))
}

func TestObservationsStoredPerTurn(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|switch|p1a: Charizard|Charizard, L50, M|150/150",
		"|switch|p2a: Venusaur|Venusaur, L50, F|100/100",
		"|turn|1",
		"|move|p1a: Charizard|Flamethrower|p2a: Venusaur",
		"|-damage|p2a: Venusaur|50/100",
		"|turn|2",
		"|-damage|p2a: Venusaur|20/100",
	)

	observations := b.Observations()
	require.Contains(t, observations, 0)
	require.Contains(t, observations, 1)

	turnOne := observations[1]
	assert.Equal(t, []string{"", "move", "p1a: Charizard", "Flamethrower", "p2a: Venusaur"}, turnOne.Events[0])
	require.NotNil(t, turnOne.OpponentActivePokemon[0])
	assert.Equal(t, 50, turnOne.OpponentActivePokemon[0].CurrentHP)
	assert.Equal(t, []string{"flamethrower"}, turnOne.Team["p1: Charizard"].Moves)

	assert.Equal(t, 2, b.Turn())
	assert.Equal(t, 20, b.OpponentActive().CurrentHP())
	assert.Len(t, b.CurrentObservation().Events, 1)
}

func TestWinAndTie(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b, "|turn|1", "|win|ash")

	assert.True(t, b.Finished())
	assert.True(t, b.Won())
	assert.False(t, b.Lost())
	assert.Contains(t, b.Observations(), 1)

	tied := newTestBattle(t)
	feed(t, tied, "|tie")
	assert.True(t, tied.Finished())
	assert.True(t, tied.Tied())
	assert.False(t, tied.Won())
}

func TestGenAndFormatMetadata(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b,
		"|gen|8",
		"|tier|[Gen 8] OU",
		"|rule|Sleep Clause Mod: Limit one foe put to sleep",
	)

	assert.Equal(t, 8, b.Gen())
	assert.Equal(t, "[Gen 8] OU", b.Format())
	assert.Len(t, b.Rules(), 1)
}

const charizardRequest = `{
	"rqid": 3,
	"active": [{
		"moves": [
			{"move": "Flamethrower", "id": "flamethrower", "pp": 24, "maxpp": 24, "target": "normal", "disabled": false},
			{"move": "Roost", "id": "roost", "pp": 8, "maxpp": 8, "target": "self", "disabled": false}
		],
		"canMegaEvo": true
	}],
	"side": {
		"name": "ash",
		"id": "p1",
		"pokemon": [
			{
				"ident": "p1: Charizard",
				"details": "Charizard, L50, M",
				"condition": "153/153",
				"active": true,
				"stats": {"atk": 104, "def": 98, "spa": 129, "spd": 105, "spe": 120},
				"moves": ["flamethrower", "roost"],
				"baseAbility": "blaze",
				"item": "charizarditex",
				"pokeball": "pokeball",
				"ability": "blaze"
			},
			{
				"ident": "p1: Blastoise",
				"details": "Blastoise, L50, F",
				"condition": "154/154",
				"active": false,
				"stats": {"atk": 103, "def": 120, "spa": 105, "spd": 125, "spe": 98},
				"moves": ["scald", "icebeam"],
				"baseAbility": "torrent",
				"item": "leftovers",
				"pokeball": "pokeball",
				"ability": "torrent"
			}
		]
	}
}`

func parseTestRequest(t *testing.T, b Battle, payload string) {
	t.Helper()

	request, err := ParseRequestJSON([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, b.ParseRequest(request))
}

func TestRequestBuildsOurTeam(t *testing.T) {
	b := NewSingleBattle("battle-gen7ou-1", "ash", dex.MustDefault(), 7)
	parseTestRequest(t, b, charizardRequest)

	assert.Equal(t, "p1", b.PlayerRole())
	assert.Equal(t, 2, b.Team().Len())

	charizard := b.Active()
	require.NotNil(t, charizard)
	assert.Equal(t, "charizard", charizard.Species())
	assert.Equal(t, 153, charizard.MaxHP())
	assert.Equal(t, 153, charizard.Stats()[STAT_HP])
	assert.Equal(t, 129, charizard.Stats()[STAT_SPATTACK])
	assert.Equal(t, "charizarditex", charizard.Item().ID())
	assert.Equal(t, "blaze", charizard.Ability().ID())

	require.Len(t, b.Moves(), 2)
	assert.Equal(t, "flamethrower", b.Moves()[0].ID())
	require.Len(t, b.Switches(), 1)
	assert.Equal(t, "blastoise", b.Switches()[0].Species())
	assert.Equal(t, []bool{true}, b.CanMegaEvolve())
}

func TestRequestNeverRaisesPP(t *testing.T) {
	b := NewSingleBattle("battle-gen7ou-1", "ash", dex.MustDefault(), 7)
	parseTestRequest(t, b, strings.Replace(charizardRequest, `"pp": 24`, `"pp": 20`, 1))
	parseTestRequest(t, b, charizardRequest)

	flamethrower, ok := b.Active().Move("flamethrower")
	require.True(t, ok)
	assert.Equal(t, 20, flamethrower.CurrentPP())
}

func TestRequestAfterSwitchLines(t *testing.T) {
	b := NewSingleBattle("battle-gen7ou-1", "ash", dex.MustDefault(), 7)
	parseTestRequest(t, b, charizardRequest)
	feed(t, b,
		"|player|p1|ash|1",
		"|player|p2|gary|2",
		"|switch|p1a: Charizard|Charizard, L50, M|153/153",
		"|switch|p2a: Venusaur|Venusaur, L50, F|100/100",
	)

	assert.Equal(t, 2, b.Team().Len())
	assert.Same(t, mustGet(t, b, "p1: Charizard"), b.Active())
}

func TestRequestWithUnexplainedMove(t *testing.T) {
	b := NewSingleBattle("battle-gen7ou-1", "ash", dex.MustDefault(), 7)
	payload := strings.Replace(charizardRequest, `"id": "roost"`, `"id": "thunderbolt"`, 1)

	request, err := ParseRequestJSON([]byte(payload))
	require.NoError(t, err)

	err = b.ParseRequest(request)
	require.ErrorIs(t, err, ErrUnexplainedMove)

	var requestErr *RequestError
	require.ErrorAs(t, err, &requestErr)
	assert.Same(t, request, requestErr.Request)
}

func TestRequestRespectsTeamSize(t *testing.T) {
	b := newTestBattle(t)
	feed(t, b, "|teamsize|p1|2")

	venusaur := `{"ident": "p1: Venusaur", "details": "Venusaur, L50, F", "condition": "155/155", "active": false, ` +
		`"stats": {"atk": 102, "def": 103, "spa": 120, "spd": 120, "spe": 100}, "moves": ["gigadrain"], ` +
		`"baseAbility": "overgrow", "item": "blacksludge", "ability": "overgrow"}`
	payload := strings.Replace(charizardRequest, "\n\t\t]\n\t}\n}", ",\n"+venusaur+"\n\t\t]\n\t}\n}", 1)
	require.NotEqual(t, charizardRequest, payload)

	request, err := ParseRequestJSON([]byte(payload))
	require.NoError(t, err)
	require.Len(t, request.Side.Pokemon, 3)

	err = b.ParseRequest(request)
	require.ErrorIs(t, err, ErrTeamFull)

	var requestErr *RequestError
	require.ErrorAs(t, err, &requestErr)
	assert.Same(t, request, requestErr.Request)
	assert.Equal(t, 2, b.Team().Len())
}

func TestRequestWithBadCondition(t *testing.T) {
	b := NewSingleBattle("battle-gen7ou-1", "ash", dex.MustDefault(), 7)
	payload := strings.Replace(charizardRequest, `"condition": "154/154"`, `"condition": "garbage/??"`, 1)
	require.NotEqual(t, charizardRequest, payload)

	request, err := ParseRequestJSON([]byte(payload))
	require.NoError(t, err)

	err = b.ParseRequest(request)
	require.Error(t, err)

	var requestErr *RequestError
	require.ErrorAs(t, err, &requestErr)
	assert.Same(t, request, requestErr.Request)
	assert.Contains(t, err.Error(), "p1: Blastoise")
}

func TestForcedSwitchRequest(t *testing.T) {
	b := NewSingleBattle("battle-gen7ou-1", "ash", dex.MustDefault(), 7)
	payload := `{
		"rqid": 9,
		"forceSwitch": [true],
		"side": {"name": "ash", "id": "p1", "pokemon": [
			{"ident": "p1: Charizard", "details": "Charizard, L50, M", "condition": "0 fnt", "active": true, "stats": {}, "moves": ["flamethrower"], "baseAbility": "blaze", "item": ""},
			{"ident": "p1: Blastoise", "details": "Blastoise, L50, F", "condition": "154/154", "active": false, "stats": {}, "moves": ["scald"], "baseAbility": "torrent", "item": "leftovers"}
		]}
	}`
	parseTestRequest(t, b, payload)

	assert.Equal(t, []bool{true}, b.ForceSwitch())
	assert.Empty(t, b.Moves())

	orders := b.ValidOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "/choose switch blastoise", orders[0].Message())

	charizard := mustGet(t, b, "p1: Charizard")
	assert.True(t, charizard.Fainted())
	assert.True(t, charizard.Item().IsAbsent())
}

func TestWaitRequestOnlyAllowsDefault(t *testing.T) {
	b := NewSingleBattle("battle-gen7ou-1", "ash", dex.MustDefault(), 7)
	parseTestRequest(t, b, `{"rqid": 1, "wait": true, "side": {"name": "ash", "id": "p1", "pokemon": []}}`)

	assert.True(t, b.Wait())
	assert.Equal(t, []Order{DefaultOrder{}}, b.ValidOrders())
}
