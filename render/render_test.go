package render

import (
	"testing"

	"github.com/nathanieltooley/gokemon-showdown/battle"
	"github.com/stretchr/testify/assert"
)

func observation() *battle.Observation {
	return &battle.Observation{
		SideConditions:         map[battle.SideCondition]int{battle.SIDE_STEALTH_ROCK: 1},
		OpponentSideConditions: map[battle.SideCondition]int{battle.SIDE_SPIKES: 2},
		Weather:                map[battle.Weather]int{battle.WEATHER_RAINDANCE: 1},
		Fields:                 map[battle.Field]int{battle.FIELD_TRICK_ROOM: 1},
		ActivePokemon: []*battle.ObservedPokemon{{
			Species:    "charizard",
			Name:       "Charizard",
			Level:      50,
			Types:      []battle.PokemonType{battle.TYPE_FIRE, battle.TYPE_FLYING},
			CurrentHP:  120,
			MaxHP:      153,
			HPFraction: 120.0 / 153.0,
			Status:     battle.STATUS_BRN,
			Boosts:     map[string]int{"atk": 2, "spe": -1},
		}},
		OpponentActivePokemon: []*battle.ObservedPokemon{{
			Species:    "venusaur",
			Level:      50,
			Types:      []battle.PokemonType{battle.TYPE_GRASS, battle.TYPE_POISON},
			HPFraction: 0.5,
			Effects:    map[battle.Effect]int{battle.EFFECT_CONFUSION: 1},
		}},
	}
}

func TestObservationShowsBothSides(t *testing.T) {
	out := Observation(observation(), 100)

	assert.Contains(t, out, "Charizard L50")
	assert.Contains(t, out, "BRN")
	assert.Contains(t, out, "Fire/Flying")
	assert.Contains(t, out, "120/153")
	assert.Contains(t, out, "Atk +2 Spe -1")
	assert.Contains(t, out, "Stealthrock")

	// the opponent has no name or hp total, only a fraction
	assert.Contains(t, out, "Venusaur L50")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Confusion")
	assert.Contains(t, out, "Spikes x2")
}

func TestObservationFieldLine(t *testing.T) {
	assert.Contains(t, Observation(observation(), 100), "Field: Rain, Trickroom")
}

func TestObservationEmptySlot(t *testing.T) {
	obs := observation()
	obs.OpponentActivePokemon = []*battle.ObservedPokemon{nil}

	assert.Contains(t, Observation(obs, 40), "(empty)")
}

func TestObservationNil(t *testing.T) {
	assert.Empty(t, Observation(nil, 80))
}
