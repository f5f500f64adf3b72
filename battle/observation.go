package battle

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

// ObservedPokemon is a value copy of what was visible about a pokemon at one point in time.
type ObservedPokemon struct {
	Species       string
	Name          string
	Level         int
	Types         []PokemonType
	Ability       Revealed
	Item          Revealed
	CurrentHP     int
	MaxHP         int
	HPFraction    float64
	Status        Status
	Boosts        map[string]int
	Effects       map[Effect]int
	Moves         []string
	TeraType      PokemonType
	Terastallized bool
	Active        bool
}

func observePokemon(p *Pokemon) ObservedPokemon {
	return ObservedPokemon{
		Species:       p.Species(),
		Name:          p.name,
		Level:         p.level,
		Types:         p.Types(),
		Ability:       p.Ability(),
		Item:          p.item,
		CurrentHP:     p.currentHP,
		MaxHP:         p.maxHP,
		HPFraction:    p.CurrentHPFraction(),
		Status:        p.status,
		Boosts:        maps.Clone(p.boosts),
		Effects:       maps.Clone(p.effects),
		Moves:         slices.Clone(p.moveOrder),
		TeraType:      p.teraType,
		Terastallized: p.terastallized,
		Active:        p.active,
	}
}

// Observation is what the battle looked like at the end of one turn, plus the raw
// protocol lines seen during it.
type Observation struct {
	SideConditions         map[SideCondition]int
	OpponentSideConditions map[SideCondition]int
	Weather                map[Weather]int
	Fields                 map[Field]int
	// one entry per slot, nil when the slot is empty
	ActivePokemon         []*ObservedPokemon
	OpponentActivePokemon []*ObservedPokemon
	Team                  map[string]ObservedPokemon
	OpponentTeam          map[string]ObservedPokemon
	Events                [][]string
}

func newObservation() *Observation {
	return &Observation{
		SideConditions:         map[SideCondition]int{},
		OpponentSideConditions: map[SideCondition]int{},
		Weather:                map[Weather]int{},
		Fields:                 map[Field]int{},
		Team:                   map[string]ObservedPokemon{},
		OpponentTeam:           map[string]ObservedPokemon{},
	}
}

func (o *Observation) record(event []string) {
	o.Events = append(o.Events, slices.Clone(event))
}

// capture copies the battle state into the observation.
func (o *Observation) capture(b *battleCore) {
	o.SideConditions = maps.Clone(b.sideConditions)
	o.OpponentSideConditions = maps.Clone(b.opponentSideConditions)
	o.Weather = maps.Clone(b.weather)
	o.Fields = maps.Clone(b.fields)

	o.Team = observeTeam(b.team)
	o.OpponentTeam = observeTeam(b.opponentTeam)
	o.ActivePokemon = observeActive(b.ActivePokemon())
	o.OpponentActivePokemon = observeActive(b.OpponentActivePokemon())
}

func observeTeam(team *Team) map[string]ObservedPokemon {
	observed := make(map[string]ObservedPokemon, team.Len())
	for _, key := range team.Keys() {
		p, _ := team.Get(key)
		observed[key] = observePokemon(p)
	}
	return observed
}

func observeActive(active []*Pokemon) []*ObservedPokemon {
	return lo.Map(active, func(p *Pokemon, _ int) *ObservedPokemon {
		if p == nil {
			return nil
		}
		observed := observePokemon(p)
		return &observed
	})
}
