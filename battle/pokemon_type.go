package battle

import "github.com/nathanieltooley/gokemon-showdown/dex"

type PokemonType int

const (
	TYPE_UNKNOWN PokemonType = iota
	TYPE_BUG
	TYPE_DARK
	TYPE_DRAGON
	TYPE_ELECTRIC
	TYPE_FAIRY
	TYPE_FIGHTING
	TYPE_FIRE
	TYPE_FLYING
	TYPE_GHOST
	TYPE_GRASS
	TYPE_GROUND
	TYPE_ICE
	TYPE_NORMAL
	TYPE_POISON
	TYPE_PSYCHIC
	TYPE_ROCK
	TYPE_STEEL
	TYPE_WATER
	TYPE_THREE_QUESTION_MARKS
	TYPE_STELLAR
)

var typeNames = [...]string{
	TYPE_UNKNOWN:              "",
	TYPE_BUG:                  "Bug",
	TYPE_DARK:                 "Dark",
	TYPE_DRAGON:               "Dragon",
	TYPE_ELECTRIC:             "Electric",
	TYPE_FAIRY:                "Fairy",
	TYPE_FIGHTING:             "Fighting",
	TYPE_FIRE:                 "Fire",
	TYPE_FLYING:               "Flying",
	TYPE_GHOST:                "Ghost",
	TYPE_GRASS:                "Grass",
	TYPE_GROUND:               "Ground",
	TYPE_ICE:                  "Ice",
	TYPE_NORMAL:               "Normal",
	TYPE_POISON:               "Poison",
	TYPE_PSYCHIC:              "Psychic",
	TYPE_ROCK:                 "Rock",
	TYPE_STEEL:                "Steel",
	TYPE_WATER:                "Water",
	TYPE_THREE_QUESTION_MARKS: "???",
	TYPE_STELLAR:              "Stellar",
}

func (t PokemonType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return ""
}

// PokemonTypeFromName accepts display names or ids ("Fire", "fire", "???").
func PokemonTypeFromName(name string) PokemonType {
	if name == "???" {
		return TYPE_THREE_QUESTION_MARKS
	}

	id := dex.ToID(name)
	for t, typeName := range typeNames {
		if typeName != "" && dex.ToID(typeName) == id {
			return PokemonType(t)
		}
	}

	return TYPE_UNKNOWN
}
