package battle

import (
	"strings"

	"github.com/nathanieltooley/gokemon-showdown/dex"
)

const (
	MAX_BOOST   = 6
	MIN_BOOST   = -6
	MAX_MOVES   = 4
	MAX_TEAM    = 6
	DEFAULT_LVL = 100
)

// Boostable stats, keyed by Showdown short names
const (
	STAT_HP       = "hp"
	STAT_ATTACK   = "atk"
	STAT_DEFENSE  = "def"
	STAT_SPATTACK = "spa"
	STAT_SPDEF    = "spd"
	STAT_SPEED    = "spe"
	STAT_ACCURACY = "accuracy"
	STAT_EVASION  = "evasion"
)

var BOOSTABLE_STATS = []string{
	STAT_ACCURACY,
	STAT_ATTACK,
	STAT_DEFENSE,
	STAT_EVASION,
	STAT_SPATTACK,
	STAT_SPDEF,
	STAT_SPEED,
}

type Status int

const (
	STATUS_NONE Status = iota
	STATUS_BRN
	STATUS_FNT
	STATUS_FRZ
	STATUS_PAR
	STATUS_PSN
	STATUS_SLP
	STATUS_TOX
)

var statusIDs = [...]string{
	STATUS_NONE: "",
	STATUS_BRN:  "brn",
	STATUS_FNT:  "fnt",
	STATUS_FRZ:  "frz",
	STATUS_PAR:  "par",
	STATUS_PSN:  "psn",
	STATUS_SLP:  "slp",
	STATUS_TOX:  "tox",
}

func (s Status) String() string {
	if int(s) < len(statusIDs) {
		return statusIDs[s]
	}
	return "unknown"
}

// StatusFromShowdown parses the short status ids used in conditions and -status events.
func StatusFromShowdown(id string) (Status, bool) {
	id = dex.ToID(id)
	if id == "" {
		return STATUS_NONE, false
	}

	for status, statusID := range statusIDs {
		if statusID == id {
			return Status(status), true
		}
	}

	return STATUS_NONE, false
}

type Weather int

const (
	WEATHER_UNKNOWN Weather = iota
	WEATHER_DESOLATELAND
	WEATHER_DELTASTREAM
	WEATHER_HAIL
	WEATHER_PRIMORDIALSEA
	WEATHER_RAINDANCE
	WEATHER_SANDSTORM
	WEATHER_SNOW
	WEATHER_SUNNYDAY
)

var weatherIDs = map[string]Weather{
	"desolateland":  WEATHER_DESOLATELAND,
	"deltastream":   WEATHER_DELTASTREAM,
	"hail":          WEATHER_HAIL,
	"primordialsea": WEATHER_PRIMORDIALSEA,
	"raindance":     WEATHER_RAINDANCE,
	"sandstorm":     WEATHER_SANDSTORM,
	"snow":          WEATHER_SNOW,
	"snowscape":     WEATHER_SNOW,
	"sunnyday":      WEATHER_SUNNYDAY,
}

var weatherNames = [...]string{
	WEATHER_UNKNOWN:       "Unknown",
	WEATHER_DESOLATELAND:  "Desolate Land",
	WEATHER_DELTASTREAM:   "Delta Stream",
	WEATHER_HAIL:          "Hail",
	WEATHER_PRIMORDIALSEA: "Primordial Sea",
	WEATHER_RAINDANCE:     "Rain",
	WEATHER_SANDSTORM:     "Sandstorm",
	WEATHER_SNOW:          "Snow",
	WEATHER_SUNNYDAY:      "Sun",
}

func (w Weather) String() string {
	if int(w) < len(weatherNames) {
		return weatherNames[w]
	}
	return "Unknown"
}

func WeatherFromShowdownMessage(message string) Weather {
	id := dex.ToID(stripEffectPrefix(message))
	if weather, ok := weatherIDs[id]; ok {
		return weather
	}

	warn(internalLogger, "unexpected weather", "message", message)
	return WEATHER_UNKNOWN
}

type Field int

const (
	FIELD_UNKNOWN Field = iota
	FIELD_ELECTRIC_TERRAIN
	FIELD_FAIRY_LOCK
	FIELD_GRASSY_TERRAIN
	FIELD_GRAVITY
	FIELD_HEAL_BLOCK
	FIELD_ION_DELUGE
	FIELD_MAGIC_ROOM
	FIELD_MISTY_TERRAIN
	FIELD_MUD_SPORT
	FIELD_PSYCHIC_TERRAIN
	FIELD_TRICK_ROOM
	FIELD_WATER_SPORT
	FIELD_WONDER_ROOM
)

var fieldIDs = map[string]Field{
	"electricterrain": FIELD_ELECTRIC_TERRAIN,
	"fairylock":       FIELD_FAIRY_LOCK,
	"grassyterrain":   FIELD_GRASSY_TERRAIN,
	"gravity":         FIELD_GRAVITY,
	"healblock":       FIELD_HEAL_BLOCK,
	"iondeluge":       FIELD_ION_DELUGE,
	"magicroom":       FIELD_MAGIC_ROOM,
	"mistyterrain":    FIELD_MISTY_TERRAIN,
	"mudsport":        FIELD_MUD_SPORT,
	"psychicterrain":  FIELD_PSYCHIC_TERRAIN,
	"trickroom":       FIELD_TRICK_ROOM,
	"watersport":      FIELD_WATER_SPORT,
	"wonderroom":      FIELD_WONDER_ROOM,
}

func (f Field) String() string {
	for id, field := range fieldIDs {
		if field == f {
			return id
		}
	}
	return "unknown"
}

func (f Field) IsTerrain() bool {
	switch f {
	case FIELD_ELECTRIC_TERRAIN, FIELD_GRASSY_TERRAIN, FIELD_MISTY_TERRAIN, FIELD_PSYCHIC_TERRAIN:
		return true
	}
	return false
}

func FieldFromShowdownMessage(message string) Field {
	id := dex.ToID(stripEffectPrefix(message))
	if field, ok := fieldIDs[id]; ok {
		return field
	}

	warn(internalLogger, "unexpected field", "message", message)
	return FIELD_UNKNOWN
}

type SideCondition int

const (
	SIDE_UNKNOWN SideCondition = iota
	SIDE_AURORA_VEIL
	SIDE_CRAFTY_SHIELD
	SIDE_FIRE_PLEDGE
	SIDE_G_MAX_CANNONADE
	SIDE_G_MAX_STEELSURGE
	SIDE_G_MAX_VINE_LASH
	SIDE_G_MAX_VOLCALITH
	SIDE_G_MAX_WILDFIRE
	SIDE_GRASS_PLEDGE
	SIDE_LIGHT_SCREEN
	SIDE_LUCKY_CHANT
	SIDE_MAT_BLOCK
	SIDE_MIST
	SIDE_QUICK_GUARD
	SIDE_REFLECT
	SIDE_SAFEGUARD
	SIDE_SPIKES
	SIDE_STEALTH_ROCK
	SIDE_STICKY_WEB
	SIDE_TAILWIND
	SIDE_TOXIC_SPIKES
	SIDE_WATER_PLEDGE
	SIDE_WIDE_GUARD
)

var sideConditionIDs = map[string]SideCondition{
	"auroraveil":     SIDE_AURORA_VEIL,
	"craftyshield":   SIDE_CRAFTY_SHIELD,
	"firepledge":     SIDE_FIRE_PLEDGE,
	"gmaxcannonade":  SIDE_G_MAX_CANNONADE,
	"gmaxsteelsurge": SIDE_G_MAX_STEELSURGE,
	"gmaxvinelash":   SIDE_G_MAX_VINE_LASH,
	"gmaxvolcalith":  SIDE_G_MAX_VOLCALITH,
	"gmaxwildfire":   SIDE_G_MAX_WILDFIRE,
	"grasspledge":    SIDE_GRASS_PLEDGE,
	"lightscreen":    SIDE_LIGHT_SCREEN,
	"luckychant":     SIDE_LUCKY_CHANT,
	"matblock":       SIDE_MAT_BLOCK,
	"mist":           SIDE_MIST,
	"quickguard":     SIDE_QUICK_GUARD,
	"reflect":        SIDE_REFLECT,
	"safeguard":      SIDE_SAFEGUARD,
	"spikes":         SIDE_SPIKES,
	"stealthrock":    SIDE_STEALTH_ROCK,
	"stickyweb":      SIDE_STICKY_WEB,
	"tailwind":       SIDE_TAILWIND,
	"toxicspikes":    SIDE_TOXIC_SPIKES,
	"waterpledge":    SIDE_WATER_PLEDGE,
	"wideguard":      SIDE_WIDE_GUARD,
}

// STACKABLE_CONDITIONS maps layered hazards to their maximum layer count.
var STACKABLE_CONDITIONS = map[SideCondition]int{
	SIDE_SPIKES:       3,
	SIDE_TOXIC_SPIKES: 2,
}

func (s SideCondition) String() string {
	for id, condition := range sideConditionIDs {
		if condition == s {
			return id
		}
	}
	return "unknown"
}

func (s SideCondition) Stackable() bool {
	_, ok := STACKABLE_CONDITIONS[s]
	return ok
}

func SideConditionFromShowdownMessage(message string) SideCondition {
	id := dex.ToID(stripEffectPrefix(message))
	if condition, ok := sideConditionIDs[id]; ok {
		return condition
	}

	warn(internalLogger, "unexpected side condition", "message", message)
	return SIDE_UNKNOWN
}

type Gender int

const (
	GENDER_NEUTRAL Gender = iota
	GENDER_MALE
	GENDER_FEMALE
)

func (g Gender) String() string {
	switch g {
	case GENDER_MALE:
		return "M"
	case GENDER_FEMALE:
		return "F"
	}
	return "N"
}

type MoveCategory int

const (
	CATEGORY_STATUS MoveCategory = iota
	CATEGORY_PHYSICAL
	CATEGORY_SPECIAL
)

func (c MoveCategory) String() string {
	switch c {
	case CATEGORY_PHYSICAL:
		return "Physical"
	case CATEGORY_SPECIAL:
		return "Special"
	}
	return "Status"
}

func categoryFromName(name string) MoveCategory {
	switch dex.ToID(name) {
	case "physical":
		return CATEGORY_PHYSICAL
	case "special":
		return CATEGORY_SPECIAL
	}
	return CATEGORY_STATUS
}

// MoveTarget is the dex target class of a move.
type MoveTarget string

const (
	TARGET_ADJACENT_ALLY         MoveTarget = "adjacentAlly"
	TARGET_ADJACENT_ALLY_OR_SELF MoveTarget = "adjacentAllyOrSelf"
	TARGET_ADJACENT_FOE          MoveTarget = "adjacentFoe"
	TARGET_ALL                   MoveTarget = "all"
	TARGET_ALL_ADJACENT          MoveTarget = "allAdjacent"
	TARGET_ALL_ADJACENT_FOES     MoveTarget = "allAdjacentFoes"
	TARGET_ALLIES                MoveTarget = "allies"
	TARGET_ALLY_SIDE             MoveTarget = "allySide"
	TARGET_ALLY_TEAM             MoveTarget = "allyTeam"
	TARGET_ANY                   MoveTarget = "any"
	TARGET_FOE_SIDE              MoveTarget = "foeSide"
	TARGET_NORMAL                MoveTarget = "normal"
	TARGET_RANDOM_NORMAL         MoveTarget = "randomNormal"
	TARGET_SCRIPTED              MoveTarget = "scripted"
	TARGET_SELF                  MoveTarget = "self"
)

// Target selectors used in double battle move choices
const (
	EMPTY_TARGET_POSITION = 0
	POKEMON_1_POSITION    = -1
	POKEMON_2_POSITION    = -2
	OPPONENT_1_POSITION   = 1
	OPPONENT_2_POSITION   = 2
)

// stripEffectPrefix removes the "move: ", "ability: " and "item: " markers Showdown puts
// in front of effect names.
func stripEffectPrefix(message string) string {
	message = strings.TrimSpace(message)
	for _, prefix := range []string{"move:", "ability:", "item:"} {
		if rest, ok := strings.CutPrefix(message, prefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return message
}
