package battle

import "github.com/nathanieltooley/gokemon-showdown/dex"

// Effect is a volatile condition attached to a single pokemon.
type Effect int

const (
	EFFECT_UNKNOWN Effect = iota
	EFFECT_AFTER_YOU
	EFFECT_AQUA_RING
	EFFECT_ATTRACT
	EFFECT_AUTOTOMIZE
	EFFECT_BANEFUL_BUNKER
	EFFECT_BIDE
	EFFECT_BIND
	EFFECT_BURNING_BULWARK
	EFFECT_CHARGE
	EFFECT_CLAMP
	EFFECT_CONFUSION
	EFFECT_CURSE
	EFFECT_CUSTAP_BERRY
	EFFECT_DESTINY_BOND
	EFFECT_DISABLE
	EFFECT_DISGUISE
	EFFECT_DYNAMAX
	EFFECT_ELECTRIFY
	EFFECT_EMBARGO
	EFFECT_ENCORE
	EFFECT_ENDURE
	EFFECT_FEINT
	EFFECT_FIRE_SPIN
	EFFECT_FLASH_FIRE
	EFFECT_FLINCH
	EFFECT_FOCUS_ENERGY
	EFFECT_FOCUS_PUNCH
	EFFECT_FOLLOW_ME
	EFFECT_FORESIGHT
	EFFECT_GLAIVE_RUSH
	EFFECT_GRUDGE
	EFFECT_HEAL_BLOCK
	EFFECT_HELPING_HAND
	EFFECT_ICE_FACE
	EFFECT_IMPRISON
	EFFECT_INFESTATION
	EFFECT_INGRAIN
	EFFECT_INSTRUCT
	EFFECT_KINGS_SHIELD
	EFFECT_LASER_FOCUS
	EFFECT_LEECH_SEED
	EFFECT_LOCKED_MOVE
	EFFECT_MAGIC_COAT
	EFFECT_MAGMA_STORM
	EFFECT_MAGNET_RISE
	EFFECT_MAX_GUARD
	EFFECT_MIMIC
	EFFECT_MIND_READER
	EFFECT_MINIMIZE
	EFFECT_MIRACLE_EYE
	EFFECT_NIGHTMARE
	EFFECT_NO_RETREAT
	EFFECT_OBSTRUCT
	EFFECT_OCTOLOCK
	EFFECT_PERISH0
	EFFECT_PERISH1
	EFFECT_PERISH2
	EFFECT_PERISH3
	EFFECT_POWDER
	EFFECT_POWER_TRICK
	EFFECT_PROTECT
	EFFECT_PROTOSYNTHESIS
	EFFECT_QUARK_DRIVE
	EFFECT_QUASH
	EFFECT_QUICK_CLAW
	EFFECT_RAGE
	EFFECT_RAGE_POWDER
	EFFECT_ROOST
	EFFECT_SALT_CURE
	EFFECT_SAND_TOMB
	EFFECT_SILK_TRAP
	EFFECT_SKILL_SWAP
	EFFECT_SLOW_START
	EFFECT_SMACK_DOWN
	EFFECT_SNAP_TRAP
	EFFECT_SNATCH
	EFFECT_SPIKY_SHIELD
	EFFECT_SPOTLIGHT
	EFFECT_STOCKPILE1
	EFFECT_STOCKPILE2
	EFFECT_STOCKPILE3
	EFFECT_SUBSTITUTE
	EFFECT_SYRUP_BOMB
	EFFECT_TAR_SHOT
	EFFECT_TAUNT
	EFFECT_TELEKINESIS
	EFFECT_THROAT_CHOP
	EFFECT_THUNDER_CAGE
	EFFECT_TORMENT
	EFFECT_TRANSFORM
	EFFECT_TRAPPED
	EFFECT_TYPEADD
	EFFECT_TYPECHANGE
	EFFECT_UPROAR
	EFFECT_WHIRLPOOL
	EFFECT_WRAP
	EFFECT_YAWN
)

var effectIDs = [...]string{
	EFFECT_UNKNOWN:         "unknown",
	EFFECT_AFTER_YOU:       "afteryou",
	EFFECT_AQUA_RING:       "aquaring",
	EFFECT_ATTRACT:         "attract",
	EFFECT_AUTOTOMIZE:      "autotomize",
	EFFECT_BANEFUL_BUNKER:  "banefulbunker",
	EFFECT_BIDE:            "bide",
	EFFECT_BIND:            "bind",
	EFFECT_BURNING_BULWARK: "burningbulwark",
	EFFECT_CHARGE:          "charge",
	EFFECT_CLAMP:           "clamp",
	EFFECT_CONFUSION:       "confusion",
	EFFECT_CURSE:           "curse",
	EFFECT_CUSTAP_BERRY:    "custapberry",
	EFFECT_DESTINY_BOND:    "destinybond",
	EFFECT_DISABLE:         "disable",
	EFFECT_DISGUISE:        "disguise",
	EFFECT_DYNAMAX:         "dynamax",
	EFFECT_ELECTRIFY:       "electrify",
	EFFECT_EMBARGO:         "embargo",
	EFFECT_ENCORE:          "encore",
	EFFECT_ENDURE:          "endure",
	EFFECT_FEINT:           "feint",
	EFFECT_FIRE_SPIN:       "firespin",
	EFFECT_FLASH_FIRE:      "flashfire",
	EFFECT_FLINCH:          "flinch",
	EFFECT_FOCUS_ENERGY:    "focusenergy",
	EFFECT_FOCUS_PUNCH:     "focuspunch",
	EFFECT_FOLLOW_ME:       "followme",
	EFFECT_FORESIGHT:       "foresight",
	EFFECT_GLAIVE_RUSH:     "glaiverush",
	EFFECT_GRUDGE:          "grudge",
	EFFECT_HEAL_BLOCK:      "healblock",
	EFFECT_HELPING_HAND:    "helpinghand",
	EFFECT_ICE_FACE:        "iceface",
	EFFECT_IMPRISON:        "imprison",
	EFFECT_INFESTATION:     "infestation",
	EFFECT_INGRAIN:         "ingrain",
	EFFECT_INSTRUCT:        "instruct",
	EFFECT_KINGS_SHIELD:    "kingsshield",
	EFFECT_LASER_FOCUS:     "laserfocus",
	EFFECT_LEECH_SEED:      "leechseed",
	EFFECT_LOCKED_MOVE:     "lockedmove",
	EFFECT_MAGIC_COAT:      "magiccoat",
	EFFECT_MAGMA_STORM:     "magmastorm",
	EFFECT_MAGNET_RISE:     "magnetrise",
	EFFECT_MAX_GUARD:       "maxguard",
	EFFECT_MIMIC:           "mimic",
	EFFECT_MIND_READER:     "mindreader",
	EFFECT_MINIMIZE:        "minimize",
	EFFECT_MIRACLE_EYE:     "miracleeye",
	EFFECT_NIGHTMARE:       "nightmare",
	EFFECT_NO_RETREAT:      "noretreat",
	EFFECT_OBSTRUCT:        "obstruct",
	EFFECT_OCTOLOCK:        "octolock",
	EFFECT_PERISH0:         "perish0",
	EFFECT_PERISH1:         "perish1",
	EFFECT_PERISH2:         "perish2",
	EFFECT_PERISH3:         "perish3",
	EFFECT_POWDER:          "powder",
	EFFECT_POWER_TRICK:     "powertrick",
	EFFECT_PROTECT:         "protect",
	EFFECT_PROTOSYNTHESIS:  "protosynthesis",
	EFFECT_QUARK_DRIVE:     "quarkdrive",
	EFFECT_QUASH:           "quash",
	EFFECT_QUICK_CLAW:      "quickclaw",
	EFFECT_RAGE:            "rage",
	EFFECT_RAGE_POWDER:     "ragepowder",
	EFFECT_ROOST:           "roost",
	EFFECT_SALT_CURE:       "saltcure",
	EFFECT_SAND_TOMB:       "sandtomb",
	EFFECT_SILK_TRAP:       "silktrap",
	EFFECT_SKILL_SWAP:      "skillswap",
	EFFECT_SLOW_START:      "slowstart",
	EFFECT_SMACK_DOWN:      "smackdown",
	EFFECT_SNAP_TRAP:       "snaptrap",
	EFFECT_SNATCH:          "snatch",
	EFFECT_SPIKY_SHIELD:    "spikyshield",
	EFFECT_SPOTLIGHT:       "spotlight",
	EFFECT_STOCKPILE1:      "stockpile1",
	EFFECT_STOCKPILE2:      "stockpile2",
	EFFECT_STOCKPILE3:      "stockpile3",
	EFFECT_SUBSTITUTE:      "substitute",
	EFFECT_SYRUP_BOMB:      "syrupbomb",
	EFFECT_TAR_SHOT:        "tarshot",
	EFFECT_TAUNT:           "taunt",
	EFFECT_TELEKINESIS:     "telekinesis",
	EFFECT_THROAT_CHOP:     "throatchop",
	EFFECT_THUNDER_CAGE:    "thundercage",
	EFFECT_TORMENT:         "torment",
	EFFECT_TRANSFORM:       "transform",
	EFFECT_TRAPPED:         "trapped",
	EFFECT_TYPEADD:         "typeadd",
	EFFECT_TYPECHANGE:      "typechange",
	EFFECT_UPROAR:          "uproar",
	EFFECT_WHIRLPOOL:       "whirlpool",
	EFFECT_WRAP:            "wrap",
	EFFECT_YAWN:            "yawn",
}

var effectsByID = func() map[string]Effect {
	byID := make(map[string]Effect, len(effectIDs))
	for effect, id := range effectIDs {
		byID[id] = Effect(effect)
	}
	// protocol spellings that differ from the move id
	byID["protosynthesisatk"] = EFFECT_PROTOSYNTHESIS
	byID["protosynthesisdef"] = EFFECT_PROTOSYNTHESIS
	byID["protosynthesisspa"] = EFFECT_PROTOSYNTHESIS
	byID["protosynthesisspd"] = EFFECT_PROTOSYNTHESIS
	byID["protosynthesisspe"] = EFFECT_PROTOSYNTHESIS
	byID["quarkdriveatk"] = EFFECT_QUARK_DRIVE
	byID["quarkdrivedef"] = EFFECT_QUARK_DRIVE
	byID["quarkdrivespa"] = EFFECT_QUARK_DRIVE
	byID["quarkdrivespd"] = EFFECT_QUARK_DRIVE
	byID["quarkdrivespe"] = EFFECT_QUARK_DRIVE
	byID["detect"] = EFFECT_PROTECT
	byID["lockon"] = EFFECT_MIND_READER
	return byID
}()

var endsOnTurnEffects = map[Effect]bool{
	EFFECT_AFTER_YOU:       true,
	EFFECT_BANEFUL_BUNKER:  true,
	EFFECT_BURNING_BULWARK: true,
	EFFECT_CUSTAP_BERRY:    true,
	EFFECT_ELECTRIFY:       true,
	EFFECT_ENDURE:          true,
	EFFECT_FLINCH:          true,
	EFFECT_FOCUS_PUNCH:     true,
	EFFECT_FOLLOW_ME:       true,
	EFFECT_HELPING_HAND:    true,
	EFFECT_INSTRUCT:        true,
	EFFECT_KINGS_SHIELD:    true,
	EFFECT_MAGIC_COAT:      true,
	EFFECT_MAX_GUARD:       true,
	EFFECT_OBSTRUCT:        true,
	EFFECT_POWDER:          true,
	EFFECT_PROTECT:         true,
	EFFECT_QUASH:           true,
	EFFECT_QUICK_CLAW:      true,
	EFFECT_RAGE_POWDER:     true,
	EFFECT_ROOST:           true,
	EFFECT_SILK_TRAP:       true,
	EFFECT_SNATCH:          true,
	EFFECT_SPIKY_SHIELD:    true,
	EFFECT_SPOTLIGHT:       true,
}

var endsOnMoveEffects = map[Effect]bool{
	EFFECT_GLAIVE_RUSH: true,
	EFFECT_MIND_READER: true,
}

var turnCountableEffects = map[Effect]bool{
	EFFECT_BIDE:         true,
	EFFECT_BIND:         true,
	EFFECT_CLAMP:        true,
	EFFECT_DISABLE:      true,
	EFFECT_DYNAMAX:      true,
	EFFECT_EMBARGO:      true,
	EFFECT_ENCORE:       true,
	EFFECT_FIRE_SPIN:    true,
	EFFECT_HEAL_BLOCK:   true,
	EFFECT_INFESTATION:  true,
	EFFECT_LOCKED_MOVE:  true,
	EFFECT_MAGMA_STORM:  true,
	EFFECT_MAGNET_RISE:  true,
	EFFECT_SAND_TOMB:    true,
	EFFECT_SLOW_START:   true,
	EFFECT_SNAP_TRAP:    true,
	EFFECT_SYRUP_BOMB:   true,
	EFFECT_TAUNT:        true,
	EFFECT_TELEKINESIS:  true,
	EFFECT_THROAT_CHOP:  true,
	EFFECT_THUNDER_CAGE: true,
	EFFECT_UPROAR:       true,
	EFFECT_WHIRLPOOL:    true,
	EFFECT_WRAP:         true,
	EFFECT_YAWN:         true,
}

var actionCountableEffects = map[Effect]bool{
	EFFECT_CONFUSION: true,
	EFFECT_TORMENT:   true,
}

func (e Effect) String() string {
	if int(e) < len(effectIDs) {
		return effectIDs[e]
	}
	return "unknown"
}

// EndsOnTurn reports effects that only last until the end of the turn they started in.
func (e Effect) EndsOnTurn() bool {
	return endsOnTurnEffects[e]
}

func (e Effect) EndsOnMove() bool {
	return endsOnMoveEffects[e]
}

// IsTurnCountable effects count how many turn ends they have been active for.
func (e Effect) IsTurnCountable() bool {
	return turnCountableEffects[e]
}

// IsActionCountable effects count how many times they have been activated.
func (e Effect) IsActionCountable() bool {
	return actionCountableEffects[e]
}

func (e Effect) BreaksProtect() bool {
	return e == EFFECT_FEINT
}

// EffectFromShowdownMessage parses the effect names found in -start, -end, -activate,
// -singleturn and -singlemove events ("move: Taunt", "confusion", "Substitute", ...).
func EffectFromShowdownMessage(message string) Effect {
	message = stripEffectPrefix(message)
	id := dex.ToID(message)

	if effect, ok := effectsByID[id]; ok {
		return effect
	}

	warn(internalLogger, "unexpected effect", "message", message)
	return EFFECT_UNKNOWN
}
