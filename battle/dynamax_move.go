package battle

// Max Move boosts keyed by the base move's type. Self boosts go to the user's side,
// the rest drop the target's stats.
var maxMoveSelfBoosts = map[PokemonType]map[string]int{
	TYPE_FIGHTING: {STAT_ATTACK: 1},
	TYPE_FLYING:   {STAT_SPEED: 1},
	TYPE_GROUND:   {STAT_SPDEF: 1},
	TYPE_POISON:   {STAT_SPATTACK: 1},
	TYPE_STEEL:    {STAT_DEFENSE: 1},
}

var maxMoveTargetBoosts = map[PokemonType]map[string]int{
	TYPE_BUG:    {STAT_SPATTACK: -1},
	TYPE_DARK:   {STAT_SPDEF: -1},
	TYPE_DRAGON: {STAT_ATTACK: -1},
	TYPE_GHOST:  {STAT_DEFENSE: -1},
	TYPE_NORMAL: {STAT_SPEED: -1},
}

// DynamaxMove is the Max Move a move turns into while its user is dynamaxed.
type DynamaxMove struct {
	parent *Move
}

func (d *DynamaxMove) ID() string {
	return d.parent.ID()
}

func (d *DynamaxMove) isMaxGuard() bool {
	return d.parent.Category() == CATEGORY_STATUS
}

func (d *DynamaxMove) BasePower() int {
	if d.isMaxGuard() {
		return 0
	}

	if entry := d.parent.Entry(); entry != nil && entry.MaxMove != nil && entry.MaxMove.BasePower > 0 {
		return entry.MaxMove.BasePower
	}

	return maxMovePower(d.parent.BasePower(), d.parent.Type())
}

// maxMovePower is the standard conversion used when the dex entry doesn't carry one.
func maxMovePower(basePower int, moveType PokemonType) int {
	weak := moveType == TYPE_FIGHTING || moveType == TYPE_POISON

	thresholds := []struct {
		min   int
		power int
		weak  int
	}{
		{150, 150, 100},
		{110, 140, 95},
		{75, 130, 90},
		{65, 120, 85},
		{55, 110, 80},
		{45, 100, 75},
	}

	for _, t := range thresholds {
		if basePower >= t.min {
			if weak {
				return t.weak
			}
			return t.power
		}
	}

	if weak {
		return 70
	}
	return 90
}

func (d *DynamaxMove) Accuracy() float64 {
	return 1
}

func (d *DynamaxMove) Category() MoveCategory {
	return d.parent.Category()
}

func (d *DynamaxMove) Type() PokemonType {
	if d.isMaxGuard() {
		return TYPE_NORMAL
	}
	return d.parent.Type()
}

func (d *DynamaxMove) Priority() int {
	if d.isMaxGuard() {
		return 4
	}
	return 0
}

func (d *DynamaxMove) Target() MoveTarget {
	if d.isMaxGuard() {
		return TARGET_SELF
	}
	return TARGET_ADJACENT_FOE
}

// PPCost is zero; Max Move uses aren't charged against the tracked moveset.
func (d *DynamaxMove) PPCost() int {
	return 0
}

func (d *DynamaxMove) CurrentPP() int {
	return d.parent.CurrentPP()
}

func (d *DynamaxMove) MaxPP() int {
	return d.parent.MaxPP()
}

func (d *DynamaxMove) Boosts() map[string]int {
	if d.isMaxGuard() {
		return nil
	}
	return maxMoveTargetBoosts[d.Type()]
}

func (d *DynamaxMove) SelfBoosts() map[string]int {
	if d.isMaxGuard() {
		return nil
	}
	return maxMoveSelfBoosts[d.Type()]
}

// Status is always none; Max Moves never inflict non-volatile status.
func (d *DynamaxMove) Status() Status {
	return STATUS_NONE
}

func (d *DynamaxMove) IsDynamaxed() bool {
	return true
}

func (d *DynamaxMove) Base() *Move {
	return d.parent
}

// Weather set by the fire, water, rock and ice Max Moves.
func (d *DynamaxMove) Weather() Weather {
	if d.isMaxGuard() {
		return WEATHER_UNKNOWN
	}

	switch d.parent.Type() {
	case TYPE_FIRE:
		return WEATHER_SUNNYDAY
	case TYPE_WATER:
		return WEATHER_RAINDANCE
	case TYPE_ROCK:
		return WEATHER_SANDSTORM
	case TYPE_ICE:
		return WEATHER_HAIL
	}
	return WEATHER_UNKNOWN
}

// Terrain set by the electric, grass, fairy and psychic Max Moves.
func (d *DynamaxMove) Terrain() Field {
	if d.isMaxGuard() {
		return FIELD_UNKNOWN
	}

	switch d.parent.Type() {
	case TYPE_ELECTRIC:
		return FIELD_ELECTRIC_TERRAIN
	case TYPE_GRASS:
		return FIELD_GRASSY_TERRAIN
	case TYPE_FAIRY:
		return FIELD_MISTY_TERRAIN
	case TYPE_PSYCHIC:
		return FIELD_PSYCHIC_TERRAIN
	}
	return FIELD_UNKNOWN
}
