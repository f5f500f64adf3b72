package battle

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/nathanieltooley/gokemon-showdown/dex"
	"github.com/samber/lo"
)

// Pokemon is everything the battle has observed about one team member.
// Static facets come from the dex; the rest is filled in by events and requests.
type Pokemon struct {
	provider dex.Provider

	species     string
	baseSpecies string
	// forme set by -formechange; reverts on switch out
	formeSpecies string
	name         string
	level        int
	gender       Gender
	shiny        bool
	lastDetails  string

	baseStats         map[string]int
	stats             map[string]int
	types             []PokemonType
	temporaryTypes    []PokemonType
	possibleAbilities []string
	ability           abilitySlots
	item              Revealed
	heightM           float64
	weightKg          float64

	currentHP     int
	maxHP         int
	status        Status
	statusCounter int
	boosts        map[string]int
	effects       map[Effect]int
	moves         map[string]*Move
	moveOrder     []string

	active          bool
	firstTurn       bool
	mustRecharge    bool
	preparingMove   *Move
	preparingTarget string
	protectCounter  int
	revealed        bool
	// created by its latest switch in, so it may be an illusion's disguise
	newOnSwitchIn   bool

	teraType      PokemonType
	terastallized bool

	// state from before the latest switch in, kept so a broken illusion can be undone
	preSwitchHP        int
	preSwitchMaxHP     int
	preSwitchStatus    Status
	movesSinceSwitchIn []string
}

func newPokemon(provider dex.Provider) *Pokemon {
	p := &Pokemon{
		provider: provider,
		level:    DEFAULT_LVL,
		boosts:   map[string]int{},
		effects:  map[Effect]int{},
		moves:    map[string]*Move{},
		item:     Unknown(),
	}
	p.clearBoosts()

	return p
}

// NewPokemonFromSpecies builds a pokemon that only knows its species.
func NewPokemonFromSpecies(species string, provider dex.Provider) *Pokemon {
	p := newPokemon(provider)
	p.updateFromPokedex(species, true)
	p.name = p.speciesName()
	return p
}

// NewPokemonFromDetails builds a pokemon from a details string ("Pikachu, L50, F, shiny").
func NewPokemonFromDetails(details string, provider dex.Provider) *Pokemon {
	p := newPokemon(provider)
	p.updateFromDetails(details)
	p.name = p.speciesName()
	return p
}

// NewPokemonFromRequest builds one of our own pokemon from its request fragment.
func NewPokemonFromRequest(request *PokemonRequest, provider dex.Provider) (*Pokemon, error) {
	p := newPokemon(provider)
	_, _, p.name = splitIdentifier(request.Ident)
	if err := p.updateFromRequest(request); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pokemon) speciesName() string {
	if entry, ok := p.provider.Species(p.species); ok {
		return entry.Name
	}
	return p.species
}

func (p *Pokemon) updateFromPokedex(species string, storeSpecies bool) {
	id := dex.ToID(species)
	if storeSpecies {
		p.species = id
		p.baseSpecies = id
	}

	entry, ok := p.provider.Species(id)
	if !ok {
		warn(internalLogger, "species not found in dex", "species", species)
		return
	}

	if storeSpecies && entry.BaseSpecies != "" {
		p.baseSpecies = dex.ToID(entry.BaseSpecies)
	}

	p.baseStats = entry.BaseStats.Map()
	p.types = lo.FilterMap(entry.Types, func(name string, _ int) (PokemonType, bool) {
		t := PokemonTypeFromName(name)
		return t, t != TYPE_UNKNOWN
	})
	p.possibleAbilities = entry.AbilityIDs()
	p.heightM = entry.HeightM
	p.weightKg = entry.WeightKg

	if len(p.possibleAbilities) == 1 {
		if storeSpecies {
			p.ability.base = Known(p.possibleAbilities[0])
		} else {
			p.ability.forme = Known(p.possibleAbilities[0])
		}
	}
}

// updateFromDetails parses "Species, L50, M, shiny, tera:Fire".
func (p *Pokemon) updateFromDetails(details string) {
	if details == "" || details == p.lastDetails {
		return
	}
	p.lastDetails = details

	parts := strings.Split(details, ",")
	species := strings.TrimSpace(parts[0])
	level := DEFAULT_LVL
	gender := GENDER_NEUTRAL

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		switch {
		case part == "shiny":
			p.shiny = true
		case part == "M":
			gender = GENDER_MALE
		case part == "F":
			gender = GENDER_FEMALE
		case strings.HasPrefix(part, "tera:"):
			p.teraType = PokemonTypeFromName(part[len("tera:"):])
			p.terastallized = true
		case strings.HasPrefix(part, "L"):
			if parsed, err := strconv.Atoi(part[1:]); err == nil {
				level = parsed
			}
		}
	}

	p.level = level
	p.gender = gender

	if id := dex.ToID(species); id != p.species {
		p.updateFromPokedex(species, true)
	}
}

func (p *Pokemon) updateFromRequest(request *PokemonRequest) error {
	p.active = request.Active

	switch {
	case request.BaseAbility != "":
		p.ability.base = Known(request.BaseAbility)
	case request.Ability != "":
		p.ability.base = Known(request.Ability)
	}
	// a current ability that differs from the base one was traded or copied this stint
	if request.Ability != "" && dex.ToID(request.Ability) != p.ability.base.ID() {
		p.ability.temporary = Known(request.Ability)
	}

	p.updateFromDetails(request.Details)
	if err := p.setHPStatus(request.Condition); err != nil {
		return fmt.Errorf("%s: %w", request.Ident, err)
	}
	p.item = Known(request.Item)

	for _, moveID := range request.Moves {
		p.addMove(moveID, false)
	}
	if len(p.moveOrder) > MAX_MOVES {
		keep := lo.SliceToMap(request.Moves, func(moveID string) (string, bool) {
			id, _ := RetrieveMoveID(moveID)
			return id, true
		})
		for _, id := range slices.Clone(p.moveOrder) {
			if !keep[id] {
				p.forgetMove(id)
			}
		}
	}

	// stats never change over a battle, only take them once
	if p.stats == nil && len(request.Stats) > 0 {
		p.stats = maps.Clone(request.Stats)
		p.stats[STAT_HP] = p.maxHP
	}

	if request.TeraType != "" {
		p.teraType = PokemonTypeFromName(request.TeraType)
	}
	if request.Terastallized != "" {
		p.teraType = PokemonTypeFromName(request.Terastallized)
		p.terastallized = true
	}
	return nil
}

// Read accessors

func (p *Pokemon) Species() string {
	if p.formeSpecies != "" {
		return p.formeSpecies
	}
	return p.species
}

func (p *Pokemon) BaseSpecies() string {
	return p.baseSpecies
}

func (p *Pokemon) Name() string {
	return p.name
}

func (p *Pokemon) Level() int {
	return p.level
}

func (p *Pokemon) Gender() Gender {
	return p.gender
}

func (p *Pokemon) Shiny() bool {
	return p.shiny
}

func (p *Pokemon) BaseStats() map[string]int {
	return maps.Clone(p.baseStats)
}

// Stats are the exact stats, only known for our own pokemon. nil when unknown.
func (p *Pokemon) Stats() map[string]int {
	return maps.Clone(p.stats)
}

// Types returns the current typing: tera type when terastallized (except Stellar),
// then any temporary typing, then the species typing.
func (p *Pokemon) Types() []PokemonType {
	if p.terastallized && p.teraType != TYPE_STELLAR && p.teraType != TYPE_UNKNOWN {
		return []PokemonType{p.teraType}
	}
	if len(p.temporaryTypes) > 0 {
		return slices.Clone(p.temporaryTypes)
	}
	return slices.Clone(p.types)
}

func (p *Pokemon) OriginalTypes() []PokemonType {
	return slices.Clone(p.types)
}

func (p *Pokemon) HasType(t PokemonType) bool {
	return slices.Contains(p.Types(), t)
}

func (p *Pokemon) PossibleAbilities() []string {
	return slices.Clone(p.possibleAbilities)
}

// Ability is the ability currently in effect.
func (p *Pokemon) Ability() Revealed {
	return p.ability.current()
}

// BaseAbility is the pokemon's own ability, ignoring forme changes and temporary overrides.
func (p *Pokemon) BaseAbility() Revealed {
	return p.ability.base
}

func (p *Pokemon) Item() Revealed {
	return p.item
}

func (p *Pokemon) HeightM() float64 {
	return p.heightM
}

func (p *Pokemon) WeightKg() float64 {
	return p.weightKg
}

func (p *Pokemon) CurrentHP() int {
	return p.currentHP
}

// MaxHP is exact for our pokemon and 100 for opponents, whose hp is a percentage.
func (p *Pokemon) MaxHP() int {
	return p.maxHP
}

func (p *Pokemon) CurrentHPFraction() float64 {
	if p.maxHP == 0 {
		if p.Fainted() {
			return 0
		}
		return 1
	}
	return float64(p.currentHP) / float64(p.maxHP)
}

func (p *Pokemon) Status() Status {
	return p.status
}

// StatusCounter counts toxic turns or turns spent asleep. It is 0 for every other status.
func (p *Pokemon) StatusCounter() int {
	return p.statusCounter
}

func (p *Pokemon) Boosts() map[string]int {
	return maps.Clone(p.boosts)
}

func (p *Pokemon) Boost(stat string) int {
	return p.boosts[stat]
}

func (p *Pokemon) Effects() map[Effect]int {
	return maps.Clone(p.effects)
}

func (p *Pokemon) HasEffect(effect Effect) bool {
	_, ok := p.effects[effect]
	return ok
}

// Moves returns the known moves in the order they were revealed.
func (p *Pokemon) Moves() []*Move {
	return lo.Map(p.moveOrder, func(id string, _ int) *Move {
		return p.moves[id]
	})
}

func (p *Pokemon) Move(id string) (*Move, bool) {
	moveID, _ := RetrieveMoveID(id)
	move, ok := p.moves[moveID]
	return move, ok
}

func (p *Pokemon) Active() bool {
	return p.active
}

func (p *Pokemon) Fainted() bool {
	return p.status == STATUS_FNT
}

func (p *Pokemon) FirstTurn() bool {
	return p.firstTurn
}

func (p *Pokemon) MustRecharge() bool {
	return p.mustRecharge
}

func (p *Pokemon) PreparingMove() *Move {
	return p.preparingMove
}

func (p *Pokemon) PreparingTarget() string {
	return p.preparingTarget
}

func (p *Pokemon) ProtectCounter() int {
	return p.protectCounter
}

// Revealed reports whether the pokemon has been seen on the field.
func (p *Pokemon) Revealed() bool {
	return p.revealed
}

func (p *Pokemon) TeraType() PokemonType {
	return p.teraType
}

func (p *Pokemon) Terastallized() bool {
	return p.terastallized
}

func (p *Pokemon) IsDynamaxed() bool {
	return p.HasEffect(EFFECT_DYNAMAX)
}

func (p *Pokemon) Transformed() bool {
	return p.HasEffect(EFFECT_TRANSFORM)
}

// DamageMultiplier is the type effectiveness of an attacking type against this pokemon.
func (p *Pokemon) DamageMultiplier(attackType PokemonType) float64 {
	if attackType == TYPE_UNKNOWN || attackType == TYPE_THREE_QUESTION_MARKS || attackType == TYPE_STELLAR {
		return 1
	}

	multiplier := 1.0
	for _, defenseType := range p.Types() {
		multiplier *= p.provider.Effectiveness(attackType.String(), defenseType.String())
	}
	return multiplier
}

// StabMultiplier for a move of the given type used by this pokemon.
func (p *Pokemon) StabMultiplier(moveType PokemonType) float64 {
	if p.terastallized && p.teraType == moveType {
		if slices.Contains(p.types, moveType) {
			return 2
		}
		return 1.5
	}
	if slices.Contains(p.types, moveType) || slices.Contains(p.temporaryTypes, moveType) {
		return 1.5
	}
	return 1
}

func (p *Pokemon) String() string {
	return fmt.Sprintf("%s (%s) [hp: %d/%d, status: %s, active: %t]",
		p.name, p.Species(), p.currentHP, p.maxHP, p.status, p.active)
}

// Mutators, driven by battle events

func (p *Pokemon) addMove(name string, use bool) *Move {
	id, power := RetrieveMoveID(name)
	if id == "" || SPECIAL_MOVES[id] {
		return nil
	}
	// moves used while transformed belong to the copied moveset
	if p.Transformed() {
		return nil
	}

	move, ok := p.moves[id]
	if !ok {
		// a dynamaxed pokemon only shows max moves
		if p.IsDynamaxed() {
			return nil
		}
		move = NewMove(id, p.provider)
		if power > 0 {
			move.basePowerOverride = power
		}
		// max and z moves are one-off transformations of a known move
		if move.IsMax() || move.IsZ() {
			return nil
		}

		p.moves[id] = move
		p.moveOrder = append(p.moveOrder, id)
		p.movesSinceSwitchIn = append(p.movesSinceSwitchIn, id)

		if len(p.moveOrder) > MAX_MOVES {
			evicted, _ := lo.Find(p.moveOrder, func(candidate string) bool {
				return candidate != id
			})
			warn(internalLogger, "pokemon revealed more than four moves", "pokemon", p.name, "evicted", evicted, "kept", id)
			p.forgetMove(evicted)
		}
	}

	if use {
		move.Use()
	}
	return move
}

func (p *Pokemon) forgetMove(id string) {
	delete(p.moves, id)
	p.moveOrder = lo.Without(p.moveOrder, id)
	p.movesSinceSwitchIn = lo.Without(p.movesSinceSwitchIn, id)
}

// setHPStatus applies a condition string: "100/100", "52/100 par", "0 fnt".
func (p *Pokemon) setHPStatus(condition string) error {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return nil
	}

	hpPart, statusPart, _ := strings.Cut(condition, " ")
	if statusPart == "fnt" {
		p.faint()
		return nil
	}

	hpDigits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '/' {
			return r
		}
		return -1
	}, hpPart)

	current, maximum, hasMax := strings.Cut(hpDigits, "/")
	hp, err := strconv.Atoi(current)
	if err != nil {
		return fmt.Errorf("bad hp in condition %q: %w", condition, err)
	}
	p.currentHP = hp
	if hasMax {
		maxHP, err := strconv.Atoi(maximum)
		if err != nil {
			return fmt.Errorf("bad max hp in condition %q: %w", condition, err)
		}
		p.maxHP = maxHP
	}

	status, ok := StatusFromShowdown(statusPart)
	switch {
	case ok && status != p.status:
		p.setStatus(status)
	case !ok && p.status != STATUS_NONE && p.status != STATUS_FNT:
		p.status = STATUS_NONE
		p.statusCounter = 0
	}

	if p.currentHP == 0 && p.status != STATUS_FNT && hasMax {
		p.faint()
	}

	return nil
}

func (p *Pokemon) damage(condition string) error {
	return p.setHPStatus(condition)
}

func (p *Pokemon) heal(condition string) error {
	return p.setHPStatus(condition)
}

// setHP is used by -sethp, which only carries hp.
func (p *Pokemon) setHP(condition string) error {
	previous := p.status
	if err := p.setHPStatus(condition); err != nil {
		return err
	}
	if p.status == STATUS_NONE && previous != STATUS_FNT {
		p.status = previous
	}
	return nil
}

func (p *Pokemon) faint() {
	p.currentHP = 0
	p.status = STATUS_FNT
	p.statusCounter = 0
	clear(p.effects)
}

func (p *Pokemon) setStatus(status Status) {
	p.status = status
	p.statusCounter = 0
}

// cureStatus clears the given status, or any status when status is STATUS_NONE.
func (p *Pokemon) cureStatus(status Status) {
	if p.Fainted() {
		return
	}
	if status == STATUS_NONE || status == p.status {
		p.status = STATUS_NONE
		p.statusCounter = 0
	}
}

func (p *Pokemon) tickSleep() {
	if p.status == STATUS_SLP {
		p.statusCounter++
	}
}

func (p *Pokemon) boost(stat string, amount int) {
	p.boosts[stat] = clampBoost(p.boosts[stat] + amount)
}

func (p *Pokemon) setBoost(stat string, amount int) {
	p.boosts[stat] = clampBoost(amount)
}

func clampBoost(amount int) int {
	return min(MAX_BOOST, max(MIN_BOOST, amount))
}

func (p *Pokemon) clearBoosts() {
	for _, stat := range BOOSTABLE_STATS {
		p.boosts[stat] = 0
	}
}

func (p *Pokemon) clearNegativeBoosts() {
	for stat, amount := range p.boosts {
		if amount < 0 {
			p.boosts[stat] = 0
		}
	}
}

func (p *Pokemon) clearPositiveBoosts() {
	for stat, amount := range p.boosts {
		if amount > 0 {
			p.boosts[stat] = 0
		}
	}
}

func (p *Pokemon) invertBoosts() {
	for stat, amount := range p.boosts {
		p.boosts[stat] = -amount
	}
}

func (p *Pokemon) copyBoostsFrom(other *Pokemon) {
	p.boosts = maps.Clone(other.boosts)
}

func (p *Pokemon) swapBoosts(other *Pokemon, stats []string) {
	if len(stats) == 0 {
		stats = BOOSTABLE_STATS
	}
	for _, stat := range stats {
		p.boosts[stat], other.boosts[stat] = other.boosts[stat], p.boosts[stat]
	}
}

func (p *Pokemon) startEffect(message string) Effect {
	effect := EffectFromShowdownMessage(message)
	if effect == EFFECT_UNKNOWN {
		return effect
	}

	if _, ok := p.effects[effect]; !ok {
		p.effects[effect] = 0
	} else if effect.IsActionCountable() {
		p.effects[effect]++
	}

	if effect.BreaksProtect() {
		p.protectCounter = 0
	}

	return effect
}

func (p *Pokemon) endEffect(message string) Effect {
	effect := EffectFromShowdownMessage(message)
	delete(p.effects, effect)

	switch effect {
	case EFFECT_TYPECHANGE, EFFECT_TYPEADD:
		p.temporaryTypes = nil
	}

	return effect
}

// endTurn ages effects and the toxic counter. Only called for active pokemon.
func (p *Pokemon) endTurn() {
	for effect := range p.effects {
		if effect.EndsOnTurn() {
			delete(p.effects, effect)
		} else if effect.IsTurnCountable() {
			p.effects[effect]++
		}
	}

	if p.status == STATUS_TOX {
		p.statusCounter++
	}
}

// moved records a move use. use decides whether PP is spent.
func (p *Pokemon) moved(moveName string, failed bool, use bool) *Move {
	p.mustRecharge = false
	p.preparingMove = nil
	p.preparingTarget = ""
	p.firstTurn = false

	move := p.addMove(moveName, use)
	if move != nil && move.IsProtectCounter() && !failed {
		p.protectCounter++
	} else {
		p.protectCounter = 0
	}

	for effect := range p.effects {
		if effect.EndsOnMove() {
			delete(p.effects, effect)
		}
	}

	return move
}

func (p *Pokemon) prepare(moveName string, target string) {
	p.preparingMove = p.addMove(moveName, false)
	p.preparingTarget = target
}

func (p *Pokemon) cantMove() {
	p.firstTurn = false
	p.protectCounter = 0
}

func (p *Pokemon) setItem(name string) {
	p.item = Known(name)
}

func (p *Pokemon) endItem(name string) {
	p.item = Absent()
	if dex.ToID(name) == "powerherb" {
		p.preparingMove = nil
		p.preparingTarget = ""
	}
}

func (p *Pokemon) setAbility(name string) {
	p.ability.reveal(Known(name))
}

// setTemporaryAbility overrides the ability until switch out. An empty name suppresses it.
func (p *Pokemon) setTemporaryAbility(name string) {
	p.ability.temporary = Known(name)
}

// formeChange is a temporary change (-formechange) that reverts on switch out.
func (p *Pokemon) formeChange(species string) {
	species = strings.TrimSpace(strings.Split(species, ",")[0])
	id := dex.ToID(species)
	if id == p.species {
		p.revertForme()
		return
	}

	p.formeSpecies = id
	p.updateFromPokedex(species, false)
}

func (p *Pokemon) revertForme() {
	if p.formeSpecies == "" {
		return
	}
	p.formeSpecies = ""
	p.ability.forme = Unknown()
	base := p.ability.base
	p.updateFromPokedex(p.species, true)
	p.ability.base = lo.Ternary(base.IsUnknown(), p.ability.base, base)
}

// permanentFormeChange covers mega evolution, primal reversion and detailschange.
func (p *Pokemon) permanentFormeChange(species string) {
	p.formeSpecies = ""
	p.ability.forme = Unknown()
	p.updateFromPokedex(species, true)
}

func (p *Pokemon) megaEvolve(stone string) {
	stoneID := dex.ToID(stone)
	// detailschange usually comes first and already applied the mega forme
	if p.species != p.baseSpecies && strings.HasPrefix(p.species, p.baseSpecies+"mega") {
		if stoneID != "" {
			p.item = Known(stoneID)
		}
		return
	}

	megaSpecies := p.species + "mega"
	if len(stoneID) > 0 {
		last := stoneID[len(stoneID)-1]
		if last == 'x' || last == 'y' {
			megaSpecies += string(last)
		}
	}

	if _, ok := p.provider.Species(megaSpecies); ok {
		p.permanentFormeChange(megaSpecies)
	} else {
		warn(internalLogger, "mega forme not found", "species", megaSpecies)
	}

	if stoneID != "" {
		p.item = Known(stoneID)
	}
}

func (p *Pokemon) primalReversion() {
	primal := p.species + "primal"
	if _, ok := p.provider.Species(primal); ok {
		p.permanentFormeChange(primal)
	}
}

func (p *Pokemon) terastallize(teraType string) {
	p.teraType = PokemonTypeFromName(teraType)
	p.terastallized = true
}

func (p *Pokemon) setTemporaryTypes(types []PokemonType) {
	p.temporaryTypes = slices.Clone(types)
}

func (p *Pokemon) addTemporaryType(t PokemonType) {
	if len(p.temporaryTypes) == 0 {
		p.temporaryTypes = slices.Clone(p.types)
	}
	if !slices.Contains(p.temporaryTypes, t) {
		p.temporaryTypes = append(p.temporaryTypes, t)
	}
}

func (p *Pokemon) transformInto(target *Pokemon) {
	p.temporaryTypes = target.Types()
	p.boosts = maps.Clone(target.boosts)
	if ability := target.Ability(); ability.IsKnown() {
		p.ability.temporary = ability
	}
	p.effects[EFFECT_TRANSFORM] = 0
}

func (p *Pokemon) switchIn(details string) {
	p.preSwitchHP = p.currentHP
	p.preSwitchMaxHP = p.maxHP
	p.preSwitchStatus = p.status
	p.movesSinceSwitchIn = nil

	p.active = true
	p.firstTurn = true
	p.revealed = true
	p.updateFromDetails(details)
}

// switchOut drops every volatile. Identity, hp, status and revealed knowledge stay.
func (p *Pokemon) switchOut() {
	p.active = false
	p.newOnSwitchIn = false
	p.clearBoosts()
	clear(p.effects)
	p.firstTurn = false
	p.mustRecharge = false
	p.preparingMove = nil
	p.preparingTarget = ""
	p.protectCounter = 0
	p.temporaryTypes = nil
	p.ability.unwind()
	p.revertForme()

	if p.status == STATUS_TOX {
		p.statusCounter = 0
	}
}

// wasIllusioned undoes what was attributed to this pokemon while another one wore its
// appearance, and returns the moves that really belong to the illusionist.
func (p *Pokemon) wasIllusioned() []*Move {
	borrowed := lo.Map(p.movesSinceSwitchIn, func(id string, _ int) *Move {
		return p.moves[id]
	})
	for _, move := range borrowed {
		p.forgetMove(move.id)
	}

	p.currentHP = p.preSwitchHP
	p.maxHP = p.preSwitchMaxHP
	p.status = p.preSwitchStatus
	p.switchOut()
	p.revealed = p.currentHP != 0 || p.maxHP != 0

	return borrowed
}

// fieldState is what an illusionist inherits from its disguise when the illusion breaks.
type fieldState struct {
	currentHP     int
	maxHP         int
	status        Status
	statusCounter int
	boosts        map[string]int
	effects       map[Effect]int
}

func (p *Pokemon) fieldState() fieldState {
	return fieldState{
		currentHP:     p.currentHP,
		maxHP:         p.maxHP,
		status:        p.status,
		statusCounter: p.statusCounter,
		boosts:        maps.Clone(p.boosts),
		effects:       maps.Clone(p.effects),
	}
}

// takeOverIllusion moves the on-field state of the disguise onto the real pokemon.
func (p *Pokemon) takeOverIllusion(disguise fieldState, borrowed []*Move) {
	p.switchIn("")
	if disguise.maxHP > 0 && p.maxHP > 0 && disguise.maxHP != p.maxHP {
		// opponent hp is a percentage while ours is exact
		p.currentHP = disguise.currentHP * p.maxHP / disguise.maxHP
	} else {
		p.currentHP = disguise.currentHP
		p.maxHP = disguise.maxHP
	}
	p.status = disguise.status
	p.statusCounter = disguise.statusCounter
	p.boosts = disguise.boosts
	p.effects = disguise.effects

	for _, move := range borrowed {
		if _, ok := p.moves[move.id]; ok {
			continue
		}
		p.moves[move.id] = move
		p.moveOrder = append(p.moveOrder, move.id)
		if len(p.moveOrder) > MAX_MOVES {
			p.forgetMove(p.moveOrder[0])
		}
	}
}

// availableMovesFromRequest maps the active request's move list onto known moves.
func (p *Pokemon) availableMovesFromRequest(active *ActiveRequest) ([]BattleMove, error) {
	moves := make([]BattleMove, 0, len(active.Moves))

	for _, requestMove := range active.Moves {
		if requestMove.Disabled {
			continue
		}

		id, _ := RetrieveMoveID(requestMove.ID)
		if id == "" {
			id, _ = RetrieveMoveID(requestMove.Move)
		}

		move, known := p.moves[id]
		switch {
		case known:
		case SPECIAL_MOVES[id]:
			move = NewMove(id, p.provider)
		case strings.HasPrefix(id, "hiddenpower") && p.uniqueHiddenPower() != nil:
			move = p.uniqueHiddenPower()
		case p.canExplainUnknownMove():
			warn(internalLogger, "request move isn't in the known moveset", "pokemon", p.name, "move", id)
			move = NewMove(id, p.provider)
		default:
			return nil, fmt.Errorf("%w: %s for %s", ErrUnexplainedMove, id, p.name)
		}

		if requestMove.MaxPP > 0 && known {
			move.syncPP(requestMove.PP)
		}

		if p.IsDynamaxed() {
			moves = append(moves, move.Dynamaxed())
		} else {
			moves = append(moves, move)
		}
	}

	return moves, nil
}

func (p *Pokemon) uniqueHiddenPower() *Move {
	variants := lo.Filter(p.moveOrder, func(id string, _ int) bool {
		return strings.HasPrefix(id, "hiddenpower")
	})
	if len(variants) != 1 {
		return nil
	}
	return p.moves[variants[0]]
}

// canExplainUnknownMove covers copied moves: Transform, Mimic, Copycat and friends, and
// an illusionist whose moveset was recorded under its disguise.
func (p *Pokemon) canExplainUnknownMove() bool {
	if p.Transformed() || p.HasEffect(EFFECT_MIMIC) {
		return true
	}
	if lo.SomeBy(p.moveOrder, func(id string) bool { return copyingMoves[id] }) {
		return true
	}
	return p.Ability().ID() == "illusion" || slices.Contains(p.possibleAbilities, "illusion")
}
