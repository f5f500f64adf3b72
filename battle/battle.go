package battle

import (
	"fmt"
	"maps"
	"strings"

	"github.com/nathanieltooley/gokemon-showdown/dex"
	"github.com/samber/lo"
)

// Battle is the read contract decision makers consume, shared by single and double battles.
// Per slot values have one entry in single battles and two in double battles.
type Battle interface {
	Tag() string
	Username() string
	OpponentUsername() string
	PlayerRole() string
	OpponentRole() string
	Gen() int
	Format() string
	Rules() []string
	Turn() int

	Finished() bool
	Won() bool
	Lost() bool
	Tied() bool

	Team() *Team
	OpponentTeam() *Team
	// ActivePokemon has one entry per slot. Empty slots are nil.
	ActivePokemon() []*Pokemon
	OpponentActivePokemon() []*Pokemon
	GetPokemon(identifier string) (*Pokemon, error)

	Weather() map[Weather]int
	Fields() map[Field]int
	SideConditions() map[SideCondition]int
	OpponentSideConditions() map[SideCondition]int

	AvailableMoves() [][]BattleMove
	AvailableSwitches() [][]*Pokemon
	CanMegaEvolve() []bool
	CanZMove() []bool
	CanDynamax() []bool
	CanTerastallize() []bool
	ForceSwitch() []bool
	Trapped() []bool
	MaybeTrapped() []bool
	TeamPreview() bool
	MaxTeamSize() int
	Wait() bool
	LastRequest() *Request

	UsedMegaEvolve(role string) bool
	UsedZMove(role string) bool
	UsedDynamax(role string) bool
	UsedTerastallize(role string) bool

	Observations() map[int]*Observation
	CurrentObservation() *Observation
	Log() []string

	ValidOrders() []Order

	ParseMessage(event []string) error
	ParseRequest(request *Request) error
}

// variant is the part of a battle that depends on how many pokemon are active per side.
type variant interface {
	slots() int
	onSwitch(role string, incoming *Pokemon, outgoing *Pokemon)
	swap(role string, slot int, target int)
	applyLegality(request *Request, active []*Pokemon) error
	validOrders() []Order
}

type gimmick int

const (
	gimmickMega gimmick = iota
	gimmickZMove
	gimmickDynamax
	gimmickTera
)

// battleCore holds the state and event handling shared by both battle variants.
type battleCore struct {
	v        variant
	provider dex.Provider

	tag              string
	username         string
	opponentUsername string
	playerRole       string
	gen              int
	format           string
	rules            []string
	turn             int

	finished bool
	won      bool
	lost     bool
	tied     bool

	team         *Team
	opponentTeam *Team
	// active pokemon per role, one entry per slot
	active    map[string][]*Pokemon
	teamSize  map[string]int
	usedGimms map[string]map[gimmick]bool

	weather                map[Weather]int
	fields                 map[Field]int
	sideConditions         map[SideCondition]int
	opponentSideConditions map[SideCondition]int

	availableMoves    [][]BattleMove
	availableSwitches [][]*Pokemon
	canMegaEvolve     []bool
	canZMove          []bool
	zMoves            []map[string]bool
	canDynamax        []bool
	canTerastallize   []bool
	forceSwitch       []bool
	trapped           []bool
	maybeTrapped      []bool
	teamPreview       bool
	maxTeamSize       int
	wait              bool
	reviving          bool
	lastRequest       *Request

	observations       map[int]*Observation
	currentObservation *Observation
	log                []string
}

func newBattleCore(tag string, username string, provider dex.Provider, gen int) *battleCore {
	b := &battleCore{
		provider:               provider,
		tag:                    tag,
		username:               username,
		gen:                    gen,
		team:                   newTeam(),
		opponentTeam:           newTeam(),
		active:                 map[string][]*Pokemon{},
		teamSize:               map[string]int{},
		usedGimms:              map[string]map[gimmick]bool{"p1": {}, "p2": {}},
		weather:                map[Weather]int{},
		fields:                 map[Field]int{},
		sideConditions:         map[SideCondition]int{},
		opponentSideConditions: map[SideCondition]int{},
		observations:           map[int]*Observation{},
	}
	b.currentObservation = newObservation()

	return b
}

// setVariant sizes the per slot state once the variant is known.
func (b *battleCore) setVariant(v variant) {
	b.v = v
	for _, role := range []string{"p1", "p2"} {
		b.active[role] = make([]*Pokemon, v.slots())
	}
	b.clearLegality()
}

func (b *battleCore) clearLegality() {
	n := b.v.slots()
	b.availableMoves = make([][]BattleMove, n)
	b.availableSwitches = make([][]*Pokemon, n)
	b.canMegaEvolve = make([]bool, n)
	b.canZMove = make([]bool, n)
	b.zMoves = make([]map[string]bool, n)
	b.canDynamax = make([]bool, n)
	b.canTerastallize = make([]bool, n)
	b.forceSwitch = make([]bool, n)
	b.trapped = make([]bool, n)
	b.maybeTrapped = make([]bool, n)
}

func (b *battleCore) Tag() string              { return b.tag }
func (b *battleCore) Username() string         { return b.username }
func (b *battleCore) OpponentUsername() string { return b.opponentUsername }
func (b *battleCore) PlayerRole() string       { return b.playerRole }
func (b *battleCore) Gen() int                 { return b.gen }
func (b *battleCore) Format() string           { return b.format }
func (b *battleCore) Rules() []string          { return b.rules }
func (b *battleCore) Turn() int                { return b.turn }
func (b *battleCore) Finished() bool           { return b.finished }
func (b *battleCore) Won() bool                { return b.won }
func (b *battleCore) Lost() bool               { return b.lost }
func (b *battleCore) Tied() bool               { return b.tied }
func (b *battleCore) Team() *Team              { return b.team }
func (b *battleCore) OpponentTeam() *Team      { return b.opponentTeam }
func (b *battleCore) TeamPreview() bool        { return b.teamPreview }
func (b *battleCore) MaxTeamSize() int         { return b.maxTeamSize }
func (b *battleCore) Wait() bool               { return b.wait }
func (b *battleCore) LastRequest() *Request    { return b.lastRequest }

func (b *battleCore) OpponentRole() string {
	switch b.playerRole {
	case "p1":
		return "p2"
	case "p2":
		return "p1"
	}
	return ""
}

func (b *battleCore) ActivePokemon() []*Pokemon {
	return b.activeFor(b.playerRole)
}

func (b *battleCore) OpponentActivePokemon() []*Pokemon {
	return b.activeFor(b.OpponentRole())
}

func (b *battleCore) activeFor(role string) []*Pokemon {
	slots, ok := b.active[role]
	if !ok {
		return make([]*Pokemon, b.v.slots())
	}
	return lo.Map(slots, func(p *Pokemon, _ int) *Pokemon {
		if p == nil || !p.active {
			return nil
		}
		return p
	})
}

func (b *battleCore) activeAt(role string, slot int) *Pokemon {
	slots := b.active[role]
	if slot < 0 || slot >= len(slots) {
		return nil
	}
	return slots[slot]
}

func (b *battleCore) allActive() []*Pokemon {
	all := append(b.activeFor("p1"), b.activeFor("p2")...)
	return lo.Compact(all)
}

func (b *battleCore) Weather() map[Weather]int { return maps.Clone(b.weather) }
func (b *battleCore) Fields() map[Field]int     { return maps.Clone(b.fields) }

func (b *battleCore) SideConditions() map[SideCondition]int {
	return maps.Clone(b.sideConditions)
}

func (b *battleCore) OpponentSideConditions() map[SideCondition]int {
	return maps.Clone(b.opponentSideConditions)
}

func (b *battleCore) sideConditionsFor(role string) map[SideCondition]int {
	if role == b.playerRole {
		return b.sideConditions
	}
	return b.opponentSideConditions
}

func (b *battleCore) AvailableMoves() [][]BattleMove    { return b.availableMoves }
func (b *battleCore) AvailableSwitches() [][]*Pokemon { return b.availableSwitches }
func (b *battleCore) CanMegaEvolve() []bool           { return b.canMegaEvolve }
func (b *battleCore) CanZMove() []bool                { return b.canZMove }
func (b *battleCore) CanDynamax() []bool              { return b.canDynamax }
func (b *battleCore) CanTerastallize() []bool         { return b.canTerastallize }
func (b *battleCore) ForceSwitch() []bool             { return b.forceSwitch }
func (b *battleCore) Trapped() []bool                 { return b.trapped }
func (b *battleCore) MaybeTrapped() []bool            { return b.maybeTrapped }

// CanZMoveWith reports whether the move in a slot can be used as a Z-move this turn.
func (b *battleCore) CanZMoveWith(slot int, move BattleMove) bool {
	if slot >= len(b.zMoves) || b.zMoves[slot] == nil {
		return false
	}
	return b.zMoves[slot][move.ID()]
}

func (b *battleCore) UsedMegaEvolve(role string) bool   { return b.usedGimms[role][gimmickMega] }
func (b *battleCore) UsedZMove(role string) bool        { return b.usedGimms[role][gimmickZMove] }
func (b *battleCore) UsedDynamax(role string) bool      { return b.usedGimms[role][gimmickDynamax] }
func (b *battleCore) UsedTerastallize(role string) bool { return b.usedGimms[role][gimmickTera] }

func (b *battleCore) useGimmick(identifier string, g gimmick) {
	role, _, _ := splitIdentifier(identifier)
	if _, ok := b.usedGimms[role]; !ok {
		b.usedGimms[role] = map[gimmick]bool{}
	}
	b.usedGimms[role][g] = true
}

func (b *battleCore) Observations() map[int]*Observation {
	return maps.Clone(b.observations)
}

func (b *battleCore) CurrentObservation() *Observation {
	return b.currentObservation
}

// Log returns every protocol line seen so far, in order.
func (b *battleCore) Log() []string {
	return append([]string(nil), b.log...)
}

// splitIdentifier breaks "p1a: Pikachu" into ("p1", "a", "Pikachu").
func splitIdentifier(identifier string) (role string, position string, name string) {
	prefix, name, _ := strings.Cut(identifier, ":")
	prefix = strings.TrimSpace(prefix)
	name = strings.TrimSpace(name)

	if len(prefix) < 2 {
		return prefix, "", name
	}
	return prefix[:2], prefix[2:], name
}

// normalizeIdentifier drops the slot letter: "p1a: Pikachu" -> "p1: Pikachu".
func normalizeIdentifier(identifier string) string {
	role, _, name := splitIdentifier(identifier)
	return role + ": " + name
}

func slotIndex(position string) int {
	if position == "" {
		return 0
	}
	return int(position[0] - 'a')
}

func isIdentifier(field string) bool {
	role, _, _ := splitIdentifier(field)
	return strings.Contains(field, ":") && (role == "p1" || role == "p2" || role == "p3" || role == "p4")
}

// GetPokemon resolves an identifier to its pokemon, creating it on first sight.
func (b *battleCore) GetPokemon(identifier string) (*Pokemon, error) {
	return b.getPokemon(identifier, false, "", nil)
}

// getPokemon is the only place team members get created. forceSelf puts new members on our
// side regardless of the identifier, details and request are used to build new members.
func (b *battleCore) getPokemon(identifier string, forceSelf bool, details string, request *PokemonRequest) (*Pokemon, error) {
	key := normalizeIdentifier(identifier)
	if p, ok := b.team.Get(key); ok {
		return p, nil
	}
	if p, ok := b.opponentTeam.Get(key); ok {
		return p, nil
	}

	role, _, name := splitIdentifier(identifier)
	team := b.opponentTeam
	if forceSelf || (b.playerRole != "" && role == b.playerRole) {
		team = b.team
	}

	species := name
	if details != "" {
		species = strings.TrimSpace(strings.Split(details, ",")[0])
	}
	if p := b.matchBySpecies(team, species); p != nil {
		oldKey, _ := team.keyOf(p)
		internalLogger.V(1).Info("rekeying pokemon", "from", oldKey, "to", key)
		team.rekey(oldKey, key)
		p.name = name
		return p, nil
	}

	bound := b.teamSize[role]
	if bound == 0 {
		bound = MAX_TEAM
	}
	if team.Len() >= bound {
		return nil, fmt.Errorf("%w: %s has %d pokemon, can't add %q", ErrTeamFull, role, team.Len(), identifier)
	}

	var p *Pokemon
	switch {
	case request != nil:
		var err error
		if p, err = NewPokemonFromRequest(request, b.provider); err != nil {
			return nil, err
		}
	case details != "":
		p = NewPokemonFromDetails(details, b.provider)
	default:
		p = NewPokemonFromSpecies(name, b.provider)
	}
	p.name = name

	team.set(key, p)
	return p, nil
}

// matchBySpecies finds a member that was only known by its species (team preview) and has
// the same base species as the one being looked up.
func (b *battleCore) matchBySpecies(team *Team, species string) *Pokemon {
	baseSpecies := dex.ToID(species)
	if entry, ok := b.provider.Species(baseSpecies); ok && entry.BaseSpecies != "" {
		baseSpecies = dex.ToID(entry.BaseSpecies)
	}

	matches := lo.Filter(team.Pokemon(), func(p *Pokemon, _ int) bool {
		key, _ := team.keyOf(p)
		_, _, keyName := splitIdentifier(key)
		keyID := dex.ToID(keyName)
		speciesKeyed := keyID == p.species || keyID == p.baseSpecies
		return speciesKeyed && p.baseSpecies == baseSpecies
	})

	if len(matches) > 1 {
		warn(internalLogger, "several pokemon match a species", "species", species, "matches", len(matches))
	}
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func (b *battleCore) teamFor(role string) *Team {
	if role == b.playerRole {
		return b.team
	}
	return b.opponentTeam
}

func (b *battleCore) setActive(role string, slot int, p *Pokemon) {
	slots, ok := b.active[role]
	if !ok {
		slots = make([]*Pokemon, b.v.slots())
		b.active[role] = slots
	}
	if slot >= 0 && slot < len(slots) {
		slots[slot] = p
	}
}

func (b *battleCore) switchIn(identifier string, details string, condition string) error {
	role, position, _ := splitIdentifier(identifier)
	slot := slotIndex(position)
	team := b.teamFor(role)

	before := team.Len()
	incoming, err := b.getPokemon(identifier, false, details, nil)
	if err != nil {
		return err
	}
	incoming.newOnSwitchIn = team.Len() > before

	outgoing := b.activeAt(role, slot)
	if outgoing != nil && outgoing != incoming {
		outgoing.switchOut()
	}

	incoming.switchIn(details)
	if err := incoming.setHPStatus(condition); err != nil {
		return err
	}
	b.setActive(role, slot, incoming)
	b.v.onSwitch(role, incoming, outgoing)

	return nil
}

// replace handles an illusion breaking: the pokemon in the slot was really someone else.
func (b *battleCore) replace(identifier string, details string) error {
	role, position, _ := splitIdentifier(identifier)
	slot := slotIndex(position)
	team := b.teamFor(role)

	disguise := b.activeAt(role, slot)
	if disguise == nil {
		return fmt.Errorf("%w: nothing active at %s", ErrIllusion, identifier)
	}

	if existing, ok := team.Get(normalizeIdentifier(identifier)); ok && existing == disguise {
		disguise.updateFromDetails(details)
		return nil
	}

	createdByIllusion := disguise.newOnSwitchIn
	onField := disguise.fieldState()
	borrowed := disguise.wasIllusioned()
	if createdByIllusion {
		key, _ := team.keyOf(disguise)
		team.remove(key)
	}

	illusionist, err := b.getPokemon(identifier, false, details, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIllusion, err)
	}

	illusionist.takeOverIllusion(onField, borrowed)
	illusionist.updateFromDetails(details)
	if illusionist.Ability().IsUnknown() {
		illusionist.setAbility("illusion")
	}
	b.setActive(role, slot, illusionist)

	return nil
}

func (b *battleCore) endTurn(turn int) {
	b.turn = turn
	for _, p := range b.allActive() {
		p.endTurn()
	}
}

func (b *battleCore) ParseRequest(request *Request) error {
	if err := b.applyRequest(request); err != nil {
		return &RequestError{Request: request, Err: err}
	}
	return nil
}

func (b *battleCore) applyRequest(request *Request) error {
	b.lastRequest = request
	b.clearLegality()

	b.wait = request.Wait
	b.teamPreview = request.TeamPreview
	switch {
	case request.MaxTeamSize > 0:
		b.maxTeamSize = request.MaxTeamSize
	case request.TeamPreview:
		b.maxTeamSize = len(request.Side.Pokemon)
	}

	if b.playerRole == "" {
		switch {
		case request.Side.ID != "":
			b.playerRole = request.Side.ID
		case len(request.Side.Pokemon) > 0:
			b.playerRole, _, _ = splitIdentifier(request.Side.Pokemon[0].Ident)
		}
	}
	if b.username == "" {
		b.username = request.Side.Name
	}

	b.reviving = lo.SomeBy(request.Side.Pokemon, func(p PokemonRequest) bool { return p.Reviving })

	active := []*Pokemon{}
	for i := range request.Side.Pokemon {
		pokemonRequest := &request.Side.Pokemon[i]
		p, err := b.getPokemon(pokemonRequest.Ident, true, pokemonRequest.Details, pokemonRequest)
		if err != nil {
			return err
		}
		if err := p.updateFromRequest(pokemonRequest); err != nil {
			return err
		}
		if pokemonRequest.Active {
			active = append(active, p)
		}
	}

	// the first request arrives before the switch lines that put these on the field
	for slot, p := range active {
		if b.activeAt(b.playerRole, slot) == nil {
			b.setActive(b.playerRole, slot, p)
		}
	}

	if request.Wait || request.TeamPreview {
		return nil
	}

	return b.v.applyLegality(request, active)
}

// slotLegality fills one slot's moves and gimmick flags from its active request fragment.
func (b *battleCore) slotLegality(slot int, active *ActiveRequest, p *Pokemon) error {
	moves, err := p.availableMovesFromRequest(active)
	if err != nil {
		return err
	}

	b.availableMoves[slot] = moves
	b.canMegaEvolve[slot] = active.CanMegaEvo
	b.canDynamax[slot] = active.CanDynamax
	b.canTerastallize[slot] = active.CanTerastallize != ""
	b.trapped[slot] = active.Trapped
	b.maybeTrapped[slot] = active.MaybeTrapped

	b.zMoves[slot] = map[string]bool{}
	for i, option := range active.CanZMove {
		if option == nil || i >= len(active.Moves) {
			continue
		}
		id, _ := RetrieveMoveID(active.Moves[i].ID)
		b.zMoves[slot][id] = true
	}
	b.canZMove[slot] = len(b.zMoves[slot]) > 0

	return nil
}

// switchCandidates lists our benched pokemon that can come in, in request order.
func (b *battleCore) switchCandidates(request *Request) []*Pokemon {
	candidates := []*Pokemon{}
	for _, pokemonRequest := range request.Side.Pokemon {
		if pokemonRequest.Active {
			continue
		}
		p, ok := b.team.Get(normalizeIdentifier(pokemonRequest.Ident))
		if !ok {
			continue
		}
		if p.Fainted() == b.reviving {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

func (b *battleCore) closeObservation() *Observation {
	b.currentObservation.capture(b)
	return b.currentObservation
}

func (b *battleCore) String() string {
	return fmt.Sprintf("battle %s [turn %d, %s vs %s]", b.tag, b.turn, b.username, b.opponentUsername)
}
