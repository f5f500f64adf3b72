package battle

import (
	"slices"
	"strconv"
	"strings"

	"github.com/nathanieltooley/gokemon-showdown/dex"
)

type eventHandler func(b *battleCore, event []string) error

// Lines that never change battle state. They are still logged and observed.
var ignoredEvents = map[string]bool{
	// bare "|" spacer lines
	"":                true,
	"-anim":           true,
	"-block":          true,
	"-candynamax":     true,
	"-center":         true,
	"-combine":        true,
	"-crit":           true,
	"-fail":           true,
	"-fieldactivate":  true,
	"-hint":           true,
	"-hitcount":       true,
	"-message":        true,
	"-miss":           true,
	"-notarget":       true,
	"-nothing":        true,
	"-ohko":           true,
	"-resisted":       true,
	"-supereffective": true,
	"-waiting":        true,
	"-zbroken":        true,
	"J":               true,
	"L":               true,
	"askreg":          true,
	"badge":           true,
	"bigerror":        true,
	"c":               true,
	"chat":            true,
	"crit":            true,
	"debug":           true,
	"deinit":          true,
	"error":           true,
	"gametype":        true,
	"html":            true,
	"inactive":        true,
	"inactiveoff":     true,
	"init":            true,
	"j":               true,
	"join":            true,
	"l":               true,
	"leave":           true,
	"message":         true,
	"n":               true,
	"name":            true,
	"noinit":          true,
	"rated":           true,
	"raw":             true,
	"seed":            true,
	"sentchoice":      true,
	"split":           true,
	"start":           true,
	"t:":              true,
	"timer":           true,
	"title":           true,
	"uhtml":           true,
	"uhtmlchange":     true,
	"unlink":          true,
	"upkeep":          true,
}

var eventHandlers map[string]eventHandler

func init() {
	eventHandlers = map[string]eventHandler{
		"switch":  handleSwitch,
		"drag":    handleSwitch,
		"replace": handleReplace,
		"swap":    handleSwap,
		"move":    handleMove,
		"cant":    handleCant,
		"faint":   handleFaint,
		"turn":    handleTurn,
		"win":     handleWin,
		"tie":     handleTie,

		"-damage": handleDamage,
		"-heal":   handleHeal,
		"-sethp":  handleSetHP,

		"-status":     handleStatus,
		"-curestatus": handleCureStatus,
		"-cureteam":   handleCureTeam,

		"-boost":              handleBoost,
		"-unboost":            handleBoost,
		"-setboost":           handleSetBoost,
		"-clearboost":         handleClearBoost,
		"-clearallboost":      handleClearAllBoost,
		"-clearnegativeboost": handleClearNegativeBoost,
		"-clearpositiveboost": handleClearPositiveBoost,
		"-invertboost":        handleInvertBoost,
		"-copyboost":          handleCopyBoost,
		"-swapboost":          handleSwapBoost,

		"-weather":            handleWeather,
		"-fieldstart":         handleFieldStart,
		"-fieldend":           handleFieldEnd,
		"-sidestart":          handleSideStart,
		"-sideend":            handleSideEnd,
		"-swapsideconditions": handleSwapSideConditions,

		"-start":        handleStart,
		"-end":          handleEnd,
		"-activate":     handleActivate,
		"-singleturn":   handleSingleEffect,
		"-singlemove":   handleSingleEffect,
		"-item":         handleItem,
		"-enditem":      handleEndItem,
		"-ability":      handleAbility,
		"-endability":   handleEndAbility,
		"-immune":       handleImmune,
		"-transform":    handleTransform,
		"-mega":         handleMega,
		"-primal":       handlePrimal,
		"-burst":        handleBurst,
		"-zpower":       handleZPower,
		"-terastallize": handleTerastallize,
		"detailschange": handleDetailsChange,
		"-formechange":  handleFormeChange,
		"-mustrecharge": handleMustRecharge,
		"-prepare":      handlePrepare,

		"player":      handlePlayer,
		"teamsize":    handleTeamSize,
		"gen":         handleGen,
		"tier":        handleTier,
		"rule":        handleRule,
		"poke":        handlePoke,
		"clearpoke":   handleClearPoke,
		"teampreview": handleTeamPreview,
		"updatepoke":  handleUpdatePoke,
	}
}

// ParseMessage applies one protocol line, already split on "|". The first field is the
// empty string before the leading pipe.
func (b *battleCore) ParseMessage(event []string) error {
	if len(event) < 2 {
		return &EventError{Event: event, Err: malformed(event, "no keyword")}
	}

	b.log = append(b.log, strings.Join(event, "|"))
	b.currentObservation.record(event)

	keyword := event[1]
	if ignoredEvents[keyword] {
		return nil
	}

	handler, ok := eventHandlers[keyword]
	if !ok {
		return &UnhandledEventError{Event: slices.Clone(event)}
	}

	if err := handler(b, event); err != nil {
		return &EventError{Event: slices.Clone(event), Err: err}
	}
	return nil
}

// Parsing helpers

func arg(event []string, i int) string {
	if i < len(event) {
		return event[i]
	}
	return ""
}

// source finds a "[from] kind: Name" annotation. kind is "item", "ability", "move" or ""
// for bare sources like "[from] Stealth Rock".
func source(event []string) (kind string, name string) {
	for _, field := range event[2:] {
		rest, ok := strings.CutPrefix(field, "[from]")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		for _, prefix := range []string{"item:", "ability:", "move:"} {
			if named, ok := strings.CutPrefix(rest, prefix); ok {
				return strings.TrimSuffix(prefix, ":"), strings.TrimSpace(named)
			}
		}
		return "", rest
	}
	return "", ""
}

// of returns the identifier from an "[of] p1a: Name" annotation.
func of(event []string) string {
	for _, field := range event[2:] {
		if rest, ok := strings.CutPrefix(field, "[of]"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

func (b *battleCore) pokemonArg(event []string, i int) (*Pokemon, error) {
	identifier := arg(event, i)
	if identifier == "" {
		return nil, malformed(event, "missing pokemon at field "+strconv.Itoa(i))
	}
	return b.GetPokemon(identifier)
}

func (b *battleCore) ofPokemon(event []string) (*Pokemon, error) {
	identifier := of(event)
	if identifier == "" {
		return nil, nil
	}
	return b.GetPokemon(identifier)
}

// inferSource reveals the item or ability named in a [from] annotation on owner.
func inferSource(event []string, owner *Pokemon) {
	if owner == nil {
		return
	}
	switch kind, name := source(event); kind {
	case "item":
		owner.setItem(name)
	case "ability":
		owner.setAbility(name)
	}
}

// Switching

func handleSwitch(b *battleCore, event []string) error {
	if len(event) < 5 {
		return malformed(event, "switch needs identifier, details and condition")
	}
	return b.switchIn(event[2], event[3], event[4])
}

func handleReplace(b *battleCore, event []string) error {
	if len(event) < 4 {
		return malformed(event, "replace needs identifier and details")
	}
	return b.replace(event[2], event[3])
}

func handleSwap(b *battleCore, event []string) error {
	if len(event) < 4 {
		return malformed(event, "swap needs identifier and position")
	}
	role, position, _ := splitIdentifier(event[2])
	target, err := strconv.Atoi(event[3])
	if err != nil {
		return malformed(event, "swap position isn't a number")
	}
	b.v.swap(role, slotIndex(position), target)
	return nil
}

func handleCant(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	reason := arg(event, 3)
	switch {
	case reason == "slp":
		p.tickSleep()
	case reason == "recharge":
		p.mustRecharge = false
	case strings.HasPrefix(reason, "ability:"):
		p.setAbility(stripEffectPrefix(reason))
	}

	if move := arg(event, 4); move != "" && !strings.HasPrefix(move, "[") {
		p.addMove(move, false)
	}
	p.cantMove()

	return nil
}

func handleFaint(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.faint()
	return nil
}

func handleTurn(b *battleCore, event []string) error {
	turn, err := strconv.Atoi(arg(event, 2))
	if err != nil {
		return malformed(event, "turn isn't a number")
	}

	b.observations[b.turn] = b.closeObservation()
	b.endTurn(turn)
	b.currentObservation = newObservation()

	return nil
}

func handleWin(b *battleCore, event []string) error {
	winner := arg(event, 2)
	b.finished = true
	b.won = winner == b.username
	b.lost = !b.won
	b.observations[b.turn] = b.closeObservation()
	return nil
}

func handleTie(b *battleCore, event []string) error {
	b.finished = true
	b.tied = true
	b.observations[b.turn] = b.closeObservation()
	return nil
}

// HP

func handleDamage(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	if err := p.damage(arg(event, 3)); err != nil {
		return err
	}

	// Rocky Helmet and Rough Skin belong to the pokemon in [of], Life Orb to the damaged one
	owner, err := b.ofPokemon(event)
	if err != nil {
		return err
	}
	if owner == nil {
		owner = p
	}
	inferSource(event, owner)

	return nil
}

func handleHeal(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	if err := p.heal(arg(event, 3)); err != nil {
		return err
	}
	inferSource(event, p)
	return nil
}

func handleSetHP(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	if err := p.setHP(arg(event, 3)); err != nil {
		return err
	}

	// old servers send both pokemon of a Pain Split in one line
	if isIdentifier(arg(event, 4)) {
		other, err := b.pokemonArg(event, 4)
		if err != nil {
			return err
		}
		return other.setHP(arg(event, 5))
	}
	return nil
}

// Status

func handleStatus(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	status, ok := StatusFromShowdown(arg(event, 3))
	if !ok {
		return malformed(event, "unknown status "+arg(event, 3))
	}
	p.setStatus(status)

	owner, err := b.ofPokemon(event)
	if err != nil {
		return err
	}
	if owner == nil {
		owner = p
	}
	inferSource(event, owner)

	return nil
}

func handleCureStatus(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	status, _ := StatusFromShowdown(arg(event, 3))
	p.cureStatus(status)
	inferSource(event, p)
	return nil
}

func handleCureTeam(b *battleCore, event []string) error {
	role, _, _ := splitIdentifier(arg(event, 2))
	for _, p := range b.teamFor(role).Pokemon() {
		p.cureStatus(STATUS_NONE)
	}
	return nil
}

// Boosts

func handleBoost(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	amount, err := strconv.Atoi(arg(event, 4))
	if err != nil {
		return malformed(event, "boost amount isn't a number")
	}
	if event[1] == "-unboost" {
		amount = -amount
	}
	p.boost(arg(event, 3), amount)

	return nil
}

func handleSetBoost(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	amount, err := strconv.Atoi(arg(event, 4))
	if err != nil {
		return malformed(event, "boost amount isn't a number")
	}
	p.setBoost(arg(event, 3), amount)

	return nil
}

func handleClearBoost(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.clearBoosts()
	return nil
}

func handleClearAllBoost(b *battleCore, event []string) error {
	for _, p := range b.allActive() {
		p.clearBoosts()
	}
	return nil
}

func handleClearNegativeBoost(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.clearNegativeBoosts()
	return nil
}

func handleClearPositiveBoost(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.clearPositiveBoosts()
	return nil
}

func handleInvertBoost(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.invertBoosts()
	return nil
}

// -copyboost|copier|copied
func handleCopyBoost(b *battleCore, event []string) error {
	copier, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	copied, err := b.pokemonArg(event, 3)
	if err != nil {
		return err
	}
	copier.copyBoostsFrom(copied)
	return nil
}

func handleSwapBoost(b *battleCore, event []string) error {
	first, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	second, err := b.pokemonArg(event, 3)
	if err != nil {
		return err
	}

	var stats []string
	if listed := arg(event, 4); listed != "" && !strings.HasPrefix(listed, "[") {
		for _, stat := range strings.Split(listed, ",") {
			stats = append(stats, strings.TrimSpace(stat))
		}
	}
	first.swapBoosts(second, stats)

	return nil
}

// Field state

func handleWeather(b *battleCore, event []string) error {
	message := arg(event, 2)
	if slices.Contains(event[2:], "[upkeep]") {
		return nil
	}

	if message == "none" || message == "" {
		clear(b.weather)
		return nil
	}

	weather := WeatherFromShowdownMessage(message)
	clear(b.weather)
	b.weather[weather] = b.turn

	owner, err := b.ofPokemon(event)
	if err != nil {
		return err
	}
	inferSource(event, owner)

	return nil
}

func handleFieldStart(b *battleCore, event []string) error {
	field := FieldFromShowdownMessage(arg(event, 2))
	if field == FIELD_UNKNOWN {
		return nil
	}

	if field.IsTerrain() {
		for existing := range b.fields {
			if existing.IsTerrain() {
				delete(b.fields, existing)
			}
		}
	}
	b.fields[field] = b.turn

	owner, err := b.ofPokemon(event)
	if err != nil {
		return err
	}
	inferSource(event, owner)

	return nil
}

func handleFieldEnd(b *battleCore, event []string) error {
	field := FieldFromShowdownMessage(arg(event, 2))
	if field == FIELD_UNKNOWN {
		return nil
	}

	if _, ok := b.fields[field]; !ok {
		return ErrUnknownField
	}
	delete(b.fields, field)

	return nil
}

func handleSideStart(b *battleCore, event []string) error {
	role, _, _ := splitIdentifier(arg(event, 2))
	condition := SideConditionFromShowdownMessage(arg(event, 3))
	if condition == SIDE_UNKNOWN {
		return nil
	}

	conditions := b.sideConditionsFor(role)
	if condition.Stackable() {
		conditions[condition]++
	} else if _, ok := conditions[condition]; !ok {
		conditions[condition] = b.turn
	}

	return nil
}

func handleSideEnd(b *battleCore, event []string) error {
	role, _, _ := splitIdentifier(arg(event, 2))
	condition := SideConditionFromShowdownMessage(arg(event, 3))
	if condition == SIDE_UNKNOWN {
		return nil
	}

	conditions := b.sideConditionsFor(role)
	if _, ok := conditions[condition]; !ok {
		return ErrUnknownSideCondition
	}
	delete(conditions, condition)

	return nil
}

// Court Change
func handleSwapSideConditions(b *battleCore, event []string) error {
	b.sideConditions, b.opponentSideConditions = b.opponentSideConditions, b.sideConditions
	return nil
}

// Volatiles

func handleStart(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	message := arg(event, 3)
	switch dex.ToID(stripEffectPrefix(message)) {
	case "typechange":
		if err := b.typeChange(p, event); err != nil {
			return err
		}
	case "typeadd":
		p.addTemporaryType(PokemonTypeFromName(arg(event, 4)))
	case "dynamax":
		b.useGimmick(event[2], gimmickDynamax)
	case "disable", "encore":
		if move := arg(event, 4); move != "" && !strings.HasPrefix(move, "[") {
			p.addMove(move, false)
		}
	}

	// Flash Fire and Slow Start both reveal the ability and start an effect
	if strings.HasPrefix(message, "ability:") {
		p.setAbility(stripEffectPrefix(message))
	}

	p.startEffect(message)
	inferSource(event, p)

	return nil
}

// typeChange covers Soak style changes ("Water") and copies ("[from] move: Reflect Type").
func (b *battleCore) typeChange(p *Pokemon, event []string) error {
	typesField := arg(event, 4)

	if typesField == "" || strings.HasPrefix(typesField, "[") {
		copied, err := b.ofPokemon(event)
		if err != nil {
			return err
		}
		if copied != nil {
			p.setTemporaryTypes(copied.Types())
		}
		return nil
	}

	types := []PokemonType{}
	for _, name := range strings.Split(typesField, "/") {
		if t := PokemonTypeFromName(strings.TrimSpace(name)); t != TYPE_UNKNOWN {
			types = append(types, t)
		}
	}
	p.setTemporaryTypes(types)

	return nil
}

func handleEnd(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	message := arg(event, 3)
	if dex.ToID(stripEffectPrefix(message)) == "illusion" {
		p.setAbility("illusion")
	}
	p.endEffect(message)

	return nil
}

func handleActivate(b *battleCore, event []string) error {
	// field wide activations have an empty target
	if arg(event, 2) == "" {
		return nil
	}

	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	message := arg(event, 3)
	id := dex.ToID(stripEffectPrefix(message))

	switch {
	case id == "skillswap":
		return b.skillSwap(p, event)
	case id == "symbiosis":
		// the holder passes its item to the pokemon in [of]
		p.setAbility("symbiosis")
		receiver, err := b.ofPokemon(event)
		if err != nil {
			return err
		}
		if receiver != nil {
			receiver.setItem(arg(event, 4))
		}
		p.item = Absent()
		return nil
	case strings.HasPrefix(message, "ability:"):
		p.setAbility(stripEffectPrefix(message))
		return nil
	case strings.HasPrefix(message, "item:"):
		p.setItem(stripEffectPrefix(message))
		return nil
	}

	if _, known := effectsByID[id]; known {
		p.startEffect(message)
	} else {
		internalLogger.V(2).Info("activation without tracked effect", "message", message)
	}

	return nil
}

// -activate|source|move: Skill Swap|ability given to source|ability given to target|[of] target
func (b *battleCore) skillSwap(user *Pokemon, event []string) error {
	target, err := b.ofPokemon(event)
	if err != nil || target == nil {
		return err
	}

	gained, given := arg(event, 4), arg(event, 5)
	if gained == "" || strings.HasPrefix(gained, "[") || given == "" || strings.HasPrefix(given, "[") {
		// gen 4 doesn't name the abilities
		return nil
	}

	if user.ability.base.IsUnknown() && user.ability.temporary.IsUnknown() {
		user.ability.base = Known(given)
	}
	if target.ability.base.IsUnknown() && target.ability.temporary.IsUnknown() {
		target.ability.base = Known(gained)
	}
	user.setTemporaryAbility(gained)
	target.setTemporaryAbility(given)

	return nil
}

func handleSingleEffect(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.startEffect(arg(event, 3))
	return nil
}

// Items and abilities

func handleItem(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	item := arg(event, 3)
	other, err := b.ofPokemon(event)
	if err != nil {
		return err
	}

	kind, name := source(event)
	switch id := dex.ToID(name); {
	case kind == "ability" && id == "frisk":
		// the item belongs to the target, the frisker is in [of]
		p.setItem(item)
		if other != nil {
			other.setAbility("frisk")
		}
	case kind == "ability" && (id == "pickpocket" || id == "magician"):
		p.setItem(item)
		p.setAbility(name)
		if other != nil {
			other.item = Absent()
		}
	case kind == "move" && (id == "thief" || id == "covet"):
		p.setItem(item)
		if other != nil {
			other.item = Absent()
		}
	default:
		p.setItem(item)
		if kind == "ability" {
			p.setAbility(name)
		}
	}

	return nil
}

func handleEndItem(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.endItem(arg(event, 3))
	return nil
}

func handleAbility(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	ability := arg(event, 3)
	other, err := b.ofPokemon(event)
	if err != nil {
		return err
	}

	kind, name := source(event)
	switch {
	case kind == "ability" && dex.ToID(name) != dex.ToID(ability):
		// Trace and friends: p copied the ability of the pokemon in [of]
		if p.ability.base.IsUnknown() {
			p.ability.base = Known(name)
		}
		p.setTemporaryAbility(ability)
		if other != nil {
			other.setAbility(ability)
		}
	case kind == "ability":
		// Mummy, Lingering Aroma, Wandering Spirit spread from the pokemon in [of]
		p.setTemporaryAbility(ability)
		if other != nil {
			other.setAbility(name)
		}
	case kind == "move":
		// Role Play, Entrainment, Doodle
		p.setTemporaryAbility(ability)
	default:
		p.setAbility(ability)
	}

	return nil
}

func handleEndAbility(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	if ability := arg(event, 3); ability != "" && !strings.HasPrefix(ability, "[") {
		p.setAbility(ability)
	}
	p.ability.temporary = Absent()

	return nil
}

func handleImmune(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	inferSource(event, p)
	return nil
}

// Transformations

func handleTransform(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	target, err := b.pokemonArg(event, 3)
	if err != nil {
		return err
	}

	inferSource(event, p)
	p.transformInto(target)

	return nil
}

func handleMega(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.megaEvolve(arg(event, 4))
	b.useGimmick(event[2], gimmickMega)
	return nil
}

func handlePrimal(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.primalReversion()
	return nil
}

// Ultra Burst
func handleBurst(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.permanentFormeChange(arg(event, 3))
	if item := arg(event, 4); item != "" {
		p.setItem(item)
	}
	return nil
}

func handleZPower(b *battleCore, event []string) error {
	if _, err := b.pokemonArg(event, 2); err != nil {
		return err
	}
	b.useGimmick(event[2], gimmickZMove)
	return nil
}

func handleTerastallize(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.terastallize(arg(event, 3))
	b.useGimmick(event[2], gimmickTera)
	return nil
}

func handleDetailsChange(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}

	p.formeSpecies = ""
	p.ability.forme = Unknown()
	p.updateFromDetails(arg(event, 3))

	return nil
}

func handleFormeChange(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.formeChange(arg(event, 3))
	inferSource(event, p)
	return nil
}

func handleMustRecharge(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.mustRecharge = true
	return nil
}

func handlePrepare(b *battleCore, event []string) error {
	p, err := b.pokemonArg(event, 2)
	if err != nil {
		return err
	}
	p.prepare(arg(event, 3), arg(event, 4))
	return nil
}

// Battle metadata

func handlePlayer(b *battleCore, event []string) error {
	role, name := arg(event, 2), arg(event, 3)
	if name == "" {
		return nil
	}

	if dex.ToID(name) == dex.ToID(b.username) {
		b.playerRole = role
	} else {
		b.opponentUsername = name
	}

	return nil
}

func handleTeamSize(b *battleCore, event []string) error {
	size, err := strconv.Atoi(arg(event, 3))
	if err != nil {
		return malformed(event, "team size isn't a number")
	}
	b.teamSize[arg(event, 2)] = size
	return nil
}

func handleGen(b *battleCore, event []string) error {
	gen, err := strconv.Atoi(arg(event, 2))
	if err != nil {
		return malformed(event, "gen isn't a number")
	}
	b.gen = gen

	if data, ok := b.provider.(*dex.Data); ok && data.Gen() != gen {
		b.provider = data.WithGen(gen)
	}
	return nil
}

func handleTier(b *battleCore, event []string) error {
	b.format = arg(event, 2)
	return nil
}

func handleRule(b *battleCore, event []string) error {
	b.rules = append(b.rules, arg(event, 2))
	return nil
}

// poke|p2|Zoroark, L78, F|item
func handlePoke(b *battleCore, event []string) error {
	role, details := arg(event, 2), arg(event, 3)
	if details == "" {
		return malformed(event, "poke needs details")
	}
	// our own team comes from the request
	if role == b.playerRole {
		return nil
	}

	species := strings.TrimSpace(strings.Split(details, ",")[0])
	_, err := b.getPokemon(role+": "+species, false, details, nil)
	return err
}

func handleClearPoke(b *battleCore, event []string) error {
	b.teamPreview = true
	return nil
}

func handleTeamPreview(b *battleCore, event []string) error {
	b.teamPreview = true
	if size, err := strconv.Atoi(arg(event, 2)); err == nil {
		b.maxTeamSize = size
	}
	return nil
}

func handleUpdatePoke(b *battleCore, event []string) error {
	p, err := b.getPokemon(arg(event, 2), false, arg(event, 3), nil)
	if err != nil {
		return err
	}
	p.updateFromDetails(arg(event, 3))
	return nil
}
