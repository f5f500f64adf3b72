package battle

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nathanieltooley/gokemon-showdown/dex"
)

// SPECIAL_MOVES show up in requests but aren't part of any moveset.
var SPECIAL_MOVES = map[string]bool{
	"struggle": true,
	"recharge": true,
}

// Moves whose appearance in a request can't be explained from the known moveset alone
var copyingMoves = map[string]bool{
	"assist":     true,
	"copycat":    true,
	"mefirst":    true,
	"metronome":  true,
	"mimic":      true,
	"mirrormove": true,
	"sketch":     true,
	"transform":  true,
}

var protectVolatiles = map[string]bool{
	"banefulbunker":  true,
	"burningbulwark": true,
	"kingsshield":    true,
	"maxguard":       true,
	"obstruct":       true,
	"protect":        true,
	"silktrap":       true,
	"spikyshield":    true,
}

var sideProtectConditions = map[string]bool{
	"craftyshield": true,
	"matblock":     true,
	"quickguard":   true,
	"wideguard":    true,
}

// BattleMove is the read contract shared by a move and its dynamaxed view.
type BattleMove interface {
	ID() string
	BasePower() int
	Accuracy() float64
	Category() MoveCategory
	Type() PokemonType
	Priority() int
	Target() MoveTarget
	CurrentPP() int
	MaxPP() int
	PPCost() int
	Boosts() map[string]int
	SelfBoosts() map[string]int
	Status() Status
	IsDynamaxed() bool
	// Base is the underlying move. For a Move this is the move itself.
	Base() *Move
}

type Move struct {
	id                string
	gen               int
	entry             *dex.MoveEntry
	currentPP         int
	basePowerOverride int
}

// RetrieveMoveID normalizes a move name to its id. Hidden Power, Return and Frustration
// carry their power as a numeric suffix ("hiddenpowerfire60", "return102"), which is
// split off and returned separately (0 when absent).
func RetrieveMoveID(name string) (string, int) {
	id := dex.ToID(name)

	for _, family := range []string{"hiddenpower", "return", "frustration"} {
		if !strings.HasPrefix(id, family) {
			continue
		}

		trimmed := strings.TrimRightFunc(id, unicode.IsDigit)
		power := 0
		if len(trimmed) < len(id) {
			power, _ = strconv.Atoi(id[len(trimmed):])
		}
		if family != "hiddenpower" {
			trimmed = family
		}

		return trimmed, power
	}

	return id, 0
}

// NewMove builds a move from its display name or id. Moves the provider doesn't know are
// still created (with neutral defaults) so events about them don't fail.
func NewMove(name string, provider dex.Provider) *Move {
	id, power := RetrieveMoveID(name)

	entry, ok := provider.Move(id)
	if !ok {
		if SPECIAL_MOVES[id] {
			entry = specialMoveEntry(id)
		} else {
			warn(internalLogger, "move not found in dex", "move", id)
		}
	}

	move := &Move{
		id:                id,
		gen:               provider.Gen(),
		entry:             entry,
		basePowerOverride: power,
	}
	move.currentPP = move.MaxPP()

	return move
}

func specialMoveEntry(id string) *dex.MoveEntry {
	switch id {
	case "struggle":
		return &dex.MoveEntry{
			Name: "Struggle", Accuracy: dex.Accuracy{AlwaysHits: true, Value: 100}, BasePower: 50,
			Category: "Physical", PP: 1, NoPPBoosts: true, Target: string(TARGET_RANDOM_NORMAL), Type: "???",
		}
	default:
		return &dex.MoveEntry{
			Name: "Recharge", Accuracy: dex.Accuracy{AlwaysHits: true, Value: 100}, Category: "Status",
			PP: 1, NoPPBoosts: true, Target: string(TARGET_SELF), Type: "???",
		}
	}
}

func (m *Move) ID() string {
	return m.id
}

func (m *Move) Name() string {
	if m.entry == nil {
		return m.id
	}
	return m.entry.Name
}

func (m *Move) Entry() *dex.MoveEntry {
	return m.entry
}

func (m *Move) IsSpecial() bool {
	return SPECIAL_MOVES[m.id]
}

func (m *Move) Accuracy() float64 {
	if m.entry == nil || m.entry.Accuracy.AlwaysHits {
		return 1
	}
	return float64(m.entry.Accuracy.Value) / 100
}

func (m *Move) BasePower() int {
	if m.basePowerOverride > 0 {
		return m.basePowerOverride
	}
	if m.entry == nil {
		return 0
	}
	return m.entry.BasePower
}

func (m *Move) Category() MoveCategory {
	if m.entry == nil {
		return CATEGORY_STATUS
	}
	return categoryFromName(m.entry.Category)
}

func (m *Move) Type() PokemonType {
	if m.entry == nil {
		return TYPE_UNKNOWN
	}
	return PokemonTypeFromName(m.entry.Type)
}

func (m *Move) Priority() int {
	if m.entry == nil {
		return 0
	}
	return m.entry.Priority
}

func (m *Move) Target() MoveTarget {
	if m.entry == nil {
		return TARGET_NORMAL
	}
	return MoveTarget(m.entry.Target)
}

func (m *Move) MaxPP() int {
	if m.entry == nil {
		return 0
	}
	if m.entry.NoPPBoosts {
		return m.entry.PP
	}
	return m.entry.PP * 8 / 5
}

func (m *Move) CurrentPP() int {
	return m.currentPP
}

func (m *Move) PPCost() int {
	return 1
}

// Use spends one PP. PP never goes below zero.
func (m *Move) Use() {
	m.currentPP = max(0, m.currentPP-1)
}

// syncPP lowers the tracked PP to an authoritative value. It never raises it.
func (m *Move) syncPP(pp int) {
	if pp < m.currentPP {
		m.currentPP = max(0, pp)
	}
}

func (m *Move) Flags() map[string]int {
	if m.entry == nil {
		return nil
	}
	return m.entry.Flags
}

func (m *Move) HasFlag(flag string) bool {
	return m.Flags()[flag] > 0
}

// Boosts applied to the target.
func (m *Move) Boosts() map[string]int {
	if m.entry == nil {
		return nil
	}
	return m.entry.Boosts
}

// SelfBoosts applied to the user.
func (m *Move) SelfBoosts() map[string]int {
	if m.entry == nil {
		return nil
	}
	if m.entry.Self != nil && len(m.entry.Self.Boosts) > 0 {
		return m.entry.Self.Boosts
	}
	if m.entry.SelfBoost != nil {
		return m.entry.SelfBoost.Boosts
	}
	return nil
}

func (m *Move) Status() Status {
	if m.entry == nil {
		return STATUS_NONE
	}
	status, _ := StatusFromShowdown(m.entry.Status)
	return status
}

func (m *Move) VolatileStatus() string {
	if m.entry == nil {
		return ""
	}
	return m.entry.VolatileStatus
}

func (m *Move) SideCondition() string {
	if m.entry == nil {
		return ""
	}
	return m.entry.SideCondition
}

func (m *Move) Weather() Weather {
	if m.entry == nil || m.entry.Weather == "" {
		return WEATHER_UNKNOWN
	}
	return WeatherFromShowdownMessage(m.entry.Weather)
}

func (m *Move) Terrain() Field {
	if m.entry == nil || m.entry.Terrain == "" {
		return FIELD_UNKNOWN
	}
	return FieldFromShowdownMessage(m.entry.Terrain)
}

func (m *Move) Secondaries() []dex.Secondary {
	if m.entry == nil {
		return nil
	}
	if m.entry.Secondary != nil {
		return []dex.Secondary{*m.entry.Secondary}
	}
	return m.entry.Secondaries
}

func fraction(pair []int) float64 {
	if len(pair) != 2 || pair[1] == 0 {
		return 0
	}
	return float64(pair[0]) / float64(pair[1])
}

func (m *Move) Drain() float64 {
	if m.entry == nil {
		return 0
	}
	return fraction(m.entry.Drain)
}

func (m *Move) Recoil() float64 {
	if m.entry == nil {
		return 0
	}
	return fraction(m.entry.Recoil)
}

func (m *Move) Heal() float64 {
	if m.entry == nil {
		return 0
	}
	return fraction(m.entry.Heal)
}

// ExpectedHits is the average number of hits. 2-5 hit moves use the gen 5+ distribution.
func (m *Move) ExpectedHits() float64 {
	if m.entry == nil || m.entry.Multihit.IsZero() {
		return 1
	}

	hits := m.entry.Multihit
	if hits.Min == 2 && hits.Max == 5 {
		return 0.35*2 + 0.35*3 + 0.15*4 + 0.15*5
	}
	return float64(hits.Min+hits.Max) / 2
}

func (m *Move) CritRatio() int {
	if m.entry == nil || m.entry.CritRatio == 0 {
		return 1
	}
	return m.entry.CritRatio
}

func (m *Move) ForceSwitch() bool {
	return m.entry != nil && m.entry.ForceSwitch
}

func (m *Move) SelfSwitch() bool {
	return m.entry != nil && m.entry.SelfSwitch.Set()
}

func (m *Move) BreaksProtect() bool {
	return m.entry != nil && m.entry.BreaksProtect
}

// IsProtectCounter moves grow the consecutive-protect counter on success.
func (m *Move) IsProtectCounter() bool {
	return m.entry != nil && m.entry.StallingMove
}

func (m *Move) IsProtectMove() bool {
	return protectVolatiles[m.VolatileStatus()]
}

func (m *Move) IsSideProtectMove() bool {
	return sideProtectConditions[m.SideCondition()]
}

func (m *Move) IsZ() bool {
	return m.entry != nil && m.entry.IsZ.Set()
}

func (m *Move) IsMax() bool {
	return m.entry != nil && m.entry.IsMax.Set()
}

func (m *Move) ZMovePower() int {
	if m.entry == nil || m.entry.ZMove == nil {
		return 0
	}
	return m.entry.ZMove.BasePower
}

// IsDynamaxed is false for plain moves; see DynamaxMove.
func (m *Move) IsDynamaxed() bool {
	return false
}

func (m *Move) Base() *Move {
	return m
}

// Dynamaxed returns the Max Move view of this move. The move itself is left untouched.
func (m *Move) Dynamaxed() *DynamaxMove {
	return &DynamaxMove{parent: m}
}

// DeducedTarget resolves Curse's type dependent target.
func (m *Move) DeducedTarget(user *Pokemon) MoveTarget {
	if m.entry != nil && m.entry.NonGhostTarget != "" && user != nil && !user.HasType(TYPE_GHOST) {
		return MoveTarget(m.entry.NonGhostTarget)
	}
	return m.Target()
}

func (m *Move) String() string {
	return m.id + " (" + strconv.Itoa(m.currentPP) + "/" + strconv.Itoa(m.MaxPP()) + ")"
}
