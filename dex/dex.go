// Package dex holds the static, generation-scoped game data the battle engine reads:
// species entries, move entries and the type chart. The data follows the Showdown
// pokedex/moves JSON layout so full data dumps can be dropped in as-is.
package dex

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Provider is the read-only data source the battle engine depends on.
type Provider interface {
	Gen() int
	Species(id string) (*Species, bool)
	Move(id string) (*MoveEntry, bool)
	// Effectiveness returns the multiplier for an attacking type hitting a single defending type.
	Effectiveness(attackType string, defenseType string) float64
}

type BaseStats struct {
	HP    int `json:"hp"`
	Atk   int `json:"atk"`
	Def   int `json:"def"`
	SpAtk int `json:"spa"`
	SpDef int `json:"spd"`
	Spe   int `json:"spe"`
}

// Map returns the stats keyed by their Showdown short names.
func (b BaseStats) Map() map[string]int {
	return map[string]int{
		"hp":  b.HP,
		"atk": b.Atk,
		"def": b.Def,
		"spa": b.SpAtk,
		"spd": b.SpDef,
		"spe": b.Spe,
	}
}

type Species struct {
	Num          int               `json:"num"`
	Name         string            `json:"name"`
	Types        []string          `json:"types"`
	BaseStats    BaseStats         `json:"baseStats"`
	Abilities    map[string]string `json:"abilities"`
	HeightM      float64           `json:"heightm"`
	WeightKg     float64           `json:"weightkg"`
	BaseSpecies  string            `json:"baseSpecies,omitempty"`
	Forme        string            `json:"forme,omitempty"`
	OtherFormes  []string          `json:"otherFormes,omitempty"`
	RequiredItem string            `json:"requiredItem,omitempty"`
}

// AbilityIDs returns the normalized ids of every ability the species can have,
// in slot order (0, 1, H, S).
func (s *Species) AbilityIDs() []string {
	ids := make([]string, 0, len(s.Abilities))
	for _, slot := range []string{"0", "1", "H", "S"} {
		if ability, ok := s.Abilities[slot]; ok && ability != "" {
			ids = append(ids, ToID(ability))
		}
	}

	return ids
}

type Secondary struct {
	Chance         int            `json:"chance"`
	Boosts         map[string]int `json:"boosts,omitempty"`
	Status         string         `json:"status,omitempty"`
	VolatileStatus string         `json:"volatileStatus,omitempty"`
	Self           *SelfEffect    `json:"self,omitempty"`
}

type SelfEffect struct {
	Boosts         map[string]int `json:"boosts,omitempty"`
	VolatileStatus string         `json:"volatileStatus,omitempty"`
}

type PowerOverride struct {
	BasePower int            `json:"basePower"`
	Boost     map[string]int `json:"boost,omitempty"`
	Effect    string         `json:"effect,omitempty"`
}

type MoveEntry struct {
	Num            int             `json:"num"`
	Name           string          `json:"name"`
	Accuracy       Accuracy        `json:"accuracy"`
	BasePower      int             `json:"basePower"`
	Category       string          `json:"category"`
	PP             int             `json:"pp"`
	Priority       int             `json:"priority"`
	Flags          map[string]int  `json:"flags"`
	Target         string          `json:"target"`
	NonGhostTarget string          `json:"nonGhostTarget,omitempty"`
	Type           string          `json:"type"`
	Secondary      *Secondary      `json:"secondary,omitempty"`
	Secondaries    []Secondary     `json:"secondaries,omitempty"`
	Boosts         map[string]int  `json:"boosts,omitempty"`
	Self           *SelfEffect     `json:"self,omitempty"`
	SelfBoost      *SelfEffect     `json:"selfBoost,omitempty"`
	Status         string          `json:"status,omitempty"`
	VolatileStatus string          `json:"volatileStatus,omitempty"`
	SideCondition  string          `json:"sideCondition,omitempty"`
	Weather        string          `json:"weather,omitempty"`
	Terrain        string          `json:"terrain,omitempty"`
	PseudoWeather  string          `json:"pseudoWeather,omitempty"`
	Drain          []int           `json:"drain,omitempty"`
	Recoil         []int           `json:"recoil,omitempty"`
	Heal           []int           `json:"heal,omitempty"`
	Multihit       Multihit        `json:"multihit,omitempty"`
	CritRatio      int             `json:"critRatio,omitempty"`
	ForceSwitch    bool            `json:"forceSwitch,omitempty"`
	SelfSwitch     FlexString      `json:"selfSwitch,omitempty"`
	BreaksProtect  bool            `json:"breaksProtect,omitempty"`
	StallingMove   bool            `json:"stallingMove,omitempty"`
	NoPPBoosts     bool            `json:"noPPBoosts,omitempty"`
	OHKO           FlexString      `json:"ohko,omitempty"`
	IsZ            FlexString      `json:"isZ,omitempty"`
	IsMax          FlexString      `json:"isMax,omitempty"`
	ZMove          *PowerOverride  `json:"zMove,omitempty"`
	MaxMove        *PowerOverride  `json:"maxMove,omitempty"`
}

// Accuracy is either an exact percentage or "always hits" (true in the data files).
type Accuracy struct {
	Value      int
	AlwaysHits bool
}

func (a *Accuracy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		a.AlwaysHits = true
		a.Value = 100
		return nil
	case "false", "null":
		*a = Accuracy{}
		return nil
	}

	return json.Unmarshal(data, &a.Value)
}

func (a Accuracy) MarshalJSON() ([]byte, error) {
	if a.AlwaysHits {
		return []byte("true"), nil
	}
	return json.Marshal(a.Value)
}

// Multihit is either a fixed hit count or an inclusive [min, max] range.
type Multihit struct {
	Min int
	Max int
}

func (m *Multihit) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var bounds []int
		if err := json.Unmarshal(data, &bounds); err != nil {
			return err
		}
		if len(bounds) != 2 {
			return fmt.Errorf("multihit range must have two bounds, got %d", len(bounds))
		}
		m.Min, m.Max = bounds[0], bounds[1]
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	m.Min, m.Max = n, n
	return nil
}

func (m Multihit) MarshalJSON() ([]byte, error) {
	if m.Min == m.Max {
		return json.Marshal(m.Min)
	}
	return json.Marshal([]int{m.Min, m.Max})
}

func (m Multihit) IsZero() bool {
	return m.Min == 0 && m.Max == 0
}

// FlexString holds fields the data files write as either a string or a boolean.
// true decodes to "true", false to "".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*f = "true"
		return nil
	case "false", "null":
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = FlexString(s)
	return nil
}

func (f FlexString) Set() bool {
	return f != ""
}
