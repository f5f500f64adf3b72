package battle

import (
	"bytes"
	"encoding/json"
)

// Request is the authoritative, player-private snapshot the server sends before each decision.
type Request struct {
	RQID        int             `json:"rqid"`
	Active      []ActiveRequest `json:"active,omitempty"`
	Side        SideRequest     `json:"side"`
	ForceSwitch []bool          `json:"forceSwitch,omitempty"`
	TeamPreview bool            `json:"teamPreview,omitempty"`
	MaxTeamSize int             `json:"maxTeamSize,omitempty"`
	Wait        bool            `json:"wait,omitempty"`
	NoCancel    bool            `json:"noCancel,omitempty"`
}

type SideRequest struct {
	Name    string           `json:"name"`
	ID      string           `json:"id"`
	Pokemon []PokemonRequest `json:"pokemon"`
}

type PokemonRequest struct {
	Ident         string         `json:"ident"`
	Details       string         `json:"details"`
	Condition     string         `json:"condition"`
	Active        bool           `json:"active"`
	Stats         map[string]int `json:"stats"`
	Moves         []string       `json:"moves"`
	BaseAbility   string         `json:"baseAbility"`
	Ability       string         `json:"ability,omitempty"`
	Item          string         `json:"item"`
	Pokeball      string         `json:"pokeball,omitempty"`
	Commanding    bool           `json:"commanding,omitempty"`
	Reviving      bool           `json:"reviving,omitempty"`
	TeraType      string         `json:"teraType,omitempty"`
	Terastallized string         `json:"terastallized,omitempty"`
}

type ActiveRequest struct {
	Moves           []RequestMove  `json:"moves"`
	Trapped         bool           `json:"trapped,omitempty"`
	MaybeTrapped    bool           `json:"maybeTrapped,omitempty"`
	CanMegaEvo      bool           `json:"canMegaEvo,omitempty"`
	CanUltraBurst   bool           `json:"canUltraBurst,omitempty"`
	CanZMove        []*ZMoveOption `json:"canZMove,omitempty"`
	CanDynamax      bool           `json:"canDynamax,omitempty"`
	MaxMoves        *MaxMoveList   `json:"maxMoves,omitempty"`
	CanTerastallize string         `json:"canTerastallize,omitempty"`
}

type RequestMove struct {
	Move     string   `json:"move"`
	ID       string   `json:"id"`
	PP       int      `json:"pp"`
	MaxPP    int      `json:"maxpp"`
	Target   string   `json:"target,omitempty"`
	Disabled flexBool `json:"disabled,omitempty"`
}

// ZMoveOption is the Z-move a request slot can turn into. nil entries mean no Z-move for that slot.
type ZMoveOption struct {
	Move   string `json:"move"`
	Target string `json:"target"`
}

type MaxMoveList struct {
	MaxMoves   []RequestMove `json:"maxMoves"`
	Gigantamax string        `json:"gigantamax,omitempty"`
}

// flexBool decodes "disabled", which the server sends as a bool or as the disabling source.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "false", "null", `""`:
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	}

	var source string
	if err := json.Unmarshal(data, &source); err != nil {
		return err
	}
	*f = source != ""
	return nil
}

// ParseRequestJSON decodes a raw |request| payload.
func ParseRequestJSON(payload []byte) (*Request, error) {
	request := &Request{}
	if err := json.Unmarshal(payload, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Forced reports whether the slot must switch.
func (r *Request) Forced(slot int) bool {
	return slot < len(r.ForceSwitch) && r.ForceSwitch[slot]
}

func (r *Request) AnyForced() bool {
	for _, forced := range r.ForceSwitch {
		if forced {
			return true
		}
	}
	return false
}
