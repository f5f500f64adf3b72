package battle

import "github.com/nathanieltooley/gokemon-showdown/dex"

type knowledge int

const (
	knowledgeUnknown knowledge = iota
	knowledgeKnown
	knowledgeAbsent
)

// Revealed is what the battle has learned about an item or ability slot.
// The zero value is Unknown.
type Revealed struct {
	state knowledge
	id    string
}

// Known builds a revealed value. An empty name means the slot is known to be empty.
func Known(name string) Revealed {
	id := dex.ToID(name)
	if id == "" {
		return Absent()
	}
	return Revealed{state: knowledgeKnown, id: id}
}

func Unknown() Revealed {
	return Revealed{}
}

func Absent() Revealed {
	return Revealed{state: knowledgeAbsent}
}

func (r Revealed) IsKnown() bool {
	return r.state == knowledgeKnown
}

func (r Revealed) IsUnknown() bool {
	return r.state == knowledgeUnknown
}

func (r Revealed) IsAbsent() bool {
	return r.state == knowledgeAbsent
}

// ID returns the id when known and "" otherwise.
func (r Revealed) ID() string {
	return r.id
}

func (r Revealed) String() string {
	switch r.state {
	case knowledgeKnown:
		return r.id
	case knowledgeAbsent:
		return "(none)"
	}
	return "(unknown)"
}

// abilitySlots resolves the current ability as temporary > forme change > base.
// The temporary and forme slots only count once they leave the Unknown state, so a
// temporary Absent means the ability is suppressed.
type abilitySlots struct {
	base      Revealed
	forme     Revealed
	temporary Revealed
}

func (a abilitySlots) current() Revealed {
	if !a.temporary.IsUnknown() {
		return a.temporary
	}
	if !a.forme.IsUnknown() {
		return a.forme
	}
	return a.base
}

// reveal records the ability the pokemon is currently showing in whichever slot is in effect.
func (a *abilitySlots) reveal(value Revealed) {
	switch {
	case !a.temporary.IsUnknown():
		a.temporary = value
	case !a.forme.IsUnknown():
		a.forme = value
	default:
		a.base = value
	}
}

func (a *abilitySlots) unwind() {
	a.temporary = Unknown()
	a.forme = Unknown()
}
