package battle

import (
	"slices"
)

// Team is an insertion-ordered set of pokemon keyed by "p1: Name" style identifiers.
type Team struct {
	keys    []string
	members map[string]*Pokemon
}

func newTeam() *Team {
	return &Team{members: map[string]*Pokemon{}}
}

func (t *Team) Len() int {
	return len(t.keys)
}

func (t *Team) Get(key string) (*Pokemon, bool) {
	p, ok := t.members[key]
	return p, ok
}

// Keys in insertion order.
func (t *Team) Keys() []string {
	return slices.Clone(t.keys)
}

// Pokemon returns the members in insertion order.
func (t *Team) Pokemon() []*Pokemon {
	team := make([]*Pokemon, 0, len(t.keys))
	for _, key := range t.keys {
		team = append(team, t.members[key])
	}
	return team
}

func (t *Team) Active() []*Pokemon {
	active := []*Pokemon{}
	for _, p := range t.Pokemon() {
		if p.active {
			active = append(active, p)
		}
	}
	return active
}

func (t *Team) set(key string, p *Pokemon) {
	if _, ok := t.members[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.members[key] = p
}

// rekey moves a member to a new key, keeping its position.
func (t *Team) rekey(oldKey string, newKey string) {
	p, ok := t.members[oldKey]
	if !ok || oldKey == newKey {
		return
	}

	delete(t.members, oldKey)
	t.members[newKey] = p
	t.keys[slices.Index(t.keys, oldKey)] = newKey
}

func (t *Team) remove(key string) {
	if _, ok := t.members[key]; !ok {
		return
	}
	delete(t.members, key)
	t.keys = slices.DeleteFunc(t.keys, func(k string) bool { return k == key })
}

func (t *Team) keyOf(p *Pokemon) (string, bool) {
	for _, key := range t.keys {
		if t.members[key] == p {
			return key, true
		}
	}
	return "", false
}

func (t *Team) clear() {
	t.keys = nil
	clear(t.members)
}

// swap exchanges the positions of two members.
func (t *Team) swap(a *Pokemon, b *Pokemon) {
	keyA, okA := t.keyOf(a)
	keyB, okB := t.keyOf(b)
	if !okA || !okB || keyA == keyB {
		return
	}

	i, j := slices.Index(t.keys, keyA), slices.Index(t.keys, keyB)
	t.keys[i], t.keys[j] = t.keys[j], t.keys[i]
}

// moveToFront puts a member in the first position, shifting the others back.
func (t *Team) moveToFront(p *Pokemon) {
	key, ok := t.keyOf(p)
	if !ok {
		return
	}

	i := slices.Index(t.keys, key)
	copy(t.keys[1:i+1], t.keys[:i])
	t.keys[0] = key
}
