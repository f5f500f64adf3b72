package battle

import (
	"strings"

	"github.com/nathanieltooley/gokemon-showdown/dex"
)

// Pledge combinations announce the combined move with [from] but charge the named one.
var pledgeMoves = map[string]bool{
	"firepledge":  true,
	"grasspledge": true,
	"waterpledge": true,
}

// moveEvent is a parsed "move" line: |move|user|move|target|annotations...
type moveEvent struct {
	user   string
	move   string
	target string

	failed bool
	// the locked move's later turns (Outrage, Petal Dance) cost no PP
	locked bool
	// set by "[from] move: Y": the pokemon really used Y
	override string
	// Sleep Talk and the move it calls both count as used
	revealOther bool
	// abilities that make a pokemon act without choosing a move
	fromAbility string
	magicCoat   bool
}

func parseMoveEvent(event []string) (*moveEvent, error) {
	if len(event) < 4 {
		return nil, malformed(event, "move needs a user and a move")
	}

	parsed := &moveEvent{user: event[2], move: event[3]}
	annotations := append([]string(nil), event[4:]...)

	// strip trailing markers until nothing changes
	for len(annotations) > 0 {
		last := annotations[len(annotations)-1]
		switch {
		case last == "[miss]" || last == "[notarget]" || last == "[still]":
			parsed.failed = true
		case last == "" || last == "null" || last == "[zeffect]":
		case strings.HasPrefix(last, "[spread]") || strings.HasPrefix(last, "[anim]"):
		case last == "[from]lockedmove" || last == "[from] lockedmove":
			parsed.locked = true
		case last == "[from]Pursuit" || last == "[from] Pursuit":
		case last == "[from]Magic Coat" || last == "[from] Magic Coat":
			parsed.magicCoat = true
		case strings.HasPrefix(last, "[from]"):
			rest := strings.TrimSpace(strings.TrimPrefix(last, "[from]"))
			switch {
			case strings.HasPrefix(rest, "move:"):
				parsed.override = strings.TrimSpace(strings.TrimPrefix(rest, "move:"))
			case strings.HasPrefix(rest, "ability:"):
				parsed.fromAbility = strings.TrimSpace(strings.TrimPrefix(rest, "ability:"))
			default:
				warn(internalLogger, "unexpected move annotation", "annotation", last)
			}
		case strings.HasPrefix(last, "[of]") || strings.HasPrefix(last, "[msg]"):
		default:
			// anything else is the target, which is never last once annotations exist
			if len(annotations) == 1 {
				parsed.target = last
			} else {
				warn(internalLogger, "unexpected move field", "field", last)
			}
		}
		annotations = annotations[:len(annotations)-1]
	}

	if id := dex.ToID(parsed.override); id == "sleeptalk" {
		parsed.revealOther = true
	}
	if pledgeMoves[dex.ToID(parsed.move)] {
		parsed.override = ""
	}

	return parsed, nil
}

func handleMove(b *battleCore, event []string) error {
	parsed, err := parseMoveEvent(event)
	if err != nil {
		return err
	}

	p, err := b.GetPokemon(parsed.user)
	if err != nil {
		return err
	}

	if parsed.fromAbility != "" {
		p.setAbility(parsed.fromAbility)
		switch dex.ToID(parsed.fromAbility) {
		case "magicbounce", "dancer":
			return nil
		}
	}
	if parsed.magicCoat {
		return nil
	}

	if parsed.override == "" && !parsed.locked {
		p.tickSleep()
	}

	if parsed.override != "" {
		// the calling move already paid its PP on its own line
		p.moved(parsed.override, parsed.failed, false)
	}
	if parsed.override == "" || parsed.revealOther {
		p.moved(parsed.move, parsed.failed, !parsed.locked)
	}

	if dex.ToID(parsed.move) == "minimize" {
		p.startEffect("minimize")
	}

	return nil
}
