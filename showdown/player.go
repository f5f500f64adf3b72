package showdown

import "github.com/nathanieltooley/gokemon-showdown/battle"

// Player decides what to do whenever the server asks. Orders are checked against the request
// before they're sent, so a player may return an illegal one.
type Player interface {
	ChooseMove(b battle.Battle) battle.Order
	TeamPreview(b battle.Battle) battle.Order
}
