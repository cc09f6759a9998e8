package api

import (
	"fmt"

	"github.com/youruser/talingdeck/internal/deck"
)

// addNotice is the message shown to the player after an add attempt.
func addNotice(res deck.Result) string {
	name := res.Card.Name
	if name == "" {
		name = res.Card.RuleName
	}
	switch res.Reason {
	case deck.Success:
		return fmt.Sprintf("Added %s", name)
	case deck.DeckFullMain:
		return fmt.Sprintf("Your deck is full (%d cards maximum).", deck.MainDeckSize)
	case deck.DeckFullLife:
		return fmt.Sprintf("You cannot have more than %d Life cards.", deck.LifeDeckSize)
	case deck.DuplicateLife:
		return "You cannot have duplicate Life cards."
	case deck.Banned:
		return fmt.Sprintf("'%s' is banned.", name)
	case deck.LimitExceeded:
		if res.Limit == 1 {
			return fmt.Sprintf("Limited to 1 copy of %s.", name)
		}
		return fmt.Sprintf("Limited to %d copies of %s.", res.Limit, name)
	case deck.ExclusivityViolation:
		return "You can only have one 'Only#1' card."
	case deck.GroupConflict:
		return fmt.Sprintf("Cannot add '%s': '%s' from the same group is already in the deck.", name, res.Conflict)
	}
	return string(res.Reason)
}

func removeNotice(res deck.Result) string {
	name := res.Card.Name
	if name == "" {
		name = res.Card.RuleName
	}
	if res.Reason == deck.NotFound {
		return fmt.Sprintf("'%s' is not in the deck.", name)
	}
	return fmt.Sprintf("Removed %s", name)
}
