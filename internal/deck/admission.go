package deck

import "github.com/youruser/talingdeck/internal/cards"

// Check runs the admission pipeline for card without changing the deck.
// Checks run in a fixed order and the first failure wins:
// deck size, banlist, exclusivity or default copy limit, group restriction.
func (d *Deck) Check(card cards.Card, banlist cards.Banlist) Result {
	reject := func(r Reason) Result { return Result{Reason: r, Card: card} }

	if card.IsLife() {
		if d.LifeCount() >= LifeDeckSize {
			return reject(DeckFullLife)
		}
		for _, c := range d.cards {
			if c.IsLife() && c.RuleName == card.RuleName {
				return reject(DuplicateLife)
			}
		}
	} else if d.MainCount() >= MainDeckSize {
		return reject(DeckFullMain)
	}

	copies := d.CardCount(card.RuleName)

	if limit, ok := banlist.Limit(card.RuleName); ok {
		if limit == 0 {
			return reject(Banned)
		}
		if copies >= limit {
			res := reject(LimitExceeded)
			res.Limit = limit
			return res
		}
	}

	if card.IsExclusive() {
		for _, c := range d.cards {
			if c.IsExclusive() {
				res := reject(ExclusivityViolation)
				res.Conflict = c.RuleName
				return res
			}
		}
	} else if !card.IsLife() && copies >= cards.DefaultCopyLimit {
		res := reject(LimitExceeded)
		res.Limit = cards.DefaultCopyLimit
		return res
	}

	if g := card.Group; g != nil && (g.Mode == cards.GroupExclusive || g.Mode == cards.GroupChoice) {
		for _, c := range d.cards {
			if c.Group != nil && c.Group.GroupID == g.GroupID && c.RuleName != card.RuleName {
				res := reject(GroupConflict)
				res.Conflict = c.RuleName
				return res
			}
		}
	}

	return Result{Reason: Success, Card: card}
}
