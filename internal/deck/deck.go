package deck

import "github.com/youruser/talingdeck/internal/cards"

const (
	MainDeckSize = 50
	LifeDeckSize = 5
)

// State is the externally visible lifecycle of a deck.
type State string

const (
	Building State = "Building"
	Complete State = "Complete"
)

// Deck owns the cards a player has picked plus the recipe metadata.
// It is not safe for concurrent use; callers serialize access.
type Deck struct {
	cards      []cards.Card
	playerName string
	deckName   string
}

func New() *Deck {
	return &Deck{}
}

// AddCard runs the admission pipeline and appends the card when it passes.
func (d *Deck) AddCard(card cards.Card, banlist cards.Banlist) Result {
	res := d.Check(card, banlist)
	if res.OK() {
		d.cards = append(d.cards, card)
	}
	return res
}

// RemoveCard drops the most recently added copy of ruleName.
func (d *Deck) RemoveCard(ruleName string) Result {
	for i := len(d.cards) - 1; i >= 0; i-- {
		if d.cards[i].RuleName != ruleName {
			continue
		}
		removed := d.cards[i]
		d.cards = append(d.cards[:i:i], d.cards[i+1:]...)
		return Result{Reason: Success, Card: removed}
	}
	return Result{Reason: NotFound, Card: cards.Card{RuleName: ruleName}}
}

func (d *Deck) CardCount(ruleName string) int {
	n := 0
	for _, c := range d.cards {
		if c.RuleName == ruleName {
			n++
		}
	}
	return n
}

// Clear empties the deck and both metadata fields.
func (d *Deck) Clear() {
	d.cards = nil
	d.playerName = ""
	d.deckName = ""
}

func (d *Deck) SetPlayerName(name string) { d.playerName = name }
func (d *Deck) SetDeckName(name string)   { d.deckName = name }
func (d *Deck) PlayerName() string        { return d.playerName }
func (d *Deck) DeckName() string          { return d.deckName }

// Cards returns the deck contents in insertion order.
func (d *Deck) Cards() []cards.Card {
	return append([]cards.Card(nil), d.cards...)
}

func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) LifeCount() int {
	n := 0
	for _, c := range d.cards {
		if c.IsLife() {
			n++
		}
	}
	return n
}

func (d *Deck) MainCount() int {
	return len(d.cards) - d.LifeCount()
}

func (d *Deck) exclusiveCount() int {
	n := 0
	for _, c := range d.cards {
		if c.IsExclusive() {
			n++
		}
	}
	return n
}

func (d *Deck) State() State {
	if d.Validity().Valid {
		return Complete
	}
	return Building
}
