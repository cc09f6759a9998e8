package deck

import "github.com/youruser/talingdeck/internal/cards"

// Snapshot is the persisted form of a deck: rule names in insertion order
// plus the recipe metadata.
type Snapshot struct {
	Cards      []string `json:"cards"`
	PlayerName string   `json:"playerName"`
	DeckName   string   `json:"deckName"`
}

func (d *Deck) Snapshot() Snapshot {
	s := Snapshot{
		Cards:      make([]string, 0, len(d.cards)),
		PlayerName: d.playerName,
		DeckName:   d.deckName,
	}
	for _, c := range d.cards {
		s.Cards = append(s.Cards, c.RuleName)
	}
	return s
}

// Restore replaces the deck with the snapshot's contents as stored, without
// re-running admission. Rule names the catalog does not know are dropped and
// returned.
func Restore(s Snapshot, catalog *cards.Catalog) (*Deck, []string) {
	d := New()
	d.playerName = s.PlayerName
	d.deckName = s.DeckName
	var missing []string
	for _, name := range s.Cards {
		c, ok := catalog.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		d.cards = append(d.cards, c)
	}
	return d, missing
}

// Rebuild replays a snapshot from outside the engine through AddCard, so the
// result satisfies every admission rule. It returns the unknown rule names
// and the rejected additions in snapshot order.
func Rebuild(s Snapshot, catalog *cards.Catalog, banlist cards.Banlist) (*Deck, []string, []Result) {
	d := New()
	d.playerName = s.PlayerName
	d.deckName = s.DeckName
	var (
		missing  []string
		rejected []Result
	)
	for _, name := range s.Cards {
		c, ok := catalog.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		if res := d.AddCard(c, banlist); !res.OK() {
			rejected = append(rejected, res)
		}
	}
	return d, missing, rejected
}
