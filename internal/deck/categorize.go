package deck

import (
	"sort"

	"github.com/youruser/talingdeck/internal/cards"
)

// Entry is one distinct card in a listing with its current copy count.
type Entry struct {
	Card  cards.Card `json:"card"`
	Count int        `json:"count"`
}

// Categories splits the deck into non-overlapping listings, one entry per
// rule name, each sorted by display name.
type Categories struct {
	Exclusive  *Entry  `json:"exclusive,omitempty"`
	Avatars    []Entry `json:"avatars"`
	Magics     []Entry `json:"magics"`
	Constructs []Entry `json:"constructs"`
	Life       []Entry `json:"life"`
	Others     []Entry `json:"others"`
}

// Total sums the copies listed in entries.
func Total(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Count
	}
	return n
}

func (d *Deck) Categorize() Categories {
	seen := map[string]bool{}
	var cats Categories
	for _, c := range d.cards {
		if seen[c.RuleName] {
			continue
		}
		seen[c.RuleName] = true
		e := Entry{Card: c, Count: d.CardCount(c.RuleName)}

		if c.IsExclusive() && cats.Exclusive == nil {
			cats.Exclusive = &e
			continue
		}
		switch c.Category() {
		case cards.Life:
			cats.Life = append(cats.Life, e)
		case cards.Avatar:
			cats.Avatars = append(cats.Avatars, e)
		case cards.Magic:
			cats.Magics = append(cats.Magics, e)
		case cards.Construct:
			cats.Constructs = append(cats.Constructs, e)
		default:
			cats.Others = append(cats.Others, e)
		}
	}
	for _, list := range [][]Entry{cats.Avatars, cats.Magics, cats.Constructs, cats.Life, cats.Others} {
		sortByName(list)
	}
	return cats
}

func sortByName(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Card.Name < entries[j].Card.Name
	})
}
