package cards

// Catalog is the read-only card list for a session, in catalog order.
type Catalog struct {
	cards  []Card
	byRule map[string]int
}

func NewCatalog(cs []Card) *Catalog {
	c := &Catalog{
		cards:  append([]Card(nil), cs...),
		byRule: make(map[string]int, len(cs)),
	}
	for i, card := range c.cards {
		if card.RuleName == "" {
			continue
		}
		// first printing wins for reprints sharing a rule name
		if _, ok := c.byRule[card.RuleName]; !ok {
			c.byRule[card.RuleName] = i
		}
	}
	return c
}

// Lookup returns the first catalog card with the given rule name.
func (c *Catalog) Lookup(ruleName string) (Card, bool) {
	if c == nil {
		return Card{}, false
	}
	i, ok := c.byRule[ruleName]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

func (c *Catalog) Cards() []Card {
	if c == nil {
		return nil
	}
	return append([]Card(nil), c.cards...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.cards)
}
