package deck

import "fmt"

type Validity struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// Validity reports every deficiency at once, always in the same order:
// main deck size, life cards, only#1 card.
func (d *Deck) Validity() Validity {
	main, life, excl := d.MainCount(), d.LifeCount(), d.exclusiveCount()

	v := Validity{Violations: []string{}}
	if main != MainDeckSize {
		v.Violations = append(v.Violations, fmt.Sprintf("Main Deck must have %d cards (%d/%d)", MainDeckSize, main, MainDeckSize))
	}
	if life != LifeDeckSize {
		v.Violations = append(v.Violations, fmt.Sprintf("Must have %d Life cards (%d/%d)", LifeDeckSize, life, LifeDeckSize))
	}
	switch {
	case excl == 0:
		v.Violations = append(v.Violations, "Missing an 'Only#1' card from Main Deck")
	case excl > 1:
		v.Violations = append(v.Violations, fmt.Sprintf("Only one 'Only#1' card is allowed (%d found)", excl))
	}
	v.Valid = len(v.Violations) == 0
	return v
}
