package deck

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrIncomplete is returned when a recipe is requested for a deck that
// does not pass validation.
var ErrIncomplete = errors.New("deck is not complete")

// ExportRecipe renders the printable deck list. The only#1 card is listed
// with the avatars, as on the tournament sheet.
func ExportRecipe(d *Deck, force bool) (string, error) {
	if !force && !d.Validity().Valid {
		return "", ErrIncomplete
	}
	cats := d.Categorize()

	avatars := cats.Avatars
	if cats.Exclusive != nil {
		avatars = append([]Entry{*cats.Exclusive}, avatars...)
		sortByName(avatars)
	}

	lines := []string{"# Battle of Talingchan Deck Recipe"}
	lines = append(lines, "Player: "+d.PlayerName())
	lines = append(lines, "Deck: "+d.DeckName())
	lines = append(lines, "")
	lines = appendSection(lines, "Avatar", avatars)
	lines = appendSection(lines, "Magic", cats.Magics)
	lines = appendSection(lines, "Construct", cats.Constructs)
	lines = appendSection(lines, "Other", cats.Others)
	lines = appendSection(lines, "Life Card", cats.Life)
	lines = append(lines, fmt.Sprintf("Main Deck: %d/%d  Life: %d/%d", d.MainCount(), MainDeckSize, d.LifeCount(), LifeDeckSize))
	return strings.Join(lines, "\n") + "\n", nil
}

func appendSection(lines []string, title string, entries []Entry) []string {
	if len(entries) == 0 {
		return lines
	}
	lines = append(lines, fmt.Sprintf("## %s (%d)", title, Total(entries)))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%dx %s", e.Count, e.Card.Name))
	}
	return append(lines, "")
}
