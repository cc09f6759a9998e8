package deck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/talingdeck/internal/cards"
)

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Card.Name)
	}
	return out
}

func TestCategorizeGroupsAndSorts(t *testing.T) {
	d := New()
	mustAdd(t, d, avatar("Zed"), nil)
	mustAdd(t, d, avatar("Arun"), nil)
	mustAdd(t, d, avatar("Arun"), nil)
	mustAdd(t, d, only1("Indra"), nil)
	mustAdd(t, d, magic("Fire"), nil)
	mustAdd(t, d, cards.Card{Name: "Wall", RuleName: "Wall", Type: "Construct"}, nil)
	mustAdd(t, d, life("Lotus"), nil)
	mustAdd(t, d, life("Kite"), nil)
	mustAdd(t, d, cards.Card{Name: "Token", RuleName: "Token", Type: "Token"}, nil)

	cats := d.Categorize()
	require.NotNil(t, cats.Exclusive)
	assert.Equal(t, "Indra", cats.Exclusive.Card.Name)
	assert.Equal(t, []string{"Arun", "Zed"}, names(cats.Avatars))
	assert.Equal(t, 2, cats.Avatars[0].Count)
	assert.Equal(t, []string{"Fire"}, names(cats.Magics))
	assert.Equal(t, []string{"Wall"}, names(cats.Constructs))
	assert.Equal(t, []string{"Kite", "Lotus"}, names(cats.Life))
	assert.Equal(t, []string{"Token"}, names(cats.Others))
	assert.Equal(t, 3, Total(cats.Avatars))
}

func TestCategorizeStableForEqualNames(t *testing.T) {
	d := New()
	a := magic("R1")
	a.Name = "Same"
	b := magic("R2")
	b.Name = "Same"
	mustAdd(t, d, b, nil)
	mustAdd(t, d, a, nil)

	cats := d.Categorize()
	require.Len(t, cats.Magics, 2)
	assert.Equal(t, "R2", cats.Magics[0].Card.RuleName)
	assert.Equal(t, "R1", cats.Magics[1].Card.RuleName)
}

func TestCategorizeLifeTypeVariants(t *testing.T) {
	d := New()
	mustAdd(t, d, cards.Card{Name: "L", RuleName: "L", Type: "Avatar_Life"}, nil)
	cats := d.Categorize()
	assert.Len(t, cats.Life, 1)
	assert.Empty(t, cats.Avatars)
}

func TestValidityEmptyDeckReportsAllInOrder(t *testing.T) {
	v := New().Validity()
	assert.False(t, v.Valid)
	require.Len(t, v.Violations, 3)
	assert.Contains(t, v.Violations[0], "Main Deck must have 50 cards (0/50)")
	assert.Contains(t, v.Violations[1], "Must have 5 Life cards (0/5)")
	assert.Contains(t, v.Violations[2], "Only#1")
}

func TestValidityCombinations(t *testing.T) {
	cases := []struct {
		name      string
		main      int
		life      int
		exclusive bool
		want      []string
	}{
		{"complete", MainDeckSize - 1, LifeDeckSize, true, nil},
		{"short main", 10, LifeDeckSize, true, []string{"Main Deck"}},
		{"short life", MainDeckSize - 1, 2, true, []string{"Life"}},
		{"no only1", MainDeckSize, LifeDeckSize, false, []string{"Only#1"}},
		{"main and only1", 5, LifeDeckSize, false, []string{"Main Deck", "Only#1"}},
		{"life and only1", MainDeckSize, 0, false, []string{"Life", "Only#1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := New()
			if tc.exclusive {
				mustAdd(t, d, only1("O1"), nil)
			}
			fillMain(t, d, tc.main)
			fillLife(t, d, tc.life)

			v := d.Validity()
			assert.Equal(t, len(tc.want) == 0, v.Valid)
			require.Len(t, v.Violations, len(tc.want))
			for i, w := range tc.want {
				assert.Contains(t, v.Violations[i], w)
			}
		})
	}
}

func TestValidityFlagsRestoredDoubleExclusive(t *testing.T) {
	catalog := cards.NewCatalog([]cards.Card{only1("O1"), only1("O2")})
	d, missing := Restore(Snapshot{Cards: []string{"O1", "O2"}}, catalog)
	require.Empty(t, missing)

	v := d.Validity()
	require.Len(t, v.Violations, 3)
	assert.Contains(t, v.Violations[2], "(2 found)")
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	catalog := cards.NewCatalog([]cards.Card{magic("M"), life("L0"), only1("O1")})
	d := New()
	mustAdd(t, d, magic("M"), nil)
	mustAdd(t, d, life("L0"), nil)
	mustAdd(t, d, magic("M"), nil)
	d.SetPlayerName("Nok")
	d.SetDeckName("Garuda")

	snap := d.Snapshot()
	assert.Equal(t, []string{"M", "L0", "M"}, snap.Cards)

	got, missing := Restore(snap, catalog)
	assert.Empty(t, missing)
	assert.Equal(t, snap, got.Snapshot())
	assert.Equal(t, 2, got.CardCount("M"))
}

func TestRestoreReportsUnknownCards(t *testing.T) {
	catalog := cards.NewCatalog([]cards.Card{magic("M")})
	d, missing := Restore(Snapshot{Cards: []string{"M", "gone", "M"}}, catalog)
	assert.Equal(t, []string{"gone"}, missing)
	assert.Equal(t, 2, d.Len())
}

func TestRebuildEnforcesAdmission(t *testing.T) {
	catalog := cards.NewCatalog([]cards.Card{
		only1("O"), magic("B"), magic("M"), life("L"),
		grouped("G1", "g", cards.GroupChoice), grouped("G2", "g", cards.GroupChoice),
	})
	snap := Snapshot{
		Cards:      []string{"O", "B", "M", "M", "M", "M", "M", "G1", "G2", "L", "L", "gone"},
		PlayerName: "Nok",
	}

	d, missing, rejected := Rebuild(snap, catalog, cards.Banlist{"B": 0})
	assert.Equal(t, []string{"gone"}, missing)
	require.Len(t, rejected, 4)
	assert.Equal(t, Banned, rejected[0].Reason)
	assert.Equal(t, "B", rejected[0].Card.RuleName)
	assert.Equal(t, LimitExceeded, rejected[1].Reason)
	assert.Equal(t, GroupConflict, rejected[2].Reason)
	assert.Equal(t, "G1", rejected[2].Conflict)
	assert.Equal(t, DuplicateLife, rejected[3].Reason)

	assert.Zero(t, d.CardCount("B"))
	assert.Equal(t, cards.DefaultCopyLimit, d.CardCount("M"))
	assert.Equal(t, 1, d.CardCount("L"))
	assert.Equal(t, "Nok", d.PlayerName())
}

func TestRebuildBannedFillerIsNotComplete(t *testing.T) {
	catalog := cards.NewCatalog([]cards.Card{only1("O"), magic("B"), life("L")})
	snap := Snapshot{Cards: []string{"O"}}
	for i := 0; i < 49; i++ {
		snap.Cards = append(snap.Cards, "B")
	}
	for i := 0; i < 5; i++ {
		snap.Cards = append(snap.Cards, "L")
	}

	d, _, rejected := Rebuild(snap, catalog, cards.Banlist{"B": 0})
	assert.Len(t, rejected, 53)
	assert.Equal(t, Building, d.State())
	_, err := ExportRecipe(d, false)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestExportRecipeRequiresValidDeck(t *testing.T) {
	d := New()
	mustAdd(t, d, magic("M"), nil)

	_, err := ExportRecipe(d, false)
	assert.ErrorIs(t, err, ErrIncomplete)

	text, err := ExportRecipe(d, true)
	require.NoError(t, err)
	assert.Contains(t, text, "## Magic (1)")
	assert.Contains(t, text, "1x M")
}

func TestExportRecipeListsOnly1WithAvatars(t *testing.T) {
	d := New()
	mustAdd(t, d, only1("Brahma"), nil)
	fillMain(t, d, MainDeckSize-1)
	fillLife(t, d, LifeDeckSize)
	d.SetPlayerName("Nok")
	d.SetDeckName("Garuda")

	text, err := ExportRecipe(d, false)
	require.NoError(t, err)
	lines := strings.Split(text, "\n")
	assert.Equal(t, "Player: Nok", lines[1])
	assert.Equal(t, "Deck: Garuda", lines[2])
	assert.Contains(t, text, "## Avatar (50)")
	assert.Contains(t, text, "1x Brahma")
	assert.Contains(t, text, "## Life Card (5)")
	assert.NotContains(t, text, "## Magic")
}
