package cards

import (
	"sort"
	"strings"
)

type FilterOptions struct {
	Search        string   `json:"search" form:"q"`
	Types         []string `json:"types" form:"type"`
	CColors       []string `json:"c_colors" form:"color"`
	Symbols       []string `json:"symbols" form:"symbol"`
	Rares         []string `json:"rares" form:"rare"`
	ExclusiveOnly bool     `json:"exclusive_only" form:"only1"`
}

func matchesAny(v string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if v == w {
			return true
		}
	}
	return false
}

// Filter returns the cards matching every set option, in catalog order.
func Filter(cards []Card, opt FilterOptions) []Card {
	kw := strings.Fields(strings.ToLower(opt.Search))
	out := []Card{}
	for _, c := range cards {
		if opt.ExclusiveOnly && !c.IsExclusive() {
			continue
		}
		if !matchesAny(c.Type, opt.Types) ||
			!matchesAny(c.CColor, opt.CColors) ||
			!matchesAny(c.Symbol, opt.Symbols) ||
			!matchesAny(c.Rare, opt.Rares) {
			continue
		}
		if len(kw) > 0 {
			name := strings.ToLower(c.Name)
			rule := strings.ToLower(c.RuleName)
			ok := true
			for _, k := range kw {
				if !strings.Contains(name, k) && !strings.Contains(rule, k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// Choices lists the distinct non-empty values offered for each filter.
type Choices struct {
	Types   []string `json:"types"`
	CColors []string `json:"c_colors"`
	Symbols []string `json:"symbols"`
	Rares   []string `json:"rares"`
}

func Options(cards []Card) Choices {
	types := map[string]struct{}{}
	colors := map[string]struct{}{}
	symbols := map[string]struct{}{}
	rares := map[string]struct{}{}
	for _, c := range cards {
		add(types, c.Type)
		add(colors, c.CColor)
		add(symbols, c.Symbol)
		add(rares, c.Rare)
	}
	return Choices{
		Types:   sortedKeys(types),
		CColors: sortedKeys(colors),
		Symbols: sortedKeys(symbols),
		Rares:   sortedKeys(rares),
	}
}

func add(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
