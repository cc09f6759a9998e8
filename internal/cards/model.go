package cards

import "strings"

// Category is the deck-building category a card is counted under.
type Category string

const (
	Avatar    Category = "Avatar"
	Magic     Category = "Magic"
	Construct Category = "Construct"
	Life      Category = "Life"
	Other     Category = "Other"
)

// GroupMode says how cards sharing a group id restrict each other.
// Exclusive and Choice currently behave the same.
type GroupMode string

const (
	GroupExclusive GroupMode = "Exclusive"
	GroupChoice    GroupMode = "Choice"
)

// ExclusiveTag is the marker carried in the Ex column by cards limited to one per deck.
const ExclusiveTag = "only#1"

type GroupRestriction struct {
	Mode    GroupMode `json:"mode"`
	GroupID string    `json:"group_id"`
}

type Card struct {
	Name     string            `json:"name"`
	RuleName string            `json:"rule_name"`
	Type     string            `json:"type"`
	Symbol   string            `json:"symbol"`
	Cost     string            `json:"cost"`
	CColor   string            `json:"c_color"`
	Gem      string            `json:"gem"`
	GColor   string            `json:"g_color"`
	Power    string            `json:"power"`
	Ex       string            `json:"ex"`
	Rare     string            `json:"rare"`
	Image    string            `json:"image,omitempty"`
	Group    *GroupRestriction `json:"group,omitempty"`
}

// Category derives the card's category from its free-text type.
func (c Card) Category() Category {
	t := strings.TrimSpace(c.Type)
	if strings.Contains(strings.ToLower(t), "life") {
		return Life
	}
	switch Category(t) {
	case Avatar, Magic, Construct:
		return Category(t)
	}
	return Other
}

func (c Card) IsLife() bool {
	return c.Category() == Life
}

// IsExclusive reports whether the card carries the one-per-deck tag.
func (c Card) IsExclusive() bool {
	return strings.Contains(strings.ToLower(c.Ex), ExclusiveTag)
}

// ParseGroup builds a group restriction from the catalog's restriction type
// and group id cells. Unknown modes or a blank group id yield nil.
func ParseGroup(mode, groupID string) *GroupRestriction {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "choice":
		return &GroupRestriction{Mode: GroupChoice, GroupID: groupID}
	case "exclusive", "incompatible":
		return &GroupRestriction{Mode: GroupExclusive, GroupID: groupID}
	}
	return nil
}
