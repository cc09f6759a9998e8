package deck

import "github.com/youruser/talingdeck/internal/cards"

// Reason classifies the outcome of a deck mutation.
type Reason string

const (
	Success              Reason = "Success"
	DeckFullMain         Reason = "DeckFull:Main"
	DeckFullLife         Reason = "DeckFull:Life"
	DuplicateLife        Reason = "Duplicate:Life"
	Banned               Reason = "Banned"
	LimitExceeded        Reason = "LimitExceeded"
	ExclusivityViolation Reason = "ExclusivityViolation"
	GroupConflict        Reason = "GroupConflict"
	NotFound             Reason = "NotFound"
)

// Result is returned by every mutation. Rejections are ordinary values; the
// caller decides how to surface them.
type Result struct {
	Reason Reason     `json:"reason"`
	Card   cards.Card `json:"card"`
	// Limit is the copy limit that applied for LimitExceeded and Banned.
	Limit int `json:"limit,omitempty"`
	// Conflict names the card already in the deck for ExclusivityViolation and GroupConflict.
	Conflict string `json:"conflict,omitempty"`
}

func (r Result) OK() bool {
	return r.Reason == Success
}
