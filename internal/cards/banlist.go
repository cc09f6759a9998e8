package cards

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultCopyLimit applies to ordinary cards without a banlist entry.
const DefaultCopyLimit = 4

// Banlist maps a rule name to the number of copies allowed. Zero means banned.
type Banlist map[string]int

// Limit returns the override for ruleName and whether one exists.
func (b Banlist) Limit(ruleName string) (int, bool) {
	n, ok := b[ruleName]
	return n, ok
}

// ParseAllowedCopies reads a copies cell. Blank or non-numeric cells count as
// banned, matching how the sheet has always been read.
func ParseAllowedCopies(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ErrUnavailable is returned by providers that cannot reach their source.
var ErrUnavailable = errors.New("catalog unavailable")

// Provider fetches the card catalog and banlist from some backing source.
type Provider interface {
	FetchCatalog(ctx context.Context) ([]Card, error)
	FetchBanlist(ctx context.Context) (Banlist, error)
}
