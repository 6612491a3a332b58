// Package ownership reconstructs current ERC-721 ownership from a history of
// Transfer events.
package ownership

import (
	"sort"
	"strings"

	"github.com/modemobile/todo-rewards/internal/domain"
)

// latestTransfer is the most recent transfer seen for a token while folding
type latestTransfer struct {
	from        string
	to          string
	blockNumber uint64
}

// ResolveOwnedTokens returns the decimal ids of the tokens whose most recent
// transfer, ordered by block number, was to account. The comparison is
// case-insensitive. Events missing from, to or tokenId are skipped.
//
// Ids are returned in the order in which each token first appears in the
// block-ordered history. Two transfers of one token inside the same block keep
// their input order; there is no log index tie-break.
func ResolveOwnedTokens(events []domain.TransferEvent, account string) []string {
	owned := make([]string, 0)
	if account == "" || len(events) == 0 {
		return owned
	}

	sorted := make([]domain.TransferEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BlockNumber < sorted[j].BlockNumber
	})

	index := make(map[string]latestTransfer, len(sorted))
	order := make([]string, 0, len(sorted))
	for _, e := range sorted {
		if !e.Valid() {
			continue
		}

		tokenID := e.TokenID.String()
		if _, seen := index[tokenID]; !seen {
			order = append(order, tokenID)
		}
		index[tokenID] = latestTransfer{
			from:        strings.ToLower(e.From),
			to:          strings.ToLower(e.To),
			blockNumber: e.BlockNumber,
		}
	}

	target := strings.ToLower(account)
	for _, tokenID := range order {
		if index[tokenID].to == target {
			owned = append(owned, tokenID)
		}
	}

	return owned
}
