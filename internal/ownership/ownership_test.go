package ownership_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/ownership"
)

const (
	alice = "0x00000000000000000000000000000000000000a1"
	bob   = "0x00000000000000000000000000000000000000b2"
	carol = "0x00000000000000000000000000000000000000c3"
)

func transfer(tokenID int64, from, to string, block uint64) domain.TransferEvent {
	return domain.TransferEvent{From: from, To: to, TokenID: big.NewInt(tokenID), BlockNumber: block}
}

func TestResolveOwnedTokens_Scenario(t *testing.T) {
	events := []domain.TransferEvent{
		transfer(5, "0xA", "0xB", 10),
		transfer(5, "0xB", "0xA", 20),
		transfer(7, "0xA", "0xB", 15),
	}

	assert.Equal(t, []string{"7"}, ownership.ResolveOwnedTokens(events, "0xB"))
	assert.Equal(t, []string{"5"}, ownership.ResolveOwnedTokens(events, "0xa"))
}

func TestResolveOwnedTokens_LastWriteWinsRegardlessOfOrder(t *testing.T) {
	events := []domain.TransferEvent{
		transfer(1, domain.ZeroAddress.Lower(), alice, 100),
		transfer(1, alice, bob, 200),
		transfer(1, bob, carol, 300),
		transfer(2, domain.ZeroAddress.Lower(), carol, 150),
	}

	permutations := [][]int{
		{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}, {1, 3, 0, 2}, {2, 1, 0, 3},
	}
	for _, perm := range permutations {
		shuffled := make([]domain.TransferEvent, 0, len(events))
		for _, i := range perm {
			shuffled = append(shuffled, events[i])
		}

		assert.Equal(t, []string{"1", "2"}, ownership.ResolveOwnedTokens(shuffled, carol), "perm %v", perm)
		assert.Empty(t, ownership.ResolveOwnedTokens(shuffled, alice), "perm %v", perm)
		assert.Empty(t, ownership.ResolveOwnedTokens(shuffled, bob), "perm %v", perm)
	}
}

func TestResolveOwnedTokens_ExcludesTransferredAway(t *testing.T) {
	events := []domain.TransferEvent{
		transfer(9, domain.ZeroAddress.Lower(), alice, 1),
		transfer(9, alice, bob, 2),
	}

	assert.Empty(t, ownership.ResolveOwnedTokens(events, alice))
	assert.Equal(t, []string{"9"}, ownership.ResolveOwnedTokens(events, bob))
}

func TestResolveOwnedTokens_CaseInsensitiveAccount(t *testing.T) {
	events := []domain.TransferEvent{
		transfer(3, alice, "0x00000000000000000000000000000000000000B2", 5),
	}

	assert.Equal(t, []string{"3"}, ownership.ResolveOwnedTokens(events, bob))
	assert.Equal(t, []string{"3"}, ownership.ResolveOwnedTokens(events, "0x00000000000000000000000000000000000000B2"))

	// both sides are lowercased, so a checksummed event matches a lowercase account and back
	mixed := []domain.TransferEvent{
		transfer(4, alice, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", 6),
		transfer(5, alice, "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", 7),
	}
	assert.Equal(t, []string{"4", "5"}, ownership.ResolveOwnedTokens(mixed, "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"))
	assert.Equal(t, []string{"4", "5"}, ownership.ResolveOwnedTokens(mixed, "0XC02AAA39B223FE8D0A0E5C4F27EAD9083C756CC2"))
}

func TestResolveOwnedTokens_EmptyInput(t *testing.T) {
	result := ownership.ResolveOwnedTokens(nil, alice)
	require.NotNil(t, result)
	assert.Empty(t, result)

	result = ownership.ResolveOwnedTokens([]domain.TransferEvent{transfer(1, alice, bob, 1)}, "")
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestResolveOwnedTokens_SkipsMalformed(t *testing.T) {
	events := []domain.TransferEvent{
		{From: alice, To: bob, BlockNumber: 1},
		{From: "", To: bob, TokenID: big.NewInt(4), BlockNumber: 2},
		{From: alice, To: "", TokenID: big.NewInt(5), BlockNumber: 3},
		transfer(6, alice, bob, 4),
	}

	assert.Equal(t, []string{"6"}, ownership.ResolveOwnedTokens(events, bob))
}

func TestResolveOwnedTokens_DoesNotMutateInput(t *testing.T) {
	events := []domain.TransferEvent{
		transfer(1, alice, bob, 30),
		transfer(2, alice, bob, 10),
		transfer(3, alice, bob, 20),
	}
	before := make([]domain.TransferEvent, len(events))
	copy(before, events)

	assert.Equal(t, []string{"2", "3", "1"}, ownership.ResolveOwnedTokens(events, bob))
	assert.Equal(t, before, events)
}

func TestResolveOwnedTokens_SameBlockKeepsInputOrder(t *testing.T) {
	events := []domain.TransferEvent{
		transfer(8, alice, bob, 50),
		transfer(8, bob, carol, 50),
	}

	assert.Equal(t, []string{"8"}, ownership.ResolveOwnedTokens(events, carol))
	assert.Empty(t, ownership.ResolveOwnedTokens(events, bob))
}

func TestResolveOwnedTokens_LargeTokenID(t *testing.T) {
	id, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	require.True(t, ok)

	events := []domain.TransferEvent{{From: alice, To: bob, TokenID: id, BlockNumber: 1}}
	assert.Equal(t, []string{id.String()}, ownership.ResolveOwnedTokens(events, bob))
}

func transferLog(from, to string, tokenID int64, block uint64) types.Log {
	return types.Log{
		Topics: []common.Hash{
			ownership.TransferEventSignature,
			common.BytesToHash(common.HexToAddress(from).Bytes()),
			common.BytesToHash(common.HexToAddress(to).Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
		BlockNumber: block,
		TxHash:      common.HexToHash("0x01"),
		Index:       2,
	}
}

func TestDecodeTransferLog(t *testing.T) {
	e, ok := ownership.DecodeTransferLog(transferLog(alice, bob, 42, 77))
	require.True(t, ok)
	assert.Equal(t, alice, e.From)
	assert.Equal(t, bob, e.To)
	assert.Equal(t, "42", e.TokenNumber())
	assert.Equal(t, uint64(77), e.BlockNumber)
	assert.Equal(t, uint(2), e.LogIndex)
	assert.Equal(t, common.HexToHash("0x01").Hex(), e.TxHash)

	missingTokenID := transferLog(alice, bob, 1, 1)
	missingTokenID.Topics = missingTokenID.Topics[:3]
	_, ok = ownership.DecodeTransferLog(missingTokenID)
	assert.False(t, ok)

	otherEvent := transferLog(alice, bob, 1, 1)
	otherEvent.Topics[0] = common.HexToHash("0xdead")
	_, ok = ownership.DecodeTransferLog(otherEvent)
	assert.False(t, ok)

	_, ok = ownership.DecodeTransferLog(types.Log{})
	assert.False(t, ok)
}

func TestOwnedTokensFromLogs(t *testing.T) {
	malformed := transferLog(alice, carol, 99, 1)
	malformed.Topics = malformed.Topics[:2]

	logs := []types.Log{
		transferLog(domain.ZeroAddress.Lower(), alice, 1, 10),
		malformed,
		transferLog(alice, bob, 1, 12),
		transferLog(domain.ZeroAddress.Lower(), bob, 2, 11),
		transferLog(domain.ZeroAddress.Lower(), alice, 3, 9),
	}

	assert.Equal(t, []string{"1", "2"}, ownership.OwnedTokensFromLogs(logs, "0x00000000000000000000000000000000000000B2"))
	assert.Equal(t, []string{"3"}, ownership.OwnedTokensFromLogs(logs, alice))
	assert.Empty(t, ownership.OwnedTokensFromLogs(logs, carol))
	assert.Len(t, ownership.DecodeTransferLogs(logs), 4)
}
