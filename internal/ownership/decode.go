package ownership

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/modemobile/todo-rewards/internal/domain"
)

// TransferEventSignature is the topic of Transfer(address,address,uint256).
// ERC-20 emits it with 3 topics, ERC-721 with 4 (tokenId indexed).
var TransferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// DecodeTransferLog decodes an ERC-721 Transfer log. It returns false when the
// log is not a Transfer or lacks any of the from, to and tokenId topics.
func DecodeTransferLog(vLog types.Log) (domain.TransferEvent, bool) {
	if len(vLog.Topics) < 4 || vLog.Topics[0] != TransferEventSignature {
		return domain.TransferEvent{}, false
	}

	return domain.TransferEvent{
		From:        topicAddress(vLog.Topics[1]),
		To:          topicAddress(vLog.Topics[2]),
		TokenID:     new(big.Int).SetBytes(vLog.Topics[3].Bytes()),
		BlockNumber: vLog.BlockNumber,
		TxHash:      vLog.TxHash.Hex(),
		LogIndex:    vLog.Index,
	}, true
}

// DecodeTransferLogs decodes every well-formed Transfer log, keeping input order
func DecodeTransferLogs(logs []types.Log) []domain.TransferEvent {
	events := make([]domain.TransferEvent, 0, len(logs))
	for _, vLog := range logs {
		if e, ok := DecodeTransferLog(vLog); ok {
			events = append(events, e)
		}
	}
	return events
}

// OwnedTokensFromLogs decodes raw Transfer logs and resolves the tokens held by account
func OwnedTokensFromLogs(logs []types.Log, account string) []string {
	return ResolveOwnedTokens(DecodeTransferLogs(logs), account)
}

// topicAddress reads the address held in the low 20 bytes of a 32-byte topic
func topicAddress(topic common.Hash) string {
	return strings.ToLower(common.BytesToAddress(topic.Bytes()).Hex())
}
