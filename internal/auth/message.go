package auth

import (
	"fmt"
	"strings"
	"time"

	siwe "github.com/spruceid/siwe-go"

	"github.com/modemobile/todo-rewards/internal/domain"
)

const minNonceLength = 8

// Message is a parsed Sign-In with Ethereum (EIP-4361) message with its
// address and chain id as domain values
type Message struct {
	*siwe.Message

	Address domain.Address
	ChainID domain.ChainID
}

// ParseMessage parses the plain-text form of a sign-in message
func ParseMessage(text string) (*Message, error) {
	parsed, err := siwe.ParseMessage(strings.ReplaceAll(text, "\r\n", "\n"))
	if err != nil {
		return nil, invalidMessage("%v", err)
	}

	address, err := domain.ParseAddress(parsed.GetAddress().Hex())
	if err != nil {
		return nil, invalidMessage("address: %v", err)
	}
	chainID, err := domain.NewChainID(int64(parsed.GetChainID()))
	if err != nil {
		return nil, invalidMessage("chain id: %v", err)
	}
	if !validNonce(parsed.GetNonce()) {
		return nil, invalidMessage("nonce must be at least %d alphanumeric characters", minNonceLength)
	}

	return &Message{Message: parsed, Address: address, ChainID: chainID}, nil
}

// Domain returns the host the message is bound to
func (m *Message) Domain() string {
	return m.GetDomain()
}

// Nonce returns the nonce embedded in the message
func (m *Message) Nonce() string {
	return m.GetNonce()
}

// ValidAt checks the expiration and not-before bounds of the message
func (m *Message) ValidAt(now time.Time) error {
	if _, err := m.Message.ValidAt(now); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}
	return nil
}

func validNonce(nonce string) bool {
	if len(nonce) < minNonceLength {
		return false
	}
	for _, r := range nonce {
		if !strings.ContainsRune(nonceAlphabet, r) {
			return false
		}
	}
	return true
}

func invalidMessage(format string, args ...any) error {
	return fmt.Errorf("%w: sign-in message: %s", domain.ErrInvalidFormat, fmt.Sprintf(format, args...))
}
