package auth

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modemobile/todo-rewards/internal/domain"
)

func newTestKey(t *testing.T) (*ecdsa.PrivateKey, domain.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, domain.MustParseAddress(crypto.PubkeyToAddress(key.PublicKey).Hex())
}

// personalSign signs message the way wallets do for personal_sign (V = 27/28)
func personalSign(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig)
}

func TestVerifySignature(t *testing.T) {
	key, address := newTestKey(t)
	message := "hello todo rewards"

	t.Run("wallet style recovery id", func(t *testing.T) {
		assert.NoError(t, VerifySignature(message, personalSign(t, key, message), address))
	})

	t.Run("raw recovery id", func(t *testing.T) {
		sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
		require.NoError(t, err)
		assert.NoError(t, VerifySignature(message, hexutil.Encode(sig), address))
	})

	t.Run("lowercase address", func(t *testing.T) {
		lower, err := domain.ParseAddress(address.Lower())
		require.NoError(t, err)
		assert.NoError(t, VerifySignature(message, personalSign(t, key, message), lower))
	})
}

func TestVerifySignature_Rejects(t *testing.T) {
	key, address := newTestKey(t)
	_, other := newTestKey(t)
	message := "hello todo rewards"
	signature := personalSign(t, key, message)

	badRecovery, err := hexutil.Decode(signature)
	require.NoError(t, err)
	badRecovery[crypto.RecoveryIDOffset] = 5

	tests := []struct {
		name      string
		message   string
		signature string
		address   domain.Address
	}{
		{name: "other signer", message: message, signature: signature, address: other},
		{name: "tampered message", message: message + "!", signature: signature, address: address},
		{name: "not hex", message: message, signature: "zz", address: address},
		{name: "too short", message: message, signature: "0x1234", address: address},
		{name: "invalid recovery id", message: message, signature: hexutil.Encode(badRecovery), address: address},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(tt.message, tt.signature, tt.address)
			assert.ErrorIs(t, err, domain.ErrInvalidSignature)
		})
	}
}
