package auth

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/modemobile/todo-rewards/internal/domain"
)

// VerifySignature checks that signatureHex is an EIP-191 personal signature of
// message made by address. V may be 0/1 or 27/28.
func VerifySignature(message, signatureHex string, address domain.Address) error {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return fmt.Errorf("%w: signature is not hex: %v", domain.ErrInvalidSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("%w: signature must be %d bytes, got %d", domain.ErrInvalidSignature, crypto.SignatureLength, len(sig))
	}

	// work on a copy, the caller's slice stays untouched
	sig = append([]byte(nil), sig...)
	switch sig[crypto.RecoveryIDOffset] {
	case 27, 28:
		sig[crypto.RecoveryIDOffset] -= 27
	case 0, 1:
	default:
		return fmt.Errorf("%w: invalid recovery id %d", domain.ErrInvalidSignature, sig[crypto.RecoveryIDOffset])
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if recovered != address.Common() {
		return fmt.Errorf("%w: signed by %s, expected %s", domain.ErrInvalidSignature, recovered.Hex(), address.String())
	}

	return nil
}
