package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	nonceLength      = 17
	nonceAlphabet    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	defaultNonceTTL  = 10 * time.Minute
	defaultMaxNonces = 100_000
)

// Nonces issues single-use sign-in nonces that expire after a TTL
type Nonces struct {
	issued *expirable.LRU[string, struct{}]
}

// NewNonces creates a nonce store holding at most size outstanding nonces
func NewNonces(size int, ttl time.Duration) *Nonces {
	if size <= 0 {
		size = defaultMaxNonces
	}
	if ttl <= 0 {
		ttl = defaultNonceTTL
	}
	return &Nonces{issued: expirable.NewLRU[string, struct{}](size, nil, ttl)}
}

// Issue generates and remembers a new random alphanumeric nonce
func (n *Nonces) Issue() (string, error) {
	nonce, err := randomString(nonceLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	n.issued.Add(nonce, struct{}{})
	return nonce, nil
}

// Consume reports whether nonce was issued and not yet used, and forgets it
func (n *Nonces) Consume(nonce string) bool {
	if _, ok := n.issued.Get(nonce); !ok {
		return false
	}
	return n.issued.Remove(nonce)
}

// Close forgets every outstanding nonce
func (n *Nonces) Close() {
	n.issued.Purge()
}

func randomString(length int) (string, error) {
	max := big.NewInt(int64(len(nonceAlphabet)))
	b := make([]byte, length)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = nonceAlphabet[idx.Int64()]
	}
	return string(b), nil
}
