package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ChainID identifies an EVM network. It is always a positive integer.
type ChainID int64

const (
	// ChainPolygonAmoy is the Polygon Amoy testnet
	ChainPolygonAmoy ChainID = 80002
)

// NewChainID validates n as a chain id
func NewChainID(n int64) (ChainID, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: chain id must be positive, got %d", ErrInvalidFormat, n)
	}
	return ChainID(n), nil
}

// ParseChainID parses a decimal or 0x-prefixed hex chain id
func ParseChainID(s string) (ChainID, error) {
	s = strings.TrimSpace(s)
	var (
		n   int64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err = strconv.ParseInt(s[2:], 16, 64)
	} else {
		n, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: chain id %q", ErrInvalidFormat, s)
	}
	return NewChainID(n)
}

// Int64 returns the numeric chain id
func (c ChainID) Int64() int64 {
	return int64(c)
}

// String returns the decimal chain id
func (c ChainID) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// Contracts holds the deployed contract addresses of the app on one chain
type Contracts struct {
	NFT   Address `json:"nft"`
	ERC20 Address `json:"erc20"`
}

var deployments = map[ChainID]Contracts{
	ChainPolygonAmoy: {
		NFT:   MustParseAddress("0x8E1096fd5C8Ca1EFdC1BC2F64Ae439E0888b1A46"),
		ERC20: MustParseAddress("0xf02f35bF1C8D2c3a1e7255FD9AddC8F2182e0627"),
	},
}

// ContractAddresses returns the contracts deployed on chain
func ContractAddresses(chain ChainID) (Contracts, error) {
	c, ok := deployments[chain]
	if !ok {
		return Contracts{}, fmt.Errorf("%w: %d", ErrUnsupportedChain, chain)
	}
	return c, nil
}

// IsSupportedChain reports whether the app has contracts on chain
func IsSupportedChain(chain ChainID) bool {
	_, ok := deployments[chain]
	return ok
}
