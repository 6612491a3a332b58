package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const defaultTruncateBuffer = 6

// Address is an EIP-55 checksummed account or contract address
type Address string

// ZeroAddress is the all-zero address used as the sender of mints
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// ParseAddress validates a 20-byte hex address, with or without the 0x prefix,
// and returns its checksummed form. Mixed-case input must carry a valid checksum.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("%w: address %q", ErrInvalidFormat, s)
	}

	hexPart := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	checksummed := common.HexToAddress(s).Hex()
	if isMixedCase(hexPart) && hexPart != strings.TrimPrefix(checksummed, "0x") {
		return "", fmt.Errorf("%w: address %q has an invalid checksum", ErrInvalidFormat, s)
	}

	return Address(checksummed), nil
}

// MustParseAddress is ParseAddress for constants; it panics on invalid input
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String returns the checksummed address
func (a Address) String() string {
	return string(a)
}

// Lower returns the lowercase hex form used for comparisons and storage keys
func (a Address) Lower() string {
	return strings.ToLower(string(a))
}

// Common converts the address to the go-ethereum representation
func (a Address) Common() common.Address {
	return common.HexToAddress(string(a))
}

// Equal compares two addresses case-insensitively
func (a Address) Equal(other Address) bool {
	return strings.EqualFold(string(a), string(other))
}

// Truncate shortens the address for display, e.g. 0x1234...5678.
// A buffer below 2 falls back to the default of 6.
func (a Address) Truncate(buffer int) string {
	if buffer < 2 {
		buffer = defaultTruncateBuffer
	}
	s := string(a)
	if len(s) <= buffer*2 {
		return s
	}
	return s[:buffer] + "..." + s[len(s)-buffer+2:]
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
