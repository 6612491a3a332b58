package domain

import "errors"

var (
	// ErrInvalidFormat is returned when a value fails validation in a smart constructor
	ErrInvalidFormat = errors.New("invalid format")

	// ErrUnsupportedChain is returned when no contracts are deployed on the requested chain
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrTodoNotFound is returned when a todo does not exist or belongs to another account
	ErrTodoNotFound = errors.New("todo not found")

	// ErrInvalidSignature is returned when a SIWE signature does not recover to the claimed address
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrNonceNotFound is returned when a SIWE nonce was never issued, already used or expired
	ErrNonceNotFound = errors.New("nonce not found")

	// ErrSessionExpired is returned when a session token is expired or otherwise invalid
	ErrSessionExpired = errors.New("session expired")

	// ErrTransactionNotFound is returned when the chain does not know the transaction hash
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrChainUnavailable is returned when a request to the blockchain node fails
	ErrChainUnavailable = errors.New("chain request failed")

	// ErrSubscriptionFailed is returned when subscription to events fails
	ErrSubscriptionFailed = errors.New("subscription failed")
)
