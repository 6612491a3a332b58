package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/modemobile/todo-rewards/internal/adapter"
	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/store"
)

const (
	defaultSessionTTL = 24 * time.Hour
	sessionIssuer     = "todo-rewards"
)

// Config holds the sign-in configuration
type Config struct {
	// Domain is the host the sign-in message must be bound to
	Domain     string
	JWTSecret  string
	SessionTTL time.Duration
	NonceTTL   time.Duration
	MaxNonces  int
}

// Claims are the claims of a session token. The subject is the checksummed address.
type Claims struct {
	ChainID int64 `json:"chain_id"`
	jwt.RegisteredClaims
}

// Address returns the signed-in wallet
func (c *Claims) Address() domain.Address {
	return domain.Address(c.Subject)
}

// Session is the result of a successful sign-in
type Session struct {
	Token     string         `json:"token"`
	Address   domain.Address `json:"address"`
	ChainID   domain.ChainID `json:"chainId"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// Service implements Sign-In with Ethereum and session tokens
//
//go:generate mockgen -source=service.go -destination=../mocks/auth_service.go -package=mocks -mock_names=Service=MockAuthService
type Service interface {
	// IssueNonce returns a fresh single-use nonce to embed in a sign-in message
	IssueNonce() (string, error)

	// Verify checks a signed sign-in message and opens a session
	Verify(ctx context.Context, message, signature string) (*Session, error)

	// ValidateSession parses a session token
	ValidateSession(token string) (*Claims, error)

	// Close releases the nonce store
	Close()
}

type service struct {
	config Config
	nonces *Nonces
	store  store.Store
	clock  adapter.Clock
}

// NewService creates the sign-in service
func NewService(cfg Config, store store.Store, clock adapter.Clock) (Service, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	return &service{
		config: cfg,
		nonces: NewNonces(cfg.MaxNonces, cfg.NonceTTL),
		store:  store,
		clock:  clock,
	}, nil
}

// IssueNonce returns a fresh single-use nonce
func (s *service) IssueNonce() (string, error) {
	return s.nonces.Issue()
}

// Verify checks the message binding (domain, nonce, chain, validity window),
// the signature, records the login and issues a session token.
func (s *service) Verify(ctx context.Context, message, signature string) (*Session, error) {
	msg, err := ParseMessage(message)
	if err != nil {
		return nil, err
	}

	if s.config.Domain != "" && msg.Domain() != s.config.Domain {
		return nil, fmt.Errorf("%w: message is bound to domain %q", domain.ErrInvalidSignature, msg.Domain())
	}
	if !domain.IsSupportedChain(msg.ChainID) {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedChain, msg.ChainID)
	}

	now := s.clock.Now()
	if err := msg.ValidAt(now); err != nil {
		return nil, err
	}

	// the nonce is burnt before the signature check so that a failed attempt cannot be retried
	if !s.nonces.Consume(msg.Nonce()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNonceNotFound, msg.Nonce())
	}

	if err := VerifySignature(message, signature, msg.Address); err != nil {
		logger.WarnCtx(ctx, "Sign-in signature rejected",
			zap.String("address", msg.Address.String()),
			zap.Error(err))
		return nil, err
	}

	_, err = s.store.UpsertUser(ctx, store.UpsertUserInput{
		Address:     msg.Address.String(),
		ChainID:     msg.ChainID.Int64(),
		LastLoginAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	expiresAt := now.Add(s.config.SessionTTL)
	claims := Claims{
		ChainID: msg.ChainID.Int64(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   msg.Address.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	logger.InfoCtx(ctx, "Wallet signed in",
		zap.String("address", msg.Address.String()),
		zap.Int64("chainId", msg.ChainID.Int64()))

	return &Session{
		Token:     token,
		Address:   msg.Address,
		ChainID:   msg.ChainID,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateSession parses a session token; any invalid token reports ErrSessionExpired
func (s *service) ValidateSession(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}

	if _, err := domain.ParseAddress(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: invalid subject", domain.ErrSessionExpired)
	}

	return claims, nil
}

// Close releases the nonce store
func (s *service) Close() {
	s.nonces.Close()
}
