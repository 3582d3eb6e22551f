// Package auth handles registration, login and bearer-token sessions.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/libroquest/gamebook-server/internal/dependencies/clock"
	"github.com/libroquest/gamebook-server/internal/dependencies/random"
	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/services/view"
	"github.com/libroquest/gamebook-server/internal/storage"
)

// Errors
var (
	ErrInvalidSession = errors.New("invalid or expired session")
)

// tokenBytes gives 256 bits of entropy per session token
const tokenBytes = 32

const playerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Service handles authentication and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 7 * 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(st storage.Storage, clk clock.Clock, rnd random.Random, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         st,
		clock:           clk,
		random:          rnd,
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a new player account. The document is the sole login
// credential and must be unique; a taken document surfaces as
// model.ErrDocumentTaken. New players start at level 1 with a zero balance.
func (s *Service) Register(ctx context.Context, document, name string, school model.School, gender model.Gender) (*model.PlayerView, error) {
	player := &model.Player{
		ID:        model.PlayerID("p_" + s.random.String(16, playerIDAlphabet)),
		Document:  document,
		Name:      name,
		School:    school,
		Gender:    gender,
		Money:     "0",
		Level:     model.MinLevel,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return view.Compose(ctx, s.storage, player)
}

// Login resolves a document to its player and issues a session token. An
// unknown document surfaces as model.ErrPlayerNotFound.
func (s *Service) Login(ctx context.Context, document string) (string, *model.PlayerView, error) {
	player, err := s.storage.GetPlayerByDocument(ctx, document)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueSession(ctx, player.ID)
	if err != nil {
		return "", nil, err
	}

	playerView, err := view.Compose(ctx, s.storage, player)
	if err != nil {
		return "", nil, err
	}

	return token, playerView, nil
}

// Logout deletes the session row for the given token and reports how many
// rows were removed. No ownership check is performed: any caller holding a
// token can revoke it. See the security note in DESIGN.md.
func (s *Service) Logout(ctx context.Context, token string) (int, error) {
	return s.storage.DeleteSession(ctx, token)
}

// ValidateToken resolves a bearer token to its player. A token that is
// unknown or past its expiry never authenticates; expiry is checked lazily
// rather than by a background sweeper, and is not auto-extended.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.Player, error) {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		return nil, ErrInvalidSession
	}

	player, err := s.storage.GetPlayer(ctx, session.PlayerID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return player, nil
}

// issueSession persists a new session row and returns its token
func (s *Service) issueSession(ctx context.Context, playerID model.PlayerID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	session := &model.Session{
		Token:     token,
		PlayerID:  playerID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	// A duplicate token at 256 bits of entropy means something is deeply
	// wrong; surface it rather than retrying
	if err := s.storage.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}

// generateToken produces a URL-safe token with tokenBytes bytes of entropy
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
