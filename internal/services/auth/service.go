package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/dependencies/clock"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/dependencies/random"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/storage"
)

const (
	playerIDLength   = 20
	playerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session is the result of a successful registration or login
type Session struct {
	Token     string
	PlayerID  model.PlayerID
	Player    model.Player
	ExpiresAt time.Time
}

// Service handles registration, login, and bearer token verification.
// The same signing secret backs both the REST middleware and the
// playground websocket handshake, so one token works for both.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	secret   []byte
	tokenTTL time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	// Secret is the HMAC signing secret for issued tokens
	Secret string
	// TokenTTL bounds how long an issued token is accepted
	TokenTTL time.Duration
}

// DefaultConfig returns default auth configuration.
// The default secret is only suitable for local development.
func DefaultConfig() Config {
	return Config{
		Secret:   "keepmemories-dev-secret",
		TokenTTL: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	if cfg.Secret == "" {
		cfg.Secret = DefaultConfig().Secret
	}
	return &Service{
		storage:  storage,
		clock:    clock,
		random:   rnd,
		logger:   logger.With(slog.String("component", "auth")),
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
	}
}

// Register creates a player account and returns a session for it
func (s *Service) Register(ctx context.Context, username, password, displayName string, gender model.Gender) (*Session, error) {
	// Check if username exists
	_, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	playerID := model.PlayerID(s.generateID("p_"))
	now := s.clock.Now()

	if gender == "" {
		gender = model.GenderUnspecified
	}

	player := &model.Player{
		ID:          playerID,
		DisplayName: displayName,
		Gender:      gender,
		CreatedAt:   now,
	}

	registeredPlayer := &model.RegisteredPlayer{
		PlayerID:     playerID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err := s.storage.SaveRegisteredPlayer(ctx, registeredPlayer); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(playerID)),
		slog.String("username", username))

	return s.issueSession(player)
}

// Login authenticates a registered player and returns a fresh session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	rp, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rp.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	player, err := s.storage.GetPlayer(ctx, rp.PlayerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("player logged in", slog.String("player_id", string(player.ID)))

	return s.issueSession(player)
}

// VerifyToken validates a bearer token and returns the player it was issued to
func (s *Service) VerifyToken(ctx context.Context, token string) (*model.Player, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	player, err := s.storage.GetPlayer(ctx, model.PlayerID(claims.Subject))
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return player, nil
}

// UpdateProfile changes a player's display name and gender
func (s *Service) UpdateProfile(ctx context.Context, playerID model.PlayerID, displayName string, gender model.Gender) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	updated := *player
	if displayName != "" {
		updated.DisplayName = displayName
	}
	if gender != "" {
		updated.Gender = gender
	}

	if err := s.storage.SavePlayer(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// issueSession signs a token for a player
func (s *Service) issueSession(player *model.Player) (*Session, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   string(player.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		PlayerID:  player.ID,
		Player:    *player,
		ExpiresAt: expiresAt,
	}, nil
}

// generateID generates a random ID with a prefix
func (s *Service) generateID(prefix string) string {
	return prefix + s.random.String(playerIDLength, playerIDAlphabet)
}
