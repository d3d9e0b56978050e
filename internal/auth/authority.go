package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"items-backend/internal/database"
	"items-backend/internal/logging"
	"items-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

const (
	DefaultTokenTTL = 7 * 24 * time.Hour
	tokenIDLength   = 40
)

// SessionStore is the persistence the Authority needs. *database.Store
// satisfies it.
type SessionStore interface {
	CreateSession(ctx context.Context, arg database.CreateSessionParams) (*models.Session, error)
	GetSessionByTokenID(ctx context.Context, tokenID string) (*models.Session, error)
	DeleteSessionByTokenID(ctx context.Context, tokenID string) (bool, error)
	DeleteAllSessionsForUser(ctx context.Context, userID int64) (int64, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Identity is the result of a successful validation.
type Identity struct {
	User   *models.User
	Claims *AppClaims
}

func (i *Identity) UserID() int64 {
	return i.User.ID
}

func (i *Identity) TokenID() string {
	return i.Claims.TokenID()
}

// SessionMeta describes the client a session is issued to.
type SessionMeta struct {
	UserAgent string
	ClientIP  string
}

type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
	Session   *models.Session
}

// Authority issues bearer tokens and validates them against both their
// signature and a live session row. It keeps no session state in memory.
type Authority struct {
	store  SessionStore
	secret string
	ttl    time.Duration
	now    func() time.Time
	logger logging.Logger
}

type Option func(*Authority)

func WithClock(now func() time.Time) Option {
	return func(a *Authority) { a.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(a *Authority) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(a *Authority) { a.logger = logger }
}

func NewAuthority(store SessionStore, secret string, opts ...Option) (*Authority, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	a := &Authority{
		store:  store,
		secret: secret,
		ttl:    DefaultTokenTTL,
		now:    time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func newTokenID() (string, error) {
	generateID, err := nanoid.Standard(tokenIDLength)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}
	return generateID(), nil
}

// Issue signs a token for user and records its session. The token is only
// returned once the session row has been written.
func (a *Authority) Issue(ctx context.Context, user *models.User, meta SessionMeta) (*IssuedToken, error) {
	tokenID, err := newTokenID()
	if err != nil {
		return nil, err
	}

	issuedAt := a.now()
	expiresAt := issuedAt.Add(a.ttl)

	token, err := GenerateJWT(user, tokenID, a.secret, issuedAt, a.ttl)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	session, err := a.store.CreateSession(ctx, database.CreateSessionParams{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenID:   tokenID,
		UserAgent: meta.UserAgent,
		ClientIP:  meta.ClientIP,
		ExpiresAt: expiresAt,
		CreatedAt: issuedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	sessionsIssued.Inc()
	a.logger.Debug(ctx, "session issued", "user_id", user.ID, "session_id", session.ID)

	return &IssuedToken{
		Token:     token,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
		Session:   session,
	}, nil
}

// ParseBearer extracts the token from an Authorization header value.
func ParseBearer(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrNoToken
	}
	return parts[1], nil
}

// ValidateHeader runs Validate on the token carried by an Authorization
// header value.
func (a *Authority) ValidateHeader(ctx context.Context, header string) (*Identity, error) {
	token, err := ParseBearer(header)
	if err != nil {
		return nil, err
	}
	return a.Validate(ctx, token)
}

// Validate checks, in order: token presence, signature and embedded expiry,
// the backing session row, and the user. Each step fails with its own
// *Error kind. Store failures are returned as they are.
func (a *Authority) Validate(ctx context.Context, token string) (*Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoToken
	}

	claims, err := VerifyJWT(token, a.secret, jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, newError(InvalidToken, err)
	}

	session, err := a.store.GetSessionByTokenID(ctx, claims.TokenID())
	if err != nil {
		return nil, fmt.Errorf("looking up session: %w", err)
	}
	if session == nil || session.Expired(a.now()) {
		return nil, ErrSessionExpired
	}
	if session.UserID != claims.UserID {
		return nil, newError(InvalidToken, errors.New("token and session belong to different users"))
	}

	user, err := a.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &Identity{User: user, Claims: claims}, nil
}

// OptionalValidate never fails: any problem with the header yields a nil
// identity.
func (a *Authority) OptionalValidate(ctx context.Context, header string) *Identity {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	identity, err := a.ValidateHeader(ctx, header)
	if err != nil {
		var authErr *Error
		if !errors.As(err, &authErr) {
			a.logger.Warn(ctx, "optional authentication failed", "error", err)
		}
		return nil
	}
	return identity
}

// Revoke deletes the session behind tokenID. Revoking a session that no
// longer exists succeeds.
func (a *Authority) Revoke(ctx context.Context, tokenID string) error {
	removed, err := a.store.DeleteSessionByTokenID(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	if removed {
		sessionsRevoked.Inc()
	}
	return nil
}

// RevokeAllForUser deletes every session of userID and reports how many
// were removed.
func (a *Authority) RevokeAllForUser(ctx context.Context, userID int64) (int64, error) {
	removed, err := a.store.DeleteAllSessionsForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoking sessions of user %d: %w", userID, err)
	}
	sessionsRevoked.Add(float64(removed))
	a.logger.Debug(ctx, "all sessions revoked", "user_id", userID, "count", removed)
	return removed, nil
}

// Refresh revokes the old session before issuing a new one, so the two never
// coexist. If issuing fails afterwards the user is logged out and must sign in
// again; there is no rollback.
func (a *Authority) Refresh(ctx context.Context, oldTokenID string, user *models.User, meta SessionMeta) (*IssuedToken, error) {
	if err := a.Revoke(ctx, oldTokenID); err != nil {
		return nil, err
	}

	issued, err := a.Issue(ctx, user, meta)
	if err != nil {
		a.logger.Warn(ctx, "refresh revoked old session but could not issue a new one",
			"user_id", user.ID, "error", err)
		return nil, err
	}
	return issued, nil
}

// Sweep removes every session whose expiry has passed.
func (a *Authority) Sweep(ctx context.Context) (int64, error) {
	removed, err := a.store.DeleteExpiredSessions(ctx, a.now())
	if err != nil {
		return 0, fmt.Errorf("sweeping sessions: %w", err)
	}
	sessionsSwept.Add(float64(removed))
	return removed, nil
}
