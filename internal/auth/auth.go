// Package auth implements the login gate in front of the appointment list.
//
// The gate is a placeholder, not a security boundary: credentials come from
// configuration and the session marker lives in the same local store as the
// data it guards.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inovacc/consultas/internal/kv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// SessionKey is the storage key holding the session marker.
const SessionKey = "userToken"

// Defaults used when configuration does not override them.
const (
	DefaultUser       = "admin"
	DefaultPassword   = "password"
	DefaultSessionTTL = 12 * time.Hour

	// DefaultMaxFailures failed logins are allowed in a burst; after that one
	// more attempt is allowed every DefaultFailureCooldown.
	DefaultMaxFailures     = 5
	DefaultFailureCooldown = 30 * time.Second
)

var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrBadToken           = errors.New("invalid session token")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Options configures a Gate.
type Options struct {
	User string

	// PasswordHash is a bcrypt hash; empty means DefaultPassword
	PasswordHash string

	// Secret signs session tokens
	Secret string

	// TTL bounds a session; zero means DefaultSessionTTL
	TTL time.Duration

	// MaxFailures and FailureCooldown throttle failed logins; zero means
	// the defaults
	MaxFailures     int
	FailureCooldown time.Duration

	Now    func() time.Time
	Logger *slog.Logger
}

// Gate checks credentials and keeps the session marker.
type Gate struct {
	kv     kv.Store
	user   string
	hash   string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	// failures is drained by rejected logins
	failures *rate.Limiter
}

// Claims is the session token payload.
type Claims struct {
	jwt.RegisteredClaims
}

// NewGate returns a Gate persisting its session marker in adapter.
func NewGate(adapter kv.Store, opts Options) (*Gate, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is required")
	}

	g := &Gate{
		kv:     adapter,
		user:   opts.User,
		hash:   opts.PasswordHash,
		secret: []byte(opts.Secret),
		ttl:    opts.TTL,
		now:    opts.Now,
		logger: opts.Logger,
	}

	if g.user == "" {
		g.user = DefaultUser
	}

	if g.ttl <= 0 {
		g.ttl = DefaultSessionTTL
	}

	if g.now == nil {
		g.now = time.Now
	}

	burst, cooldown := opts.MaxFailures, opts.FailureCooldown
	if burst <= 0 {
		burst = DefaultMaxFailures
	}

	if cooldown <= 0 {
		cooldown = DefaultFailureCooldown
	}

	g.failures = rate.NewLimiter(rate.Every(cooldown), burst)

	if g.logger == nil {
		g.logger = slog.Default()
	}

	if g.hash == "" {
		hash, err := HashPassword(DefaultPassword)
		if err != nil {
			return nil, fmt.Errorf("hashing default password: %w", err)
		}

		g.hash = hash
	}

	return g, nil
}

// Login checks the credentials and, on success, stores a session token.
func (g *Gate) Login(ctx context.Context, user, password string) error {
	now := g.now()

	if g.failures.TokensAt(now) < 1 {
		g.logger.Warn("login throttled", "user", user)

		return ErrTooManyAttempts
	}

	if user != g.user || !CheckPassword(g.hash, password) {
		g.failures.AllowN(now, 1)
		g.logger.Info("login rejected", "user", user)

		return ErrInvalidCredentials
	}

	tok, err := g.makeToken(user)
	if err != nil {
		return err
	}

	if err := g.kv.Set(ctx, SessionKey, tok); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	g.logger.Info("login accepted", "user", user)

	return nil
}

// LoggedIn reports whether a valid, unexpired session is stored.
// Storage failures are returned; a missing or invalid token is not an error.
func (g *Gate) LoggedIn(ctx context.Context) (bool, error) {
	_, err := g.Session(ctx)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotLoggedIn):
		return false, nil
	default:
		return false, err
	}
}

// Session returns the claims of the stored session, or ErrNotLoggedIn.
func (g *Gate) Session(ctx context.Context) (*Claims, error) {
	raw, ok, err := g.kv.Get(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	if !ok || raw == "" {
		return nil, ErrNotLoggedIn
	}

	claims, err := g.parseToken(raw)
	if err != nil {
		g.logger.Debug("stored session rejected", "error", err)

		return nil, fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
	}

	return claims, nil
}

// Logout clears the session marker.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.kv.Set(ctx, SessionKey, ""); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

func (g *Gate) makeToken(user string) (string, error) {
	now := g.now()
	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(g.secret)
}

func (g *Gate) parseToken(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}

		return g.secret, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil {
		return nil, err
	}

	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.Subject != g.user {
		return nil, ErrBadToken
	}

	return c, nil
}
