// Package auth manages user accounts and login sessions in Redis.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"vendorflow/pkg/logger"
	"vendorflow/pkg/validate"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session_id"

var (
	// ErrUserExists indicates the username is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession indicates an unknown or expired token.
	ErrInvalidSession = errors.New("invalid session")
)

// Credentials is a username and password pair.
type Credentials struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Store keeps bcrypt password hashes under user:<name> and session tokens
// under session:<token>.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a Store whose sessions live for ttl.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// TTL is the session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Register creates an account.
func (s *Store) Register(ctx context.Context, c Credentials) error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, userKey(c.Username), hash, 0).Result()
	if err != nil {
		return fmt.Errorf("storing user: %w", err)
	}
	if !ok {
		return ErrUserExists
	}
	return nil
}

// Login verifies the credentials and opens a session, returning its token.
func (s *Store) Login(ctx context.Context, c Credentials) (string, error) {
	hash, err := s.rdb.Get(ctx, userKey(c.Username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("loading user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(c.Password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKey(token), c.Username, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// Authenticate resolves a session token to its username.
func (s *Store) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	user, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && user == "") {
		return "", ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	return user, nil
}

// Logout ends a session.
func (s *Store) Logout(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}

func userKey(name string) string     { return "user:" + name }
func sessionKey(token string) string { return "session:" + token }

type userCtxKey struct{}

// User returns the authenticated username stored by Middleware.
func User(ctx context.Context) string {
	u, _ := ctx.Value(userCtxKey{}).(string)
	return u
}

// WithUser stores the username on ctx.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// Token extracts the session token from the Authorization header
// ("Token <t>" or "Bearer <t>") or the session cookie.
func Token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && (strings.EqualFold(scheme, "Token") || strings.EqualFold(scheme, "Bearer")) {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Middleware ensures a valid session exists. Unknown or expired tokens get
// a 401; session store failures are logged and get a 500.
func Middleware(s *Store, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := s.Authenticate(r.Context(), Token(r))
			switch {
			case errors.Is(err, ErrInvalidSession):
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			case err != nil:
				log.Error(r.Context(), "authenticate", "error", err)
				writeError(w, http.StatusInternalServerError, "session error")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
