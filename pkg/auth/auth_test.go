package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorflow/pkg/logger"
	"vendorflow/pkg/validate"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb, time.Hour), mr
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	creds := Credentials{Username: "alice", Password: "correct horse"}

	require.NoError(t, s.Register(ctx, creds))
	assert.ErrorIs(t, s.Register(ctx, creds), ErrUserExists)

	token, err := s.Login(ctx, creds)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := s.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user)

	require.NoError(t, s.Logout(ctx, token))
	_, err = s.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Register(ctx, Credentials{Username: "alice", Password: "correct horse"}))

	_, err := s.Login(ctx, Credentials{Username: "alice", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, Credentials{Username: "bob", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidates(t *testing.T) {
	s, _ := newStore(t)
	err := s.Register(context.Background(), Credentials{Username: "alice", Password: "short"})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "min", verr.Fields["password"])
}

func TestSessionExpires(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()
	creds := Credentials{Username: "alice", Password: "correct horse"}
	require.NoError(t, s.Register(ctx, creds))
	token, err := s.Login(ctx, creds)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)
	_, err = s.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestToken(t *testing.T) {
	cases := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{"token header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }, "abc"},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer xyz") }, "xyz"},
		{"unknown scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic xyz") }, ""},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "c1"}) }, "c1"},
		{"none", func(r *http.Request) {}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(r)
			assert.Equal(t, tc.want, Token(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()
	creds := Credentials{Username: "alice", Password: "correct horse"}
	require.NoError(t, s.Register(ctx, creds))
	token, err := s.Login(ctx, creds)
	require.NoError(t, err)

	h := Middleware(s, logger.New(io.Discard, logger.LevelError, "test", nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(User(r.Context())))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+token)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice", rr.Body.String())

	mr.Close()
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"session error"}`, rr.Body.String())
}
