package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/reserva-salas/internal/persistence"
)

type userRepoStub struct {
	users  map[string]User
	hashes map[string]string
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[string]User{}, hashes: map[string]string{}}
}

func (r *userRepoStub) CreateUser(ctx context.Context, user User, passwordHash string) error {
	if _, taken := r.hashes[user.Email]; taken {
		return persistence.ErrDuplicate
	}
	r.users[user.ID] = user
	r.hashes[user.Email] = passwordHash
	return nil
}

func (r *userRepoStub) GetUser(ctx context.Context, id string) (User, error) {
	user, ok := r.users[id]
	if !ok {
		return User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (r *userRepoStub) GetUserByEmail(ctx context.Context, email string) (User, string, error) {
	hash, ok := r.hashes[email]
	if !ok {
		return User{}, "", persistence.ErrNotFound
	}
	for _, user := range r.users {
		if user.Email == email {
			return user, hash, nil
		}
	}
	return User{}, "", persistence.ErrNotFound
}

type sessionRepoStub struct {
	sessions map[string]Session
}

func newSessionRepoStub() *sessionRepoStub {
	return &sessionRepoStub{sessions: map[string]Session{}}
}

func (r *sessionRepoStub) CreateSession(ctx context.Context, session Session) error {
	r.sessions[session.Token] = session
	return nil
}

func (r *sessionRepoStub) GetSession(ctx context.Context, token string) (Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (r *sessionRepoStub) RevokeSession(ctx context.Context, token string, revokedAt time.Time) error {
	session, ok := r.sessions[token]
	if !ok || session.RevokedAt != nil {
		return persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	r.sessions[token] = session
	return nil
}

func (r *sessionRepoStub) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	for token, session := range r.sessions {
		if !reference.Before(session.ExpiresAt) {
			delete(r.sessions, token)
		}
	}
	return nil
}

func newAuthFixture(users *userRepoStub, sessions *sessionRepoStub) *AuthService {
	svc := NewAuthService(users, sessions,
		func() string { return "id-1" },
		func() string { return "token-1" },
		fixedNow, time.Hour)
	// Argon2id is deliberately slow; tests swap in a transparent pair.
	svc.hashPassword = func(password string) (string, error) { return "hash:" + password, nil }
	svc.verifyPassword = func(hash, password string) error {
		if hash != "hash:"+password {
			return ErrInvalidCredentials
		}
		return nil
	}
	return svc
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account with normalized email", func(t *testing.T) {
		users := newUserRepoStub()
		svc := newAuthFixture(users, newSessionRepoStub())

		user, err := svc.Register(ctx, RegisterParams{
			Name:     "  Maria  ",
			Email:    " Maria@Example.com ",
			Password: "segredo",
		})
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		if user.Name != "Maria" || user.Email != "maria@example.com" {
			t.Fatalf("unexpected user: %+v", user)
		}
		if users.hashes["maria@example.com"] != "hash:segredo" {
			t.Fatal("password hash not stored")
		}
	})

	t.Run("validates name, email, and password length", func(t *testing.T) {
		svc := newAuthFixture(newUserRepoStub(), newSessionRepoStub())

		_, err := svc.Register(ctx, RegisterParams{Name: " ", Email: "not-an-email", Password: "abc"})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "email", "password"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s field error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("taken email maps to ErrAlreadyExists", func(t *testing.T) {
		users := newUserRepoStub()
		svc := newAuthFixture(users, newSessionRepoStub())

		params := RegisterParams{Name: "Maria", Email: "maria@example.com", Password: "segredo"}
		if _, err := svc.Register(ctx, params); err != nil {
			t.Fatalf("first Register returned error: %v", err)
		}
		if _, err := svc.Register(ctx, params); !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc *AuthService) User {
		t.Helper()
		user, err := svc.Register(ctx, RegisterParams{Name: "Maria", Email: "maria@example.com", Password: "segredo"})
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		return user
	}

	t.Run("issues a session on valid credentials", func(t *testing.T) {
		sessions := newSessionRepoStub()
		svc := newAuthFixture(newUserRepoStub(), sessions)
		user := register(t, svc)

		result, err := svc.Authenticate(ctx, AuthenticateParams{Email: "MARIA@example.com", Password: "segredo"})
		if err != nil {
			t.Fatalf("Authenticate returned error: %v", err)
		}
		if result.User.ID != user.ID {
			t.Fatalf("unexpected user: %+v", result.User)
		}
		if result.Session.Token == "" || !result.Session.ExpiresAt.Equal(fixedNow().Add(time.Hour)) {
			t.Fatalf("unexpected session: %+v", result.Session)
		}
		if _, ok := sessions.sessions[result.Session.Token]; !ok {
			t.Fatal("session not persisted")
		}
	})

	t.Run("unknown email and wrong password both map to ErrInvalidCredentials", func(t *testing.T) {
		svc := newAuthFixture(newUserRepoStub(), newSessionRepoStub())
		register(t, svc)

		if _, err := svc.Authenticate(ctx, AuthenticateParams{Email: "other@example.com", Password: "segredo"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
		}
		if _, err := svc.Authenticate(ctx, AuthenticateParams{Email: "maria@example.com", Password: "errada"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
		}
	})

	t.Run("prunes expired sessions on login", func(t *testing.T) {
		sessions := newSessionRepoStub()
		sessions.sessions["stale"] = Session{Token: "stale", ExpiresAt: fixedNow().Add(-time.Minute)}
		svc := newAuthFixture(newUserRepoStub(), sessions)
		register(t, svc)

		if _, err := svc.Authenticate(ctx, AuthenticateParams{Email: "maria@example.com", Password: "segredo"}); err != nil {
			t.Fatalf("Authenticate returned error: %v", err)
		}
		if _, ok := sessions.sessions["stale"]; ok {
			t.Fatal("expired session not pruned")
		}
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*AuthService, *sessionRepoStub, Session) {
		t.Helper()
		sessions := newSessionRepoStub()
		svc := newAuthFixture(newUserRepoStub(), sessions)
		if _, err := svc.Register(ctx, RegisterParams{Name: "Maria", Email: "maria@example.com", Password: "segredo"}); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		result, err := svc.Authenticate(ctx, AuthenticateParams{Email: "maria@example.com", Password: "segredo"})
		if err != nil {
			t.Fatalf("Authenticate returned error: %v", err)
		}
		return svc, sessions, result.Session
	}

	t.Run("resolves the acting user", func(t *testing.T) {
		svc, _, session := setup(t)

		actor, err := svc.ValidateSession(ctx, session.Token)
		if err != nil {
			t.Fatalf("ValidateSession returned error: %v", err)
		}
		if actor.Name != "Maria" || actor.Email != "maria@example.com" {
			t.Fatalf("unexpected actor: %+v", actor)
		}
	})

	t.Run("unknown and empty tokens are unauthorized", func(t *testing.T) {
		svc, _, _ := setup(t)

		if _, err := svc.ValidateSession(ctx, "missing"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if _, err := svc.ValidateSession(ctx, "  "); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("expired session is unauthorized", func(t *testing.T) {
		svc, sessions, session := setup(t)

		stored := sessions.sessions[session.Token]
		stored.ExpiresAt = fixedNow()
		sessions.sessions[session.Token] = stored

		if _, err := svc.ValidateSession(ctx, session.Token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("revoked session is unauthorized", func(t *testing.T) {
		svc, _, session := setup(t)

		if err := svc.RevokeSession(ctx, session.Token); err != nil {
			t.Fatalf("RevokeSession returned error: %v", err)
		}
		if _, err := svc.ValidateSession(ctx, session.Token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestAuthService_RevokeSession(t *testing.T) {
	ctx := context.Background()

	t.Run("revoking an unknown token is a no-op", func(t *testing.T) {
		svc := newAuthFixture(newUserRepoStub(), newSessionRepoStub())
		if err := svc.RevokeSession(ctx, "missing"); err != nil {
			t.Fatalf("expected idempotent revoke, got %v", err)
		}
	})

	t.Run("revoking twice stays idempotent", func(t *testing.T) {
		sessions := newSessionRepoStub()
		sessions.sessions["token-1"] = Session{Token: "token-1", ExpiresAt: fixedNow().Add(time.Hour)}
		svc := newAuthFixture(newUserRepoStub(), sessions)

		if err := svc.RevokeSession(ctx, "token-1"); err != nil {
			t.Fatalf("first revoke returned error: %v", err)
		}
		if err := svc.RevokeSession(ctx, "token-1"); err != nil {
			t.Fatalf("second revoke returned error: %v", err)
		}
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	params := Argon2idParams{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

	hash, err := CreatePasswordHash("segredo", params)
	if err != nil {
		t.Fatalf("CreatePasswordHash returned error: %v", err)
	}
	if err := VerifyPassword(hash, "segredo"); err != nil {
		t.Fatalf("VerifyPassword rejected the original password: %v", err)
	}
	if err := VerifyPassword(hash, "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
