package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/reserva-salas/internal/application"
)

type fakeSessionValidator struct {
	actor application.Actor
	err   error
}

func (f fakeSessionValidator) ValidateSession(ctx context.Context, token string) (application.Actor, error) {
	return f.actor, f.err
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	nextMustNotRun := func(t *testing.T) http.Handler {
		t.Helper()
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not be called when authentication fails")
		})
	}

	t.Run("rejects requests without credentials", func(t *testing.T) {
		t.Parallel()

		handler := RequireSession(fakeSessionValidator{}, nil)(nextMustNotRun(t))

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("rejects invalid sessions", func(t *testing.T) {
		t.Parallel()

		handler := RequireSession(fakeSessionValidator{err: application.ErrUnauthorized}, nil)(nextMustNotRun(t))

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("validator failures become 500", func(t *testing.T) {
		t.Parallel()

		handler := RequireSession(fakeSessionValidator{err: errors.New("storage offline")}, nil)(nextMustNotRun(t))

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "token"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", recorder.Code)
		}
	})

	t.Run("attaches the actor to the request context", func(t *testing.T) {
		t.Parallel()

		actor := application.Actor{ID: "user-1", Name: "Maria", Email: "maria@example.com"}
		var captured application.Actor

		handler := RequireSession(fakeSessionValidator{actor: actor}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := ActorFromContext(r.Context())
			if !ok {
				t.Fatal("expected actor in request context")
			}
			captured = got
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "valid-token"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		if captured != actor {
			t.Fatalf("unexpected actor: %+v", captured)
		}
	})

	t.Run("accepts the bearer header", func(t *testing.T) {
		t.Parallel()

		handler := RequireSession(fakeSessionValidator{actor: application.Actor{ID: "user-1"}}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
	})
}
