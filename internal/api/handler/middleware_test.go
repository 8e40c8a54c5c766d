package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"spigot/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type stubVerifier struct {
	user *models.UserFromAuth
	err  error
}

func (s *stubVerifier) Validate(token string) (*models.UserFromAuth, error) {
	return s.user, s.err
}

func runAuthn(t *testing.T, verifier *stubVerifier, authorization string) (*httptest.ResponseRecorder, bool, *models.UserFromAuth) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	var resolved *models.UserFromAuth
	next := func(c echo.Context) error {
		nextCalled = true
		if user, ok := c.Request().Context().Value(ctxKeyAuthUser).(*models.UserFromAuth); ok {
			resolved = user
		}
		return c.NoContent(http.StatusOK)
	}

	if err := Authn(verifier)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}

	return rec, nextCalled, resolved
}

func TestAuthnNoHeaderPassesThrough(t *testing.T) {
	_, nextCalled, resolved := runAuthn(t, &stubVerifier{}, "")
	if !nextCalled {
		t.Fatal("expected next to be called without a header")
	}
	if resolved != nil {
		t.Fatal("expected no user in context")
	}
}

func TestAuthnValidTokenSetsUser(t *testing.T) {
	verifier := &stubVerifier{user: &models.UserFromAuth{ID: "user-1"}}
	_, nextCalled, resolved := runAuthn(t, verifier, "Bearer good-token")
	if !nextCalled {
		t.Fatal("expected next to be called")
	}
	if resolved == nil || resolved.ID != "user-1" {
		t.Fatalf("expected user-1 in context, got %+v", resolved)
	}
}

func TestAuthnInvalidTokenAborts(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("bad signature")}
	rec, nextCalled, _ := runAuthn(t, verifier, "Bearer bad-token")
	if nextCalled {
		t.Fatal("expected next not to be called for an invalid token")
	}
	if rec.Code < 400 {
		t.Fatalf("expected error status, got %d", rec.Code)
	}
}

func TestResolveValidUserMissingSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if _, err := ResolveValidUser(c.Request().Context(), do.New()); err == nil {
		t.Fatal("expected error when no session is present")
	}
}
