package middleware

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rohits-web03/folio/internal/api/services"
	"github.com/rohits-web03/folio/internal/models"
	"gorm.io/datatypes"
)

type fakeSessions map[string]*models.Session

func (f fakeSessions) Get(_ context.Context, sid string) (*models.Session, error) {
	if sid == "broken" {
		return nil, errors.New("db down")
	}
	return f[sid], nil
}

type fakeUsers map[string]*models.User

func (f fakeUsers) GetUser(_ context.Context, id string) (*models.User, error) {
	return f[id], nil
}

func newTestAuth() *Auth {
	return &Auth{
		Tokens: services.NewTokenService("test-secret"),
		Sessions: fakeSessions{
			"admin-sid":  {SID: "admin-sid", Sess: datatypes.JSON(`{"userId":"admin"}`)},
			"viewer-sid": {SID: "viewer-sid", Sess: datatypes.JSON(`{"userId":"viewer"}`)},
		},
		Users: fakeUsers{
			"admin":  {ID: "admin", IsAdmin: true},
			"viewer": {ID: "viewer"},
		},
	}
}

func requestWithToken(t *testing.T, a *Auth, userID, sid string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if userID == "" {
		return req
	}
	token, err := a.Tokens.Issue(userID, sid, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	return req
}

func TestRequireAdmin(t *testing.T) {
	a := newTestAuth()
	var seen *models.User
	handler := a.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		userID string
		sid    string
		want   int
	}{
		{"no cookie", "", "", http.StatusUnauthorized},
		{"unknown session", "admin", "nope", http.StatusUnauthorized},
		{"session of another user", "admin", "viewer-sid", http.StatusUnauthorized},
		{"store failure", "admin", "broken", http.StatusInternalServerError},
		{"not admin", "viewer", "viewer-sid", http.StatusForbidden},
		{"admin", "admin", "admin-sid", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithToken(t, a, tt.userID, tt.sid))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusNoContent && (seen == nil || seen.ID != tt.userID) {
				t.Errorf("context user = %+v", seen)
			}
		})
	}
}

func TestAuthenticateAllowsPreflight(t *testing.T) {
	a := newTestAuth()
	called := false
	handler := a.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodOptions, "/", nil))
	if !called {
		t.Error("OPTIONS request was blocked")
	}
}

func TestClaimsIgnoresGarbage(t *testing.T) {
	a := newTestAuth()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "not-a-jwt"})
	if a.Claims(req) != nil {
		t.Error("garbage cookie produced claims")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	out := buf.String()
	if !strings.Contains(out, "GET /api/projects 418 5B") {
		t.Errorf("log output = %q", out)
	}
	if strings.Contains(out, "/health") {
		t.Error("health checks should not be logged")
	}
}
