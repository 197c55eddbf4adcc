package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greennest/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signedToken(t *testing.T, userID string, roles []string) string {
	t.Helper()
	claims := &Claims{
		Username: "tester",
		UserID:   userID,
		Role:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestAuthenticate(t *testing.T) {
	var gotUserID string
	var gotRoles []string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRoles, _ = r.Context().Value(globals.RoleKey).([]string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/my-orders", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/my-orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/my-orders", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u123", []string{"user"}))
	rec = httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", rec.Code)
	}
	if gotUserID != "u123" {
		t.Errorf("expected userID u123 in context, got %q", gotUserID)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "user" {
		t.Errorf("expected roles [user] in context, got %v", gotRoles)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	claims := &Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Error("handler must not run with an expired token")
	})
	req := httptest.NewRequest(http.MethodGet, "/api/orders/my-orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expired token: expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/plants", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u123", []string{"user"}))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin: expected 403, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/plants", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "admin1", []string{"user", "admin"}))
	rec = httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", rec.Code)
	}

	// missing token is an authentication failure, not authorization
	req = httptest.NewRequest(http.MethodPost, "/api/plants", nil)
	rec = httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}
}

func TestValidateJWT(t *testing.T) {
	token := signedToken(t, "u123", []string{"user"})
	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "u123" || claims.Username != "tester" {
		t.Errorf("bad claims: %+v", claims)
	}

	if _, err := ValidateJWT(""); err == nil {
		t.Error("empty header must fail")
	}
	if _, err := ValidateJWT("Bearer garbage"); err == nil {
		t.Error("garbage token must fail")
	}
}

func TestClaimsIsAdmin(t *testing.T) {
	if (&Claims{Role: []string{"user"}}).IsAdmin() {
		t.Error("user role is not admin")
	}
	if !(&Claims{Role: []string{"user", "admin"}}).IsAdmin() {
		t.Error("admin role should be recognized")
	}
	if (&Claims{}).IsAdmin() {
		t.Error("no roles is not admin")
	}
}
