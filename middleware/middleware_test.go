package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinebook/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signedToken(t *testing.T, phone string, isAdmin bool) string {
	t.Helper()
	claims := &Claims{
		Phone:   phone,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestAuthenticatePutsIdentityInContext(t *testing.T) {
	var gotPhone string
	var gotAdmin bool
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotPhone, _ = r.Context().Value(globals.UserPhoneKey).(string)
		gotAdmin, _ = r.Context().Value(globals.IsAdminKey).(bool)
	})

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, "0901234567", true))
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotPhone != "0901234567" {
		t.Errorf("phone = %q", gotPhone)
	}
	if !gotAdmin {
		t.Error("isAdmin not propagated")
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateRejectsBadScheme(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	called := false
	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	// non-admin token
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, "0901234567", false))
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if called {
		t.Fatal("handler ran for non-admin")
	}

	// admin token
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, "0900000000", true))
	w = httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusOK || !called {
		t.Fatalf("admin request: status = %d, called = %v", w.Code, called)
	}
}

func TestValidateJWTAcceptsRawToken(t *testing.T) {
	token := signedToken(t, "0901234567", false)

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("raw token rejected: %v", err)
	}
	if claims.Phone != "0901234567" {
		t.Errorf("phone = %q", claims.Phone)
	}
}

func TestValidateJWTStripsBearerScheme(t *testing.T) {
	token := signedToken(t, "0901234567", true)

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("prefixed token rejected: %v", err)
	}
	if !claims.IsAdmin {
		t.Error("admin claim lost")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	claims := &Claims{
		Phone: "0901234567",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatal(err)
	}

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
