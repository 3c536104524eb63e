package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openmenuboard/menuboard/internal/auth"
)

func newService(t *testing.T, opts ...auth.Option) *auth.Service {
	t.Helper()
	return auth.NewService(auth.Config{
		Username: "admin",
		Password: "admin123",
		Secret:   []byte("test-secret"),
	}, opts...)
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	svc := newService(t)

	token, expires, appErr := svc.Login("admin", "admin123")
	if appErr != nil {
		t.Fatalf("Login: %v", appErr)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if d := time.Until(expires); d < 23*time.Hour || d > 25*time.Hour {
		t.Errorf("expiry %v from now, want ~24h", d)
	}

	id, appErr := svc.Verify(token)
	if appErr != nil {
		t.Fatalf("Verify: %v", appErr)
	}
	if id.Username != "admin" {
		t.Errorf("username = %q, want admin", id.Username)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newService(t)

	cases := []struct{ user, pass string }{
		{"admin", "wrong"},
		{"nobody", "admin123"},
		{"", ""},
	}
	for _, c := range cases {
		if _, _, appErr := svc.Login(c.user, c.pass); appErr == nil || appErr.Status != 401 {
			t.Errorf("Login(%q, %q): appErr = %v, want 401", c.user, c.pass, appErr)
		}
	}
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	svc := auth.NewService(auth.Config{
		Username:     "admin",
		PasswordHash: string(hash),
		Secret:       []byte("test-secret"),
	})

	if _, _, appErr := svc.Login("admin", "s3cret"); appErr != nil {
		t.Fatalf("Login with correct password: %v", appErr)
	}
	if _, _, appErr := svc.Login("admin", "wrong"); appErr == nil {
		t.Error("Login with wrong password succeeded")
	}
}

func TestVerifyRejectsGarbageAndForeignTokens(t *testing.T) {
	svc := newService(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, appErr := svc.Verify(token); appErr == nil || appErr.Status != 403 {
			t.Errorf("Verify(%q): appErr = %v, want 403", token, appErr)
		}
	}

	// Token signed with a different secret must fail closed.
	other := auth.NewService(auth.Config{
		Username: "admin", Password: "admin123", Secret: []byte("other-secret"),
	})
	token, _, appErr := other.Login("admin", "admin123")
	if appErr != nil {
		t.Fatalf("Login: %v", appErr)
	}
	if _, appErr := svc.Verify(token); appErr == nil {
		t.Error("Verify accepted a token signed with another secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issued := time.Now()
	clock := issued
	svc := newService(t, auth.WithClock(func() time.Time { return clock }))

	token, _, appErr := svc.Login("admin", "admin123")
	if appErr != nil {
		t.Fatalf("Login: %v", appErr)
	}
	if _, appErr := svc.Verify(token); appErr != nil {
		t.Fatalf("Verify fresh token: %v", appErr)
	}

	clock = issued.Add(25 * time.Hour)
	if _, appErr := svc.Verify(token); appErr == nil || appErr.Status != 403 {
		t.Errorf("Verify expired token: appErr = %v, want 403", appErr)
	}
}

func TestLoginRateLimit(t *testing.T) {
	svc := newService(t)

	limited := false
	for i := 0; i < 20; i++ {
		if _, _, appErr := svc.Login("admin", "wrong"); appErr != nil && appErr.Status == 429 {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("20 rapid bad logins never hit the rate limit")
	}
}

func TestMiddleware(t *testing.T) {
	svc := newService(t)
	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Missing token.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/menu/all", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	// Garbage token.
	req := httptest.NewRequest("GET", "/menu/all", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("bad token: status = %d, want 403", rec.Code)
	}

	// Valid token.
	token, _, appErr := svc.Login("admin", "admin123")
	if appErr != nil {
		t.Fatalf("Login: %v", appErr)
	}
	req = httptest.NewRequest("GET", "/menu/all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}
}
