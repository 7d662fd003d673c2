package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"andaman_market/internal/auth"
	"andaman_market/internal/domain"
)

func protected(t *testing.T, roles ...domain.Role) (http.Handler, *auth.Verifier) {
	t.Helper()
	v := auth.NewVerifier(testSecret, "andaman-market")
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	h := auth.RequireAuth(v)(auth.RequireRole(roles...)(inner))
	return h, v
}

func TestRequireAuth_MissingAndInvalidAreIdentical(t *testing.T) {
	h, _ := protected(t, domain.RoleVendor)

	missing := httptest.NewRecorder()
	h.ServeHTTP(missing, httptest.NewRequest("POST", "/x", nil))

	invalid := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/x", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	h.ServeHTTP(invalid, req)

	if missing.Code != http.StatusUnauthorized || invalid.Code != http.StatusUnauthorized {
		t.Fatalf("statuses: missing=%d invalid=%d", missing.Code, invalid.Code)
	}
	// bodies must be byte-identical so validity leaks nothing
	if missing.Body.String() != invalid.Body.String() {
		t.Fatalf("response bodies differ:\n%s\n%s", missing.Body.String(), invalid.Body.String())
	}
}

func TestRequireRole_WrongRoleIsForbidden(t *testing.T) {
	h, v := protected(t, domain.RoleVendor, domain.RoleAdmin)

	tok, err := v.Mint(domain.Identity{UserID: 5, Role: domain.RoleCustomer}, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestRequireRole_AllowedRolePasses(t *testing.T) {
	h, v := protected(t, domain.RoleVendor, domain.RoleAdmin)

	for _, role := range []domain.Role{domain.RoleVendor, domain.RoleAdmin} {
		tok, err := v.Mint(domain.Identity{UserID: 5, Role: role}, time.Hour)
		if err != nil {
			t.Fatalf("mint: %v", err)
		}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/x", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", role, rr.Code)
		}
	}
}

func TestIdentityOnContext(t *testing.T) {
	v := auth.NewVerifier(testSecret, "andaman-market")
	var got domain.Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.IdentityFrom(r.Context())
	})
	h := auth.RequireAuth(v)(inner)

	tok, _ := v.Mint(domain.Identity{UserID: 11, Role: domain.RoleVendor}, time.Hour)
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got.UserID != 11 || got.Role != domain.RoleVendor {
		t.Fatalf("unexpected identity on context: %+v", got)
	}
}
