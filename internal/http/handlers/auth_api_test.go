package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestLoginReturnsTokenAndOmitsPassword(t *testing.T) {
	app, _, _ := newAPIApp(t)

	resp := doJSON(t, app, "POST", "/api/staff/login", "", map[string]string{
		"email": "admin@electra.test", "password": "Passw0rd!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	body := string(raw)
	if !strings.Contains(body, `"token"`) {
		t.Fatalf("token missing from login response: %s", body)
	}
	if strings.Contains(body, "password") || strings.Contains(body, "$2") {
		t.Fatalf("credential material leaked in login response: %s", body)
	}
}

func TestLoginWrongPasswordIs401WithoutToken(t *testing.T) {
	app, _, _ := newAPIApp(t)

	resp := doJSON(t, app, "POST", "/api/staff/login", "", map[string]string{
		"email": "admin@electra.test", "password": "nope",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "token") {
		t.Fatalf("401 response must not carry a token: %s", raw)
	}
}

func TestProtectedRoutesRequireBearerToken(t *testing.T) {
	app, _, _ := newAPIApp(t)

	for _, path := range []string{"/api/orders", "/api/products", "/api/staff", "/api/analytics/summary"} {
		resp := doJSON(t, app, "GET", path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("GET %s without token: expected 401, got %d", path, resp.StatusCode)
		}
	}

	resp := doJSON(t, app, "GET", "/api/orders", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", resp.StatusCode)
	}
}

func TestStaffMutationRequiresAdminRole(t *testing.T) {
	app, _, _ := newAPIApp(t)

	staffTok := login(t, app, "priya@electra.test", "Passw0rd!")
	adminTok := login(t, app, "admin@electra.test", "Passw0rd!")

	newMember := map[string]string{
		"name": "Asha", "email": "asha@electra.test", "password": "s3cret!",
	}

	// Non-admin token is rejected by the role guard
	resp := doJSON(t, app, "POST", "/api/staff", staffTok, newMember)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("staff role creating staff: expected 403, got %d", resp.StatusCode)
	}

	// Admin succeeds
	resp = doJSON(t, app, "POST", "/api/staff", adminTok, newMember)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin creating staff: expected 201, got %d", resp.StatusCode)
	}

	// Duplicate email surfaces as 400
	resp = doJSON(t, app, "POST", "/api/staff", adminTok, newMember)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate email: expected 400, got %d", resp.StatusCode)
	}

	// Reads stay open to any authenticated staff
	resp = doJSON(t, app, "GET", "/api/staff", staffTok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("staff role listing staff: expected 200, got %d", resp.StatusCode)
	}
}

func TestAdminCannotDeleteOwnAccount(t *testing.T) {
	app, _, _ := newAPIApp(t)
	adminTok := login(t, app, "admin@electra.test", "Passw0rd!")

	// st-admin is the seeded id behind admin@electra.test
	resp := doJSON(t, app, "DELETE", "/api/staff/st-admin", adminTok, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("self delete: expected 403, got %d", resp.StatusCode)
	}

	// Deleting another member works
	resp = doJSON(t, app, "DELETE", "/api/staff/st-ravi", adminTok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete other staff: expected 200, got %d", resp.StatusCode)
	}
}
