package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/http/handlers"
	"github.com/condogate/condogate/internal/repository"
	"github.com/condogate/condogate/internal/repository/memory"
	"github.com/condogate/condogate/internal/service"
	"github.com/condogate/condogate/pkg/auth"
)

const testSecret = "test-secret-key"

// ---------- Mocks ----------

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(context.Context, string) (bool, error) { return true, nil }

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) (bool, error) { return false, nil }

// ---------- Test Setup ----------

type fixture struct {
	server     *httptest.Server
	userSvc    service.UserService
	visitorSvc service.VisitorService
}

func setupTestServer(t *testing.T, limiter repository.LoginRateLimiter) *fixture {
	t.Helper()

	users := memory.NewUserRepository()
	residents := memory.NewResidentRepository()
	visitors := memory.NewVisitorRepository(users, residents)

	domainSvc := domain.NewUserDomainService(users)
	tokens := service.NewJWTTokenIssuer(testSecret, time.Hour)
	userSvc := service.NewUserService(users, domainSvc, nil)
	authSvc := service.NewAuthService(users, tokens)
	residentSvc := service.NewResidentService(residents, users, nil)
	visitorSvc := service.NewVisitorService(visitors, residents, nil)

	h := handlers.New(userSvc, authSvc, residentSvc, visitorSvc, limiter, testSecret)

	r := chi.NewRouter()
	r.With(h.LoginRateLimit()).Post("/auth/login", h.Login)
	r.Post("/users", h.CreateUser)
	r.Group(func(r chi.Router) {
		r.Use(h.RequireJWT())
		r.Get("/users", h.GetUsers)
		r.Get("/users/{id}", h.GetUser)
		r.Patch("/users/{id}", h.UpdateUser)
		r.Delete("/users/{id}", h.DeleteUser)
		r.Post("/residents", h.CreateResident)
		r.Get("/residents/{id}", h.GetResident)
		r.Post("/visitors", h.CreateVisitor)
		r.Get("/visitors", h.GetVisitors)
		r.Get("/visitors/{id}", h.GetVisitor)
		r.Patch("/visitors/{id}", h.UpdateVisitor)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &fixture{server: server, userSvc: userSvc, visitorSvc: visitorSvc}
}

func (f *fixture) register(t *testing.T, name, email string) domain.UserResponse {
	t.Helper()

	body := map[string]string{"name": name, "email": email, "password": "secret-1"}
	resp := doJSON(t, http.MethodPost, f.server.URL+"/users", "", body, http.StatusCreated)

	var user domain.UserResponse
	decode(t, resp, &user)
	return user
}

func (f *fixture) login(t *testing.T, email string) string {
	t.Helper()

	body := map[string]string{"email": email, "password": "secret-1"}
	resp := doJSON(t, http.MethodPost, f.server.URL+"/auth/login", "", body, http.StatusOK)

	var result domain.LoginResponse
	decode(t, resp, &result)
	if result.Token == "" {
		t.Fatal("Expected token in login response")
	}
	return result.Token
}

// ---------- Tests ----------

func TestCreateUserAndLogin(t *testing.T) {
	f := setupTestServer(t, allowAllLimiter{})

	user := f.register(t, "Maria Silva", "maria@example.com")
	if user.ID == "" || user.Email != "maria@example.com" {
		t.Fatalf("Unexpected user response: %+v", user)
	}

	token := f.login(t, "maria@example.com")

	claims, err := auth.Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Failed to parse JWT: %v", err)
	}
	if claims.Sub != user.ID || claims.Email != "maria@example.com" {
		t.Fatalf("Invalid claims: sub=%s email=%s", claims.Sub, claims.Email)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := setupTestServer(t, allowAllLimiter{})
	f.register(t, "Maria Silva", "maria@example.com")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"unknown email", map[string]string{"email": "ghost@example.com", "password": "secret-1"}},
		{"wrong password", map[string]string{"email": "maria@example.com", "password": "wrong"}},
		{"malformed email", map[string]string{"email": "nope", "password": "secret-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, f.server.URL+"/auth/login", "", tt.body, http.StatusUnauthorized)
			resp.Body.Close()
		})
	}
}

func TestLoginRateLimited(t *testing.T) {
	f := setupTestServer(t, denyLimiter{})

	body := map[string]string{"email": "maria@example.com", "password": "secret-1"}
	resp := doJSON(t, http.MethodPost, f.server.URL+"/auth/login", "", body, http.StatusTooManyRequests)
	resp.Body.Close()
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := setupTestServer(t, allowAllLimiter{})

	req, _ := http.NewRequest(http.MethodGet, f.server.URL+"/users", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /users failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", resp.StatusCode)
	}

	req.Header.Set("Authorization", "Bearer not-a-token")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /users failed: %v", err)
	}
	defer resp2.Body.Close()

	if resp2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Expected 401 with bad token, got %d", resp2.StatusCode)
	}
}

func TestDuplicateEmailConflict(t *testing.T) {
	f := setupTestServer(t, allowAllLimiter{})
	f.register(t, "Maria Silva", "maria@example.com")

	body := map[string]string{"name": "Other Person", "email": "maria@example.com", "password": "secret-2"}
	resp := doJSON(t, http.MethodPost, f.server.URL+"/users", "", body, http.StatusConflict)
	resp.Body.Close()
}

func TestGetUsersPagination(t *testing.T) {
	f := setupTestServer(t, allowAllLimiter{})
	f.register(t, "Maria Silva", "maria@example.com")
	token := f.login(t, "maria@example.com")

	resp := doJSON(t, http.MethodGet, f.server.URL+"/users?page=1&limit=10", token, nil, http.StatusOK)

	var page domain.PaginatedUsers
	decode(t, resp, &page)
	if page.Total != 1 || len(page.Users) != 1 {
		t.Fatalf("Unexpected page: %+v", page)
	}

	// Out-of-range values are rejected, not clamped.
	resp = doJSON(t, http.MethodGet, f.server.URL+"/users?page=0&limit=10", token, nil, http.StatusBadRequest)
	resp.Body.Close()
	resp = doJSON(t, http.MethodGet, f.server.URL+"/users?page=1&limit=101", token, nil, http.StatusBadRequest)
	resp.Body.Close()
}

func TestUserLifecycle(t *testing.T) {
	f := setupTestServer(t, allowAllLimiter{})
	user := f.register(t, "Maria Silva", "maria@example.com")
	token := f.login(t, "maria@example.com")

	// Update
	body := map[string]string{"name": "Maria Souza"}
	resp := doJSON(t, http.MethodPatch, f.server.URL+"/users/"+user.ID, token, body, http.StatusOK)
	var updated domain.UserResponse
	decode(t, resp, &updated)
	if updated.Name != "Maria Souza" {
		t.Fatalf("Expected updated name, got %q", updated.Name)
	}

	// Delete, then the user is gone.
	resp = doJSON(t, http.MethodDelete, f.server.URL+"/users/"+user.ID, token, nil, http.StatusNoContent)
	resp.Body.Close()
	resp = doJSON(t, http.MethodGet, f.server.URL+"/users/"+user.ID, token, nil, http.StatusNotFound)
	resp.Body.Close()
}

func TestVisitorFlow(t *testing.T) {
	f := setupTestServer(t, allowAllLimiter{})
	user := f.register(t, "Maria Silva", "maria@example.com")
	token := f.login(t, "maria@example.com")

	// Create the resident first.
	resp := doJSON(t, http.MethodPost, f.server.URL+"/residents", token,
		map[string]string{"user_id": user.ID, "unit_id": "A-101"}, http.StatusCreated)
	var resident domain.ResidentResponse
	decode(t, resp, &resident)

	// Register a visitor with a pass.
	createBody := map[string]any{
		"resident_id":   resident.ID,
		"name":          "Ana Costa",
		"document":      "123.456.789-00",
		"vehicle_plate": "ABC-1234",
		"time_limit":    "23:59",
		"days_valid":    7,
	}
	resp = doJSON(t, http.MethodPost, f.server.URL+"/visitors", token, createBody, http.StatusCreated)
	var visitor domain.VisitorResponse
	decode(t, resp, &visitor)
	if visitor.ID == "" || visitor.ExpiresAt.IsZero() {
		t.Fatalf("Unexpected visitor response: %+v", visitor)
	}

	// Listed with the resident context resolved.
	resp = doJSON(t, http.MethodGet, f.server.URL+"/visitors", token, nil, http.StatusOK)
	var listed []domain.VisitorResponse
	decode(t, resp, &listed)
	if len(listed) != 1 || listed[0].ResidentUnitID != "A-101" || listed[0].ResidentName != "Maria Silva" {
		t.Fatalf("Unexpected listing: %+v", listed)
	}

	// Rename.
	resp = doJSON(t, http.MethodPatch, f.server.URL+"/visitors/"+visitor.ID, token,
		map[string]string{"name": "Ana Maria Costa"}, http.StatusOK)
	var renamed domain.VisitorResponse
	decode(t, resp, &renamed)
	if renamed.Name != "Ana Maria Costa" {
		t.Fatalf("Expected renamed visitor, got %q", renamed.Name)
	}

	// Unknown visitor is a 404.
	resp = doJSON(t, http.MethodGet, f.server.URL+"/visitors/unknown", token, nil, http.StatusNotFound)
	resp.Body.Close()
}

func TestCreateVisitorValidation(t *testing.T) {
	f := setupTestServer(t, allowAllLimiter{})
	f.register(t, "Maria Silva", "maria@example.com")
	token := f.login(t, "maria@example.com")

	body := map[string]any{
		"resident_id": "no-such-resident",
		"name":        "Ana Costa",
		"document":    "12345678900",
		"time_limit":  "10:00",
	}
	resp := doJSON(t, http.MethodPost, f.server.URL+"/visitors", token, body, http.StatusBadRequest)
	resp.Body.Close()
}

func TestInvalidJSONBody(t *testing.T) {
	f := setupTestServer(t, allowAllLimiter{})

	resp, err := http.Post(f.server.URL+"/users", "application/json", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatalf("POST /users failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for invalid JSON, got %d", resp.StatusCode)
	}
}

// ---------- Helpers ----------

func doJSON(t *testing.T, method, url, token string, data any, expectedStatus int) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	if resp.StatusCode != expectedStatus {
		t.Fatalf("%s %s: expected status %d, got %d", method, url, expectedStatus, resp.StatusCode)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}
