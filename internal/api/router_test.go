package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

// tokenAuth accepts "admin" and "customer" tokens and rejects the rest.
type tokenAuth struct {
	ports.AuthService
}

func (tokenAuth) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	switch token {
	case "admin":
		return &domain.Identity{UserID: "u-admin", IsAdmin: true}, nil
	case "customer":
		return &domain.Identity{UserID: "u-customer"}, nil
	case "revoked":
		return nil, domain.ErrSessionRevoked
	}
	return nil, domain.ErrInvalidCredentials
}

type listOnlyShipments struct {
	ports.ShipmentService
}

func (listOnlyShipments) ListShipments(ctx context.Context, in ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	return &ports.ListShipmentsResult{Items: []*domain.Shipment{}, Page: 1, Limit: 20}, nil
}

func (listOnlyShipments) Track(ctx context.Context, code string) (*ports.TrackingView, error) {
	return nil, domain.ErrShipmentNotFound
}

var (
	routerOnce sync.Once
	testRouter *echo.Echo
)

// sharedRouter builds the router once: the prometheus middleware registers
// its collectors globally.
func sharedRouter() *echo.Echo {
	routerOnce.Do(func() {
		testRouter = NewRouter(Dependencies{
			Shipments: listOnlyShipments{},
			Auth:      tokenAuth{},
			Logger:    zerolog.Nop(),
		})
	})
	return testRouter
}

func serve(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	sharedRouter().ServeHTTP(rec, req)
	return rec
}

func TestRouter_AdminAccess(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantCode int
		wantBody string
	}{
		{"no token", "", http.StatusUnauthorized, "missing authorization header"},
		{"invalid token", "garbage", http.StatusUnauthorized, "invalid token"},
		{"revoked session", "revoked", http.StatusUnauthorized, "session revoked"},
		{"customer", "customer", http.StatusForbidden, `{"error":"access denied"}`},
		{"admin", "admin", http.StatusOK, `"pagination"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(http.MethodGet, "/v1/admin/shipments", tt.token)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Fatalf("expected body to contain %q, got %s", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRouter_CurrenciesAdminOnly(t *testing.T) {
	if rec := serve(http.MethodGet, "/v1/admin/currencies", "customer"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a customer, got %d", rec.Code)
	}
	rec := serve(http.MethodGet, "/v1/admin/currencies", "admin")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"code":"USD"`) {
		t.Fatalf("expected currency list, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_TrackingNotFound(t *testing.T) {
	rec := serve(http.MethodGet, "/v1/tracking?code=NOPE", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"shipment not found"}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	for _, path := range []string{"/", "/health", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(http.MethodGet, path, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestRouter_HomeListsAdminRoutes(t *testing.T) {
	rec := serve(http.MethodGet, "/", "")
	for _, want := range []string{"/v1/admin/shipments/:id/timeline", "/v1/tracking/:code/stream", "/auth/password-reset/confirm"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("route index is missing %s", want)
		}
	}
}
