package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	authsvc "github.com/PollinateIQ/dineup-backend/internal/auth"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
)

type stubAuthService struct {
	login    *authsvc.LoginResponse
	pair     *authsvc.TokenPair
	summary  *authsvc.UserSummary
	err      error
	remoteIP string
}

func (s *stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest, remoteIP string) (*authsvc.LoginResponse, error) {
	s.remoteIP = remoteIP
	return s.login, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.TokenPair, error) {
	return s.pair, s.err
}

func (s *stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest, remoteIP string) (*authsvc.UserSummary, error) {
	s.remoteIP = remoteIP
	return s.summary, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{login: &authsvc.LoginResponse{
		TokenPair: authsvc.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		User:      authsvc.UserSummary{ID: uuid.New(), Role: enums.UserRoleCustomer},
	}}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/token/", strings.NewReader(`{"email":"user@example.com","password":"hunter2hunter2"}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.remoteIP != "203.0.113.9" {
		t.Fatalf("expected forwarded ip, got %q", svc.remoteIP)
	}
	var envelope struct {
		Data authsvc.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access" {
		t.Fatalf("unexpected access token %q", envelope.Data.AccessToken)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/token/", strings.NewReader(`{"email":"user@example.com","password":"wrongpassword"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/token/", strings.NewReader(`{"email":"nope"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthRefreshSuccess(t *testing.T) {
	svc := &stubAuthService{pair: &authsvc.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}}
	handler := AuthRefresh(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/token/refresh/", strings.NewReader(`{"access":"old-access","refresh":"old-refresh"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthRegisterCreated(t *testing.T) {
	svc := &stubAuthService{summary: &authsvc.UserSummary{ID: uuid.New(), Role: enums.UserRoleCustomer}}
	handler := AuthRegister(svc, nil)

	body := `{"name":"Thandi","email":"thandi@example.com","password":"hunter2hunter2","password2":"hunter2hunter2","restaurant":"demo-bistro"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register/", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestAuthRateLimitSurfaces(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later")}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/token/", strings.NewReader(`{"email":"user@example.com","password":"hunter2hunter2"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}
}
