package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jamqueuepro/internal/delivery/http/helpers"
	"jamqueuepro/internal/domain"
)

type mockAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password, name string) (string, *domain.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func TestAuthController_SignUp_Success(t *testing.T) {
	svc := &mockAuthService{
		token: "jwt-token",
		user:  &domain.User{ID: "u1", Email: "ana@example.com", Name: "Ana", Active: true},
	}
	ctrl := NewAuthController(discardLogger(), svc)

	body := `{"email":"ana@example.com","password":"hunter2hunter2","name":"Ana"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.SignUp(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var resp struct {
		Data AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.Token != "jwt-token" {
		t.Fatalf("expected token %q, got %q", "jwt-token", resp.Data.Token)
	}
	if resp.Data.TokenType != "Bearer" {
		t.Fatalf("expected token type Bearer, got %q", resp.Data.TokenType)
	}
	if resp.Data.User == nil || resp.Data.User.ID != "u1" {
		t.Fatalf("expected user u1, got %+v", resp.Data.User)
	}
}

func TestAuthController_SignUp_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{"duplicate email", `{"email":"ana@example.com","password":"hunter2hunter2","name":"Ana"}`, domain.ErrDuplicateEmail, http.StatusBadRequest},
		{"invalid input from service", `{"email":"ana@example.com","password":"hunter2hunter2","name":"Ana"}`, domain.ErrInvalidInput, http.StatusBadRequest},
		{"missing email", `{"password":"hunter2hunter2","name":"Ana"}`, nil, http.StatusBadRequest},
		{"bad email format", `{"email":"nope","password":"hunter2hunter2","name":"Ana"}`, nil, http.StatusBadRequest},
		{"short password", `{"email":"ana@example.com","password":"short","name":"Ana"}`, nil, http.StatusBadRequest},
		{"unexpected error", `{"email":"ana@example.com","password":"hunter2hunter2","name":"Ana"}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(discardLogger(), &mockAuthService{err: tt.svcErr})

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			ctrl.SignUp(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		svc        *mockAuthService
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			svc:        &mockAuthService{token: "jwt-token", user: &domain.User{ID: "u1"}},
			body:       `{"email":"ana@example.com","password":"hunter2hunter2"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid credentials",
			svc:        &mockAuthService{err: errors.New("invalid credentials")},
			body:       `{"email":"ana@example.com","password":"wrong"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "deactivated account",
			svc:        &mockAuthService{err: domain.ErrUserInactive},
			body:       `{"email":"ana@example.com","password":"hunter2hunter2"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "missing password",
			svc:        &mockAuthService{},
			body:       `{"email":"ana@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(discardLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			ctrl.Login(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantCode != "" {
				resp := decodeResponse(t, w)
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Fatalf("expected error code %q, got %+v", tt.wantCode, resp.Error)
				}
			}
		})
	}
}
