package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jamqueuepro/internal/delivery/http/helpers"
	"jamqueuepro/internal/delivery/http/middleware"
	"jamqueuepro/internal/domain"
)

const (
	testEventID  = "3f2f0f3c-9f3a-4b6e-8f57-9d2f2a4b6c1d"
	testSignupID = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
)

type mockSignupQueueService struct {
	signup  *domain.Signup
	signups []*domain.Signup
	err     error
}

func (m *mockSignupQueueService) RequestSignup(ctx context.Context, eventID, userID string, instruments []string, notes string) (*domain.Signup, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.signup, nil
}

func (m *mockSignupQueueService) CancelSignup(ctx context.Context, signupID, requesterID string) error {
	return m.err
}

func (m *mockSignupQueueService) ListSignups(ctx context.Context, eventID string) ([]*domain.Signup, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.signups, nil
}

func (m *mockSignupQueueService) Position(ctx context.Context, eventID, userID string) (*domain.Signup, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.signup, nil
}

func (m *mockSignupQueueService) UpdateSignupDetails(ctx context.Context, signupID, requesterID string, instruments []string, notes string) (*domain.Signup, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.signup, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func signupRequest(t *testing.T, eventID, userID, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/events/"+eventID+"/signups", strings.NewReader(body))
	req.SetPathValue("eventID", eventID)
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	return req
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp
}

func TestSignupController_RequestSignup_Success(t *testing.T) {
	svc := &mockSignupQueueService{
		signup: &domain.Signup{ID: testSignupID, EventID: testEventID, UserID: "u1", QueuePosition: 3},
	}
	ctrl := NewSignupController(discardLogger(), svc)

	req := signupRequest(t, testEventID, "u1", `{"instruments":["guitar"],"notes":"two songs"}`)
	w := httptest.NewRecorder()
	ctrl.RequestSignup(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestSignupController_RequestSignup_QueueRejections(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"event not found", domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"deadline passed", domain.ErrDeadlinePassed, http.StatusBadRequest, helpers.ErrCodeDeadlinePassed},
		{"capacity exceeded", domain.ErrCapacityExceeded, http.StatusBadRequest, helpers.ErrCodeCapacityExceeded},
		{"already signed up", domain.ErrAlreadySignedUp, http.StatusBadRequest, helpers.ErrCodeAlreadySignedUp},
		{"storage unavailable", domain.ErrStorageUnavailable, http.StatusServiceUnavailable, helpers.ErrCodeStorageUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSignupQueueService{err: tt.err}
			ctrl := NewSignupController(discardLogger(), svc)

			req := signupRequest(t, testEventID, "u1", `{"instruments":[],"notes":""}`)
			w := httptest.NewRecorder()
			ctrl.RequestSignup(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := decodeResponse(t, w)
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Fatalf("expected error code %q, got %+v", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestSignupController_RequestSignup_InvalidEventID(t *testing.T) {
	ctrl := NewSignupController(discardLogger(), &mockSignupQueueService{})

	req := signupRequest(t, "not-a-uuid", "u1", `{}`)
	w := httptest.NewRecorder()
	ctrl.RequestSignup(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestSignupController_RequestSignup_Unauthorized(t *testing.T) {
	ctrl := NewSignupController(discardLogger(), &mockSignupQueueService{})

	req := signupRequest(t, testEventID, "", `{}`)
	w := httptest.NewRecorder()
	ctrl.RequestSignup(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestSignupController_RequestSignup_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"too many instruments", `{"instruments":["a","b","c","d","e","f","g","h","i","j","k"]}`},
		{"empty instrument entry", `{"instruments":["guitar",""]}`},
		{"unknown field", `{"instrument":"guitar"}`},
		{"notes too long", `{"notes":"` + strings.Repeat("x", 501) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewSignupController(discardLogger(), &mockSignupQueueService{})

			req := signupRequest(t, testEventID, "u1", tt.body)
			w := httptest.NewRecorder()
			ctrl.RequestSignup(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestSignupController_ListSignups_EmptyQueueIsEmptyArray(t *testing.T) {
	ctrl := NewSignupController(discardLogger(), &mockSignupQueueService{})

	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/signups", nil)
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()
	ctrl.ListSignups(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty array data, got %s", w.Body.String())
	}
}

func TestSignupController_UpdateSignup_Forbidden(t *testing.T) {
	svc := &mockSignupQueueService{err: domain.ErrForbidden}
	ctrl := NewSignupController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodPatch, "/signups/"+testSignupID, strings.NewReader(`{"notes":"new"}`))
	req.SetPathValue("signupID", testSignupID)
	req = req.WithContext(middleware.SetUserID(req.Context(), "u2"))
	w := httptest.NewRecorder()
	ctrl.UpdateSignup(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Error == nil || resp.Error.Code != helpers.ErrCodeForbidden {
		t.Fatalf("expected error code %q, got %+v", helpers.ErrCodeForbidden, resp.Error)
	}
}

func TestSignupController_CancelSignup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := NewSignupController(discardLogger(), &mockSignupQueueService{})

		req := httptest.NewRequest(http.MethodDelete, "/signups/"+testSignupID, nil)
		req.SetPathValue("signupID", testSignupID)
		req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
		w := httptest.NewRecorder()
		ctrl.CancelSignup(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewSignupController(discardLogger(), &mockSignupQueueService{err: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodDelete, "/signups/"+testSignupID, nil)
		req.SetPathValue("signupID", testSignupID)
		req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
		w := httptest.NewRecorder()
		ctrl.CancelSignup(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}
