package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

func TestResetHandler_Request_GenericMessage(t *testing.T) {
	var got string
	h := NewResetHandler(&stubResetService{
		requestFn: func(ctx context.Context, employeeID string) error {
			got = employeeID
			return nil
		},
	})

	rec, err := serve(t, nil, h.Request, http.MethodPost, "/api/auth/reset-password", `{"employeeId":"200000-0002"}`, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || got != "200000-0002" {
		t.Fatalf("unexpected result: code=%d id=%q", rec.Code, got)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != resetRequestedMessage {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestResetHandler_Request_MissingEmployeeID(t *testing.T) {
	h := NewResetHandler(&stubResetService{
		requestFn: func(context.Context, string) error {
			t.Fatalf("service must not be called")
			return nil
		},
	})

	_, err := serve(t, nil, h.Request, http.MethodPost, "/api/auth/reset-password", `{}`, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResetHandler_Confirm(t *testing.T) {
	var got ports.ConfirmResetInput
	h := NewResetHandler(&stubResetService{
		confirmFn: func(ctx context.Context, in ports.ConfirmResetInput) error {
			got = in
			return nil
		},
	})

	rec, err := serve(t, nil, h.Confirm, http.MethodPut, "/api/auth/reset-password",
		`{"token":"tok","newPassword":"brand-new-pw","confirmPassword":"brand-new-pw"}`, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Token != "tok" || got.NewPassword != "brand-new-pw" || got.ConfirmPassword != "brand-new-pw" {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestResetHandler_Confirm_Mismatch(t *testing.T) {
	h := NewResetHandler(&stubResetService{
		confirmFn: func(context.Context, ports.ConfirmResetInput) error {
			t.Fatalf("service must not be called")
			return nil
		},
	})

	_, err := serve(t, nil, h.Confirm, http.MethodPut, "/api/auth/reset-password",
		`{"token":"tok","newPassword":"brand-new-pw","confirmPassword":"other-pw-1"}`, nil)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["confirmPassword"] != "passwords do not match" {
		t.Fatalf("unexpected fields: %+v", verr.Fields)
	}
}

func TestResetHandler_Confirm_PropagatesTokenErrors(t *testing.T) {
	h := NewResetHandler(&stubResetService{
		confirmFn: func(context.Context, ports.ConfirmResetInput) error {
			return domain.ErrWrongTokenType
		},
	})

	_, err := serve(t, nil, h.Confirm, http.MethodPut, "/api/auth/reset-password",
		`{"token":"session-token","newPassword":"brand-new-pw","confirmPassword":"brand-new-pw"}`, nil)
	if !errors.Is(err, domain.ErrWrongTokenType) {
		t.Fatalf("expected ErrWrongTokenType, got %v", err)
	}
}

func TestConfirmResult(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrInvalidToken, "invalid_token"},
		{domain.ErrWrongTokenType, "wrong_type"},
		{domain.NewValidationError().Add("token", "token is required"), "invalid_input"},
		{domain.ErrNotFound, "error"},
	}
	for _, tc := range cases {
		if got := confirmResult(tc.err); got != tc.want {
			t.Errorf("confirmResult(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
