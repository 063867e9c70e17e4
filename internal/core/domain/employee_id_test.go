package domain

import (
	"errors"
	"testing"
)

func TestValidEmployeeID(t *testing.T) {
	cases := map[string]bool{
		"403950-0000":  true,
		"000000-0000":  true,
		"12345-6789":   false,
		"1234567-8901": false,
		"403950-000":   false,
		"403950_0000":  false,
		"abcdef-ghij":  false,
		" 403950-0000": false,
		"":             false,
	}
	for id, want := range cases {
		if got := ValidEmployeeID(id); got != want {
			t.Errorf("ValidEmployeeID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestCheckCredentials(t *testing.T) {
	if err := CheckCredentials("403950-0000", "pw"); err != nil {
		t.Fatalf("expected valid credentials, got %v", err)
	}

	err := CheckCredentials("bad", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if _, ok := verr.Fields["employeeId"]; !ok {
		t.Fatalf("missing employeeId field: %+v", verr.Fields)
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Fatalf("missing password field: %+v", verr.Fields)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Fatalf("role %s should be valid", r)
		}
	}
	if Role("STUDENT").Valid() {
		t.Fatalf("STUDENT should not be a role")
	}
}
