package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Email  string `validate:"required,email"`
	Rating int    `validate:"min=1,max=5"`
}

func TestStructValid(t *testing.T) {
	req := sampleRequest{Email: "a@example.com", Rating: 3}
	if err := Struct(&req); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestStructCollectsFieldErrors(t *testing.T) {
	req := sampleRequest{Email: "not-an-email", Rating: 9}
	err := Struct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Email") {
		t.Fatalf("expected Email error in %q", msg)
	}
	if !strings.Contains(msg, "Rating") {
		t.Fatalf("expected Rating error in %q", msg)
	}
}

func TestGetValidator(t *testing.T) {
	if GetValidator() == nil {
		t.Fatal("expected shared validator instance")
	}
}
