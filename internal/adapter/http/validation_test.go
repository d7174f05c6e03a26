package http

import (
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		LoanID string `validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{LoanID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	for _, s := range []string{
		"",
		strings.Repeat("A", 32),           // uppercase
		"deadbeef",                        // too short
		strings.Repeat("g", 32),           // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8", // 31 chars
		strings.Repeat("a", 33),
	} {
		err := cv.Validate(P{LoanID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		found := false
		for _, fe := range ToFieldErrors(err) {
			if fe.Field == "LoanID" && strings.Contains(fe.Message, "32-char lowercase hex") {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected hex32 message for %q", s)
		}
	}
}

func TestToFieldErrorsMessages(t *testing.T) {
	type P struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
		Action   string `validate:"oneof=Accepted Rejected"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Email: "nope", Password: "short", Action: "Maybe"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	msgs := map[string]string{}
	for _, fe := range ToFieldErrors(err) {
		msgs[fe.Field] = fe.Message
	}
	if !strings.Contains(msgs["Email"], "valid email") {
		t.Errorf("email message = %q", msgs["Email"])
	}
	if !strings.Contains(msgs["Password"], "at least 8") {
		t.Errorf("password message = %q", msgs["Password"])
	}
	if !strings.Contains(msgs["Action"], "one of") {
		t.Errorf("action message = %q", msgs["Action"])
	}
}

func TestToFieldErrorsNonValidatorError(t *testing.T) {
	fe := ToFieldErrors(errTest)
	if len(fe) != 1 || fe[0].Field != "_" {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}

var errTest = errString("boom")

type errString string

func (e errString) Error() string { return string(e) }
