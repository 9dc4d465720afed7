package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		Key string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	if err := cv.Validate(P{Key: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{Key: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Key", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestLinearIDValidation(t *testing.T) {
	type P struct {
		LinearID string `validate:"linearid"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{LinearID: "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88"}); err != nil {
		t.Fatalf("expected valid linear id, got err: %v", err)
	}

	for _, s := range []string{
		"",
		"3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88", // uppercase
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",     // no hyphens
		"not-a-uuid",
	} {
		err := cv.Validate(P{LinearID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "LinearID", "linear identifier") {
			t.Fatalf("expected linearid message for %q, got: %+v", s, fe)
		}
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name   string `validate:"required"`
		Amount int64  `validate:"gt=0"`
		Min    int    `validate:"gte=10"`
		Max    int    `validate:"lte=5"`
	}
	cv := NewValidator()

	err := cv.Validate(P{
		Name:   "", // required
		Amount: 0,  // gt=0
		Min:    9,  // gte=10
		Max:    6,  // lte=5
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Amount", "greater than 0") {
		t.Fatalf("missing gt message for Amount: %+v", fe)
	}
	if !containsFieldMsg(fe, "Min", "greater than or equal to 10") {
		t.Fatalf("missing gte message for Min: %+v", fe)
	}
	if !containsFieldMsg(fe, "Max", "less than or equal to 5") {
		t.Fatalf("missing lte message for Max: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
