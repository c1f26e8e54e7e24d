package http

import (
	"errors"
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		AssetID string `json:"asset_id" validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{AssetID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}
	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		"deadbeef",
		strings.Repeat("g", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
	} {
		err := cv.Validate(P{AssetID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "asset_id", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestCategoryValidation(t *testing.T) {
	type P struct {
		Category string `json:"category" validate:"category"`
	}
	cv := NewValidator()
	for _, ok := range []string{"vehicle", "Electronics", "other", "others"} {
		if err := cv.Validate(P{Category: ok}); err != nil {
			t.Fatalf("category %q rejected: %v", ok, err)
		}
	}
	err := cv.Validate(P{Category: "room"})
	if err == nil || !containsFieldMsg(ToFieldErrors(err), "category", "vehicle, electronics, other") {
		t.Fatalf("room must be rejected with a category message, got %v", err)
	}
}

func TestAdminStatusValidation(t *testing.T) {
	type P struct {
		Status string `json:"status" validate:"adminstatus"`
	}
	cv := NewValidator()
	for _, ok := range []string{"available", "maintenance", "broken"} {
		if err := cv.Validate(P{Status: ok}); err != nil {
			t.Fatalf("status %q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"borrowed", "requested", "lost"} {
		err := cv.Validate(P{Status: bad})
		if err == nil || !containsFieldMsg(ToFieldErrors(err), "status", "available, maintenance, broken") {
			t.Fatalf("status %q must be rejected, got %v", bad, err)
		}
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name  string `json:"name"  validate:"required"`
		Qty   int    `json:"qty"   validate:"gte=1"`
		Max   int    `json:"max"   validate:"lte=5"`
		Note  string `json:"note"  validate:"max=3"`
		Photo string `json:"photo" validate:"omitempty,url"`
		Day   string `json:"day"   validate:"omitempty,datetime=2006-01-02"`
		NoTag string
	}
	cv := NewValidator()

	err := cv.Validate(P{Qty: 0, Max: 6, Note: "toolong", Photo: "nope", Day: "2025-13-40"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	checks := map[string]string{
		"name":  "is required",
		"qty":   "greater than or equal to 1",
		"max":   "less than or equal to 5",
		"note":  "at most 3 characters",
		"photo": "valid URL",
		"day":   "layout 2006-01-02",
	}
	for field, msg := range checks {
		if !containsFieldMsg(fe, field, msg) {
			t.Fatalf("missing %q for %s: %+v", msg, field, fe)
		}
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}
