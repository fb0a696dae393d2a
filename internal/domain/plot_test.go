package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/msomdec/lotes-map/internal/domain"
)

func TestParseHeight(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"number", `12.5`, 12.5, true},
		{"integer", `3`, 3, true},
		{"numeric string", `"12.5"`, 12.5, true},
		{"padded string", `"  7 "`, 7, true},
		{"true", `true`, 1, true},
		{"false", `false`, 0, true},
		{"null", `null`, 0, false},
		{"empty", ``, 0, false},
		{"word", `"alto"`, 0, false},
		{"nan string", `"NaN"`, 0, false},
		{"infinite string", `"inf"`, 0, false},
		{"array", `[1]`, 0, false},
		{"object", `{"v":1}`, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := domain.ParseHeight(json.RawMessage(tc.raw))
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := domain.NormalizeEmail("  A@X.com "); got != "a@x.com" {
		t.Fatalf("expected a@x.com, got %q", got)
	}
}

func TestDefaultUserName(t *testing.T) {
	if got := domain.DefaultUserName("lucas@demo.com"); got != "lucas" {
		t.Fatalf("expected lucas, got %q", got)
	}
	if got := domain.DefaultUserName("nodomain"); got != "Usuario" {
		t.Fatalf("expected Usuario, got %q", got)
	}
}

func TestUserIdentity_NameFallback(t *testing.T) {
	u := domain.User{Email: "ana@x.com"}
	id := u.Identity()
	if id.Name != "ana" || id.Email != "ana@x.com" {
		t.Fatalf("unexpected identity %+v", id)
	}

	u.Name = "Ana"
	if got := u.Identity().Name; got != "Ana" {
		t.Fatalf("expected Ana, got %q", got)
	}
}
