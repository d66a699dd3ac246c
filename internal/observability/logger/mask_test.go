package logger

import (
	"net/http"
	"testing"
)

func TestMaskPhone(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"regular number", "+24106223344", "****3344"},
		{"short value", "123", "****123"},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaskPhone(tc.input); got != tc.want {
				t.Fatalf("MaskPhone(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestMaskAuthorization(t *testing.T) {
	got := MaskAuthorization("Bearer abcdef123456")
	if got != "Bearer ****3456" {
		t.Fatalf("unexpected mask: %q", got)
	}

	got = MaskAuthorization("raw-token-value")
	if got != "****alue" {
		t.Fatalf("unexpected mask: %q", got)
	}

	if got := MaskAuthorization(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer abcdef123456")
	headers.Set("Cookie", "session=abcdef")
	headers.Set("Content-Type", "application/json")

	masked := MaskHeaders(headers)
	if masked["Authorization"] != "Bearer ****3456" {
		t.Fatalf("authorization not masked: %q", masked["Authorization"])
	}
	if masked["Cookie"] != "****cdef" {
		t.Fatalf("cookie not masked: %q", masked["Cookie"])
	}
	if masked["Content-Type"] != "application/json" {
		t.Fatalf("content type must pass through: %q", masked["Content-Type"])
	}
}

func TestMaskJSON(t *testing.T) {
	input := map[string]any{
		"client_name": "Jean Dupont",
		"phone":       "+24106223344",
		"nested": map[string]any{
			"api_token": "tok_abcdef",
			"amount":    50000,
		},
		"items": []any{
			map[string]any{"phone": "+24199887766", "category": "Mixage"},
		},
	}

	out := MaskJSON(input)
	if out["client_name"] != "Jean Dupont" {
		t.Fatalf("client name must pass through: %v", out["client_name"])
	}
	if out["phone"] != "****3344" {
		t.Fatalf("phone not masked: %v", out["phone"])
	}

	nested := out["nested"].(map[string]any)
	if nested["api_token"] != "****cdef" {
		t.Fatalf("token not masked: %v", nested["api_token"])
	}
	if nested["amount"] != 50000 {
		t.Fatalf("amount must pass through: %v", nested["amount"])
	}

	items := out["items"].([]any)
	first := items[0].(map[string]any)
	if first["phone"] != "****7766" {
		t.Fatalf("item phone not masked: %v", first["phone"])
	}
	if first["category"] != "Mixage" {
		t.Fatalf("category must pass through: %v", first["category"])
	}

	// Original input untouched.
	if input["phone"] != "+24106223344" {
		t.Fatalf("input mutated: %v", input["phone"])
	}

	if MaskJSON(nil) != nil {
		t.Fatal("nil input must return nil")
	}
}
