package classifications_test

import (
	"testing"

	"github.com/meridianlegal/dossier/internal/classifications"
)

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"lowercases", "Led The Team", "led the team"},
		{"collapses whitespace", "led  the\n\tteam", "led the team"},
		{"trims", "  led the team  ", "led the team"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifications.NormalizeContent(tt.content); got != tt.want {
				t.Errorf("NormalizeContent(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestContentHash(t *testing.T) {
	a := classifications.ContentHash("Led the team.")
	b := classifications.ContentHash("led  THE\nteam.")
	c := classifications.ContentHash("led the squad.")

	if len(a) != 64 {
		t.Errorf("hash length: got %d, want 64", len(a))
	}
	if a != b {
		t.Errorf("normalization-equivalent content hashes differ: %s vs %s", a, b)
	}
	if a == c {
		t.Error("distinct content produced identical hashes")
	}
}
