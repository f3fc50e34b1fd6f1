package logging

import "testing"

func TestMaskToken(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"short", "***"},
		{"abcdefgh", "***"},
		{"abcdefghijkl", "abc***jkl"},
	}

	for _, tt := range tests {
		if got := MaskToken(tt.in); got != tt.expected {
			t.Errorf("MaskToken(%q): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}
