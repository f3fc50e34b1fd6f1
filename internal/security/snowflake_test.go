package security

import "testing"

func TestParseSnowflake(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid id", "123456789012345678", false},
		{"valid with spaces", " 123456789012345678 ", false},
		{"empty", "", true},
		{"zero", "0", true},
		{"non numeric", "abc123", true},
		{"negative", "-5", true},
		{"overflow", "99999999999999999999999", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnowflake(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSnowflake(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
