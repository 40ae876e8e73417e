package main

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.0.1", -1},
		{"2.0", "1.9.9", 1},
		{"1.10.0", "1.9.0", 1},
		{"1.0.0-beta", "1.0.0", 0},
		{"0.3", "0.3.0", 0},
	}

	for _, tt := range tests {
		if got := compareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseVersionPart(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"12", 12},
		{"1-beta", 1},
		{"2rc1", 2},
		{"", 0},
		{"beta", 0},
	}
	for _, tt := range tests {
		if got := parseVersionPart(tt.input); got != tt.want {
			t.Errorf("parseVersionPart(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestUpdateCommandNonEmpty(t *testing.T) {
	if UpdateCommand() == "" {
		t.Error("UpdateCommand returned empty string")
	}
}
