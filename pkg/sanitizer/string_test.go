package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already clean", input: "S1", want: "S1"},
		{name: "surrounding spaces", input: "  morning ", want: "morning"},
		{name: "inner runs collapse", input: "Court   A", want: "Court A"},
		{name: "tabs and newlines", input: "Court\t\nA", want: "Court A"},
		{name: "whitespace only", input: " \t\n ", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "unicode kept", input: " Salle  Été ", want: "Salle Été"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := TrimAndNormalize(got); again != got {
				t.Errorf("TrimAndNormalize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Indoor   Court 1 "); got != "Indoor Court 1" {
		t.Errorf("NormalizeName() = %q", got)
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Tennis Court", want: "tennis court"},
		{input: "  TENNIS   court ", want: "tennis court"},
		{input: "Hot-Desk", want: "hot-desk"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizeLabel(tt.input); got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
