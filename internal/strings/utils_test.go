package strings

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{
			name:     "no truncation needed",
			input:    "hello",
			n:        10,
			expected: "hello",
		},
		{
			name:     "truncation with ellipsis",
			input:    "hello world",
			n:        8,
			expected: "hello...",
		},
		{
			name:     "min length enforced",
			input:    "hello",
			n:        2,
			expected: "h...",
		},
		{
			name:     "counts runes not bytes",
			input:    "配置文件已经更新",
			n:        6,
			expected: "配置文...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.input, tt.n)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.n, result, tt.expected)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight(\"ab\", 5) = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight long = %q", got)
	}
}
