package checksum

import (
	"testing"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty string",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "abc",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.CalculateRaw([]byte(tt.content))
			if result != tt.expected {
				t.Errorf("CalculateRaw() = %s, expected %s", result, tt.expected)
			}
		})
	}
}

func TestSHA256Calculator_RawDetectsWhitespace(t *testing.T) {
	calc := New()
	a := calc.CalculateRaw([]byte("# Title\n"))
	b := calc.CalculateRaw([]byte("# Title\r\n"))
	if a == b {
		t.Error("CalculateRaw() should distinguish line endings")
	}
}

func TestSHA256Calculator_CalculateNormalized(t *testing.T) {
	calc := New()

	tests := []struct {
		name        string
		content1    string
		content2    string
		shouldMatch bool
	}{
		{
			name:        "Line endings",
			content1:    "---\nid: a-x\n---\n# Title\n",
			content2:    "---\r\nid: a-x\r\n---\r\n# Title\r\n",
			shouldMatch: true,
		},
		{
			name:        "Trailing whitespace",
			content1:    "# Title  \nBody\t\n",
			content2:    "# Title\nBody\n",
			shouldMatch: true,
		},
		{
			name:        "Blank line runs",
			content1:    "\n\n# Title\n\n\n\nBody\n\n",
			content2:    "# Title\n\nBody",
			shouldMatch: true,
		},
		{
			name:        "HTML comments",
			content1:    "# Title\n<!-- reviewer note -->\nBody\n",
			content2:    "# Title\n\nBody\n",
			shouldMatch: true,
		},
		{
			name:        "Case is significant",
			content1:    "# Title",
			content2:    "# title",
			shouldMatch: false,
		},
		{
			name:        "Paragraph break is significant",
			content1:    "Line one\nLine two",
			content2:    "Line one\n\nLine two",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c1 := calc.CalculateNormalized([]byte(tt.content1))
			c2 := calc.CalculateNormalized([]byte(tt.content2))
			if (c1 == c2) != tt.shouldMatch {
				t.Errorf("CalculateNormalized() match = %v, expected %v\n  content1: %q\n  content2: %q",
					c1 == c2, tt.shouldMatch, tt.content1, tt.content2)
			}
		})
	}
}

func TestSHA256Calculator_Normalize(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only blanks", "\n \n\t\n", ""},
		{"unclosed comment", "keep <!-- dropped\nstill dropped", "keep"},
		{"two comments", "a<!--x-->b<!--y-->c", "abc"},
		{"old mac endings", "a\rb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.normalize(tt.input); got != tt.expected {
				t.Errorf("normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
