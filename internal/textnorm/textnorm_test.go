package textnorm

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Breaking News", "breaking news"},
		{"strips urls", "read more at https://example.com/article now", "read more at now"},
		{"punctuation to space", "Aliens, land in N.Y.!", "aliens land in n y"},
		{"digits removed", "Top 10 reasons", "top reasons"},
		{"collapses whitespace", "too   many\t\tspaces\nhere", "too many spaces here"},
		{"trims ends", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only noise", "123 !!! éè", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"BREAKING: aliens land in New York",
		"visit http://fake.example NOW!!!",
		"  mixed \t CASE \n and unicode — dashes ",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCleanOutputAlphabet(t *testing.T) {
	inputs := []string{
		"Shocking! Scientists discover 42 new species @ the Amazon...",
		"https://t.co/abc123 RT @user: you won't BELIEVE this",
		"tabs\tand\nnewlines\r\nand   runs",
	}
	for _, in := range inputs {
		out := Clean(in)
		if out != strings.TrimSpace(out) {
			t.Errorf("Clean(%q) has leading/trailing space: %q", in, out)
		}
		if strings.Contains(out, "  ") {
			t.Errorf("Clean(%q) contains a double space: %q", in, out)
		}
		for _, r := range out {
			if r != ' ' && (r < 'a' || r > 'z') {
				t.Errorf("Clean(%q) contains %q outside [a-z ]", in, r)
			}
		}
	}
}
