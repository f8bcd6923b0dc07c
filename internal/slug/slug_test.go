package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple title",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "punctuation stripped",
			input: "Breaking: Markets Rally, Again!",
			want:  "breaking-markets-rally-again",
		},
		{
			name:  "consecutive spaces collapse",
			input: "too   many    spaces",
			want:  "too-many-spaces",
		},
		{
			name:  "leading and trailing noise trimmed",
			input: "  --Hello--  ",
			want:  "hello",
		},
		{
			name:  "arabic drops to empty",
			input: "أخبار اليوم",
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateUnicode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "arabic preserved",
			input: "أخبار اليوم",
			want:  "أخبار-اليوم",
		},
		{
			name:  "latin lowercased",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "punctuation dropped",
			input: "عاجل: أخبار!",
			want:  "عاجل-أخبار",
		},
		{
			name:  "mixed scripts",
			input: "Go 2026 إصدار",
			want:  "go-2026-إصدار",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateUnicode(tt.input); got != tt.want {
				t.Errorf("GenerateUnicode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
