package utils

import (
	"path/filepath"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"テスト小説", "テスト小説"},
		{"a/b\\c", "a_b_c"},
		{`what? "really" <yes>`, "what_ _really_ _yes_"},
		{"  ..hidden..  ", "hidden"},
		{"tab\there", "tab_here"},
		{"...", "novel"},
		{"", "novel"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.input); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMarkdownPath(t *testing.T) {
	if got := MarkdownPath("out", "my:novel"); got != filepath.Join("out", "my_novel.md") {
		t.Fatalf("unexpected path: %s", got)
	}
}
