package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

func CleanFileName(input string) string {
	cleaned := unsafeNameChars.ReplaceAllString(input, "_")

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		cleaned = "novel"
	}

	return cleaned
}

// MarkdownPath returns dir/<name>.md with name made safe for the filesystem.
func MarkdownPath(dir, name string) string {
	return filepath.Join(dir, CleanFileName(name)+".md")
}
