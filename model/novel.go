package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxNovelIdLen   = 10
	UpdatedAtLayout = "2006-01-02 15:04:05"
)

var jst = time.FixedZone("JST", 9*60*60)

type IdOverflowError struct {
	Max int
}

func (e *IdOverflowError) Error() string {
	return fmt.Sprintf("Id cannot be more than %d characters", e.Max)
}

// NovelId is the short code of a novel, e.g. n9185fm.
type NovelId string

func ParseNovelId(text string) (NovelId, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("novel id is required")
	}
	if len(text) > MaxNovelIdLen {
		return "", &IdOverflowError{Max: MaxNovelIdLen}
	}
	return NovelId(text), nil
}

func (id NovelId) String() string {
	return strings.ToLower(string(id))
}

type Novel struct {
	Title        string
	Code         NovelId
	Author       string
	ChapterCount int
	UpdatedAt    string
	Adult        bool
}

// UpdatedTime parses UpdatedAt, which the API reports in Japan time.
func (n *Novel) UpdatedTime() (time.Time, error) {
	return time.ParseInLocation(UpdatedAtLayout, n.UpdatedAt, jst)
}
