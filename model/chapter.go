package model

import (
	"errors"
	"fmt"
)

var ErrInvalidRange = errors.New("invalid chapter range")

// ChapterRange selects chapters From..To inclusive. To == 0 means up to the
// last chapter.
type ChapterRange struct {
	From int
	To   int
}

func (r ChapterRange) Validate() error {
	if r.From < 1 {
		return fmt.Errorf("%w: chapter cannot be zero", ErrInvalidRange)
	}
	if r.To < 0 {
		return fmt.Errorf("%w: to '%d' is negative", ErrInvalidRange, r.To)
	}
	if r.To != 0 && r.From > r.To {
		return fmt.Errorf("%w: from '%d' is above to '%d'", ErrInvalidRange, r.From, r.To)
	}
	return nil
}

// Resolve bounds the range against the number of chapters the novel has.
// overflow reports a To beyond the last chapter, which is allowed.
func (r ChapterRange) Resolve(chapterCount int) (from, to int, overflow bool, err error) {
	if err := r.Validate(); err != nil {
		return 0, 0, false, err
	}
	if r.From > chapterCount {
		return 0, 0, false, fmt.Errorf("%w: from is '%d' but novel has only %d chapters", ErrInvalidRange, r.From, chapterCount)
	}
	to = r.To
	if to == 0 {
		to = chapterCount
	}
	return r.From, to, to > chapterCount, nil
}

type Request struct {
	NovelId   NovelId
	Adult     bool
	Range     ChapterRange
	Title     string
	OutputDir string
}

// Report summarises a finished download. Failures counts chapter requests
// that had to be retried.
type Report struct {
	Path     string
	Chapters int
	Failures int
}
