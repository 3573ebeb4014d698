package model

import (
	"context"
	"io"
)

// Resolver maps an image url to its final location. It never fails, an
// unresolvable url is returned unchanged.
type Resolver interface {
	Resolve(ctx context.Context, url string) string
}

type Downloader interface {
	GetNovel(ctx context.Context, id NovelId, adult bool) (*Novel, error)
	GetChapter(ctx context.Context, novel *Novel, idx int) (string, int, error)
	DownloadRange(ctx context.Context, novel *Novel, rng ChapterRange, w io.Writer) (*Report, error)
	Download(ctx context.Context, req Request) (*Report, error)
}
