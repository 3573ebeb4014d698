package syosetu

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/nao1215/markdown"

	"syosetu-downloader/config"
	"syosetu-downloader/model"
)

func NovelURL(cfg *config.Config, novel *model.Novel) string {
	return fmt.Sprintf("%s/%s", cfg.Host(novel.Adult), novel.Code)
}

func ChapterURL(cfg *config.Config, novel *model.Novel, idx int) string {
	return fmt.Sprintf("%s/%d", NovelURL(cfg, novel), idx)
}

// WriteHeader starts the output document with the title and a link back to
// the novel.
func WriteHeader(w io.Writer, title, novelURL string) error {
	return markdown.NewMarkdown(w).
		H1(title).
		PlainText("").
		PlainText("Original: " + markdown.Link(novelURL, novelURL)).
		PlainText("").
		PlainText("").
		Build()
}

func (s *Syosetu) printSummary(novel *model.Novel) {
	color.New(color.Bold).Fprintln(s.out, "## Novel: ")
	fmt.Fprintf(s.out, "Title=%s\n", novel.Title)
	fmt.Fprintf(s.out, "Code=%s\n", novel.Code)
	fmt.Fprintf(s.out, "Author=%s\n", novel.Author)
	fmt.Fprintf(s.out, "Chapter Number=%d\n", novel.ChapterCount)
	fmt.Fprintf(s.out, "Last Updated=%s\n", novel.UpdatedAt)
}

func (s *Syosetu) printChapter(novel *model.Novel, idx int) {
	fmt.Fprintf(s.out, "Downloading chapter %d (%s/%d)...", idx, novel.Code, idx)
}

func (s *Syosetu) printStatus(ok bool) {
	if ok {
		color.New(color.FgGreen).Fprintln(s.out, "OK")
		return
	}
	color.New(color.FgRed).Fprintln(s.out, "ERR")
}
