package syosetu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/markdown"
	"golang.org/x/net/html"

	"syosetu-downloader/config"
	"syosetu-downloader/model"
)

// whiteSpace is trimmed from both ends of every paragraph, including the
// full-width space syosetu uses for indentation.
const whiteSpace = " \t\n\r　"

var ErrMissingBlock = errors.New("missing block")

type MissingBlockError struct {
	Selector string
}

func (e *MissingBlockError) Error() string {
	return fmt.Sprintf("unable to find %s block", e.Selector)
}

func (e *MissingBlockError) Is(target error) bool {
	return target == ErrMissingBlock
}

// Extractor turns a chapter page into Markdown.
type Extractor struct {
	selectors config.Selectors
	resolver  model.Resolver
}

func NewExtractor(selectors config.Selectors, resolver model.Resolver) *Extractor {
	return &Extractor{
		selectors: selectors,
		resolver:  resolver,
	}
}

// Extract writes the Markdown block of the chapter page read from r into w.
// Nothing is written when the title or body block is missing.
func (e *Extractor) Extract(ctx context.Context, w io.Writer, r io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to parse html: %w", err)
	}

	title := doc.Find(e.selectors.Title).First()
	if title.Length() == 0 {
		return &MissingBlockError{Selector: e.selectors.Title}
	}
	body := doc.Find(e.selectors.Body).First()
	if body.Length() == 0 {
		return &MissingBlockError{Selector: e.selectors.Body}
	}

	if _, err := fmt.Fprintf(w, "## %s\n", title.Text()); err != nil {
		return err
	}

	body.Contents().EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Get(0).Type != html.ElementNode {
			return true
		}
		err = e.writeParagraph(ctx, w, s)
		return err == nil
	})
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, "\n\n")
	return err
}

func (e *Extractor) writeParagraph(ctx context.Context, w io.Writer, s *goquery.Selection) error {
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	text := strings.Trim(s.Text(), whiteSpace)
	if text != "" {
		_, err := io.WriteString(w, text)
		return err
	}

	img := s
	if goquery.NodeName(s) != "img" {
		img = s.Find("img").First()
	}
	if img.Length() == 0 {
		return nil
	}
	src, ok := img.Attr("src")
	if !ok {
		return nil
	}

	src = e.resolver.Resolve(ctx, absoluteURL(src))
	_, err := io.WriteString(w, markdown.Image(img.AttrOr("alt", ""), src))
	return err
}

// absoluteURL gives image sources a scheme. syosetu serves them
// protocol-relative (//xxx.mitemin.net/...), so https is assumed and the
// leading slashes are dropped.
func absoluteURL(src string) string {
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		return src
	}
	return "https://" + strings.TrimLeft(src, "/")
}
