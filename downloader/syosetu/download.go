package syosetu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"syosetu-downloader/model"
	"syosetu-downloader/utils"
)

// GetChapter fetches the html of chapter idx. A failed request is reported
// as ERR on the progress line and retried after cfg.RetryDelay. It gives up
// once cfg.MaxRetries is exceeded or ctx is done. The number of failed
// attempts is returned alongside.
func (s *Syosetu) GetChapter(ctx context.Context, novel *model.Novel, idx int) (string, int, error) {
	chapterUrl := ChapterURL(s.cfg, novel, idx)
	failures := 0
	for {
		resp, err := s.restyClient.R().SetContext(ctx).Get(chapterUrl)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				s.printStatus(false)
				return "", failures, ctx.Err()
			}
			s.log.Warn().Err(err).Int("chapter", idx).Msgf("%s is unreachable", s.cfg.Host(novel.Adult))
		case resp.StatusCode() != http.StatusOK:
			s.log.Warn().Int("chapter", idx).Msgf("request to %s failed with code: %d", chapterUrl, resp.StatusCode())
		default:
			return resp.String(), failures, nil
		}

		failures++
		s.printStatus(false)
		if s.cfg.MaxRetries > 0 && failures > s.cfg.MaxRetries {
			return "", failures, fmt.Errorf("failed to get chapter %d: gave up after %d attempts", idx, failures)
		}
		if err := s.sleep(ctx, s.cfg.RetryDelay); err != nil {
			return "", failures, err
		}
		s.printChapter(novel, idx)
	}
}

// DownloadRange writes chapters rng.From..rng.To of novel to w, one after
// another. A chapter page that no longer matches the layout stops the run.
func (s *Syosetu) DownloadRange(ctx context.Context, novel *model.Novel, rng model.ChapterRange, w io.Writer) (*model.Report, error) {
	from, to, overflow, err := rng.Resolve(novel.ChapterCount)
	if err != nil {
		return nil, err
	}
	if overflow {
		s.log.Warn().Msgf("To is '%d' but novel has only %d chapters", to, novel.ChapterCount)
	}

	report := &model.Report{}
	for idx := from; idx <= to; idx++ {
		s.printChapter(novel, idx)
		html, failures, err := s.GetChapter(ctx, novel, idx)
		report.Failures += failures
		if err != nil {
			return report, fmt.Errorf("failed to get chapter %d: %w", idx, err)
		}

		err = s.extractor.Extract(ctx, w, strings.NewReader(html))
		if err != nil {
			s.printStatus(false)
			return report, fmt.Errorf("failed to store novel: %w", err)
		}
		s.printStatus(true)
		report.Chapters++
	}

	if report.Failures > 0 {
		s.log.Info().Int("failures", report.Failures).Msg("some requests had to be retried")
	}
	return report, nil
}

// Download runs a whole request: novel info, output file, chapters.
func (s *Syosetu) Download(ctx context.Context, req model.Request) (*model.Report, error) {
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}

	novel, err := s.GetNovel(ctx, req.NovelId, req.Adult)
	if err != nil {
		return nil, fmt.Errorf("failed to get novel info: %w", err)
	}
	s.printSummary(novel)

	if _, _, _, err := req.Range.Resolve(novel.ChapterCount); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = novel.Title
	}
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := utils.MarkdownPath(outputDir, title)
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file to store content: %w", err)
	}
	defer file.Close()
	s.log.Info().Str("path", outputPath).Msg("writing novel")

	dest := bufio.NewWriter(file)
	if err := WriteHeader(dest, title, NovelURL(s.cfg, novel)); err != nil {
		return nil, fmt.Errorf("unable to write file: %w", err)
	}

	report, err := s.DownloadRange(ctx, novel, req.Range, dest)
	if flushErr := dest.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("unable to write file: %w", flushErr)
	}
	if report != nil {
		report.Path = outputPath
	}
	if err != nil {
		return report, err
	}

	if err := file.Close(); err != nil {
		return report, fmt.Errorf("unable to write file: %w", err)
	}
	return report, nil
}
