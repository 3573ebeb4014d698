package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"syosetu-downloader/config"
	"syosetu-downloader/model"
)

// ReportedError is an error the operator has already been shown.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func newPrompter(in io.Reader, out, errOut io.Writer) *prompter {
	return &prompter{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

func runInteractive(cmd *cobra.Command, cfg *config.Config) error {
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	req, err := p.request()
	if err != nil {
		return err
	}
	err = runDownload(cmd, cfg, req)
	if err != nil {
		fmt.Fprintf(p.errOut, "!>>>%v\n", err)
		err = &ReportedError{Err: err}
	}
	p.pause()
	return err
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("unexpected I/O error: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) warn(format string, a ...any) {
	fmt.Fprintf(p.errOut, "!>>>"+format+"\n", a...)
}

// request asks for the novel and chapter range until every answer is valid.
func (p *prompter) request() (model.Request, error) {
	req := model.Request{}

	for {
		fmt.Fprint(p.out, ">Please input novel id (e.g. n9185fm): ")
		line, err := p.readLine()
		if err != nil {
			return req, err
		}
		if line == "" {
			continue
		}
		id, err := model.ParseNovelId(line)
		if err != nil {
			p.warn("%v", err)
			continue
		}
		req.NovelId = id
		break
	}

	fmt.Fprint(p.out, ">Is novel 18+?(y/N):")
	line, err := p.readLine()
	if err != nil {
		return req, err
	}
	req.Adult = strings.EqualFold(line, "y") || strings.EqualFold(line, "yes")

	fmt.Fprint(p.out, ">Please specify which chapters to download:\n")
	for {
		fmt.Fprint(p.out, "Start FROM chapter(defaults to 1)?:")
		line, err := p.readLine()
		if err != nil {
			return req, err
		}
		if line == "" {
			req.Range.From = 1
			break
		}
		chapter, err := strconv.ParseUint(line, 10, 31)
		if err != nil {
			p.warn("'%s': %v", line, err)
			continue
		}
		if chapter == 0 {
			p.warn("Chapter cannot be zero")
			continue
		}
		req.Range.From = int(chapter)
		break
	}

	for {
		fmt.Fprint(p.out, "TO chapter(leave empty for all)?:")
		line, err := p.readLine()
		if err != nil {
			return req, err
		}
		if line == "" {
			req.Range.To = 0
			break
		}
		chapter, err := strconv.ParseUint(line, 10, 31)
		if err != nil {
			p.warn("'%s': %v", line, err)
			continue
		}
		if int(chapter) <= req.Range.From {
			p.warn("Number has to be greater than from='%d'", req.Range.From)
			continue
		}
		req.Range.To = int(chapter)
		break
	}

	return req, nil
}

// pause keeps a console window opened by double click around until the
// operator has read the result.
func (p *prompter) pause() {
	fmt.Fprint(p.out, "## Press ENTER to finish...")
	line, _ := p.in.ReadString('\n')
	fmt.Fprint(p.out, line)
}
