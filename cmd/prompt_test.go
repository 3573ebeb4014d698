package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"syosetu-downloader/model"
)

func TestPrompter_Request(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     model.Request
		warnings []string
	}{
		{
			name:  "defaults",
			input: "n9185fm\n\n\n\n",
			want:  model.Request{NovelId: "n9185fm", Range: model.ChapterRange{From: 1}},
		},
		{
			name:  "adult with range",
			input: "N9185FM\nYes\n3\n5\n",
			want:  model.Request{NovelId: "N9185FM", Adult: true, Range: model.ChapterRange{From: 3, To: 5}},
		},
		{
			name:  "re-prompts",
			input: "\nn12345678901\nn9185fm\ny\nabc\n0\n3\n2\n3\n4",
			want:  model.Request{NovelId: "n9185fm", Adult: true, Range: model.ChapterRange{From: 3, To: 4}},
			warnings: []string{
				"!>>>Id cannot be more than 10 characters",
				"!>>>'abc'",
				"!>>>Chapter cannot be zero",
				"!>>>Number has to be greater than from='3'",
			},
		},
		{
			name:  "not adult",
			input: "n9185fm\nno\n\n\n",
			want:  model.Request{NovelId: "n9185fm", Range: model.ChapterRange{From: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			p := newPrompter(strings.NewReader(tt.input), &out, &errOut)
			got, err := p.request()
			if err != nil {
				t.Fatalf("failed to read request: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected request: %+v, want %+v", got, tt.want)
			}
			for _, warning := range tt.warnings {
				if !strings.Contains(errOut.String(), warning) {
					t.Fatalf("expected warning %q in:\n%s", warning, errOut.String())
				}
			}
			if len(tt.warnings) == 0 && errOut.Len() != 0 {
				t.Fatalf("unexpected warnings:\n%s", errOut.String())
			}
			if !strings.HasPrefix(out.String(), ">Please input novel id (e.g. n9185fm): ") {
				t.Fatalf("unexpected prompt:\n%s", out.String())
			}
		})
	}
}

func TestPrompter_Prompts(t *testing.T) {
	var out, errOut bytes.Buffer
	p := newPrompter(strings.NewReader("n9185fm\n\n\n\n"), &out, &errOut)
	if _, err := p.request(); err != nil {
		t.Fatalf("failed to read request: %v", err)
	}
	want := ">Please input novel id (e.g. n9185fm): " +
		">Is novel 18+?(y/N):" +
		">Please specify which chapters to download:\n" +
		"Start FROM chapter(defaults to 1)?:" +
		"TO chapter(leave empty for all)?:"
	if out.String() != want {
		t.Fatalf("unexpected prompts:\n%q", out.String())
	}
}

func TestPrompter_EOF(t *testing.T) {
	inputs := []string{"", "n9185fm\n", "n9185fm\ny\n3\n"}
	for _, input := range inputs {
		var out, errOut bytes.Buffer
		p := newPrompter(strings.NewReader(input), &out, &errOut)
		_, err := p.request()
		if err == nil || !strings.Contains(err.Error(), "unexpected I/O error") {
			t.Fatalf("input %q: expected I/O error, got %v", input, err)
		}
	}
}

func TestRootArgs_Request(t *testing.T) {
	args := rootArgs{From: 2, To: 4, R18: true, Title: "custom"}
	req, err := args.request(" N9185FM ")
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	want := model.Request{
		NovelId: "N9185FM",
		Adult:   true,
		Range:   model.ChapterRange{From: 2, To: 4},
		Title:   "custom",
	}
	if req != want {
		t.Fatalf("unexpected request: %+v", req)
	}

	if _, err := (rootArgs{From: 0}).request("n9185fm"); !errors.Is(err, model.ErrInvalidRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
	if _, err := (rootArgs{From: 5, To: 2}).request("n9185fm"); !errors.Is(err, model.ErrInvalidRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
	if _, err := (rootArgs{From: 1, To: 0, toSet: true}).request("n9185fm"); !errors.Is(err, model.ErrInvalidRange) {
		t.Fatalf("expected zero to to be rejected, got %v", err)
	}
	if req, err := (rootArgs{From: 1}).request("n9185fm"); err != nil || req.Range.To != 0 {
		t.Fatalf("missing to should mean the last chapter, got %+v, %v", req, err)
	}

	var overflow *model.IdOverflowError
	if _, err := (rootArgs{From: 1}).request("n12345678901"); !errors.As(err, &overflow) {
		t.Fatalf("expected overflow error, got %v", err)
	}
}
