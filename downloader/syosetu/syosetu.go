package syosetu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"syosetu-downloader/config"
	"syosetu-downloader/model"
	"syosetu-downloader/utils"
)

var ErrNovelNotFound = errors.New("novel not found")

type FetchReason int

const (
	ReasonStatus FetchReason = iota + 1
	ReasonUnreachable
	ReasonInvalidJSON
	ReasonNotFound
)

// FetchError reports why novel info could not be retrieved.
type FetchError struct {
	Reason  FetchReason
	NovelId model.NovelId
	Host    string
	Code    int
	Err     error
}

func (e *FetchError) Error() string {
	switch e.Reason {
	case ReasonStatus:
		return fmt.Sprintf("request to %s failed with code: %d", e.Host, e.Code)
	case ReasonUnreachable:
		return fmt.Sprintf("%s is unreachable: %v", e.Host, e.Err)
	case ReasonInvalidJSON:
		return fmt.Sprintf("failed to get novel '%s' info. Invalid JSON: %v", e.NovelId, e.Err)
	default:
		return fmt.Sprintf("novel '%s' is not found", e.NovelId)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrNovelNotFound && e.Reason == ReasonNotFound
}

type Syosetu struct {
	cfg         *config.Config
	restyClient *resty.Client
	resolver    model.Resolver
	extractor   *Extractor
	out         io.Writer
	log         zerolog.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

type Option func(*Syosetu)

// WithOutput sets where operator progress is printed, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(s *Syosetu) {
		s.out = w
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Syosetu) {
		s.log = l
	}
}

func WithResolver(r model.Resolver) Option {
	return func(s *Syosetu) {
		s.resolver = r
	}
}

var _ model.Downloader = (*Syosetu)(nil)

func New(cfg *config.Config, opts ...Option) *Syosetu {
	s := &Syosetu{
		cfg:   cfg,
		out:   os.Stdout,
		log:   log.Logger,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}

	runId, err := uuid.NewV7()
	if err != nil {
		runId = uuid.New()
	}
	s.log = s.log.With().Str("run", runId.String()).Logger()

	s.restyClient = utils.NewRestyClient(cfg, cfg.Timeout)
	if cfg.Verbose {
		s.restyClient.SetLogger(utils.ZerologLogger{Logger: s.log})
	}
	if s.resolver == nil {
		s.resolver = NewRedirectResolver(cfg, s.log)
	}
	s.extractor = NewExtractor(cfg.Selectors(), s.resolver)
	return s
}

func (s *Syosetu) GetNovel(ctx context.Context, id model.NovelId, adult bool) (*model.Novel, error) {
	endpoint := s.cfg.APIEndpoint(adult)
	host := endpoint
	if u, err := url.Parse(endpoint); err == nil {
		host = u.Host
	}
	s.log.Debug().Str("novel", id.String()).Bool("r18", adult).Msg("getting novel info")

	resp, err := s.restyClient.R().
		SetContext(ctx).
		SetQueryParam("out", "json").
		SetQueryParam("ncode", id.String()).
		Get(endpoint)
	if err != nil {
		return nil, &FetchError{Reason: ReasonUnreachable, NovelId: id, Host: host, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &FetchError{Reason: ReasonStatus, NovelId: id, Host: host, Code: resp.StatusCode()}
	}

	novel, err := decodeNovel(resp.Body(), adult)
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			fetchErr.NovelId = id
			fetchErr.Host = host
		}
		if errors.Is(err, ErrNovelNotFound) {
			s.log.Debug().Str("novel", id.String()).Str("body", resp.String()).Msg("unexpected novel info")
		}
		return nil, err
	}
	return novel, nil
}

// decodeNovel reads the API response, a JSON array whose last element is the
// novel record. The leading element only carries a hit count.
func decodeNovel(body []byte, adult bool) (*model.Novel, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &FetchError{Reason: ReasonInvalidJSON, Err: err}
	}
	if len(items) == 0 {
		return nil, &FetchError{Reason: ReasonNotFound}
	}

	var last model.NovelInfo
	if err := json.Unmarshal(items[len(items)-1], &last); err != nil {
		return nil, &FetchError{Reason: ReasonNotFound, Err: err}
	}
	if last.Info == nil {
		return nil, &FetchError{Reason: ReasonNotFound}
	}
	return last.Info.Novel(adult), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
