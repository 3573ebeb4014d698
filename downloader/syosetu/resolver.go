package syosetu

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"syosetu-downloader/config"
	"syosetu-downloader/utils"
)

// RedirectResolver follows a single redirect hop with a HEAD request.
// Images on syosetu are linked through an indirection that points at the
// real file.
type RedirectResolver struct {
	client *resty.Client
	log    zerolog.Logger
}

func NewRedirectResolver(cfg *config.Config, log zerolog.Logger) *RedirectResolver {
	return &RedirectResolver{
		client: utils.NewNoRedirectClient(cfg),
		log:    log,
	}
}

func (r *RedirectResolver) Resolve(ctx context.Context, url string) string {
	resp, err := r.client.R().SetContext(ctx).Head(url)
	if err != nil {
		r.log.Debug().Err(err).Str("url", url).Msg("unable to resolve image")
		return url
	}

	if code := resp.StatusCode(); code >= 300 && code <= 399 {
		if location := resp.Header().Get("Location"); location != "" {
			r.log.Debug().Str("url", url).Str("location", location).Msg("resolved image")
			return location
		}
	}
	return url
}
