package utils

import (
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"syosetu-downloader/config"
)

// AgeGateCookie is required by syosetu to serve pages, even for all-ages novels.
var AgeGateCookie = &http.Cookie{Name: "over18", Value: "yes"}

// NewRestyClient builds the client used for API and chapter requests.
// Retrying is left to the callers, which know whether a failure is fatal.
func NewRestyClient(cfg *config.Config, timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
	})
	client.SetTimeout(timeout).
		SetLogger(disableLogger{}).
		SetCookie(AgeGateCookie).
		SetHeader("Accept-Charset", "utf-8").
		SetHeader("User-Agent", cfg.UserAgent)
	return client
}

// NewNoRedirectClient returns a client that hands back 3xx responses
// instead of following them.
func NewNoRedirectClient(cfg *config.Config) *resty.Client {
	return NewRestyClient(cfg, cfg.ResolveTimeout).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
}

type disableLogger struct{}

func (d disableLogger) Errorf(string, ...interface{}) {}
func (d disableLogger) Warnf(string, ...interface{})  {}
func (d disableLogger) Debugf(string, ...interface{}) {}

// ZerologLogger forwards resty's internal messages to a zerolog logger.
type ZerologLogger struct {
	Logger zerolog.Logger
}

func (l ZerologLogger) Errorf(format string, v ...interface{}) {
	l.Logger.Error().Msgf(format, v...)
}

func (l ZerologLogger) Warnf(format string, v ...interface{}) {
	l.Logger.Warn().Msgf(format, v...)
}

func (l ZerologLogger) Debugf(format string, v ...interface{}) {
	l.Logger.Debug().Msgf(format, v...)
}
