package ngxhttp

import "log/slog"

type requestConfig struct {
	subrequest bool
	method     string
	userAgent  string
	logger     *slog.Logger
}

// RequestOption configures NewRequest.
type RequestOption func(*requestConfig)

// AsSubrequest marks the request as a subrequest: its body is part of a
// parent's response, so it must not end the body.
func AsSubrequest() RequestOption {
	return func(c *requestConfig) { c.subrequest = true }
}

// WithMethod sets the request method. Default: GET.
func WithMethod(m string) RequestOption {
	return func(c *requestConfig) {
		if m != "" {
			c.method = m
		}
	}
}

// WithUserAgent sets the User-Agent request header value.
func WithUserAgent(ua string) RequestOption {
	return func(c *requestConfig) { c.userAgent = ua }
}

// WithLogger sets the base logger. Default: slog.Default().
func WithLogger(l *slog.Logger) RequestOption {
	return func(c *requestConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
