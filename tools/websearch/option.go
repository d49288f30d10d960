package websearch

import (
	"time"

	"github.com/go-resty/resty/v2"
)

type Option func(*Config)

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.timeout = timeout
	}
}

func WithClient(clt *resty.Client) Option {
	return func(c *Config) {
		c.client = clt
	}
}
