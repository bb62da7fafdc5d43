package middleware

import (
	"conversational-task-management/config"
	"conversational-task-management/pkg/log"
)

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
	config  config.RateLimitConfig
}

func New(l log.Logger, cfg config.RateLimitConfig) Middleware {
	return Middleware{
		l:       l,
		limiter: newRateLimiter(cfg.RequestsPerMin),
		config:  cfg,
	}
}
