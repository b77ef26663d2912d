package middleware

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SenderRateLimiter throttles messages per Messenger sender using a token
// bucket per sender ID.
type SenderRateLimiter struct {
	perMinute int
	burst     int
	limiters  map[string]*rate.Limiter
	mu        sync.Mutex
	logger    *zap.Logger
}

func NewSenderRateLimiter(perMinute, burst int, logger *zap.Logger) *SenderRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 3
	}
	return &SenderRateLimiter{
		perMinute: perMinute,
		burst:     burst,
		limiters:  make(map[string]*rate.Limiter),
		logger:    logger,
	}
}

// Allow reports whether a message from the given sender may be processed
// now, consuming a token if so.
func (srl *SenderRateLimiter) Allow(senderID string) bool {
	srl.mu.Lock()

	// Sender IDs are unbounded; reset the map before it grows without limit.
	if len(srl.limiters) > 1000 {
		srl.logger.Info("Resetting rate limiter cache",
			zap.Int("senders", len(srl.limiters)))
		srl.limiters = make(map[string]*rate.Limiter)
	}

	limiter, exists := srl.limiters[senderID]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(float64(srl.perMinute)/60.0), srl.burst)
		srl.limiters[senderID] = limiter
	}
	srl.mu.Unlock()

	return limiter.Allow()
}
