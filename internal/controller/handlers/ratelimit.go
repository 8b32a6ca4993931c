package handlers

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL через сколько забывается лимитер молчащего чата
const limiterIdleTTL = 10 * time.Minute

// RateLimiter ограничивает частоту сообщений от одного чата
type RateLimiter struct {
	mu       sync.Mutex // поиск и создание лимитера чата одной операцией
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
	logger   *zap.Logger
}

// NewRateLimiter perSecond сообщений в секунду на чат, burst подряд
func NewRateLimiter(perSecond float64, burst int, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: cache.New(limiterIdleTTL, 2*limiterIdleTTL),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		logger:   logger,
	}
}

// Allow можно ли обработать ещё одно сообщение чата
func (l *RateLimiter) Allow(chatID int64) bool {
	key := strconv.FormatInt(chatID, 10)

	l.mu.Lock()
	var limiter *rate.Limiter
	if v, ok := l.limiters.Get(key); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(l.limit, l.burst)
	}
	// продлеваем TTL при каждом сообщении
	l.limiters.SetDefault(key, limiter)
	l.mu.Unlock()

	return limiter.Allow()
}

// Middleware для bot.WithMiddlewares
func (l *RateLimiter) Middleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message != nil && !l.Allow(update.Message.Chat.ID) {
			l.logger.Warn("Rate limit exceeded", zap.Int64("chat_id", update.Message.Chat.ID))
			return
		}
		next(ctx, b, update)
	}
}
