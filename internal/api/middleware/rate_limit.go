package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"cosmoport/pkg/redis"
	"cosmoport/pkg/response"
)

// RateLimit 写接口限流中间件
//
// rdb 非 nil 时使用 Redis 滑动窗口，多实例共享计数；
// rdb 为 nil 或 Redis 出错时降级为进程内按 IP 的令牌桶。
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	local := newLocalLimiter(limit, window)

	return func(c *gin.Context) {
		var (
			allowed bool
			err     error
		)
		if rdb != nil {
			key := fmt.Sprintf("%s:%s", c.ClientIP(), c.FullPath())
			allowed, err = rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		}
		if rdb == nil || err != nil {
			allowed = local.allow(c.ClientIP())
		}

		if !allowed {
			response.TooManyRequests(c, 10004, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}

// localLimiter 进程内按客户端 IP 的令牌桶集合。
// 空闲超过一个窗口的桶已回满，与新建的桶等价，按窗口周期清理。
type localLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*localEntry
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type localEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLocalLimiter(limit int, window time.Duration) *localLimiter {
	return &localLimiter{
		limiters:  make(map[string]*localEntry),
		every:     rate.Every(window / time.Duration(limit)),
		burst:     limit,
		idle:      window,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *localLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	e, ok := l.limiters[ip]
	if !ok {
		e = &localEntry{lim: rate.NewLimiter(l.every, l.burst)}
		l.limiters[ip] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1)
}

// sweep 删除空闲超过 idle 的条目，调用方须持有锁
func (l *localLimiter) sweep(now time.Time) {
	for ip, e := range l.limiters {
		if now.Sub(e.lastSeen) >= l.idle {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}
