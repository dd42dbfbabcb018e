package fluxcrystal

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaultRouteRate is the steady-state request rate assumed for a route
// before the server has told us otherwise via a 429.
const defaultRouteRate = 5 // requests/sec

// routeLimiter proactively throttles requests per REST route, tightening
// its allowance whenever the server reports a rate limit so the client
// backs off before hitting 429 again rather than only reacting after the
// fact.
type routeLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
}

func newRouteLimiter() *routeLimiter {
	return &routeLimiter{buckets: make(map[string]*rate.Limiter)}
}

func (rl *routeLimiter) bucket(route string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	b, ok := rl.buckets[route]
	if !ok {
		b = rate.NewLimiter(rate.Limit(defaultRouteRate), defaultRouteRate)
		rl.buckets[route] = b
	}
	return b
}

// wait blocks until route is clear to send another request, or ctx is done.
func (rl *routeLimiter) wait(ctx context.Context, route string) error {
	return rl.bucket(route).Wait(ctx)
}

// tighten narrows the bucket for route after the server reports retryAfter,
// so the next Wait call on this route doesn't immediately race into another
// 429. The route's limit becomes one request per retryAfter with a burst of
// 1, and stays so until the next tighten; it does not return to
// defaultRouteRate.
func (rl *routeLimiter) tighten(route string, retryAfter time.Duration) {
	b := rl.bucket(route)
	b.SetBurst(1)
	b.SetLimit(rate.Every(retryAfter))
}
