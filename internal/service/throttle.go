package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const throttleIdleTTL = 10 * time.Minute

type attempt struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginThrottle limits login attempts per normalized email. Entries idle for
// longer than throttleIdleTTL are pruned opportunistically on access.
type loginThrottle struct {
	mu       sync.Mutex
	attempts map[string]*attempt
	rps      rate.Limit
	burst    int
}

func newLoginThrottle(rps float64, burst int) *loginThrottle {
	return &loginThrottle{
		attempts: make(map[string]*attempt),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (t *loginThrottle) allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.prune(now)

	a, exists := t.attempts[key]
	if !exists {
		a = &attempt{limiter: rate.NewLimiter(t.rps, t.burst)}
		t.attempts[key] = a
	}
	a.lastSeen = now
	return a.limiter.Allow()
}

func (t *loginThrottle) prune(now time.Time) {
	for key, a := range t.attempts {
		if now.Sub(a.lastSeen) > throttleIdleTTL {
			delete(t.attempts, key)
		}
	}
}
