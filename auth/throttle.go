package auth

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const (
	maxFailures   = 10
	failureWindow = 15 * time.Minute
)

// throttle counts failed login attempts per identifier. Entries expire on
// their own, so a locked-out identifier frees itself after the window.
type throttle struct {
	failures *ttlcache.Cache[string, int]
}

func newThrottle() *throttle {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, int](failureWindow),
		ttlcache.WithDisableTouchOnHit[string, int](),
	)
	go cache.Start()
	return &throttle{failures: cache}
}

func (t *throttle) blocked(identifier string) bool {
	item := t.failures.Get(identifier)
	return item != nil && item.Value() >= maxFailures
}

func (t *throttle) fail(identifier string) {
	count := 0
	if item := t.failures.Get(identifier); item != nil {
		count = item.Value()
	}
	t.failures.Set(identifier, count+1, ttlcache.DefaultTTL)
}

func (t *throttle) reset(identifier string) {
	t.failures.Delete(identifier)
}

func (t *throttle) stop() {
	t.failures.Stop()
}
