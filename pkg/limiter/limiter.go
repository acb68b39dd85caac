package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultTTL is used when Limit is given a non-positive ttl.
const DefaultTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitors struct {
	mu    sync.Mutex
	rps   rate.Limit
	burst int
	ttl   time.Duration
	byIP  map[string]*visitor
}

func newVisitors(rps int, burst int, ttl time.Duration) *visitors {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &visitors{
		rps:   rate.Limit(rps),
		burst: burst,
		ttl:   ttl,
		byIP:  make(map[string]*visitor),
	}
}

func (v *visitors) get(ip string, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	vis, ok := v.byIP[ip]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.byIP[ip] = vis
	}
	vis.lastSeen = now

	return vis.limiter
}

func (v *visitors) cleanup(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for ip, vis := range v.byIP {
		if now.Sub(vis.lastSeen) > v.ttl {
			delete(v.byIP, ip)
		}
	}
}

// Limit allows rps requests per second per client IP with the given burst.
// Clients idle for longer than ttl are forgotten; a non-positive ttl means
// DefaultTTL. A non-positive rps disables limiting.
func Limit(rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	v := newVisitors(rps, burst, ttl)

	go func() {
		for now := range time.Tick(v.ttl) {
			v.cleanup(now)
		}
	}()

	return func(c *gin.Context) {
		if !v.get(c.ClientIP(), time.Now()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
