// Package middleware provides HTTP middleware for the Bistro API.
package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/response"
)

// bucket tracks a fixed-window request count for one client.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (b *bucket) allow(max int, window time.Duration, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.After(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}

	b.count++
	return b.count <= max
}

// Limiter is a per-IP fixed-window rate limiter.
type Limiter struct {
	max     int
	window  time.Duration
	trusted []netip.Prefix

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter allows max requests per window for each client IP. The client
// IP is the peer address unless the peer is one of trusted, in which case
// the nearest untrusted X-Forwarded-For hop is used.
func NewLimiter(max int, window time.Duration, trusted ...netip.Prefix) *Limiter {
	return &Limiter{max: max, window: window, trusted: trusted, buckets: map[string]*bucket{}}
}

// ParseProxies reads proxy addresses as CIDRs or bare IPs.
func ParseProxies(list []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(list))
	for _, s := range list {
		if strings.Contains(s, "/") {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", s, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", s, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func (l *Limiter) bucket(ip string, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Evict expired buckets lazily so the map stays bounded.
	if len(l.buckets) > 10_000 {
		for k, b := range l.buckets {
			b.mu.Lock()
			expired := now.After(b.resetAt)
			b.mu.Unlock()
			if expired {
				delete(l.buckets, k)
			}
		}
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[ip] = b
	}
	return b
}

// Middleware rejects requests over the limit with 429. A limiter with
// max <= 0 lets everything through.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	if l == nil || l.max <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		if !l.bucket(l.clientIP(r), now).allow(l.max, l.window, now) {
			response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(peer); err == nil {
		peer = host
	}
	if !l.trusts(peer) {
		return peer
	}

	// Walk right to left; everything left of the first untrusted hop is
	// client-supplied.
	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !l.trusts(hop) {
			return hop
		}
	}
	return peer
}

func (l *Limiter) trusts(ip string) bool {
	if len(l.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range l.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
