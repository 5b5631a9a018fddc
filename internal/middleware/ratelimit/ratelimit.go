// Package ratelimit caps per-client request rates with a fixed one-minute
// window per client IP.
package ratelimit

import (
	"net/http"
	"sync"
	"time"
)

type Limiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo

	requestsPerMinute int
	cleanupInterval   time.Duration
	stopCleanup       chan struct{}
	shutdownOnce      sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 120,
		CleanupInterval:   5 * time.Minute,
	}
}

func NewLimiter(config Config) *Limiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = DefaultConfig().RequestsPerMinute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultConfig().CleanupInterval
	}

	l := &Limiter{
		clients:           make(map[string]*clientInfo),
		requestsPerMinute: config.RequestsPerMinute,
		cleanupInterval:   config.CleanupInterval,
		stopCleanup:       make(chan struct{}),
	}
	go l.startCleanup()
	return l
}

// Allow reports whether a request from clientIP fits within the window.
func (l *Limiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	client, ok := l.clients[clientIP]
	if !ok || now.Sub(client.lastRequest) > time.Minute {
		l.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= l.requestsPerMinute
}

func (l *Limiter) startCleanup() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanupStaleEntries()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *Limiter) cleanupStaleEntries() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range l.clients {
		if client.lastRequest.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// ActiveClients returns the number of currently tracked clients.
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Stop shuts down the cleanup goroutine.
func (l *Limiter) Stop() {
	l.shutdownOnce.Do(func() {
		close(l.stopCleanup)
	})
}

// Middleware rejects over-limit clients with 429.
func (l *Limiter) Middleware(extractIP func(*http.Request) string, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(extractIP(r)) {
				if onLimit != nil {
					onLimit(w, r)
				} else {
					w.Header().Set("Retry-After", "60")
					http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
