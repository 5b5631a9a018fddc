package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMinute: 3, CleanupInterval: time.Hour})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatalf("fourth request should be limited")
	}

	// Other clients are tracked independently.
	if !l.Allow("5.6.7.8") {
		t.Fatalf("fresh client must be allowed")
	}
	if l.ActiveClients() != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", l.ActiveClients())
	}
}
