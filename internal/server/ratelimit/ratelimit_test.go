package ratelimit

import (
	"testing"
	"time"
)

func TestTokenBucketExhaustsAndRefills(t *testing.T) {
	bucket := newTokenBucket(3, 100) // fast refill for the test

	for i := 0; i < 3; i++ {
		if !bucket.allow() {
			t.Fatalf("Expected request %d to be allowed", i)
		}
	}
	if bucket.allow() {
		t.Error("Expected bucket to be empty")
	}

	time.Sleep(20 * time.Millisecond)
	if !bucket.allow() {
		t.Error("Expected bucket to refill")
	}
}

func TestLimiterEnforcesEndpointBurst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/enhance", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/enhance", "POST")
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i)
		}
	}

	allowed, info := limiter.Allow("1.2.3.4", "/enhance", "POST")
	if allowed {
		t.Error("Expected burst to be exhausted")
	}
	if info.Limit != 10 {
		t.Errorf("Expected limit 10, got %d", info.Limit)
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected a positive RetryAfter")
	}

	// a different client has its own bucket
	allowed, _ = limiter.Allow("5.6.7.8", "/enhance", "POST")
	if !allowed {
		t.Error("Expected a fresh client to be allowed")
	}
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("1.2.3.4", "/enhance", "POST"); !allowed {
			t.Fatal("Expected everything to be allowed when disabled")
		}
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	if c := MatchEndpoint("/enhance", "POST", configs); c == nil || c.Path != "/enhance" {
		t.Error("Expected exact match for /enhance")
	}
	if c := MatchEndpoint("/resumes/resume_123/export", "GET", configs); c == nil || c.Path != "*/export" {
		t.Error("Expected suffix match for export endpoint")
	}
	if c := MatchEndpoint("/resumes/resume_123", "PATCH", configs); c == nil || c.Path != "/resumes/" {
		t.Error("Expected prefix match for resume patch")
	}
	if c := MatchEndpoint("/health", "GET", configs); c == nil || c.Limit != 0 {
		t.Error("Expected health check to be unlimited")
	}
	if c := MatchEndpoint("/resumes", "GET", configs); c != nil {
		t.Error("Expected reads to fall through to the default limit")
	}
}

func TestLimiterHealthUnlimited(t *testing.T) {
	limiter := NewLimiter(LoadConfig())
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("1.2.3.4", "/health", "GET"); !allowed {
			t.Fatal("Expected health check to be unlimited")
		}
	}
}
