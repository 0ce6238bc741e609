package cache

import (
	"context"
	"testing"
	"time"
)

func TestReportKeyIncludesGeneration(t *testing.T) {
	got := ReportKey(3, "accounting", "custom", "2025-05-01", "")
	want := "report:g3:accounting:custom:2025-05-01:-"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	if got := buildKey(" settings:shop_config "); got != redisPrefix+":settings:shop_config" {
		t.Fatalf("unexpected key: %q", got)
	}
	if got := buildKey(""); got != redisPrefix {
		t.Fatalf("empty key should map to prefix, got %q", got)
	}
}

func TestDisabledCacheIsPassThrough(t *testing.T) {
	ctx := context.Background()
	if err := InitRedis(nil); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
	var dest map[string]int
	hit, err := GetJSON(ctx, "k", &dest)
	if err != nil || hit {
		t.Fatalf("disabled get should miss, hit=%v err=%v", hit, err)
	}
	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("disabled set failed: %v", err)
	}
	if err := BumpReportGeneration(ctx); err != nil {
		t.Fatalf("disabled bump failed: %v", err)
	}
	gen, err := ReportGeneration(ctx)
	if err != nil || gen != 0 {
		t.Fatalf("disabled generation should be 0, got %d err=%v", gen, err)
	}
}
