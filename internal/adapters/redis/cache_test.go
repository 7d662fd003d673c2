package redisad

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"andaman_market/internal/domain"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	return New(srv.Addr(), "", 0)
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	in := domain.HotelView{ID: 42, Name: "Coral Bay"}
	if err := c.Set(ctx, "hotel:42", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.HotelView
	hit, err := c.Get(ctx, "hotel:42", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected a hit")
	}
	if out.ID != 42 || out.Name != "Coral Bay" {
		t.Fatalf("unexpected value: %+v", out)
	}
}

func TestCache_MissIsNotAnError(t *testing.T) {
	c := testCache(t)

	var out domain.HotelView
	hit, err := c.Get(context.Background(), "hotel:absent", &out)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if hit {
		t.Fatal("expected a miss")
	}
}

func TestCache_Del(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "services:all", []domain.ServiceSummary{{ID: 1}}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "services:all"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var out []domain.ServiceSummary
	hit, err := c.Get(ctx, "services:all", &out)
	if err != nil || hit {
		t.Fatalf("expected miss after delete, hit=%v err=%v", hit, err)
	}
}
