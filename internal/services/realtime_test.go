package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/helpers"
)

func TestRealtimeTick_AppliesVariation(t *testing.T) {
	store := revenueStore()
	hub := &fakeHub{clients: 1}
	svc := NewRealtimeService(store, hub, time.Second)
	svc.random = func() float64 { return 0.75 } // +0.5%

	if err := svc.Tick(helpers.TestCtx()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.updated) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(store.updated))
	}
	rev := store.updated[0]
	if math.Abs(rev.Value-125625) > 1e-6 {
		t.Errorf("value = %v, want 125625", rev.Value)
	}
	if math.Abs(rev.Change-0.5) > 1e-9 {
		t.Errorf("change = %v, want 0.5", rev.Change)
	}
	if rev.Trend != models.TrendStable {
		t.Errorf("trend = %q, want stable", rev.Trend)
	}
	if len(hub.messages) != 2 || hub.messages[0].Type != dto.MessageMetricUpdate {
		t.Fatalf("unexpected broadcasts %+v", hub.messages)
	}
}

func TestRealtimeTick_StoreError(t *testing.T) {
	store := revenueStore()
	store.listErr = errors.New("boom")
	svc := NewRealtimeService(store, &fakeHub{clients: 1}, time.Second)
	if err := svc.Tick(helpers.TestCtx()); err == nil {
		t.Fatal("expected error")
	}
}

func TestTrendOf(t *testing.T) {
	tests := []struct {
		change float64
		want   string
	}{
		{1.5, models.TrendUp},
		{1, models.TrendStable},
		{0, models.TrendStable},
		{-1, models.TrendStable},
		{-1.01, models.TrendDown},
	}
	for _, tt := range tests {
		if got := trendOf(tt.change); got != tt.want {
			t.Errorf("trendOf(%v) = %q, want %q", tt.change, got, tt.want)
		}
	}
}

func TestPercentChange_ZeroBase(t *testing.T) {
	if got := percentChange(0, 10); got != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestRealtimeRun_SkipsWithoutClients(t *testing.T) {
	store := revenueStore()
	hub := &fakeHub{}
	svc := NewRealtimeService(store, hub, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(helpers.TestCtx(), 40*time.Millisecond)
	defer cancel()
	svc.Run(ctx)

	if hub.sent() != 0 || len(store.updated) != 0 {
		t.Fatalf("ticked with no clients: %d messages", hub.sent())
	}
}

func TestRealtimeRun_TicksWithClients(t *testing.T) {
	store := revenueStore()
	hub := &fakeHub{clients: 2}
	svc := NewRealtimeService(store, hub, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(helpers.TestCtx(), 60*time.Millisecond)
	defer cancel()
	svc.Run(ctx)

	if hub.sent() == 0 {
		t.Fatal("expected at least one broadcast")
	}
}
