package health_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/lizark9x/connor-bot/internal/health"
	"github.com/prometheus/client_golang/prometheus"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestChecker(deps map[string]health.Pinger) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	logger := slog.Default()
	return health.NewChecker(deps, logger, reg), reg
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c, _ := newTestChecker(map[string]health.Pinger{
		"telegram": &mockPinger{err: errors.New("api down")},
	})

	result := c.Liveness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	if result.Checks != nil {
		t.Fatalf("expected no checks, got %v", result.Checks)
	}
}

func TestReadiness_AllUp(t *testing.T) {
	c, reg := newTestChecker(map[string]health.Pinger{
		"telegram": &mockPinger{},
		"notion":   &mockPinger{},
	})

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	for _, name := range []string{"telegram", "notion"} {
		check, ok := result.Checks[name]
		if !ok {
			t.Fatalf("missing %s check", name)
		}
		if check.Status != "up" {
			t.Fatalf("expected %s up, got %s", name, check.Status)
		}
	}

	if gauge := testGauge(t, reg, "connor_health_check_up", "telegram"); gauge != 1 {
		t.Fatalf("expected gauge 1, got %f", gauge)
	}
}

func TestReadiness_OneDependencyDown(t *testing.T) {
	c, reg := newTestChecker(map[string]health.Pinger{
		"telegram": &mockPinger{},
		"notion":   &mockPinger{err: errors.New("connection refused")},
	})

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Fatalf("expected status down, got %s", result.Status)
	}
	if result.Checks["telegram"].Status != "up" {
		t.Fatal("telegram should stay up")
	}
	notion := result.Checks["notion"]
	if notion.Status != "down" {
		t.Fatalf("expected notion down, got %s", notion.Status)
	}
	if notion.Error == "" {
		t.Fatal("expected error message")
	}

	if gauge := testGauge(t, reg, "connor_health_check_up", "notion"); gauge != 0 {
		t.Fatalf("expected gauge 0, got %f", gauge)
	}
}

func TestReadiness_NoDependencies(t *testing.T) {
	c, _ := newTestChecker(nil)

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up with no deps, got %s", result.Status)
	}
}

func testGauge(t *testing.T, reg *prometheus.Registry, name, depLabel string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "dependency" && lp.GetValue() == depLabel {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{dependency=%q} not found", name, depLabel)
	return 0
}
