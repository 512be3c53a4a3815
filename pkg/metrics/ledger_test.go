package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestLedgerMetricsRegisterAndRecord(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg)

	m.IncOutcome("stock.apply", "committed")
	m.IncOutcome("stock.apply", "rejected")
	m.IncOutcome("", "")
	m.ObserveDuration("booking.create", 25*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := map[string]bool{}
	for _, fam := range families {
		found[fam.GetName()] = true
	}
	if !found["ledger_operation_outcomes_total"] {
		t.Fatal("outcome counter not registered")
	}
	if !found["ledger_operation_duration_seconds"] {
		t.Fatal("duration histogram not registered")
	}
}

func TestLedgerMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *LedgerMetrics
	m.IncOutcome("stock.apply", "committed")
	m.ObserveDuration("stock.apply", time.Second)

	empty := NewLedgerMetrics(nil)
	empty.IncOutcome("stock.apply", "committed")
	empty.ObserveDuration("stock.apply", time.Second)
}
