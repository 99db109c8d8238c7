package routes

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heliostat/heliostat/internal/stats"
)

func newTestPromRegistry(t *testing.T, registry *stats.Registry) *prometheus.Registry {
	t.Helper()

	promReg := prometheus.NewRegistry()
	if err := registry.Register(promReg); err != nil {
		t.Fatalf("注册指标失败: %v", err)
	}
	return promReg
}
