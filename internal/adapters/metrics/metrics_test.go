package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/metrics"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestPrometheus_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewPrometheus(registry)

	m.CacheHit("core")
	m.CacheHit("core")
	m.CacheMiss("app")
	m.CacheSave("app")
	m.CacheError("app", "save")

	expected := `
# HELP kiln_cache_hits_total Builds satisfied by restoring cached outputs
# TYPE kiln_cache_hits_total counter
kiln_cache_hits_total{project="core"} 2
# HELP kiln_cache_misses_total Builds that invoked the compiler
# TYPE kiln_cache_misses_total counter
kiln_cache_misses_total{project="app"} 1
# HELP kiln_cache_saves_total Build outputs stored in the cache
# TYPE kiln_cache_saves_total counter
kiln_cache_saves_total{project="app"} 1
# HELP kiln_cache_errors_total Cache failures downgraded to warnings
# TYPE kiln_cache_errors_total counter
kiln_cache_errors_total{operation="save",project="app"} 1
`
	err := testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"kiln_cache_hits_total", "kiln_cache_misses_total", "kiln_cache_saves_total", "kiln_cache_errors_total")
	require.NoError(t, err)
}

func TestPrometheus_BuildDuration(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewPrometheus(registry)

	m.BuildDuration("core", 1500*time.Millisecond)
	m.BuildDuration("core", 200*time.Millisecond)

	count, err := testutil.GatherAndCount(registry, "kiln_build_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheus_WriteTextfile(t *testing.T) {
	m := metrics.NewPrometheus(prometheus.NewRegistry())
	m.CacheHit("core")

	path := filepath.Join(t.TempDir(), "kiln.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `kiln_cache_hits_total{project="core"} 1`)
}

func TestPrometheus_WriteTextfile_Failure(t *testing.T) {
	m := metrics.NewPrometheus(prometheus.NewRegistry())

	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "kiln.prom"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMetricsWriteFailed.Error())
}
