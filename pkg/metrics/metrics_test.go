package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("booking", prometheus.NewRegistry())

	m.ObserveHTTPRequest("GET", "/api/v1/tenants/{tenantId}/available-slots", "200", 10*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/tenants/{tenantId}/available-slots", "200", 20*time.Millisecond)
	m.CacheHit("slots")
	m.CacheMiss("slots")
	m.CacheMiss("slots")

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("booking", "GET", "/api/v1/tenants/{tenantId}/available-slots", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequestsTotal.WithLabelValues("booking", "slots", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheRequestsTotal.WithLabelValues("booking", "slots", "miss")))
}

func TestMetrics_DBPoolAndQueries(t *testing.T) {
	m := NewWithRegistry("booking", prometheus.NewRegistry())

	m.SetDBPoolStats(5, 2, 3)
	m.ObserveDBQuery("select", time.Millisecond, nil)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 5.0, testutil.ToFloat64(m.DBOpenConnections.WithLabelValues("booking")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DBInUseConnections.WithLabelValues("booking")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DBIdleConnections.WithLabelValues("booking")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.DBQueryDuration))
}

func TestMetrics_Booking(t *testing.T) {
	m := NewWithRegistry("booking", prometheus.NewRegistry())

	m.SlotQuery("engine")
	m.SlotQuery("cache")
	m.SlotQuery("cache")
	m.BookingCreated()
	m.BookingConflict("overlap")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SlotQueriesTotal.WithLabelValues("booking", "cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreatedTotal.WithLabelValues("booking")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflictsTotal.WithLabelValues("booking", "overlap")))
}
