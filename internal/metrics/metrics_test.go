package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/NaiduBagana/cam2cart/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_ObserveLoad(t *testing.T) {
	r := NewRegistry()

	r.ObserveLoad(models.SourceRemote, "", 0.1)
	r.ObserveLoad(models.SourceFallback, "status", 0.2)
	r.ObserveLoad(models.SourceFallback, "decode", 0.3)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Loads.WithLabelValues("remote")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Loads.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.LoadFailures.WithLabelValues("status")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.LoadFailures.WithLabelValues("decode")))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.Superseded.Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "cam2cart_loads_superseded_total 1")
}
