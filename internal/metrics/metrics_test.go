package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/properties/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/properties/:id", "204"))

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/properties/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/properties/:id", "204"))
	assert.Equal(t, 2.0, after-before)
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(cacheLookups.WithLabelValues("hit"))
	CacheLookup("hit")
	assert.Equal(t, 1.0, testutil.ToFloat64(cacheLookups.WithLabelValues("hit"))-before)

	before = testutil.ToFloat64(aiRequests.WithLabelValues("insights", "disabled"))
	AIRequest("insights", "disabled", 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(aiRequests.WithLabelValues("insights", "disabled"))-before)

	before = testutil.ToFloat64(overdueMarked)
	OverdueMarked(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(overdueMarked)-before)

	AIRequest("rent", "success", 1500*time.Millisecond)
}

func TestHandlerExposesCollectors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", Handler())
	CacheWrite("ok")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "landlord_cache_writes_total"))
}
