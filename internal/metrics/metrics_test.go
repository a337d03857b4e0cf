package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveEnhancement(t *testing.T) {
	before := testutil.ToFloat64(enhanceTotal.WithLabelValues("summary", EnhanceFallback))

	ObserveEnhancement("summary", EnhanceFallback)

	assert.Equal(t, before+1, testutil.ToFloat64(enhanceTotal.WithLabelValues("summary", EnhanceFallback)))
}

func TestObservePDFExport_UnavailableSkipsDuration(t *testing.T) {
	before := testutil.CollectAndCount(pdfExportDuration)

	ObservePDFExport("none", ExportUnavailable, 0)
	assert.Equal(t, before, testutil.CollectAndCount(pdfExportDuration))

	ObservePDFExport("wkhtmltopdf-test", ExportPDF, 0.5)
	assert.Equal(t, before+1, testutil.CollectAndCount(pdfExportDuration))
}

func TestGinMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/resume/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	labels := prometheus.Labels{"method": http.MethodGet, "route": "/resume/:id", "status": "200"}
	before := testutil.ToFloat64(requestTotal.With(labels))

	for _, path := range []string{"/resume/1", "/resume/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(requestTotal.With(labels)))
}
