package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 文本润色结果的取值。
const (
	EnhanceBackend  = "backend"
	EnhanceFallback = "fallback"
	EnhanceOriginal = "original"
)

// PDF 导出结果的取值。
const (
	ExportPDF         = "pdf"
	ExportFailed      = "failed"
	ExportUnavailable = "unavailable"
)

var (
	enhanceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumebuilder",
			Subsystem: "enhance",
			Name:      "total",
			Help:      "文本润色次数，按字段与结果来源区分。",
		},
		[]string{"field", "outcome"},
	)

	pdfExportTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumebuilder",
			Subsystem: "pdf",
			Name:      "exports_total",
			Help:      "PDF 导出次数，按转换器与结果区分。",
		},
		[]string{"converter", "outcome"},
	)

	pdfExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumebuilder",
			Subsystem: "pdf",
			Name:      "export_duration_seconds",
			Help:      "PDF 转换耗时分布（秒）。",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"converter"},
	)
)

// ObserveEnhancement records where an enhanced value came from.
func ObserveEnhancement(field, outcome string) {
	enhanceTotal.WithLabelValues(field, outcome).Inc()
}

// ObservePDFExport records a conversion attempt; seconds is ignored when the
// converter never ran.
func ObservePDFExport(converter, outcome string, seconds float64) {
	pdfExportTotal.WithLabelValues(converter, outcome).Inc()
	if outcome != ExportUnavailable {
		pdfExportDuration.WithLabelValues(converter).Observe(seconds)
	}
}
