package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"resumeBuilder/internal/metrics"
)

const defaultTimeout = 60 * time.Second

// Archiver stores a copy of every successfully exported PDF.
type Archiver interface {
	Archive(ctx context.Context, objectName string, data []byte) error
}

// Result is a converted document ready to be sent as an attachment.
type Result struct {
	Data      []byte
	Filename  string
	Converter string
}

// Exporter 负责把完整 HTML 文档交给转换器，并在成功后可选地归档。
type Exporter struct {
	converter Converter
	archive   Archiver
	timeout   time.Duration
	logger    *slog.Logger
}

// ExporterOption customises an Exporter.
type ExporterOption func(*Exporter)

// WithArchive uploads every produced PDF to archive. Upload failures are only logged.
func WithArchive(archive Archiver) ExporterOption {
	return func(e *Exporter) {
		e.archive = archive
	}
}

// WithTimeout bounds a single conversion.
func WithTimeout(timeout time.Duration) ExporterOption {
	return func(e *Exporter) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// NewExporter 创建导出器；converter 为 nil 时所有导出都返回 ErrUnavailable。
func NewExporter(converter Converter, logger *slog.Logger, opts ...ExporterOption) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Exporter{
		converter: converter,
		timeout:   defaultTimeout,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Available reports whether a server-side converter is configured.
func (e *Exporter) Available() bool {
	return e.converter != nil
}

// Export converts document and returns the PDF with its download filename.
func (e *Exporter) Export(ctx context.Context, id uint, fullName, document string) (*Result, error) {
	if e.converter == nil {
		metrics.ObservePDFExport("none", metrics.ExportUnavailable, 0)
		return nil, ErrUnavailable
	}

	name := e.converter.Name()
	convertCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	data, err := e.converter.Convert(convertCtx, document)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.ObservePDFExport(name, metrics.ExportFailed, elapsed)
		return nil, fmt.Errorf("convert resume %d with %s: %w", id, name, err)
	}
	metrics.ObservePDFExport(name, metrics.ExportPDF, elapsed)

	if e.archive != nil {
		objectName := ArchiveKey(id)
		if err := e.archive.Archive(ctx, objectName, data); err != nil {
			e.logger.Warn("archive pdf failed",
				slog.Uint64("resume_id", uint64(id)),
				slog.String("object", objectName),
				slog.Any("error", err),
			)
		}
	}

	return &Result{
		Data:      data,
		Filename:  Filename(fullName),
		Converter: name,
	}, nil
}

// Filename 返回下载文件名 `{full_name}_resume.pdf`。
func Filename(fullName string) string {
	return fullName + "_resume.pdf"
}

// ArchiveKey returns a fresh object name under resumes/{id}/.
func ArchiveKey(id uint) string {
	return fmt.Sprintf("resumes/%d/%s.pdf", id, uuid.NewString())
}
