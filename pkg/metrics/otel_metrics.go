package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// PDF 提取相关指标
	ExtractionTotal    metric.Int64Counter
	ExtractionDuration metric.Float64Histogram
	UploadBytes        metric.Int64Histogram

	// 打印导出相关指标
	ExportTotal      metric.Int64Counter
	ExportDuration   metric.Float64Histogram
	ExportQueueDepth metric.Int64UpDownCounter

	// 考勤表保存相关指标
	SheetSaveTotal metric.Int64Counter
}

var (
	metrics *OTelMetrics
	meter   = otel.Meter("attendsheet")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.ExtractionTotal, err = meter.Int64Counter(
		"extraction_total",
		metric.WithDescription("Total number of PDF extraction requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	metrics.ExtractionDuration, err = meter.Float64Histogram(
		"extraction_duration_seconds",
		metric.WithDescription("Time spent calling the extraction service in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.UploadBytes, err = meter.Int64Histogram(
		"upload_bytes",
		metric.WithDescription("Size of uploaded PDF files in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return err
	}

	metrics.ExportTotal, err = meter.Int64Counter(
		"export_total",
		metric.WithDescription("Total number of sheet exports"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return err
	}

	metrics.ExportDuration, err = meter.Float64Histogram(
		"export_duration_seconds",
		metric.WithDescription("Time spent rendering export documents in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.ExportQueueDepth, err = meter.Int64UpDownCounter(
		"export_queue_depth",
		metric.WithDescription("Number of export requests waiting in queue"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	metrics.SheetSaveTotal, err = meter.Int64Counter(
		"sheet_save_total",
		metric.WithDescription("Total number of sheet save attempts"),
		metric.WithUnit("{save}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics 获取全局指标实例
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordExtraction 记录一次提取调用的结果和耗时
func (m *OTelMetrics) RecordExtraction(ctx context.Context, status string, duration float64, sizeBytes int64) {
	m.ExtractionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
	m.ExtractionDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("status", status),
	))
	m.UploadBytes.Record(ctx, sizeBytes)
}

// RecordExport 记录一次导出渲染的结果和耗时
func (m *OTelMetrics) RecordExport(ctx context.Context, status string, duration float64) {
	m.ExportTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
	m.ExportDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// AddExportQueueDepth 队列入队 +1，出队 -1
func (m *OTelMetrics) AddExportQueueDepth(ctx context.Context, delta int64) {
	m.ExportQueueDepth.Add(ctx, delta)
}

// RecordSheetSave 记录保存尝试，status 为 success/conflict/failed
func (m *OTelMetrics) RecordSheetSave(ctx context.Context, status string) {
	m.SheetSaveTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}
