package database

import (
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var (
	dbQueriesTotal  metric.Int64Counter
	dbQueryDuration metric.Float64Histogram
)

// InitDatabaseMetrics 初始化数据库指标
func InitDatabaseMetrics(meter metric.Meter) error {
	var err error

	dbQueriesTotal, err = meter.Int64Counter(
		"db.queries.total",
		metric.WithDescription("Total number of database queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return err
	}

	dbQueryDuration, err = meter.Float64Histogram(
		"db.query.duration",
		metric.WithDescription("Database query duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
	)
	if err != nil {
		return err
	}

	return nil
}

// OTELPlugin GORM OpenTelemetry 插件，为每个数据库操作创建 Span 并上报指标
type OTELPlugin struct {
	tracer      trace.Tracer
	serviceName string
	maxSQLLen   int
}

// NewOTELPlugin 创建插件实例
func NewOTELPlugin(serviceName string) *OTELPlugin {
	if serviceName == "" {
		serviceName = "attendsheet"
	}

	return &OTELPlugin{
		tracer:      otel.Tracer(serviceName + ".gorm"),
		serviceName: serviceName,
		maxSQLLen:   500,
	}
}

// Name 实现 gorm.Plugin 接口
func (p *OTELPlugin) Name() string {
	return "otel_plugin"
}

// Initialize 注册回调
func (p *OTELPlugin) Initialize(db *gorm.DB) error {
	callbacks := db.Callback()

	callbacks.Query().Before("gorm:query").Register("otel:before_query", p.beforeCallback)
	callbacks.Query().After("gorm:query").Register("otel:after_query", p.afterCallback)

	callbacks.Create().Before("gorm:create").Register("otel:before_create", p.beforeCallback)
	callbacks.Create().After("gorm:create").Register("otel:after_create", p.afterCallback)

	callbacks.Update().Before("gorm:update").Register("otel:before_update", p.beforeCallback)
	callbacks.Update().After("gorm:update").Register("otel:after_update", p.afterCallback)

	callbacks.Delete().Before("gorm:delete").Register("otel:before_delete", p.beforeCallback)
	callbacks.Delete().After("gorm:delete").Register("otel:after_delete", p.afterCallback)

	callbacks.Row().Before("gorm:row").Register("otel:before_row", p.beforeCallback)
	callbacks.Row().After("gorm:row").Register("otel:after_row", p.afterCallback)

	callbacks.Raw().Before("gorm:raw").Register("otel:before_raw", p.beforeCallback)
	callbacks.Raw().After("gorm:raw").Register("otel:after_raw", p.afterCallback)

	return nil
}

func (p *OTELPlugin) beforeCallback(db *gorm.DB) {
	ctx, span := p.tracer.Start(db.Statement.Context, p.operationName(db),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBSystemPostgreSQL,
			attribute.String("service.name", p.serviceName),
		),
	)

	db.InstanceSet("otel:start_time", time.Now())
	db.InstanceSet("otel:span", span)
	db.Statement.Context = ctx
}

func (p *OTELPlugin) afterCallback(db *gorm.DB) {
	spanI, ok := db.InstanceGet("otel:span")
	if !ok {
		return
	}
	span, ok := spanI.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	startI, ok := db.InstanceGet("otel:start_time")
	if !ok {
		return
	}
	start, ok := startI.(time.Time)
	if !ok {
		return
	}
	duration := time.Since(start).Seconds()

	if table := db.Statement.Table; table != "" {
		span.SetAttributes(attribute.String("db.table", table))
	}

	sql := db.Statement.SQL.String()
	if len(sql) > p.maxSQLLen {
		sql = sql[:p.maxSQLLen] + "..."
	}
	span.SetAttributes(semconv.DBStatement(sql))

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}

	status := "success"
	switch {
	case db.Error == nil:
		span.SetStatus(codes.Ok, "Success")
	case db.Error == gorm.ErrRecordNotFound:
		// 未命中不算错误
		span.SetStatus(codes.Ok, "Record not found")
	default:
		status = "error"
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	labels := []attribute.KeyValue{
		attribute.String("db.operation", p.operationName(db)),
		attribute.String("db.status", status),
	}

	dbQueriesTotal.Add(db.Statement.Context, 1, metric.WithAttributes(labels...))
	dbQueryDuration.Record(db.Statement.Context, duration, metric.WithAttributes(labels...))
}

func (p *OTELPlugin) operationName(db *gorm.DB) string {
	sql := strings.ToUpper(strings.TrimSpace(db.Statement.SQL.String()))
	switch {
	case sql == "":
		return "db.unknown"
	case strings.HasPrefix(sql, "SELECT"):
		return "db.select"
	case strings.HasPrefix(sql, "INSERT"):
		return "db.insert"
	case strings.HasPrefix(sql, "UPDATE"):
		return "db.update"
	case strings.HasPrefix(sql, "DELETE"):
		return "db.delete"
	default:
		return "db.query"
	}
}

// WithOTELPlugin 为 GORM 添加 OpenTelemetry 插件
func WithOTELPlugin(db *gorm.DB, serviceName string) error {
	return db.Use(NewOTELPlugin(serviceName))
}
