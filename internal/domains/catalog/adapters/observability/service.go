package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	catalogports "github.com/thinkfashz/Osart/internal/domains/catalog/ports"
	"github.com/thinkfashz/Osart/internal/shared/projection"
)

const tracerName = "github.com/thinkfashz/Osart/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) List(ctx context.Context, filter catalogports.Filter) ([]*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.List",
		trace.WithAttributes(attribute.String("product.category", string(filter.Category))))
	defer span.End()

	result, err := s.inner.List(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	return result, nil
}

func (s *Service) Create(ctx context.Context, product *catalogdomain.Product) (*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Create")
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.name", product.Name))
	result, err := s.inner.Create(ctx, product)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", product.Name))
	}
	s.metrics.recordSaved(ctx, result.Entity.Category)
	s.logInfo(ctx, "product created", slog.Int64("product.id", result.Entity.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, product *catalogdomain.Product) (*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Update", trace.WithAttributes(attribute.Int64("product.id", product.ID)))
	defer span.End()

	s.logInfo(ctx, "updating product", slog.Int64("product.id", product.ID))
	result, err := s.inner.Update(ctx, product)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.Int64("product.id", product.ID))
	}
	s.metrics.recordSaved(ctx, result.Entity.Category)
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.Int64("product.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", id))
	}
	s.logInfo(ctx, "product deleted", slog.Int64("product.id", id))
	return nil
}

func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) (*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AdjustStock",
		trace.WithAttributes(attribute.Int64("product.id", id), attribute.Int("stock.delta", delta)))
	defer span.End()

	result, err := s.inner.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to adjust stock", slog.Int64("product.id", id))
	}
	s.metrics.recordStockAdjusted(ctx, delta)
	if result.Entity.IsCritical() {
		s.logInfo(ctx, "product stock critical",
			slog.Int64("product.id", id), slog.Int("stock", result.Entity.Stock))
	}
	return result, nil
}

func (s *Service) SetLowStockThreshold(ctx context.Context, id int64, threshold int) (*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SetLowStockThreshold",
		trace.WithAttributes(attribute.Int64("product.id", id), attribute.Int("stock.threshold", threshold)))
	defer span.End()

	result, err := s.inner.SetLowStockThreshold(ctx, id, threshold)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set stock threshold", slog.Int64("product.id", id))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	productsSaved metric.Int64Counter
	stockAdjusted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsSaved, _ := m.Int64Counter("catalog.service.products_saved", metric.WithDescription("Number of products created or updated"))
	stockAdjusted, _ := m.Int64Counter("catalog.service.stock_adjustments", metric.WithDescription("Number of stock adjustments applied"))
	return serviceMetrics{productsSaved: productsSaved, stockAdjusted: stockAdjusted}
}

func (m serviceMetrics) recordSaved(ctx context.Context, category catalogdomain.Category) {
	if m.productsSaved != nil {
		m.productsSaved.Add(ctx, 1, metric.WithAttributes(attribute.String("product.category", string(category))))
	}
}

func (m serviceMetrics) recordStockAdjusted(ctx context.Context, delta int) {
	if m.stockAdjusted != nil {
		m.stockAdjusted.Add(ctx, 1, metric.WithAttributes(attribute.Int("stock.delta", delta)))
	}
}

var _ catalogports.Service = (*Service)(nil)
