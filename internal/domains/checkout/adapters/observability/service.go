package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	checkoutdomain "github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

const tracerName = "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/observability/service"

// Service decorates the checkout service with tracing, logging, and metrics.
type Service struct {
	inner   checkoutports.Service
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

// New wraps the core checkout service.
func New(inner checkoutports.Service, opts ...Option) checkoutports.Service {
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

func (s *Service) Start(ctx context.Context, sessionID string) (*checkoutdomain.Checkout, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Start", sessionAttr(sessionID))
	defer span.End()

	checkout, err := s.inner.Start(ctx, sessionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to start checkout", slog.String("session.id", sessionID))
	}
	s.metrics.recordStarted(ctx)
	s.logInfo(ctx, "checkout started", slog.String("session.id", sessionID))
	return checkout, nil
}

func (s *Service) Get(ctx context.Context, sessionID string) (*checkoutdomain.Checkout, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Get", sessionAttr(sessionID))
	defer span.End()

	checkout, err := s.inner.Get(ctx, sessionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load checkout", slog.String("session.id", sessionID))
	}
	return checkout, nil
}

func (s *Service) RequestVerification(ctx context.Context, sessionID, email string) error {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.RequestVerification", sessionAttr(sessionID))
	defer span.End()

	if err := s.inner.RequestVerification(ctx, sessionID, email); err != nil {
		return s.handleError(ctx, span, err, "failed to request verification", slog.String("session.id", sessionID))
	}
	s.logInfo(ctx, "verification requested", slog.String("session.id", sessionID))
	return nil
}

func (s *Service) ConfirmVerification(ctx context.Context, sessionID, email, code string) error {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.ConfirmVerification", sessionAttr(sessionID))
	defer span.End()

	if err := s.inner.ConfirmVerification(ctx, sessionID, email, code); err != nil {
		return s.handleError(ctx, span, err, "verification rejected", slog.String("session.id", sessionID))
	}
	s.logInfo(ctx, "email verified", slog.String("session.id", sessionID))
	return nil
}

func (s *Service) SubmitIdentity(ctx context.Context, sessionID string, identity checkoutdomain.Identity) (*checkoutdomain.Checkout, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.SubmitIdentity", sessionAttr(sessionID))
	defer span.End()

	checkout, err := s.inner.SubmitIdentity(ctx, sessionID, identity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "identity step rejected", slog.String("session.id", sessionID))
	}
	return checkout, nil
}

func (s *Service) SubmitShipping(ctx context.Context, sessionID, address, city string, region checkoutdomain.Region) (*checkoutdomain.Checkout, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.SubmitShipping", sessionAttr(sessionID))
	span.SetAttributes(attribute.String("shipping.region", string(region)))
	defer span.End()

	checkout, err := s.inner.SubmitShipping(ctx, sessionID, address, city, region)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "shipping step rejected", slog.String("session.id", sessionID))
	}
	span.SetAttributes(attribute.Int64("shipping.fee", checkout.ShippingFee))
	return checkout, nil
}

func (s *Service) Back(ctx context.Context, sessionID string) (*checkoutdomain.Checkout, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Back", sessionAttr(sessionID))
	defer span.End()

	checkout, err := s.inner.Back(ctx, sessionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "back navigation rejected", slog.String("session.id", sessionID))
	}
	return checkout, nil
}

func (s *Service) Confirm(ctx context.Context, sessionID string, method checkoutdomain.PaymentMethod) (*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Confirm", sessionAttr(sessionID))
	span.SetAttributes(attribute.String("payment.method", string(method)))
	defer span.End()

	s.logInfo(ctx, "confirming checkout", slog.String("session.id", sessionID), slog.String("payment.method", string(method)))
	order, err := s.inner.Confirm(ctx, sessionID, method)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "checkout confirmation failed", slog.String("session.id", sessionID))
	}
	s.metrics.recordSettled(ctx, order)
	s.logInfo(ctx, "order settled",
		slog.String("order.id", order.ID), slog.Int64("order.total", order.Total),
		slog.String("shipping.region", string(order.Profile.Region)))
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.Int64("order.total", order.Total))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.ListOrders")
	defer span.End()

	orders, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (s *Service) AdvanceOrder(ctx context.Context, id string, next checkoutdomain.Status) (*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.AdvanceOrder",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("order.status", string(next))))
	defer span.End()

	order, err := s.inner.AdvanceOrder(ctx, id, next)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to advance order", slog.String("order.id", id))
	}
	s.logInfo(ctx, "order advanced", slog.String("order.id", id), slog.String("order.status", string(order.Status)))
	return order, nil
}

func sessionAttr(sessionID string) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("session.id", sessionID))
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
	checkoutsStarted metric.Int64Counter
	ordersSettled    metric.Int64Counter
	revenue          metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	checkoutsStarted, _ := m.Int64Counter("checkout.service.checkouts_started", metric.WithDescription("Number of checkouts opened"))
	ordersSettled, _ := m.Int64Counter("checkout.service.orders_settled", metric.WithDescription("Number of orders settled"))
	revenue, _ := m.Int64Counter("checkout.service.revenue_clp", metric.WithDescription("Settled revenue in whole pesos"))
	return serviceMetrics{checkoutsStarted: checkoutsStarted, ordersSettled: ordersSettled, revenue: revenue}
}

func (m serviceMetrics) recordStarted(ctx context.Context) {
	if m.checkoutsStarted != nil {
		m.checkoutsStarted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordSettled(ctx context.Context, order *checkoutdomain.Order) {
	if m.ordersSettled != nil {
		m.ordersSettled.Add(ctx, 1, metric.WithAttributes(attribute.String("shipping.region", string(order.Profile.Region))))
	}
	if m.revenue != nil {
		m.revenue.Add(ctx, order.Total)
	}
}

var _ checkoutports.Service = (*Service)(nil)
