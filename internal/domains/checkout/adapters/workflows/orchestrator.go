package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/ports"
	orderworkflows "github.com/thinkfashz/Osart/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.Orchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.Orchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order settlement workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderSettlementTaskQueue}
}

// SettleOrder starts the durable settlement workflow. The order id doubles as
// the idempotency key: re-settling the same order attaches to the running
// workflow instead of duplicating it.
func (o *TemporalOrderWorkflows) SettleOrder(ctx context.Context, order *domain.Order) error {
	if o == nil || o.client == nil {
		return errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-settlement-%s", order.ID),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderSettlementWorkflow,
		orderworkflows.OrderSettlementWorkflowInput{Order: order, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			var settled domain.Order
			return existingRun.Get(ctx, &settled)
		}
		return err
	}
	var settled domain.Order
	return run.Get(ctx, &settled)
}

// InlineOrderWorkflows settles orders synchronously without Temporal, useful
// for tests or dev fallbacks. It applies the same policy as the durable path:
// persistence failures propagate, sink failures are logged and swallowed.
type InlineOrderWorkflows struct {
	repo   ports.OrderRepository
	sink   ports.Sink
	logger *slog.Logger
}

// NewInlineOrderWorkflows wraps the repository and sink for synchronous execution.
func NewInlineOrderWorkflows(repo ports.OrderRepository, sink ports.Sink, logger *slog.Logger) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{repo: repo, sink: sink, logger: logger}
}

// SettleOrder persists the order and forwards it to the sink.
func (o *InlineOrderWorkflows) SettleOrder(ctx context.Context, order *domain.Order) error {
	if o == nil || o.repo == nil {
		return errors.New("inline order workflows not configured")
	}
	saved, err := o.repo.Save(ctx, order)
	if err != nil {
		return err
	}
	if o.sink == nil {
		return nil
	}
	if err := o.sink.Publish(ctx, saved); err != nil && o.logger != nil {
		o.logger.LogAttrs(ctx, slog.LevelWarn, "order sink rejected order; continuing",
			slog.String("order.id", saved.ID), slog.String("error", err.Error()))
	}
	return nil
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
