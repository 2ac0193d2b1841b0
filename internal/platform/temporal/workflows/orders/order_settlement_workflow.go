package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/platform/temporal/sequences"
)

const (
	// OrderSettlementWorkflowName is the public identifier for registering the workflow.
	OrderSettlementWorkflowName = "orders.workflows.Settlement"
	// OrderSettlementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderSettlementTaskQueue = "ORDER_SETTLEMENT"
)

// OrderSettlementWorkflowInput captures the payload required to settle an order.
type OrderSettlementWorkflowInput struct {
	Order   *domain.Order
	TraceID string
}

// OrderSettlementWorkflow orchestrates the activities needed to settle a purchase.
func OrderSettlementWorkflow(ctx workflow.Context, input OrderSettlementWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderSettlementWorkflow started", withTraceID(input.TraceID, "orderId", input.Order.ID)...)
	saved, err := sequences.RunOrderSettlementSequence(ctx, input.Order)
	if err != nil {
		logger.Error("OrderSettlementWorkflow failed", withTraceID(input.TraceID, "orderId", input.Order.ID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderSettlementWorkflow completed", withTraceID(input.TraceID, "orderId", saved.ID)...)
	return saved, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
