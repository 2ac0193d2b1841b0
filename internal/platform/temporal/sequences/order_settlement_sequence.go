package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	orderactivities "github.com/thinkfashz/Osart/internal/platform/temporal/activities/orders"
)

// RunOrderSettlementSequence executes the ordered set of activities that
// settle an order: local persistence first, then delivery to the external sink.
func RunOrderSettlementSequence(ctx workflow.Context, order *domain.Order) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order settlement sequence started", "orderId", order.ID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var saved domain.Order
	if err := workflow.ExecuteActivity(ctx, orderactivities.PersistOrderActivityName, order).Get(ctx, &saved); err != nil {
		logger.Error("order settlement sequence failed", "orderId", order.ID, "error", err)
		return nil, err
	}
	if err := workflow.ExecuteActivity(ctx, orderactivities.PublishOrderActivityName, &saved).Get(ctx, nil); err != nil {
		// the publish activity swallows sink errors itself; reaching this
		// branch means the activity could not run at all
		logger.Error("order publish activity unavailable", "orderId", saved.ID, "error", err)
	}
	logger.Info("order settlement sequence completed", "orderId", saved.ID)
	return &saved, nil
}
