package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

const (
	// PersistOrderActivityName stores a settled order in the local repository.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// PublishOrderActivityName hands the order to the external sink.
	PublishOrderActivityName = "orders.activities.PublishOrder"
)

// Activities groups activities that operate on settled orders.
type Activities struct {
	repo checkoutports.OrderRepository
	sink checkoutports.Sink
}

// NewActivities wires the order collaborators into the Temporal activities bundle.
func NewActivities(repo checkoutports.OrderRepository, sink checkoutports.Sink) *Activities {
	return &Activities{repo: repo, sink: sink}
}

// PersistOrder stores the order record. This is the durability-critical step;
// failures propagate so the workflow retries.
func (a *Activities) PersistOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		logger.Error("order persist activity not initialized", "orderId", orderID(order))
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "orderId", order.ID)
	saved, err := a.repo.Save(ctx, order)
	if err != nil {
		logger.Error("PersistOrder activity failed", "orderId", order.ID, "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", saved.ID)
	return saved, nil
}

// PublishOrder forwards the order to the external sink. The sink is
// fire-and-forget-with-logging: delivery failure is logged, never surfaced, so
// the purchase flow settles regardless.
func (a *Activities) PublishOrder(ctx context.Context, order *domain.Order) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("order publish activity not initialized", "orderId", orderID(order))
		return errors.New("order publish activity not initialized")
	}
	if a.sink == nil {
		logger.Info("order sink not configured; skipping", "orderId", order.ID)
		return nil
	}
	logger.Info("PublishOrder activity started", "orderId", order.ID)
	if err := a.sink.Publish(ctx, order); err != nil {
		logger.Error("order sink rejected order; continuing", "orderId", order.ID, "error", err)
		return nil
	}
	logger.Info("PublishOrder activity completed", "orderId", order.ID)
	return nil
}

func orderID(order *domain.Order) string {
	if order == nil {
		return ""
	}
	return order.ID
}
