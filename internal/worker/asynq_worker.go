package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopcart-api/internal/constants"
	"github.com/shopcart-api/internal/logger"
	"github.com/shopcart-api/internal/provider"
	"github.com/shopcart-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCartPrune, c.handleCartPrune)
}

func (c *Consumer) handleCartPrune(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_cart_prune_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CartPrunePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cart_prune_unmarshal_failed", "error", err)
		return err
	}
	maxAgeHours := payload.MaxAgeHours
	if maxAgeHours <= 0 {
		maxAgeHours = constants.CartPruneAfterHoursDefault
	}
	if c.CartService == nil {
		logger.Warnw("worker_cart_prune_skip_cart_service_nil")
		return nil
	}
	removed, err := c.CartService.PruneStale(time.Duration(maxAgeHours) * time.Hour)
	if err != nil {
		logger.Warnw("worker_cart_prune_failed", "max_age_hours", maxAgeHours, "error", err)
		return err
	}
	if removed > 0 {
		logger.Infow("worker_cart_prune_done", "max_age_hours", maxAgeHours, "removed", removed)
	}
	return nil
}
