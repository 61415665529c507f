package queue

import (
	"encoding/json"

	"github.com/shopcart-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartPrune 清理长期未结算的购物车行任务
	TaskCartPrune = constants.TaskCartPrune
)

// CartPrunePayload 购物车清理任务载荷
type CartPrunePayload struct {
	MaxAgeHours int `json:"max_age_hours"`
}

// NewCartPruneTask 创建购物车清理任务
func NewCartPruneTask(payload CartPrunePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartPrune, body), nil
}
