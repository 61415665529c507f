package worker

import (
	"context"
	"errors"
	"time"

	"github.com/shopcart-api/internal/config"
	"github.com/shopcart-api/internal/constants"
	"github.com/shopcart-api/internal/logger"
	"github.com/shopcart-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	cartCfg  config.CartConfig
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, cartCfg config.CartConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
		cartCfg:  cartCfg,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.QueueClient.Enabled() {
		go s.runCartPruneLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runCartPruneLoop(ctx context.Context) {
	if s == nil || s.consumer == nil {
		return
	}
	maxAgeHours := s.cartCfg.PruneAfterHours
	if maxAgeHours <= 0 {
		maxAgeHours = constants.CartPruneAfterHoursDefault
	}
	intervalMinutes := s.cartCfg.PruneIntervalMinutes
	if intervalMinutes <= 0 {
		intervalMinutes = constants.CartPruneIntervalMinutesDefault
	}

	enqueueOnce := func() {
		payload := queue.CartPrunePayload{MaxAgeHours: maxAgeHours}
		if err := s.consumer.QueueClient.EnqueueCartPrune(payload); err != nil {
			logger.Warnw("worker_cart_prune_enqueue_failed", "error", err)
		}
	}
	enqueueOnce()

	ticker := time.NewTicker(time.Duration(intervalMinutes) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueueOnce()
		}
	}
}
