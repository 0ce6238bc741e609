package worker

import (
	"context"
	"errors"

	"github.com/mymy-shop/internal/config"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/queue"

	"github.com/hibiken/asynq"
)

// reportWarmupSpec 报表预热周期；日期进入缓存键，跨日后需要重新预热
const reportWarmupSpec = "@every 10m"

// Service 队列消费服务：asynq server 处理任务，scheduler 周期性推送报表预热
type Service struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	consumer  *Consumer
}

// NewService 创建队列消费服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	svc := &Service{
		server:   asynq.NewServer(opt, serverCfg),
		mux:      mux,
		consumer: consumer,
	}

	if consumer.Reports != nil {
		task, err := queue.NewReportWarmupTask(queue.ReportWarmupPayload{})
		if err != nil {
			return nil, err
		}
		scheduler := asynq.NewScheduler(opt, nil)
		if _, err := scheduler.Register(reportWarmupSpec, task, asynq.Queue(queue.DefaultQueue), asynq.MaxRetry(1)); err != nil {
			return nil, err
		}
		svc.scheduler = scheduler
	}
	return svc, nil
}

// Name 服务名称
func (s *Service) Name() string {
	return "worker"
}

// Start 启动消费与定时预热，阻塞到 ctx 结束
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return err
		}
		// 启动时先预热一次，不等第一个周期
		go func() {
			if err := s.consumer.Reports.Warmup(ctx, nil); err != nil {
				logger.Warnw("worker_report_warmup_initial_failed", "error", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Stop 先停调度再停消费，等待进行中的任务结束
func (s *Service) Stop(_ context.Context) error {
	if s == nil {
		return nil
	}
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	if s.server != nil {
		s.server.Shutdown()
	}
	return nil
}
