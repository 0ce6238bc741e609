package worker

import (
	"context"
	"errors"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/metrics"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/queue"
	"github.com/mymy-shop/internal/service"

	"github.com/hibiken/asynq"
)

// OrderNotifier 订单状态通知
type OrderNotifier interface {
	NotifyOrderStatus(orderID string, status constants.OrderStatus) (*models.Notice, error)
}

// ReportWarmer 报表缓存预热
type ReportWarmer interface {
	Warmup(ctx context.Context, ranges []string) error
}

// Consumer 异步任务消费者
type Consumer struct {
	Notices OrderNotifier
	Reports ReportWarmer
}

// NewConsumer 创建消费者
func NewConsumer(notices OrderNotifier, reports ReportWarmer) *Consumer {
	return &Consumer{
		Notices: notices,
		Reports: reports,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
	mux.HandleFunc(queue.TaskReportWarmup, c.handleReportWarmup)
}

func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) (err error) {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	defer func() { metrics.ObserveQueueTask(queue.TaskOrderStatusNotify, err) }()

	payload, err := queue.ParseOrderStatusNotifyPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == "" {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.Notices == nil {
		logger.Warnw("worker_order_status_notify_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	_, err = c.Notices.NotifyOrderStatus(payload.OrderID, constants.OrderStatus(payload.Status))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_order_status_notify_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_status_notify_failed", "order_id", payload.OrderID, "status", payload.Status, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleReportWarmup(ctx context.Context, task *asynq.Task) (err error) {
	if c == nil || task == nil {
		logger.Debugw("worker_report_warmup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	defer func() { metrics.ObserveQueueTask(queue.TaskReportWarmup, err) }()

	payload, err := queue.ParseReportWarmupPayload(task)
	if err != nil {
		logger.Warnw("worker_report_warmup_unmarshal_failed", "error", err)
		return err
	}
	if c.Reports == nil {
		logger.Warnw("worker_report_warmup_skip_service_nil")
		return nil
	}
	if err := c.Reports.Warmup(ctx, payload.Ranges); err != nil {
		logger.Warnw("worker_report_warmup_failed", "ranges", payload.Ranges, "error", err)
		return err
	}
	return nil
}
