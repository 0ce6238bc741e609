package queue

import (
	"encoding/json"

	"github.com/mymy-shop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusNotify 订单状态通知任务
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
	// TaskReportWarmup 报表缓存预热任务
	TaskReportWarmup = constants.TaskReportWarmup
)

// OrderStatusNotifyPayload 订单状态通知任务载荷
type OrderStatusNotifyPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// ReportWarmupPayload 报表预热任务载荷
type ReportWarmupPayload struct {
	Ranges []string `json:"ranges"`
}

// NewOrderStatusNotifyTask 创建订单状态通知任务
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}

// NewReportWarmupTask 创建报表预热任务
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, body), nil
}

// ParseOrderStatusNotifyPayload 解析订单状态通知载荷
func ParseOrderStatusNotifyPayload(task *asynq.Task) (OrderStatusNotifyPayload, error) {
	var payload OrderStatusNotifyPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// ParseReportWarmupPayload 解析报表预热载荷
func ParseReportWarmupPayload(task *asynq.Task) (ReportWarmupPayload, error) {
	var payload ReportWarmupPayload
	if task == nil || len(task.Payload()) == 0 {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
