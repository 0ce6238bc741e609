package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/mymy-shop/internal/config"
	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/queue"
	"github.com/mymy-shop/internal/service"
)

type fakeNotifier struct {
	orderID string
	status  constants.OrderStatus
	err     error
}

func (f *fakeNotifier) NotifyOrderStatus(orderID string, status constants.OrderStatus) (*models.Notice, error) {
	f.orderID = orderID
	f.status = status
	if f.err != nil {
		return nil, f.err
	}
	return &models.Notice{OrderID: orderID, Status: string(status)}, nil
}

type fakeWarmer struct {
	ranges []string
	calls  int
	err    error
}

func (f *fakeWarmer) Warmup(_ context.Context, ranges []string) error {
	f.calls++
	f.ranges = ranges
	return f.err
}

func TestHandleOrderStatusNotifyDispatches(t *testing.T) {
	notifier := &fakeNotifier{}
	consumer := NewConsumer(notifier, nil)
	task, err := queue.NewOrderStatusNotifyTask(queue.OrderStatusNotifyPayload{OrderID: "202505200001", Status: "shipped"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if notifier.orderID != "202505200001" || notifier.status != constants.OrderStatusShipped {
		t.Fatalf("unexpected dispatch: %+v", notifier)
	}
}

func TestHandleOrderStatusNotifySkipsMissingOrder(t *testing.T) {
	consumer := NewConsumer(&fakeNotifier{err: service.ErrOrderNotFound}, nil)
	task, _ := queue.NewOrderStatusNotifyTask(queue.OrderStatusNotifyPayload{OrderID: "202505200009", Status: "shipped"})
	if err := consumer.handleOrderStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

func TestHandleOrderStatusNotifyRetriesOnFailure(t *testing.T) {
	boom := errors.New("db down")
	consumer := NewConsumer(&fakeNotifier{err: boom}, nil)
	task, _ := queue.NewOrderStatusNotifyTask(queue.OrderStatusNotifyPayload{OrderID: "202505200001", Status: "shipped"})
	if err := consumer.handleOrderStatusNotify(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("expected failure to propagate for retry, got %v", err)
	}
}

func TestHandleReportWarmupPassesRanges(t *testing.T) {
	warmer := &fakeWarmer{}
	consumer := NewConsumer(nil, warmer)
	task, err := queue.NewReportWarmupTask(queue.ReportWarmupPayload{Ranges: []string{"today", "month"}})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleReportWarmup(context.Background(), task); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if warmer.calls != 1 || len(warmer.ranges) != 2 || warmer.ranges[1] != "month" {
		t.Fatalf("unexpected warmup call: %+v", warmer)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(nil, NewConsumer(nil, nil)); err == nil {
		t.Fatalf("expected error for disabled queue")
	}
}

func TestNewServiceSchedulesWarmupOnlyWithReports(t *testing.T) {
	cfg := &config.QueueConfig{Enabled: true, Host: "127.0.0.1", Port: 6379}

	withReports, err := NewService(cfg, NewConsumer(&fakeNotifier{}, &fakeWarmer{}))
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	if withReports.scheduler == nil {
		t.Fatalf("warmup scheduler should be registered when reports are wired")
	}

	withoutReports, err := NewService(cfg, NewConsumer(&fakeNotifier{}, nil))
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	if withoutReports.scheduler != nil {
		t.Fatalf("warmup scheduler should be skipped without reports")
	}

	if err := withReports.Stop(context.Background()); err != nil {
		t.Fatalf("stop before start should be a noop, got %v", err)
	}
	if withReports.Name() != "worker" {
		t.Fatalf("unexpected service name %q", withReports.Name())
	}
}
