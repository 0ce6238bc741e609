package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mymy"

// Collectors 业务与 HTTP 指标集合
type Collectors struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	OrdersCreated     *prometheus.CounterVec
	OrderTransitions  *prometheus.CounterVec
	OrderRevenue      prometheus.Counter
	ReportCacheLookup *prometheus.CounterVec
	QueueTasks        *prometheus.CounterVec
}

// NewCollectors 创建指标集合（尚未注册）
func NewCollectors() *Collectors {
	return &Collectors{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP 请求数",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP 请求耗时",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "已建立订单数",
		}, []string{"payment_method", "shipping_method"}),
		OrderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "订单状态迁移次数",
		}, []string{"action", "status"}),
		OrderRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_final_total_sum",
			Help:      "下单应付金额累计",
		}),
		ReportCacheLookup: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_lookups_total",
			Help:      "报表缓存查询结果",
		}, []string{"report", "result"}),
		QueueTasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_tasks_total",
			Help:      "队列任务处理结果",
		}, []string{"task", "result"}),
	}
}

// Register 注册到指定 Registerer
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{
		c.HTTPRequests,
		c.HTTPDuration,
		c.OrdersCreated,
		c.OrderTransitions,
		c.OrderRevenue,
		c.ReportCacheLookup,
		c.QueueTasks,
	} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

var (
	defaultCollectors = NewCollectors()
	registerOnce      sync.Once
	registerErr       error
)

// Default 全局指标集合
func Default() *Collectors {
	return defaultCollectors
}

// Init 将全局指标注册到默认 Registerer（多次调用只生效一次）
func Init() error {
	registerOnce.Do(func() {
		registerErr = defaultCollectors.Register(prometheus.DefaultRegisterer)
	})
	return registerErr
}

// ObserveHTTP 记录一次 HTTP 请求
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	defaultCollectors.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	defaultCollectors.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveOrderCreated 记录一笔新订单
func ObserveOrderCreated(paymentMethod, shippingMethod string, finalTotal float64) {
	defaultCollectors.OrdersCreated.WithLabelValues(paymentMethod, shippingMethod).Inc()
	if finalTotal > 0 {
		defaultCollectors.OrderRevenue.Add(finalTotal)
	}
}

// ObserveOrderTransition 记录一次状态迁移
func ObserveOrderTransition(action, status string) {
	defaultCollectors.OrderTransitions.WithLabelValues(action, status).Inc()
}

// ObserveReportCache 记录报表缓存命中情况（hit / miss）
func ObserveReportCache(report string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	defaultCollectors.ReportCacheLookup.WithLabelValues(report, result).Inc()
}

// ObserveQueueTask 记录队列任务结果（ok / error）
func ObserveQueueTask(task string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	defaultCollectors.QueueTasks.WithLabelValues(task, result).Inc()
}
