package app

import (
	"os"
	"time"

	"github.com/mymy-shop/internal/config"
	"github.com/mymy-shop/internal/logger"

	"go.uber.org/zap"
)

// 运行模式：all 同时启动 API 与队列消费
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

func validMode(mode string) bool {
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
		return true
	default:
		return false
	}
}

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// normalizeOptions 补齐默认参数
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
