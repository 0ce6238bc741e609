package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const reportGenerationKey = "report:gen"

// ShopSettingsKey 商店设置缓存键
func ShopSettingsKey() string {
	return "settings:shop_config"
}

// ReportKey 报表缓存键，带代数以便整体失效
func ReportKey(generation int64, name string, parts ...string) string {
	segments := make([]string, 0, len(parts)+3)
	segments = append(segments, "report", fmt.Sprintf("g%d", generation), name)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			part = "-"
		}
		segments = append(segments, part)
	}
	return strings.Join(segments, ":")
}

// ReportGeneration 当前报表缓存代数，未设置时为 0
func ReportGeneration(ctx context.Context) (int64, error) {
	if !Enabled() {
		return 0, nil
	}
	gen, err := redisClient.Get(ctx, buildKey(reportGenerationKey)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return gen, nil
}

// BumpReportGeneration 使全部报表缓存失效（订单或商品变更后调用）
func BumpReportGeneration(ctx context.Context) error {
	if !Enabled() {
		return nil
	}
	return redisClient.Incr(ctx, buildKey(reportGenerationKey)).Err()
}
