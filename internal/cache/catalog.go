package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// MenuCacheTTL 菜单缓存有效期
	MenuCacheTTL = 5 * time.Minute
	// ReportCacheTTL 报表缓存有效期
	ReportCacheTTL = 45 * time.Second

	menuVersionKey = "menu:version"
)

// MenuKey 构建带版本号的菜单缓存 key，菜单变更后版本号递增使旧 key 自然失效
func MenuKey(ctx context.Context, parts ...string) string {
	version, err := GetInt(ctx, menuVersionKey)
	if err != nil {
		version = 0
	}
	return fmt.Sprintf("menu:v%d:%s", version, strings.Join(parts, ":"))
}

// InvalidateMenu 使全部菜单缓存失效
func InvalidateMenu(ctx context.Context) error {
	_, err := Incr(ctx, menuVersionKey)
	return err
}

// ReportKey 构建报表缓存 key
func ReportKey(kind string, startAt, endAt time.Time, extra ...string) string {
	key := fmt.Sprintf("report:%s:%d:%d", kind, startAt.Unix(), endAt.Unix())
	if len(extra) > 0 {
		key += ":" + strings.Join(extra, ":")
	}
	return key
}
