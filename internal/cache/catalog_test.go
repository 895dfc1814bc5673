package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestMenuKeyWithoutRedis(t *testing.T) {
	key := MenuKey(context.Background(), "items", "drinks", "1", "20")
	if key != "menu:v0:items:drinks:1:20" {
		t.Fatalf("unexpected menu key: %s", key)
	}
	if err := InvalidateMenu(context.Background()); err != nil {
		t.Fatalf("invalidate without redis should be a no-op: %v", err)
	}
}

func TestReportKey(t *testing.T) {
	start := time.Unix(1700000000, 0)
	end := start.Add(24 * time.Hour)
	key := ReportKey("overview", start, end, "5")
	if !strings.HasPrefix(key, "report:overview:1700000000:") || !strings.HasSuffix(key, ":5") {
		t.Fatalf("unexpected report key: %s", key)
	}
}

func TestJSONHelpersDisabled(t *testing.T) {
	var dest map[string]string
	hit, err := GetJSON(context.Background(), "anything", &dest)
	if err != nil || hit {
		t.Fatalf("disabled cache should miss: hit=%v err=%v", hit, err)
	}
	if err := SetJSON(context.Background(), "anything", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("disabled set should be a no-op: %v", err)
	}
}
