package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleEnUS    = "en-US"
	LocaleZhCN    = "zh-CN"
	DefaultLocale = LocaleEnUS
)

// ResolveLocale 按 lang 查询参数、X-Locale 请求头、Accept-Language 的顺序解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale, ok := matchLocale(c.Query("lang")); ok {
		return locale
	}
	if locale, ok := matchLocale(c.GetHeader("X-Locale")); ok {
		return locale
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale, ok := matchLocale(tag); ok {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale 归一化语言标识，未知值回落到默认语言
func NormalizeLocale(raw string) string {
	if locale, ok := matchLocale(raw); ok {
		return locale
	}
	return DefaultLocale
}

func matchLocale(raw string) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}
	switch {
	case value == "zh" || strings.HasPrefix(value, "zh-") || strings.HasPrefix(value, "zh_"):
		return LocaleZhCN, true
	case value == "en" || strings.HasPrefix(value, "en-") || strings.HasPrefix(value, "en_"):
		return LocaleEnUS, true
	}
	return "", false
}

// T 翻译 key，缺失时依次回落到默认语言与 key 本身
func T(locale, key string) string {
	if table, ok := messages[NormalizeLocale(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
