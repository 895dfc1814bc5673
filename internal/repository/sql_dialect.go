package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func isPostgresDialect(dialect string) bool {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return true
	}
	return false
}

// buildLikeCondition 构建多列 LIKE 条件，并返回参数数量。
func buildLikeCondition(db *gorm.DB, columns []string) (string, int) {
	return buildLikeConditionByDialect(dbDialectName(db), columns)
}

func buildLikeConditionByDialect(dialect string, columns []string) (string, int) {
	parts := make([]string, 0, len(columns))
	operator := likeOperatorByDialect(dialect)
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
	}
	if len(parts) == 0 {
		return "1 = 1", 0
	}
	return "(" + strings.Join(parts, " OR ") + ")", len(parts)
}

func likeOperatorByDialect(dialect string) string {
	if isPostgresDialect(dialect) {
		return "ILIKE"
	}
	return "LIKE"
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// jsonArrayContainsCondition 构建 JSON 字符串数组包含某值的条件，兼容 sqlite 与 postgres。
func jsonArrayContainsCondition(db *gorm.DB, table, column, value string) (string, interface{}) {
	return jsonArrayContainsConditionByDialect(dbDialectName(db), table, column, value)
}

func jsonArrayContainsConditionByDialect(dialect, table, column, value string) (string, interface{}) {
	value = strings.ToLower(strings.TrimSpace(value))
	if isPostgresDialect(dialect) {
		raw, _ := json.Marshal([]string{value})
		return fmt.Sprintf("(%s.%s::jsonb @> ?::jsonb)", table, column), string(raw)
	}
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s.%s) WHERE json_each.value = ?)", table, column), value
}
