package models

import (
	"database/sql/driver"
	"encoding/json"
	"sort"
	"strings"
)

// JSON 通用 JSON 对象字段
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return nil
}

// StringArray 字符串数组类型，用于存储菜品属性、图片等
// 以 JSON 文本写入，便于 sqlite json_each 与 postgres jsonb 查询。
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return nil
}

// Contains 判断是否包含指定值（忽略大小写）
func (s StringArray) Contains(value string) bool {
	value = strings.TrimSpace(value)
	for _, item := range s {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

// NormalizeSet 去重、去空并排序，作为集合语义使用
func (s StringArray) NormalizeSet() StringArray {
	seen := make(map[string]struct{}, len(s))
	result := make(StringArray, 0, len(s))
	for _, item := range s {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}
