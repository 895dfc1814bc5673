package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// findPage 统计总数后按分页与排序读取结果，预加载在计数之后挂载
func findPage[T any](query *gorm.DB, page, pageSize int, order string, preloads ...string) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]T, 0)
	if total == 0 {
		return rows, 0, nil
	}
	query = applyPagination(query, page, pageSize)
	if order != "" {
		query = query.Order(order)
	}
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
