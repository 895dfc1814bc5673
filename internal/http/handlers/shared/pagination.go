package shared

import "github.com/rasoi-next/internal/http/response"

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// BuildPagination 构建分页信息。
func BuildPagination(page, pageSize int, total int64) response.Pagination {
	return response.NewPagination(page, pageSize, total)
}
