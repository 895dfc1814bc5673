package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.AdminID(c)
}

// operatorID 仅用于审计日志，未登录时为 0
func operatorID(c *gin.Context) uint {
	return c.GetUint(handlershared.ContextKeyAdminID)
}

// parseIDParam 解析路径中的 :id，非法时直接写回 400
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(id), true
}

func parsePageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return handlershared.NormalizePagination(page, pageSize)
}

func parseBoolQuery(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func respondPage(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	response.SuccessWithPage(c, data, handlershared.BuildPagination(page, pageSize, total))
}
