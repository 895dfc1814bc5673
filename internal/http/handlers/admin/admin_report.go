package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

var reportErrorRules = []handlershared.MappedError{
	{Target: service.ErrReportRangeInvalid, Code: response.CodeBadRequest, Key: "error.report_range_invalid"},
}

// GetReportOverview 经营总览
func (h *Handler) GetReportOverview(c *gin.Context) {
	input, err := parseReportQuery(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	data, err := h.ReportService.GetOverview(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, reportErrorRules, response.CodeInternal, "error.report_fetch_failed")
		return
	}
	response.Success(c, data)
}

// GetReportTrends 每日订单与营收趋势
func (h *Handler) GetReportTrends(c *gin.Context) {
	input, err := parseReportQuery(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	data, err := h.ReportService.GetTrends(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, reportErrorRules, response.CodeInternal, "error.report_fetch_failed")
		return
	}
	response.Success(c, data)
}

func parseReportQuery(c *gin.Context) (service.ReportQueryInput, error) {
	from, err := service.ParseReportRange(strings.TrimSpace(c.Query("from")))
	if err != nil {
		return service.ReportQueryInput{}, err
	}
	to, err := service.ParseReportRange(strings.TrimSpace(c.Query("to")))
	if err != nil {
		return service.ReportQueryInput{}, err
	}

	forceRefresh := false
	if raw := strings.TrimSpace(c.Query("force_refresh")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return service.ReportQueryInput{}, err
		}
		forceRefresh = parsed
	}

	return service.ReportQueryInput{
		Range:        strings.TrimSpace(c.DefaultQuery("range", "7d")),
		From:         from,
		To:           to,
		Timezone:     strings.TrimSpace(c.Query("tz")),
		ForceRefresh: forceRefresh,
	}, nil
}
