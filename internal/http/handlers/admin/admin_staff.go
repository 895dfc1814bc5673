package admin

import (
	"strings"

	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

var staffErrorRules = []handlershared.MappedError{
	{Target: service.ErrStaffNotFound, Code: response.CodeNotFound, Key: "error.staff_not_found"},
}

// GetStaffMembers 员工列表
func (h *Handler) GetStaffMembers(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	isActive, err := parseBoolQuery(c, "is_active")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	members, total, err := h.StaffService.List(repository.StaffListFilter{
		Page:     page,
		PageSize: pageSize,
		Role:     strings.TrimSpace(c.Query("role")),
		Shift:    strings.TrimSpace(c.Query("shift")),
		Search:   strings.TrimSpace(c.Query("search")),
		IsActive: isActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.staff_fetch_failed", err)
		return
	}
	respondPage(c, members, page, pageSize, total)
}

// GetStaffMember 员工详情
func (h *Handler) GetStaffMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	member, err := h.StaffService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, staffErrorRules, response.CodeInternal, "error.staff_fetch_failed")
		return
	}
	response.Success(c, member)
}

// CreateStaffMember 新增员工
func (h *Handler) CreateStaffMember(c *gin.Context) {
	var req service.StaffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	member, err := h.StaffService.Create(req)
	if err != nil {
		respondWithMappedError(c, err, staffErrorRules, response.CodeInternal, "error.staff_save_failed")
		return
	}
	response.Success(c, member)
}

// UpdateStaffMember 更新员工
func (h *Handler) UpdateStaffMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.StaffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	member, err := h.StaffService.Update(id, req)
	if err != nil {
		respondWithMappedError(c, err, staffErrorRules, response.CodeInternal, "error.staff_save_failed")
		return
	}
	response.Success(c, member)
}

// DeleteStaffMember 删除员工
func (h *Handler) DeleteStaffMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.StaffService.Delete(id); err != nil {
		respondWithMappedError(c, err, staffErrorRules, response.CodeInternal, "error.staff_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
