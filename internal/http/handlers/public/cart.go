package public

import (
	"strings"

	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求，menu_item_id 与 slug 二选一
type AddCartItemRequest struct {
	MenuItemID uint   `json:"menu_item_id"`
	Slug       string `json:"slug"`
	Quantity   int    `json:"quantity"`
}

// UpdateCartItemRequest 修改数量请求，0 表示移除
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.Get(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.MenuItemID == 0 && strings.TrimSpace(req.Slug) == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:     uid,
		MenuItemID: req.MenuItemID,
		Slug:       req.Slug,
		Quantity:   req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 修改购物车数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	view, err := h.CartService.UpdateQuantity(uid, strings.TrimSpace(c.Param("item_id")), *req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteCartItem 移除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.RemoveItem(uid, strings.TrimSpace(c.Param("item_id")))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
