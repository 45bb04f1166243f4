package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/dwikikusuma/fixshop/internal/cart/app"
	"github.com/dwikikusuma/fixshop/internal/platform/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/cart", h.getCart)
	r.GET("/cart/summary", h.summarize)
	r.POST("/cart/items", h.addItem)
	r.PUT("/cart/items/:productID", h.updateItem)
	r.DELETE("/cart/items/:productID", h.removeItem)
	r.DELETE("/cart/items", h.clearCart)
	r.DELETE("/cart/:cartID", h.deactivate)
}

func (h *Handler) getCart(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	view, err := h.svc.GetActiveCart(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, view)
}

func (h *Handler) summarize(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	sum, err := h.svc.Summarize(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, sum)
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int32  `json:"quantity"`
}

func (h *Handler) addItem(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"code": "INVALID_ARGUMENT", "error": err.Error()})
		return
	}

	view, err := h.svc.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, view)
}

type updateItemRequest struct {
	Quantity int32 `json:"quantity"`
}

func (h *Handler) updateItem(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"code": "INVALID_ARGUMENT", "error": err.Error()})
		return
	}

	view, err := h.svc.UpdateItemQuantity(c.Request.Context(), userID, c.Param("productID"), req.Quantity)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, view)
}

func (h *Handler) removeItem(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	view, err := h.svc.RemoveItem(c.Request.Context(), userID, c.Param("productID"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, view)
}

func (h *Handler) clearCart(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	view, err := h.svc.ClearCart(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, view)
}

func (h *Handler) deactivate(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	deactivated, err := h.svc.DeactivateCart(c.Request.Context(), c.Param("cartID"), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"deactivated": deactivated})
}
