package http

import (
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dwikikusuma/fixshop/internal/platform/httpx"
	"github.com/dwikikusuma/fixshop/internal/recommend/app"
)

type Handler struct {
	engine     *app.Engine
	defaultMax int
}

func NewHandler(engine *app.Engine, defaultMax int) *Handler {
	if defaultMax <= 0 {
		defaultMax = 5
	}
	return &Handler{engine: engine, defaultMax: defaultMax}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/recommendations", h.recommend)
}

func (h *Handler) recommend(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	limit := h.defaultMax
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	products := h.engine.RecommendForUser(c.Request.Context(), userID, limit)
	c.JSON(nethttp.StatusOK, gin.H{"recommendations": products})
}
