package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/fixshop/internal/checkout/app"
	"github.com/dwikikusuma/fixshop/internal/checkout/domain"
	"github.com/dwikikusuma/fixshop/internal/platform/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/checkout", h.checkout)
	r.GET("/orders", h.listOrders)
	r.GET("/orders/:number", h.getOrder)
	r.PATCH("/orders/:number/status", h.updateStatus)
}

type addressPayload struct {
	Name       string `json:"name" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
}

func (a addressPayload) toDomain() domain.Address {
	return domain.Address{
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

type checkoutRequest struct {
	OrderNumber     string          `json:"order_number" binding:"required"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress addressPayload  `json:"shipping_address" binding:"required"`
	BillingAddress  addressPayload  `json:"billing_address" binding:"required"`
}

func (h *Handler) checkout(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"code": "INVALID_ARGUMENT", "error": err.Error()})
		return
	}

	order, err := h.svc.CreateOrderFromCart(
		c.Request.Context(),
		userID,
		req.OrderNumber,
		app.Totals{
			Tax:      req.Tax,
			Shipping: req.Shipping,
			Discount: req.Discount,
			Total:    req.Total,
		},
		req.ShippingAddress.toDomain(),
		req.BillingAddress.toDomain(),
	)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, toOrderResponse(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	orders, err := h.svc.ListOrders(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	c.JSON(nethttp.StatusOK, gin.H{"orders": out})
}

func (h *Handler) getOrder(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	order, err := h.svc.GetOrder(c.Request.Context(), userID, c.Param("number"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, toOrderResponse(order))
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"code": "INVALID_ARGUMENT", "error": err.Error()})
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), userID, c.Param("number"), domain.Status(req.Status))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, toOrderResponse(order))
}

type orderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type orderResponse struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Shipping    decimal.Decimal `json:"shipping"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`

	ShippingAddress domain.Address `json:"shipping_address"`
	BillingAddress  domain.Address `json:"billing_address"`

	Items []orderItemResponse `json:"items"`

	OrderDateUnix   int64  `json:"order_date_unix"`
	ShippedAtUnix   *int64 `json:"shipped_at_unix,omitempty"`
	DeliveredAtUnix *int64 `json:"delivered_at_unix,omitempty"`
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TotalPrice:  item.TotalPrice,
		})
	}

	out := orderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Status:          string(order.Status),
		Subtotal:        order.Subtotal,
		Tax:             order.Tax,
		Shipping:        order.Shipping,
		Discount:        order.Discount,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		Items:           items,
		OrderDateUnix:   order.OrderDate.Unix(),
	}
	if order.ShippedAt != nil {
		v := order.ShippedAt.Unix()
		out.ShippedAtUnix = &v
	}
	if order.DeliveredAt != nil {
		v := order.DeliveredAt.Unix()
		out.DeliveredAtUnix = &v
	}
	return out
}
