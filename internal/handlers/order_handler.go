package handlers

import (
	"net/http"

	"shopflow/internal/dto"
	"shopflow/internal/models"
	"shopflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders *service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func (h *OrderHandler) List(c *gin.Context) {
	var f service.OrderListFilter
	if s := c.Query("status"); s != "" {
		status := models.OrderStatus(s)
		f.Status = &status
	}
	if cid := c.Query("customerId"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid customer id"))
			return
		}
		f.CustomerID = &id
	}

	orders, err := h.orders.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get resolves the path segment either as an order id or, when it is not a
// UUID, as a human-readable order number (ORD-...). The two formats are
// disjoint, which keeps both lookups on one route.
func (h *OrderHandler) Get(c *gin.Context) {
	raw := c.Param("id")

	if id, err := uuid.Parse(raw); err == nil {
		order, err := h.orders.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, order)
		return
	}

	order, err := h.orders.GetByNumber(c.Request.Context(), raw)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.CreateOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	order, err := h.orders.Create(c.Request.Context(), service.CreateOrderInput{
		ShippingAddress: req.Order.ShippingAddress,
		Status:          models.OrderStatus(req.Order.Status),
		Items:           items,
		ClearCart:       req.ClearCart,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("order not found"))
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("order not found"))
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
