package handlers

import (
	"net/http"
	"strconv"

	"shopflow/internal/dto"
	"shopflow/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	catalog   *service.CatalogService
	log       *zap.Logger
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, catalog *service.CatalogService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, catalog: catalog, log: log}
}

func (h *AnalyticsHandler) Metrics(c *gin.Context) {
	m, err := h.analytics.Metrics(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MetricsResponse{
		TotalOrders:     m.TotalOrders,
		TotalRevenue:    m.TotalRevenue.InexactFloat64(),
		PendingOrders:   m.PendingOrders,
		CompletedOrders: m.CompletedOrders,
		LowStockCount:   m.LowStockCount,
	})
}

func (h *AnalyticsHandler) LowStock(c *gin.Context) {
	threshold := 0
	if t := c.Query("threshold"); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid threshold"))
			return
		}
		threshold = n
	}

	products, err := h.catalog.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
