package sales

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/response"
)

type handler struct {
	sales  *backend.SalesService
	logger logger.Logger
}

// NewHandler creates a new instance of SalesHandler
func NewHandler(s *backend.SalesService, l logger.Logger) SalesHandler {
	return &handler{sales: s, logger: l}
}

func (h *handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	filter := backend.ListFilter{
		Page:      page,
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Status:    c.Query("status"),
	}
	out, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}

func (h *handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	out, err := h.sales.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}

func (h *handler) DashboardStats(c *gin.Context) {
	out, err := h.sales.DashboardStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}

func (h *handler) DailySales(c *gin.Context) {
	out, err := h.sales.DailySales(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}

func (h *handler) WeeklySales(c *gin.Context) {
	out, err := h.sales.WeeklySales(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}

func (h *handler) MonthlySales(c *gin.Context) {
	out, err := h.sales.MonthlySales(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}
