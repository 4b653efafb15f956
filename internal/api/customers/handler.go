package customers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/response"
)

type handler struct {
	customers *backend.CustomerService
	logger    logger.Logger
}

// NewHandler creates a new instance of CustomerHandler
func NewHandler(s *backend.CustomerService, l logger.Logger) CustomerHandler {
	return &handler{customers: s, logger: l}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *handler) List(c *gin.Context) {
	out, err := h.customers.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}

func (h *handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}

func (h *handler) Create(c *gin.Context) {
	var input backend.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.customers.Create(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, out)
}

func (h *handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input backend.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.customers.Update(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}

func (h *handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.NoContent(c)
}

func (h *handler) Search(c *gin.Context) {
	out, err := h.customers.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, out)
}
