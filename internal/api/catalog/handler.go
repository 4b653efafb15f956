package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/response"
)

// The catalog screens are thin pass-throughs: the gateway forwards to the
// backend through the resilient client and relays whatever comes back.

type handler struct {
	catalog *backend.CatalogService
	logger  logger.Logger
}

// NewHandler creates a new instance of CatalogHandler
func NewHandler(s *backend.CatalogService, l logger.Logger) CatalogHandler {
	return &handler{catalog: s, logger: l}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, products)
}

func (h *handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, product)
}

func (h *handler) CreateProduct(c *gin.Context) {
	var input backend.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.catalog.CreateProduct(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, product)
}

func (h *handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input backend.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, product)
}

func (h *handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.NoContent(c)
}

func (h *handler) SearchProducts(c *gin.Context) {
	products, err := h.catalog.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, products)
}

func (h *handler) ProductsByCategory(c *gin.Context) {
	id, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	products, err := h.catalog.ProductsByCategory(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, products)
}

func (h *handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, categories)
}

func (h *handler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, category)
}

func (h *handler) CreateCategory(c *gin.Context) {
	var input backend.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	category, err := h.catalog.CreateCategory(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, category)
}

func (h *handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input backend.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	category, err := h.catalog.UpdateCategory(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, category)
}

func (h *handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.NoContent(c)
}
