package catalog

import "github.com/gin-gonic/gin"

// CatalogHandler defines the product and category endpoints exposed to
// the UI layer
type CatalogHandler interface {
	ListProducts(c *gin.Context)
	GetProduct(c *gin.Context)
	CreateProduct(c *gin.Context)
	UpdateProduct(c *gin.Context)
	DeleteProduct(c *gin.Context)
	SearchProducts(c *gin.Context)
	ProductsByCategory(c *gin.Context)
	ListCategories(c *gin.Context)
	GetCategory(c *gin.Context)
	CreateCategory(c *gin.Context)
	UpdateCategory(c *gin.Context)
	DeleteCategory(c *gin.Context)
}
