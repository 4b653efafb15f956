package customers

import "github.com/gin-gonic/gin"

// CustomerHandler defines the customer endpoints exposed to the UI layer
type CustomerHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Search(c *gin.Context)
}
