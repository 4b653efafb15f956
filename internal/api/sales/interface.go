package sales

import "github.com/gin-gonic/gin"

// SalesHandler defines the sale history and dashboard endpoints exposed
// to the UI layer
type SalesHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	DashboardStats(c *gin.Context)
	DailySales(c *gin.Context)
	WeeklySales(c *gin.Context)
	MonthlySales(c *gin.Context)
}
