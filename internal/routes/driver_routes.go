package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_desk/internal/controllers"
	"fleet_desk/internal/middleware"
	"fleet_desk/internal/models"
)

func DriverRoutes(api *gin.RouterGroup, ctl *controllers.Controller) {
	driver := api.Group("/driver")
	driver.Use(middleware.RequireAuthWithRole(models.RoleAdmin, models.RoleOperator))
	{
		driver.POST("", ctl.CreateDriver)
		driver.GET("", ctl.ListDrivers)
	}
}
