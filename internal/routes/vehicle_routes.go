package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_desk/internal/controllers"
	"fleet_desk/internal/middleware"
)

func VehicleRoutes(api *gin.RouterGroup, ctl *controllers.Controller) {
	vehicle := api.Group("/vehicle")
	vehicle.Use(middleware.RequireAuth())
	{
		vehicle.POST("", ctl.CreateVehicle)
		vehicle.GET("/purpose/:purpose/", ctl.ListVehiclesByPurpose)
	}
}
