package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_desk/internal/controllers"
	"fleet_desk/internal/middleware"
)

func PackageBookingRoutes(api *gin.RouterGroup, ctl *controllers.Controller) {
	booking := api.Group("/packageBooking")
	booking.Use(middleware.RequireAuth())
	{
		booking.GET("", ctl.ListPackageBookings)
		booking.POST("", ctl.CreatePackageBooking)
		booking.GET("/:id", ctl.GetPackageBooking)
	}
}
