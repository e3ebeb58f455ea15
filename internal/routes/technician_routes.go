package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_desk/internal/controllers"
	"fleet_desk/internal/middleware"
	"fleet_desk/internal/models"
)

func TechnicianRoutes(api *gin.RouterGroup, ctl *controllers.Controller) {
	technician := api.Group("/technician")
	technician.Use(middleware.RequireAuthWithRole(models.RoleAdmin, models.RoleOperator))
	{
		technician.GET("", ctl.ListTechnicians)
		technician.POST("", ctl.CreateTechnician)
		technician.PUT("", ctl.UpdateTechnician)    // ?technicianId=
		technician.DELETE("", ctl.DeleteTechnician) // ?technicianId=
	}
}
