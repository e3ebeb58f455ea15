package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_desk/internal/controllers"
	"fleet_desk/internal/middleware"
	"fleet_desk/internal/models"
)

func AuthRoutes(api *gin.RouterGroup, ctl *controllers.Controller, limiter gin.HandlerFunc) {
	user := api.Group("/user")
	{
		user.POST("/login", limiter, ctl.LoginUser)
		user.POST("/signup", middleware.RequireAuthWithRole(models.RoleAdmin), ctl.SignupUser)
	}
}
