package routes

import (
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/controllers"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/routes/upload", controllers.UploadRouteWorkbook)
		admin.GET("/routes", controllers.ListRoutes)
		admin.GET("/routes/:id", controllers.GetRoute)
	}
}
