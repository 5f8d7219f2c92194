package routes

import (
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/controllers"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("auth")
	{
		auth.POST("/login", controllers.LoginUser)
	}
}
