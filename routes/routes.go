package routes

import (
	"os"

	"github.com/hieudt-ng/SMMPanel/controllers"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// Cookie session keeps the OAuth state between redirect legs
	store := cookie.NewStore([]byte(os.Getenv("SESSION_SECRET")))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24,
		Path:     "/",
		Secure:   os.Getenv("GIN_MODE") == "release",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("smmpanel", store))

	auth := router.Group("/auth")
	{
		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}

	api := router.Group("/" + utils.APIVersion)
	{
		initUserRoutes(api)
		initAdminRoutes(api)
	}

	return router
}
