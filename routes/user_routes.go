package routes

import (
	"github.com/hieudt-ng/SMMPanel/controllers"
	"github.com/hieudt-ng/SMMPanel/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes
	router.POST("/register", controllers.RegisterUser)
	router.POST("/verify-otp", controllers.VerifyOTP)
	router.POST("/resend-otp", controllers.ResendOTP)
	router.POST("/login", controllers.LoginUser)
	router.POST("/logout", controllers.LogoutUser)
	router.POST("/forgot-password", controllers.ForgotPassword)
	router.POST("/reset-password", controllers.ResetPassword)

	// Storefront catalog
	router.GET("/services", controllers.GetServices)
	router.GET("/services/:id/servers", controllers.GetServiceServers)

	// Protected routes
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", controllers.GetProfile)
		protected.PUT("/password", controllers.ChangePassword)

		// Orders
		protected.POST("/orders", controllers.PlaceOrder)
		protected.POST("/orders/bulk", controllers.PlaceBulkOrder)
		protected.GET("/orders", controllers.ListOrders)
		protected.GET("/orders/:id", controllers.GetOrderDetails)

		// Wallet
		protected.GET("/wallet", controllers.GetWallet)
		protected.GET("/wallet/history", controllers.GetWalletHistory)
		protected.GET("/wallet/statement", controllers.DownloadWalletStatement)
		protected.POST("/wallet/deposit", controllers.CreateDepositRequest)
		protected.POST("/wallet/topup", controllers.InitiateTopup)
		protected.POST("/wallet/topup/verify", controllers.VerifyTopup)

		// Lucky wheel
		protected.GET("/lucky-wheel", controllers.GetLuckyWheel)
		protected.POST("/lucky-wheel/spin", controllers.SpinLuckyWheel)
		protected.POST("/lucky-wheel/buy-spins", controllers.BuySpins)

		// Support tickets
		protected.POST("/tickets", controllers.CreateTicket)
		protected.GET("/tickets", controllers.ListTickets)
		protected.GET("/tickets/:id", controllers.GetTicket)
		protected.POST("/tickets/:id/replies", controllers.ReplyTicket)
	}
}
