package routes

import (
	"github.com/hieudt-ng/SMMPanel/controllers"
	"github.com/hieudt-ng/SMMPanel/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all back-office routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)
		admin.POST("/logout", controllers.AdminLogout)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/dashboard", controllers.AdminDashboard)

			// User management
			admin.GET("/users", controllers.GetUsers)
			admin.PATCH("/users/:id/block", controllers.BlockUser)
			admin.PATCH("/users/:id/unblock", controllers.UnblockUser)
			admin.POST("/users/:id/wallet", controllers.AdminUserWallet)

			// Catalog management
			admin.POST("/categories", controllers.AdminCreateCategory)
			admin.PUT("/categories/:id", controllers.AdminUpdateCategory)
			admin.POST("/services", controllers.AdminCreateService)
			admin.PUT("/services/:id", controllers.AdminUpdateService)
			admin.POST("/servers", controllers.AdminCreateServer)
			admin.PUT("/servers/:id", controllers.AdminUpdateServer)
			admin.DELETE("/servers/:id", controllers.AdminDeleteServer)

			// Finance
			admin.GET("/deposits", controllers.ListPendingDeposits)
			admin.PATCH("/deposits/:id/approve", controllers.ApproveDeposit)
			admin.PATCH("/deposits/:id/reject", controllers.RejectDeposit)
			admin.POST("/balance/adjust", controllers.AdjustBalance)

			// Orders
			admin.GET("/orders", controllers.AdminListOrders)
			admin.PATCH("/orders/:id", controllers.AdminUpdateOrder)
			admin.POST("/orders/:id/push", controllers.AdminPushOrderToProvider)
			admin.POST("/orders/:id/sync", controllers.AdminSyncOrderStatus)

			// Lucky wheel
			admin.GET("/lucky-wheel", controllers.AdminListWheelConfigs)
			admin.POST("/lucky-wheel", controllers.AdminCreateWheelConfig)
			admin.PUT("/lucky-wheel/:id", controllers.AdminUpdateWheelConfig)
			admin.PATCH("/lucky-wheel/:id/activate", controllers.AdminActivateWheelConfig)

			// Support tickets
			admin.GET("/tickets", controllers.AdminListTickets)
			admin.GET("/tickets/:id", controllers.AdminGetTicket)
			admin.POST("/tickets/:id/replies", controllers.AdminReplyTicket)
			admin.PATCH("/tickets/:id/resolve", controllers.AdminResolveTicket)

			// Reports
			admin.GET("/reports/transactions", controllers.DownloadTransactionsReport)
			admin.GET("/reports/orders", controllers.DownloadOrdersReport)
		}
	}
}
