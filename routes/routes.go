package routes

import (
	"distrigestion/config"
	"distrigestion/handlers"
	"distrigestion/middleware"
	"distrigestion/models"
	"distrigestion/notify"
	"distrigestion/repository"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, hub *notify.Hub) {
	repo := repository.NewGormRepository(config.DB)
	orders := &handlers.OrderHandler{Repo: repo}
	loads := &handlers.LoadHandler{Repo: repo}
	chat := &handlers.ChatHandler{Hub: hub}
	analysis := &handlers.AnalysisHandler{Repo: repo}

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", handlers.Login)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Order board
		auth.GET("/orders", orders.ListOrders)
		auth.PUT("/orders/:id", orders.UpdateOrder)
		auth.PUT("/orders/:id/status", orders.UpdateStatus)
		auth.GET("/orders/recent", orders.RecentEdits)

		// Dispatch
		auth.GET("/loads", loads.GetLoads)
		auth.POST("/loads/transfer", loads.TransferLoads)
		auth.POST("/loads/incidents", loads.RegisterIncident)

		// Fleet & stores
		auth.GET("/trucks", handlers.ListTrucks)
		auth.POST("/trucks", handlers.CreateTruck)
		auth.DELETE("/trucks/:id", handlers.DeleteTruck)
		auth.GET("/stores", handlers.ListStores)
		auth.POST("/stores", handlers.CreateStore)
		auth.DELETE("/stores/:id", handlers.DeleteStore)

		// Chat
		auth.GET("/chat/messages", chat.GetPrivateMessages)
		auth.POST("/chat/messages", chat.SendPrivateMessage)
		auth.GET("/chat/group", chat.GetGroupMessages)
		auth.POST("/chat/group", chat.SendGroupMessage)
		auth.GET("/chat/stream", chat.Stream)

		// AI analysis
		auth.POST("/analysis", analysis.AnalyzeOrders)
	}

	// ── Import (supervisors and above) ─────────────────────────────
	importer := r.Group("/api")
	importer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin, models.RoleSupervisor))
	{
		importer.POST("/orders/import", orders.ImportCSV)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.POST("/users", handlers.AdminCreateUser)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
	}
}
