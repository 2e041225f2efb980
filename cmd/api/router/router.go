package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"content-rebirth/cmd/api/handlers"
	"content-rebirth/cmd/api/middleware"
	"content-rebirth/cmd/api/services"
	_ "content-rebirth/docs"
)

// Services are the dependencies the routes are bound to.
type Services struct {
	Content   *services.ContentService
	Bots      *services.BotService
	Meetings  *services.MeetingService
	Dashboard *services.DashboardService
	Health    handlers.HealthDeps
}

func New(svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	r.GET("/health", handlers.HealthHandler(svc.Health))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthHandler(svc.Health))

		bots := api.Group("/bots")
		bots.GET("", handlers.ListBotsHandler(svc.Bots))
		bots.POST("", handlers.CreateBotHandler(svc.Bots))
		bots.GET("/stats", handlers.BotStatsHandler(svc.Bots))
		bots.GET("/:id", handlers.GetBotHandler(svc.Bots))
		bots.DELETE("/:id", handlers.DeleteBotHandler(svc.Bots))
		bots.POST("/:id/sync", handlers.SyncBotHandler(svc.Bots))
		bots.GET("/:id/transcript", handlers.BotTranscriptHandler(svc.Bots))

		content := api.Group("/content")
		content.GET("", handlers.ListContentHandler(svc.Content))
		content.POST("/generate", handlers.GenerateContentHandler(svc.Content))
		content.POST("/outline", handlers.ContentOutlineHandler(svc.Content))
		content.POST("/insights", handlers.ContentInsightsHandler(svc.Content))
		content.GET("/:id", handlers.GetContentHandler(svc.Content))
		content.POST("/:id/publish", handlers.PublishContentHandler(svc.Content))

		api.GET("/meetings", handlers.ListMeetingsHandler(svc.Meetings))
		api.POST("/meetings", handlers.CreateMeetingHandler(svc.Meetings))

		api.GET("/dashboard/stats", handlers.DashboardStatsHandler(svc.Dashboard))
	}

	return r
}
