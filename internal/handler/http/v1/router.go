package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("", h.getDashboard)
		dashboard.PUT("/view", h.setView)
		dashboard.PUT("/tab", h.setTab)
	}

	// Семейный круг и участники
	circle := protected.Group("/circle")
	{
		circle.POST("", h.createCircle)
		circle.DELETE("", h.exitCircle)
		circle.PATCH("/members/:id", h.updateMember)
		circle.POST("/members/:id/location-sharing", h.toggleLocationSharing)
		circle.POST("/members/:id/voice-notes", h.addVoiceNote)
		circle.DELETE("/members/:id/voice-notes/:noteId", h.deleteVoiceNote)
	}

	protected.POST("/checkins", h.submitCheckin)
	protected.POST("/plan", h.generatePlan)
	protected.DELETE("/plan", h.clearPlan)
	protected.POST("/plan/routes", h.assessRoute)
	protected.POST("/crisis-events/refresh", h.refreshCrisisEvents)
	protected.POST("/location", h.reportLocation)
	protected.POST("/connectivity", h.setConnectivity)
	protected.GET("/map", h.getMap)

	preparedness := protected.Group("/preparedness")
	{
		preparedness.GET("", h.getPreparedness)
		preparedness.PUT("/items/:id", h.toggleItem)
	}

	protected.DELETE("/notifications/:id", h.dismissNotification)
	protected.GET("/theme", h.getTheme)
	protected.PUT("/theme", h.setTheme)
}
