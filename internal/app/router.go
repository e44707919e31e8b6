package app

import (
	"hanja_edu_backend/docs"
	"hanja_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 콘텐츠 (정적 한자 데이터)
		api.GET("/hanja", c.content.ListHanja)
		api.GET("/hanja/strokes", c.content.GetStrokes)
		api.GET("/hanja/grade/:grade", c.content.GetByGrade)
		api.GET("/hanja/:character", c.content.GetHanja)
		api.GET("/search", c.content.Search)
		api.GET("/categories", c.content.GetCategories)

		// 학습 진도
		learning := api.Group("/learning")
		{
			learning.POST("/progress", c.learning.UpdateProgress)
			learning.GET("/progress", c.learning.GetProgress)
			learning.GET("/reviews", c.learning.GetReviews)
			learning.PUT("/settings", c.learning.UpdateSettings)
			learning.POST("/sessions", c.learning.StartSession)
			learning.PUT("/sessions/:id/end", c.learning.EndSession)
			learning.GET("/report", c.learning.ExportReport)
		}

		// 관리
		admin := api.Group("/admin")
		{
			admin.POST("/snapshot", c.admin.TriggerSnapshot)
			admin.POST("/content/reload", c.admin.ReloadContent)
		}
	}
}
