package app

import (
	"quizcraft_backend/docs"
	"quizcraft_backend/internal/config"
	"quizcraft_backend/internal/middleware"
	"quizcraft_backend/internal/model"
	"quizcraft_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由，答题者无需登录
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/quizzes", c.public.ListActive)
		public.GET("/quizzes/:ref", c.public.GetQuiz)
		public.POST("/quizzes/:ref/submit", c.public.Submit)
	}

	// 2. 管理端路由
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/profile", c.auth.GetProfile)

		admin.GET("/quizzes", c.quiz.List)
		admin.POST("/quizzes", c.quiz.Create)
		admin.GET("/quizzes/:id", c.quiz.Detail)
		admin.PUT("/quizzes/:id", c.quiz.Save)
		admin.DELETE("/quizzes/:id", c.quiz.Delete)

		admin.GET("/responses", c.response.List)
		admin.GET("/responses/:id", c.response.Detail)

		admin.POST("/import", c.importer.Import)
	}
}
