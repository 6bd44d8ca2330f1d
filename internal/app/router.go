package app

import (
	_ "assessment_backend/docs"
	"assessment_backend/internal/config"
	"assessment_backend/internal/middleware"
	"assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 生产环境不暴露接口文档
	if cfg.Server.Mode != gin.ReleaseMode {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, a.services.auth))
	{
		// 登录用户通用接口
		authGroup.GET("/me", c.auth.Me)
		authGroup.GET("/tests", c.test.ListTests)

		// 答题者接口
		a.registerUserRoutes(authGroup, c)

		// 管理员接口
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/users", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/logout", c.auth.Logout)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	user := group.Group("")
	user.Use(middleware.UserOnly())
	{
		user.GET("/tests/:id", c.test.GetTestForTaker)

		user.POST("/results/:testId", c.result.Submit)
		user.GET("/results", c.result.ListMine)
		user.GET("/results/:testId", c.result.ListMineForTest)

		user.GET("/recommend", c.recommendation.Recommend)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("")
	admin.Use(middleware.AdminOnly())
	{
		// 用户管理
		admin.POST("/users/admin", c.auth.RegisterAdmin)
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.POST("/users/:id/block", c.user.ToggleBlock)
		admin.DELETE("/users/:id", c.user.DeleteUser)

		// 分类
		admin.POST("/categories", c.category.CreateCategory)
		admin.GET("/categories", c.category.ListCategories)
		admin.GET("/categories/:id", c.category.GetCategory)
		admin.PATCH("/categories/:id", c.category.RenameCategory)
		admin.DELETE("/categories/:id", c.category.DeleteCategory)

		// 测试
		admin.POST("/tests", c.test.CreateTest)
		admin.GET("/tests/admin/:id", c.test.GetTest)
		admin.POST("/tests/:id", c.test.UpdateTest)
		admin.DELETE("/tests/:id", c.test.DeleteTest)

		// 成绩
		admin.GET("/results/admin/:testId", c.result.ListForTest)
	}
}
