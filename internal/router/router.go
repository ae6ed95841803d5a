package router

import (
	"github.com/blues/fms/internal/config"
	"github.com/blues/fms/internal/handler"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "freelance-marketplace-service",
		})
	})

	// 指标暴露
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 用户相关路由
		userHandler := handler.NewUserHandler(db)
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/history", userHandler.GetUserHistory)
		}

		// 项目相关路由
		projectHandler := handler.NewProjectHandler(db)
		paymentHandler := handler.NewPaymentHandler(db)
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/progress", projectHandler.GetOverviewProgress)
			projects.POST("/:id/members", projectHandler.CreateMemberProject)
			projects.GET("/:id/members/:userId", projectHandler.GetMemberProject)
			projects.PUT("/:id/members/:userId/phase", projectHandler.UpdatePhaseStatus)
			projects.POST("/:id/members/:userId/pay", paymentHandler.PayForMember)
		}

		// 预存路由
		v1.POST("/member-projects/:id/escrow", paymentHandler.Escrow)

		// 纠纷相关路由
		disputeHandler := handler.NewDisputeHandler(db)
		disputes := v1.Group("/disputes")
		{
			disputes.POST("", disputeHandler.OpenDispute)
			disputes.POST("/:id/resolve", disputeHandler.ResolveDispute)
		}
		projects.GET("/:id/disputes", disputeHandler.GetProjectDisputes)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
