package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"AttendSheet/internal/handler"
	"AttendSheet/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())
	h.Use(middleware.SessionMiddleware())
	//h.Use(middleware.CSRFMiddleware()) 纯 Bearer 客户端不带 CSRF token，浏览器接入时再启用

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware()) // 认证接口限流
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/token/refresh", handler.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(), handler.Logout)
	}

	// 用户相关路由
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", handler.GetMe)
	}

	// 考勤表路由
	workLogs := v1.Group("/work-logs")
	workLogs.Use(middleware.AuthMiddleware())
	{
		workLogs.GET("", handler.ListWorkLogs)
		workLogs.POST("", handler.CreateWorkLog)
		workLogs.POST("/extract", middleware.ExtractRateLimitMiddleware(), handler.ExtractWorkLog)
		workLogs.GET("/:id", handler.GetWorkLog)
		workLogs.DELETE("/:id", handler.DeleteWorkLog)

		// 编辑会话
		workLogs.POST("/:id/edit", handler.EnableEditing)
		workLogs.PATCH("/:id/cells", handler.UpdateCell)
		workLogs.POST("/:id/rows", handler.AddRow)
		workLogs.POST("/:id/undo", handler.UndoChange)
		workLogs.POST("/:id/save", middleware.SaveRateLimitMiddleware(), handler.SaveSheet)

		// 异步导出受理
		workLogs.POST("/:id/exports", middleware.ExportRateLimitMiddleware(), handler.RequestExport)
	}

	// 个人资料路由
	profile := v1.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("", handler.GetProfile)
		profile.PATCH("", handler.UpdateProfile)
		profile.PUT("/signature", handler.UpdateSignature)
		profile.PUT("/signatories", handler.ReplaceSignatories)
	}

	// 导出任务路由
	exports := v1.Group("/exports")
	exports.Use(middleware.AuthMiddleware())
	{
		exports.GET("/:id", handler.GetExportStatus)
		exports.GET("/:id/download", handler.DownloadExport)
	}
}
