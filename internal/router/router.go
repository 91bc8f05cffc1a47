package router

import (
	"ecosort/internal/blob"
	"ecosort/internal/db"
	"ecosort/internal/handlers"
	"ecosort/internal/middleware"
	"ecosort/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, store blob.Store) {
	// Services
	media := services.NewMediaUploader(store)
	items := services.NewItemService(db.DB, media)
	ledger := services.NewVoteLedger(db.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler()
	itemHandler := handlers.NewItemHandler(items, ledger)
	voteHandler := handlers.NewVoteHandler(ledger, items)

	// 公共路由 (Public Routes)
	r.GET("/items", itemHandler.List)              // 最近添加的物品
	r.GET("/items/:iid", itemHandler.Detail)       // 物品详情
	r.GET("/items/:iid/vote", voteHandler.Current) // 当前用户的投票状态
	r.GET("/search", itemHandler.Search)           // 按名称前缀搜索

	r.GET("/captcha", authHandler.Captcha)                 // 算术验证码
	r.POST("/signup", authHandler.Register)                // 注册
	r.POST("/login", authHandler.Login)                    // 登录
	r.GET("/logout", authHandler.Logout)                   // 退出登录
	r.GET("/me", authHandler.Me)                           // 当前会话用户
	r.POST("/forgot-password", authHandler.ForgotPassword) // 发送重置验证码
	r.POST("/reset-password", authHandler.ResetPassword)   // 重置密码

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/items", itemHandler.Create)         // 创建物品
		authorized.POST("/items/:iid/vote", voteHandler.Cast) // 投票/撤票
	}
}
