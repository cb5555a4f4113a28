package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/cloudvault/pkg/internal/handle"
)

// RegisterUserRoutes 注册账户相关路由. 注册与登录在认证跳过名单内.
func RegisterUserRoutes(g *gin.RouterGroup) {
	userRoutes := g.Group("/users")
	{
		userRoutes.POST("/register", handle.RegisterUser)
		userRoutes.POST("/login", handle.LoginUser)
		userRoutes.GET("/me", handle.GetCurrentUser)
		userRoutes.PUT("/me/password", handle.ChangePassword)
		userRoutes.PUT("/me/email", handle.UpdateEmail)
		userRoutes.PUT("/me/name", handle.UpdateFullName)
	}
}
