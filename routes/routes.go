package routes

import (
	"time"

	"puffpoint-backend/app"
	"puffpoint-backend/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	roleCtl := controllers.GetRoleController(s.Repo)
	listCtl := controllers.GetListController(s.Repo)
	inviteCtl := controllers.GetInviteController(s.Repo, a.Config.InviteScheme)
	photoCtl := controllers.GetPhotoController(s.Repo, a.Objects)
	geoCtl := controllers.GetGeocodeController(a.Config.NominatimURL)
	uc := controllers.GetUserController(s.Repo, s.AppSess)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	adminMW := app.AdminOnly()
	modMW := app.ModeratorOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 会话（公开+受保护）
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/session", s.ExchangeSession)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.GET("/whoami", s.WhoAmI)
		authed.POST("/logout", s.Logout)
	}

	// ------------------------------
	// 地理编码代理（公开，无需登录）
	// ------------------------------
	r.GET("/api/geocode", geoCtl.Search)

	// ------------------------------
	// 清单与邀请
	// ------------------------------
	api := r.Group("/api", authMW, seenMW)
	{
		api.POST("/lists", listCtl.CreateList)
		api.GET("/lists/:id", listCtl.GetList)
		api.POST("/lists/:id/invites", inviteCtl.CreateInvite)
		api.GET("/invites/preview", inviteCtl.PreviewInvite)
		api.POST("/invites/redeem", inviteCtl.RedeemInvite)
		api.POST("/spots/:id/photos", photoCtl.Upload)
	}

	// ------------------------------
	// 照片审核（admin 或 mod）
	// ------------------------------
	photos := r.Group("/api/photos", authMW, seenMW, modMW)
	{
		photos.GET("/pending", photoCtl.ListPending)
		photos.POST("/:id/moderate", photoCtl.Moderate)
	}

	// ------------------------------
	// 角色 / 用户管理（仅管理员）
	// ------------------------------
	admin := r.Group("/api", authMW, adminMW)
	{
		admin.POST("/admin/roles", roleCtl.SetRole)
		admin.GET("/users", uc.ListUsers) // ?q=&page=&size=
		admin.GET("/users/:id", uc.GetUser)
		admin.DELETE("/users/:id", uc.DeleteUser)
	}
}
