package routes

import (
	"geocheckin/constants"
	"geocheckin/controllers"
	_ "geocheckin/docs"
	middlewares "geocheckin/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, svc *Services) {
	authController := controllers.NewAuthController(svc.Auth)
	siteController := controllers.NewSiteController(svc.Sites)
	attendanceController := controllers.NewAttendanceController(svc.Attendance)

	authed := middlewares.AuthMiddleware(svc.Tokens)
	admin := middlewares.AuthMiddleware(svc.Tokens, constants.RoleAdmin)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.ErrorHandler())

	v1.POST("/auth/register", authController.Register)
	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/google", authController.GoogleLogin)
	v1.DELETE("/auth/logout", authController.Logout)
	v1.GET("/profile", authed, authController.Profile)

	v1.GET("/sites", authed, siteController.ListSites)
	v1.GET("/sites/:id", authed, siteController.GetSite)
	v1.GET("/sites/:id/qr", authed, siteController.GetSiteQR)
	v1.POST("/sites", admin, siteController.CreateSite)
	v1.PUT("/sites/:id", admin, siteController.UpdateSite)
	v1.DELETE("/sites/:id", admin, siteController.DeleteSite)
	v1.POST("/sites/:id/photo", admin, siteController.UploadSitePhoto)

	v1.POST("/attendance/scan", middlewares.SessionMiddleware(), authed, attendanceController.Scan)
	v1.GET("/attendance", authed, attendanceController.History)
}
