// Package routing wires the gin engine: common middleware, the service
// routes and the operational endpoints.
package routing

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"account-server/internal/managers"
	"account-server/internal/middleware"
	"account-server/internal/routing/handlers"
	"account-server/internal/schemas"
	"account-server/internal/service"
	"account-server/internal/store"
	"account-server/internal/utils"
)

func InitRouter(databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, jwtMgr managers.JWTMgr) *gin.Engine {
	router := gin.New()
	setupCommonMiddleware(router)
	setupRoutes(router, databaseMgr, mailMgr, jwtMgr)

	return router
}

func setupCommonMiddleware(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:19000"},
		AllowMethods:     []string{"GET", "PATCH", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, jwtMgr managers.JWTMgr) {
	// Version route
	router.GET("/", func(c *gin.Context) {
		apiVersion := os.Getenv("API_VERSION")
		if apiVersion == "" {
			apiVersion = "main:latest"
		}
		metadata := &schemas.MetadataDTO{
			ApiVersion: apiVersion,
			ApiName:    "Account Server",
		}
		utils.WriteAndLogResponse(c, metadata, http.StatusOK)
	})

	// Health route
	router.GET("/health", func(c *gin.Context) {
		if err := databaseMgr.GetPool().Ping(c.Request.Context()); err != nil {
			c.String(http.StatusInternalServerError, "Database not responding")
			return
		}
		c.Status(http.StatusOK)
	})

	userStore := store.NewPostgresUserStore(databaseMgr.GetPool())
	accountService := service.NewAccountService(userStore)
	userHdl := handlers.NewUserHandler(accountService, jwtMgr, mailMgr)

	apiRouter := router.Group("/api")
	userRouter := apiRouter.Group("/users")
	userRoutes(userRouter, userHdl, jwtMgr, userStore)
}

func userRoutes(userRouter *gin.RouterGroup, userHdl handlers.UserHdl, jwtMgr managers.JWTMgr, userStore store.UserStore) {
	userRouter.POST("/signup", middleware.BindAndSanitize(func() interface{} { return &schemas.SignupRequest{} }), userHdl.Signup)
	userRouter.POST("/login", middleware.BindAndSanitize(func() interface{} { return &schemas.LoginRequest{} }), userHdl.Login)
	userRouter.POST("/verify/:userId", middleware.BindAndSanitize(func() interface{} { return &schemas.VerifyRequest{} }), userHdl.Verify)
	userRouter.POST("/request-reset-password", middleware.BindAndSanitize(func() interface{} { return &schemas.RequestPasswordResetRequest{} }), userHdl.RequestPasswordReset)
	userRouter.PATCH("/reset-password/:userId", middleware.BindAndSanitize(func() interface{} { return &schemas.ResetPasswordRequest{} }), userHdl.ResetPassword)
	userRouter.GET("/avatar/:userId", userHdl.GetAvatar)

	// The following routes require the user to be authenticated
	authed := userRouter.Group("")
	authed.Use(middleware.RequireAuth(jwtMgr, userStore))
	authed.GET("/authorize", userHdl.Authorize)
	authed.POST("/logout", userHdl.Logout)
	authed.PATCH("/update-avatar", userHdl.UpdateAvatar)
	authed.PATCH("/update-password", middleware.BindAndSanitize(func() interface{} { return &schemas.UpdatePasswordRequest{} }), userHdl.UpdatePassword)
	authed.PATCH("/update-profile", middleware.BindAndSanitize(func() interface{} { return &schemas.UpdateProfileRequest{} }), userHdl.UpdateProfile)
	authed.POST("/request-update-email", middleware.BindAndSanitize(func() interface{} { return &schemas.RequestEmailUpdateRequest{} }), userHdl.RequestEmailUpdate)
	authed.PATCH("/update-email", middleware.BindAndSanitize(func() interface{} { return &schemas.UpdateEmailRequest{} }), userHdl.UpdateEmail)
	authed.DELETE("/delete", userHdl.Delete)

	// Path parameter route last so it cannot shadow the named routes
	userRouter.GET("/:userId", userHdl.GetUser)
}
