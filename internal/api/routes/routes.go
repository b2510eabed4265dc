package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/devconnector/internal/api/handlers"
	"github.com/yoockh/devconnector/internal/api/middleware"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Profile   *handlers.ProfileHandler
	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API running")
	})

	requireAuth := middleware.JWTAuth(d.JWTSecret)
	api := r.Group("/api")

	api.POST("/users", d.Auth.Register)

	api.GET("/auth", requireAuth, d.Auth.Me)
	api.POST("/auth", d.Auth.Login)

	profile := api.Group("/profile")
	profile.GET("", d.Profile.List)
	profile.GET("/user/:user_id", d.Profile.ByUserID)
	profile.GET("/me", requireAuth, d.Profile.Me)
	profile.POST("", requireAuth, d.Profile.Upsert)
	profile.DELETE("", requireAuth, d.Profile.Delete)
}
