package modules

import (
	"github.com/gin-gonic/gin"

	handlers "identity-api/internal/interface/http"
	"identity-api/internal/interface/middleware"
	"identity-api/pkg/helpers"
)

// UserModule wires the profile handlers behind the bearer-token gate.
// Protected: GET/PUT/DELETE /api/profile, GET /api/users
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.DELETE("/profile", m.Handler.DeleteProfile)
		auth.GET("/users", m.Handler.ListUsers)
	}
}
