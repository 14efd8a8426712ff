package modules

import (
	"github.com/gin-gonic/gin"

	handlers "identity-api/internal/interface/http"
)

// AuthModule exposes the public account endpoints.
// POST /api/signup, POST /api/signin
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", m.Handler.SignUp)
	rg.POST("/signin", m.Handler.SignIn)
}
