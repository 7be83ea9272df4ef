package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/doselog/identity-service/internal/interface/http"
)

// AuthModule registers the public authentication endpoints.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", m.Handler.Signup)
	rg.POST("/signin", m.Handler.Signin)
	rg.POST("/auth/google", m.Handler.GoogleSignin)
	rg.POST("/refresh", m.Handler.Refresh)
	rg.POST("/logout", m.Handler.Logout)
}
