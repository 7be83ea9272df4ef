package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/doselog/identity-service/internal/interface/http"
	"github.com/doselog/identity-service/internal/interface/middleware"
	"github.com/doselog/identity-service/pkg/helpers"
)

// UserModule registers the JWT-protected profile and social-account
// endpoints.
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
		auth.POST("/profile/picture", m.Handler.UploadPicture)
		auth.GET("/social-accounts", m.Handler.ListSocialAccounts)
		auth.POST("/social-accounts/link", m.Handler.LinkSocialAccount)
		auth.GET("/users/search", m.Handler.Search)
	}
}
