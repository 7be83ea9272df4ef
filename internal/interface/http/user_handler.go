package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/doselog/identity-service/internal/application"
	"github.com/doselog/identity-service/internal/domain/entity"
	"github.com/doselog/identity-service/internal/interface/middleware"
	"github.com/doselog/identity-service/pkg/response"
	"github.com/doselog/identity-service/pkg/validation"
)

// UserHandler serves profile and social-account endpoints for the
// authenticated user.
type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender"`
	PictureURL  string `json:"picture_url" binding:"omitempty,url"`
}

type linkSocialRequest struct {
	Provider        string `json:"provider" binding:"required,provider"`
	ProviderUserID  string `json:"provider_user_id" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Name            string `json:"name" binding:"required"`
	ProfileImageURL string `json:"profile_image_url" binding:"omitempty,url"`
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	ExpiresIn       int    `json:"expires_in"`
	MakePrimary     bool   `json:"make_primary"`
}

// GetProfile GET /api/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}
	response.Success(c, http.StatusOK, userPayload(u), "profile", nil)
}

// UpdateProfile PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	params := application.UpdateUserProfileParams{
		UserID:     uid,
		Name:       req.Name,
		Email:      req.Email,
		Gender:     entity.ParseGender(req.Gender),
		PictureURL: req.PictureURL,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"date_of_birth": "must be a valid date"})
			return
		}
		params.DateOfBirth = &dob
	}

	u, err := h.Svc.UpdateUserProfile(c.Request.Context(), params)
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}
	response.Success(c, http.StatusOK, userPayload(u), "profile updated", nil)
}

// UploadPicture POST /api/profile/picture (multipart field "picture")
func (h *UserHandler) UploadPicture(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	file, err := c.FormFile("picture")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "picture file is required", nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable picture file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadPicture(c.Request.Context(), uid, f, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"picture_url": url}, "picture uploaded", nil)
}

// ListSocialAccounts GET /api/social-accounts
func (h *UserHandler) ListSocialAccounts(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	res, err := h.Svc.LoadSocialAccountsByUser(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}

	accounts := make([]gin.H, 0, len(res.Accounts))
	for _, a := range res.Accounts {
		accounts = append(accounts, socialAccountPayload(a))
	}
	var primary gin.H
	if res.Primary != nil {
		primary = socialAccountPayload(*res.Primary)
	}
	response.Success(c, http.StatusOK, gin.H{"accounts": accounts, "primary": primary}, "social accounts", nil)
}

// LinkSocialAccount POST /api/social-accounts/link
func (h *UserHandler) LinkSocialAccount(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req linkSocialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	provider, err := entity.ParseProvider(req.Provider)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unsupported provider", nil)
		return
	}

	params := application.LinkSocialAccountParams{
		UserID:          uid,
		Provider:        provider,
		ProviderUserID:  req.ProviderUserID,
		Email:           req.Email,
		Name:            req.Name,
		ProfileImageURL: req.ProfileImageURL,
		AccessToken:     req.AccessToken,
		RefreshToken:    req.RefreshToken,
		MakePrimary:     req.MakePrimary,
	}
	if req.ExpiresIn > 0 {
		exp := time.Now().Add(time.Duration(req.ExpiresIn) * time.Second)
		params.TokenExpiry = &exp
	}

	res, err := h.Svc.LinkSocialAccount(c.Request.Context(), params)
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}
	status := http.StatusOK
	if res.IsNewLink {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{
		"social_account_id": res.SocialAccountID,
		"is_new_link":       res.IsNewLink,
	}, res.Message, nil)
}

// Search GET /api/users/search?q=...&size=...
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size := 10
	if s := c.Query("size"); s != "" {
		if n, err := parsePositiveInt(s); err == nil {
			size = n
		}
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func socialAccountPayload(a entity.SocialAccount) gin.H {
	return gin.H{
		"id":                a.ID,
		"provider":          a.Provider.String(),
		"provider_user_id":  a.ProviderUserID,
		"email":             a.Email,
		"name":              a.Name,
		"profile_image_url": a.ProfileImageURL,
		"linked_at":         a.LinkedAt,
		"is_primary":        a.IsPrimary,
	}
}
