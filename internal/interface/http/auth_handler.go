package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/doselog/identity-service/internal/application"
	"github.com/doselog/identity-service/internal/domain/entity"
	"github.com/doselog/identity-service/pkg/helpers"
	"github.com/doselog/identity-service/pkg/mailer"
	"github.com/doselog/identity-service/pkg/response"
	"github.com/doselog/identity-service/pkg/validation"
)

// AuthHandler serves signup, signin and the Google sign-in flow.
type AuthHandler struct {
	Svc         *application.Service
	Google      application.FederatedVerifier
	JWT         *helpers.JWTManager
	Logger      *logrus.Logger
	Cookies     *helpers.Manager
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewAuthHandler(svc *application.Service, google application.FederatedVerifier, jwt *helpers.JWTManager, logger *logrus.Logger, cookies *helpers.Manager, pub *helpers.RabbitPublisher, mailEnabled bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Google: google, JWT: jwt, Logger: logger, Cookies: cookies, Pub: pub, MailEnabled: mailEnabled}
}

type signupRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender"`
	PictureURL  string `json:"picture_url" binding:"omitempty,url"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type googleSigninRequest struct {
	IDToken      string `json:"id_token" binding:"required"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func userPayload(u entity.User) gin.H {
	out := gin.H{
		"id":             u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"gender":         u.Gender.String(),
		"picture_url":    u.PictureURL,
		"email_verified": u.EmailVerified,
		"created_at":     u.CreatedAt,
		"updated_at":     u.UpdatedAt,
	}
	if u.DateOfBirth != nil {
		out["date_of_birth"] = u.DateOfBirth.Format("2006-01-02")
	}
	return out
}

// Signup POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	params := application.CreateLocalAccountParams{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
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

	res, err := h.Svc.CreateLocalAccount(c.Request.Context(), params)
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}

	h.sendWelcomeEmail(c, res.User)

	response.Success(c, http.StatusCreated, gin.H{
		"user":             userPayload(res.User),
		"local_account_id": res.LocalAccountID,
	}, "account created", nil)
}

// Signin POST /api/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}

	h.setTokenCookies(c, res.User.ID, res.AccessToken)
	response.Success(c, http.StatusOK, gin.H{
		"access_token": res.AccessToken,
		"user":         userPayload(res.User),
	}, "signin successful", nil)
}

// GoogleSignin POST /api/auth/google
// Verifies the Google ID token, links the federated identity to a
// profile (creating one on first login) and mints an access token.
func (h *AuthHandler) GoogleSignin(c *gin.Context) {
	var req googleSigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	claims, err := h.Google.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("google token verification failed")
		}
		response.Error[any](c, http.StatusUnauthorized, "invalid google token", nil)
		return
	}

	params := application.LinkFederatedAccountParams{
		Provider:       entity.ProviderGoogle,
		ProviderUserID: claims.ProviderUserID,
		Email:          claims.Email,
		Name:           claims.Name,
		PictureURL:     claims.PictureURL,
		AccessToken:    req.AccessToken,
		RefreshToken:   req.RefreshToken,
	}
	if req.ExpiresIn > 0 {
		exp := time.Now().Add(time.Duration(req.ExpiresIn) * time.Second)
		params.TokenExpiry = &exp
	}

	link, err := h.Svc.LinkFederatedAccount(c.Request.Context(), params)
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}

	auth, err := h.Svc.OAuthAuthentication(c.Request.Context(), entity.ProviderGoogle, claims.ProviderUserID)
	if err != nil {
		response.Error[any](c, statusFromError(err), clientMessage(err), nil)
		return
	}

	if link.IsNewUser {
		h.sendWelcomeEmail(c, link.User)
	}

	h.setTokenCookies(c, auth.User.ID, auth.AccessToken)
	response.Success(c, http.StatusOK, gin.H{
		"access_token":     auth.AccessToken,
		"user":             userPayload(auth.User),
		"oauth_account_id": link.OAuthAccountID,
		"is_new_user":      link.IsNewUser,
	}, "google signin successful", nil)
}

// Refresh POST /api/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	claims, err := h.JWT.ParseRefreshToken(refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	// Reject refresh for a profile that no longer exists.
	if _, err := h.Svc.GetProfile(c.Request.Context(), claims.UserID); err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	access, err := h.JWT.Encrypt(claims.UserID)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	h.setTokenCookies(c, claims.UserID, access)
	response.Success(c, http.StatusOK, gin.H{"access_token": access}, "token refreshed", nil)
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, userID, access string) {
	if h.Cookies == nil {
		return
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(userID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("refresh token generation failed")
		}
		return
	}
	h.Cookies.SetPair(c, access, time.Now().Add(h.JWT.AccessTTL), refresh, rexp)
}

func (h *AuthHandler) sendWelcomeEmail(c *gin.Context, u entity.User) {
	if h.Pub == nil || !h.MailEnabled {
		return
	}
	job := mailer.WelcomeEmail(u.Email, u.Name)
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}
