package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/eduadmin/internal/http/response"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService}
}

// POST /signin?mobile_number=
func (h *AuthHandler) SignIn(c *gin.Context) {
	if err := h.authService.RequestOTP(c.Request.Context(), c.Query("mobile_number")); err != nil {
		h.fail(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "OTP sent successfully")
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// POST /verify_otp?mobile_number=&otp=
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	token, err := h.authService.VerifyOTP(c.Request.Context(), c.Query("mobile_number"), c.Query("otp"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondBare(c, http.StatusOK, accessTokenResponse{AccessToken: token, TokenType: "bearer"})
}

type adminLoginRequest struct {
	MobileNumber string `json:"mobile_number"`
	OTP          string `json:"otp"`
}

// POST /admin/login {mobile_number, otp}
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apierr.BadRequest("Invalid JSON body"))
		return
	}
	token, err := h.authService.SuperAdminLogin(c.Request.Context(), strings.TrimSpace(req.MobileNumber), req.OTP)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, accessTokenResponse{AccessToken: token, TokenType: "bearer"}, "Login successful")
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	if response.Status(err) >= http.StatusInternalServerError {
		h.log.Error("Auth request failed", "path", c.FullPath(), "error", err)
	}
	response.RespondError(c, err)
}
